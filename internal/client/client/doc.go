// Package client implements the remote vault backend.
//
// # Overview
//
// GRPCBackend satisfies store.Backend by talking to the blob server over the
// rpc.VaultStore contract. Each call runs under its own timeout and carries
// the owner id as metadata; an interceptor attaches the access token.
//
// # Error Handling
//
// gRPC status codes are mapped to sentinel errors from package common:
// Unauthenticated and PermissionDenied to ErrorUnauthorized; Unavailable,
// DeadlineExceeded and ResourceExhausted to ErrStoreUnavailable; NotFound to
// ErrorNotFound. Anything else is wrapped as an rpc error.
//
// The backend only ever sees ciphertext: the blob is the serialized record
// collection produced by store.VaultStore.
package client
