package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the access
// token on outbound requests.
const AccessTokenHeaderName = "access_token"

// OwnerIDHeaderName is the gRPC metadata key naming the vault owner a request
// is scoped to. The server checks it against the token subject.
const OwnerIDHeaderName = "owner_id"
