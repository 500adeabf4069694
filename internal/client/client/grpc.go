package client

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/safetrace/internal/common"
	"github.com/dmitrijs2005/safetrace/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// DefaultTimeout bounds a single call when none is configured.
const DefaultTimeout = 5 * time.Second

// GRPCBackend stores vault blobs on the remote server.
type GRPCBackend struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      rpc.VaultStoreClient
	accessToken string
	timeout     time.Duration
}

func withMetadata(ctx context.Context, key, value string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(key, value)
	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCBackend) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if s.accessToken != "" {
		ctx = withMetadata(ctx, common.AccessTokenHeaderName, s.accessToken)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGRPCBackend creates a lazily connecting client for endpointURL.
// Extra dial options are appended after the defaults.
func NewGRPCBackend(endpointURL, accessToken string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCBackend, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	s := &GRPCBackend{endpointURL: endpointURL, accessToken: accessToken, timeout: timeout}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	s.conn = conn
	s.client = rpc.NewVaultStoreClient(conn)
	return s, nil
}

func (s *GRPCBackend) Get(ctx context.Context, ownerID string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(withMetadata(ctx, common.OwnerIDHeaderName, ownerID), s.timeout)
	defer cancel()

	resp, err := s.client.GetVault(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.GetValue(), nil
}

func (s *GRPCBackend) Put(ctx context.Context, ownerID string, blob []byte) error {
	ctx, cancel := context.WithTimeout(withMetadata(ctx, common.OwnerIDHeaderName, ownerID), s.timeout)
	defer cancel()

	if _, err := s.client.PutVault(ctx, wrapperspb.Bytes(blob)); err != nil {
		return s.mapError(err)
	}
	return nil
}

// Ping checks that the server is reachable and healthy.
func (s *GRPCBackend) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.Ping(ctx, &emptypb.Empty{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.GetValue() != rpc.PingOK {
		return fmt.Errorf("%w: status %q", common.ErrStoreUnavailable, resp.GetValue())
	}
	return nil
}

func (s *GRPCBackend) Close() error {
	return s.conn.Close()
}

func (s *GRPCBackend) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", common.ErrorUnauthorized, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted:
		return fmt.Errorf("%w: %s", common.ErrStoreUnavailable, st.Message())
	case codes.NotFound:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
