package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/safetrace/internal/logging"
	"github.com/dmitrijs2005/safetrace/internal/rpc"
	"google.golang.org/grpc"
)

// VaultService is what the handlers need from the service layer.
type VaultService interface {
	Get(ctx context.Context, ownerID string) ([]byte, error)
	Put(ctx context.Context, ownerID string, blob []byte) (int64, error)
}

type GRPCServer struct {
	rpc.UnimplementedVaultStoreServer
	address   string
	vaults    VaultService
	logger    logging.Logger
	jwtSecret []byte
	limiter   *peerLimiter
	metrics   *Metrics
}

// Option customizes a GRPCServer.
type Option func(*GRPCServer)

// WithRateLimit caps each peer at rps requests per second with the given
// burst. rps <= 0 disables limiting.
func WithRateLimit(rps, burst int) Option {
	return func(s *GRPCServer) {
		s.limiter = newPeerLimiter(rps, burst)
	}
}

// WithMetrics records per-method request metrics into m.
func WithMetrics(m *Metrics) Option {
	return func(s *GRPCServer) {
		s.metrics = m
	}
}

func NewGRPCServer(a string, l logging.Logger, vs VaultService, secretKey string, opts ...Option) (*GRPCServer, error) {
	if l == nil {
		l = logging.Nop{}
	}
	s := &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		vaults:    vs,
		jwtSecret: []byte(secretKey),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// newServer builds the grpc.Server with the interceptor chain and the
// service registered. Metrics come first so rejected calls are counted too.
func (s *GRPCServer) newServer() *grpc.Server {
	var chain []grpc.UnaryServerInterceptor
	if s.metrics != nil {
		chain = append(chain, s.metrics.unaryInterceptor)
	}
	if s.limiter != nil {
		chain = append(chain, s.rateLimitInterceptor)
	}
	chain = append(chain, s.accessTokenInterceptor)

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(chain...))
	rpc.RegisterVaultStoreServer(srv, s)
	return srv
}

// Serve accepts connections on listen until ctx is cancelled, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}
