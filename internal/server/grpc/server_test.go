package grpc

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/safetrace/internal/client/client"
	"github.com/dmitrijs2005/safetrace/internal/common"
	"github.com/dmitrijs2005/safetrace/internal/logging"
	"github.com/dmitrijs2005/safetrace/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"
)

const testSecret = "super-secret"

type fakeVaults struct {
	mu    sync.Mutex
	blobs map[string][]byte
	rev   int64
	err   error
}

func newFakeVaults() *fakeVaults {
	return &fakeVaults{blobs: map[string][]byte{}}
}

func (f *fakeVaults) Get(ctx context.Context, ownerID string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.blobs[ownerID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return b, nil
}

func (f *fakeVaults) Put(ctx context.Context, ownerID string, blob []byte) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.rev++
	f.blobs[ownerID] = append([]byte(nil), blob...)
	return f.rev, nil
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	tok, err := auth.GenerateToken(userID, []byte(testSecret), time.Hour)
	require.NoError(t, err)
	return tok
}

// startServer serves s on an in-memory listener until the test ends.
func startServer(t *testing.T, vs VaultService, opts ...Option) *bufconn.Listener {
	t.Helper()

	s, err := NewGRPCServer("", logging.Nop{}, vs, testSecret, opts...)
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("server did not stop")
		}
	})
	return lis
}

func newBackend(t *testing.T, lis *bufconn.Listener, token string) *client.GRPCBackend {
	t.Helper()
	b, err := client.NewGRPCBackend("passthrough:///bufnet", token, time.Second,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestServer_RoundTripThroughClientBackend(t *testing.T) {
	vs := newFakeVaults()
	lis := startServer(t, vs)
	b := newBackend(t, lis, tokenFor(t, "alice"))
	ctx := context.Background()

	_, err := b.Get(ctx, "alice")
	require.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, b.Put(ctx, "alice", []byte(`[{"id":"1"}]`)))
	got, err := b.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, string(got))

	require.NoError(t, b.Put(ctx, "alice", []byte(`[]`)))
	got, err = b.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got), "last writer wins")
}

func TestServer_AuthFailuresMapToUnauthorized(t *testing.T) {
	vs := newFakeVaults()
	vs.blobs["bob"] = []byte(`[]`)
	lis := startServer(t, vs)
	ctx := context.Background()

	foreign := newBackend(t, lis, tokenFor(t, "alice"))
	_, err := foreign.Get(ctx, "bob")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.ErrorIs(t, foreign.Put(ctx, "bob", []byte(`[]`)), common.ErrorUnauthorized)
	assert.Equal(t, `[]`, string(vs.blobs["bob"]))

	anonymous := newBackend(t, lis, "")
	_, err = anonymous.Get(ctx, "bob")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	garbage := newBackend(t, lis, "not-a-jwt")
	_, err = garbage.Get(ctx, "bob")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestServer_PingNeedsNoToken(t *testing.T) {
	lis := startServer(t, newFakeVaults())
	b := newBackend(t, lis, "")
	require.NoError(t, b.Ping(context.Background()))
}

func TestServer_RateLimitMapsToUnavailable(t *testing.T) {
	lis := startServer(t, newFakeVaults(), WithRateLimit(1, 1))
	b := newBackend(t, lis, tokenFor(t, "alice"))
	ctx := context.Background()

	require.NoError(t, b.Put(ctx, "alice", []byte(`[]`)))
	err := b.Put(ctx, "alice", []byte(`[]`))
	assert.ErrorIs(t, err, common.ErrStoreUnavailable)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv, err := NewGRPCServer("127.0.0.1:0", logging.Nop{}, newFakeVaults(), "secret")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err, "Run returned error on graceful stop")
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv, err := NewGRPCServer("127.0.0.1:99999", logging.Nop{}, newFakeVaults(), "secret")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.Error(t, srv.Run(ctx))
}
