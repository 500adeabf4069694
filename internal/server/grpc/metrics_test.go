package grpc

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/safetrace/internal/rpc"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// counterValue reads a requests_total sample from reg.
func counterValue(t *testing.T, reg *prometheus.Registry, method, code string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "safetrace_grpc_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["method"] == method && labels["code"] == code {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestMetrics_CountsByMethodAndCode(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	info := &grpc.UnaryServerInfo{FullMethod: rpc.VaultStore_GetVault_FullMethodName}
	ok := func(ctx context.Context, req any) (any, error) { return "ok", nil }
	denied := func(ctx context.Context, req any) (any, error) {
		return nil, status.Error(codes.PermissionDenied, "no")
	}

	_, _ = m.unaryInterceptor(context.Background(), nil, info, ok)
	_, _ = m.unaryInterceptor(context.Background(), nil, info, ok)
	_, err = m.unaryInterceptor(context.Background(), nil, info, denied)
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	assert.Equal(t, 2.0, counterValue(t, reg, rpc.VaultStore_GetVault_FullMethodName, "OK"))
	assert.Equal(t, 1.0, counterValue(t, reg, rpc.VaultStore_GetVault_FullMethodName, "PermissionDenied"))
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg)
	require.NoError(t, err)
	_, err = NewMetrics(reg)
	assert.Error(t, err)
}

func TestMetricsHandler_ExposesCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	lis := startServer(t, newFakeVaults(), WithMetrics(m))
	b := newBackend(t, lis, "")
	require.NoError(t, b.Ping(context.Background()))

	ts := httptest.NewServer(MetricsHandler(reg))
	defer ts.Close()

	resp, err := http.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `safetrace_grpc_requests_total{code="OK",method="/safetrace.vault.VaultStore/Ping"} 1`)
}
