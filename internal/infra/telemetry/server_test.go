package telemetry

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"apidir/internal/domain"
)

func TestStartMetricsServer_ServesRegistry(t *testing.T) {
	addr := freeAddr(t)
	registry := prometheus.NewRegistry()
	NewPrometheusMetrics(registry).ObserveNavigation("home")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- StartMetricsServer(ctx, HTTPServerOptions{Addr: addr, Registry: registry}, zap.NewNop())
	}()

	url := fmt.Sprintf("http://%s/metrics", addr)
	waitForHTTPStatus(t, url, http.StatusOK)

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "apidir_navigations_total")

	health, err := http.Get(fmt.Sprintf("http://%s/healthz", addr))
	require.NoError(t, err)
	healthBody, err := io.ReadAll(health.Body)
	health.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "ok\n", string(healthBody))

	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop in time")
	}
}

func TestStartMetricsServer_EmptyAddrIsDisabled(t *testing.T) {
	err := StartMetricsServer(context.Background(), HTTPServerOptions{}, nil)
	require.NoError(t, err)
}

func TestStartMetricsServer_PortInUse(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skip test due to listen error: %v", err)
	}
	defer listener.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err = StartMetricsServer(ctx, HTTPServerOptions{Addr: listener.Addr().String()}, zap.NewNop())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNetwork)
}

func freeAddr(t *testing.T) string {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skip test due to listen error: %v", err)
	}
	addr := listener.Addr().String()
	listener.Close()
	return addr
}

func waitForHTTPStatus(t *testing.T, url string, status int) {
	t.Helper()
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == status
	}, 2*time.Second, 25*time.Millisecond)
}
