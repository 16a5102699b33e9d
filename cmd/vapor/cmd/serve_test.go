package cmd

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/go-drift/vapor/pkg/component"
	"github.com/go-drift/vapor/pkg/telemetry"
)

func TestServeMetrics(t *testing.T) {
	metrics, err := telemetry.NewMetrics(telemetry.MetricsConfig{Enabled: true, Namespace: "serve"})
	if err != nil {
		t.Fatal(err)
	}
	metrics.InstanceCreated(component.New(&component.Object{}, nil))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serveMetrics(ctx, ln, metrics.Handler(), zap.NewNop()) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/metrics")
	if err != nil {
		cancel()
		t.Fatalf("GET /metrics: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "serve_instances_created_total 1") {
		t.Errorf("unexpected metrics body:\n%s", body)
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("serveMetrics returned %v after cancel", err)
	}
}

func TestRunCommandMetricsAddrInvalid(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.yaml", counterManifest)
	cfgPath := writeFile(t, dir, "vapor.yaml", "log:\n  level: error\n")

	_, err := execute(t, "run", "-c", cfgPath, "--metrics-addr", "not-an-address", path)
	if err == nil || !strings.Contains(err.Error(), "failed to listen") {
		t.Errorf("expected listen error, got %v", err)
	}
}
