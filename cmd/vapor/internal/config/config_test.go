package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolve_Defaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/acme/widgets/v2\n\ngo 1.24\n")

	got, err := Resolve(dir, "")
	if err != nil {
		t.Fatal(err)
	}
	want := &Resolved{
		Root:             dir,
		ModulePath:       "example.com/acme/widgets/v2",
		AppName:          "widgets",
		Debug:            true,
		RuntimeVersion:   RuntimeVersion,
		LogLevel:         "info",
		MetricsNamespace: "vapor",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resolved mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_FromFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
app:
  name: demo
runtime:
  debug: false
  version: v0.0.9
log:
  level: DEBUG
  development: true
metrics:
  enabled: true
  namespace: ui
`)

	got, err := Resolve(dir, "")
	if err != nil {
		t.Fatal(err)
	}
	want := &Resolved{
		Root:             dir,
		AppName:          "demo",
		Debug:            false,
		RuntimeVersion:   "v0.0.9",
		LogLevel:         "debug",
		LogDevelopment:   true,
		MetricsEnabled:   true,
		MetricsNamespace: "ui",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resolved mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "custom.yaml", "app:\n  name: custom\n")

	got, err := Resolve(t.TempDir(), filepath.Join(dir, "custom.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if got.AppName != "custom" {
		t.Errorf("AppName = %q, want %q", got.AppName, "custom")
	}

	if _, err := Resolve(dir, filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("an explicit missing config file should be an error")
	}
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name, yaml, want string
	}{
		{"bad yaml", "app: [", "failed to parse"},
		{"bad version", "runtime:\n  version: latest\n", "invalid runtime version"},
		{"newer version", "runtime:\n  version: v9.0.0\n", "project requires runtime"},
		{"bad level", "log:\n  level: loud\n", "invalid log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, FileName, tt.yaml)
			_, err := Resolve(dir, "")
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestDefaultAppName(t *testing.T) {
	if got := defaultAppName("", "/tmp/project"); got != "project" {
		t.Errorf("defaultAppName = %q, want %q", got, "project")
	}
	if got := defaultAppName("github.com/acme/site", "/x"); got != "site" {
		t.Errorf("defaultAppName = %q, want %q", got, "site")
	}
}
