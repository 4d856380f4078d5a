package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Gateway != GatewayMemory {
		t.Fatalf("Gateway = %q, want %q", cfg.Gateway, GatewayMemory)
	}
	if cfg.Retry.MaxRetries != MaxRetries {
		t.Fatalf("MaxRetries = %d", cfg.Retry.MaxRetries)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `gateway: remote
remote_url: http://example.test:9000
log:
  level: debug
retry:
  max_retries: 5
  initial_delay: 250ms
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Gateway != GatewayRemote || cfg.RemoteURL != "http://example.test:9000" {
		t.Fatalf("unexpected gateway config: %+v", cfg)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("Log.Level = %q", cfg.Log.Level)
	}
	if cfg.Retry.MaxRetries != 5 || cfg.Retry.InitialDelay != 250*time.Millisecond {
		t.Fatalf("unexpected retry config: %+v", cfg.Retry)
	}
	if cfg.Retry.MaxDelay != MaxDelay {
		t.Fatalf("MaxDelay = %v, want default %v", cfg.Retry.MaxDelay, MaxDelay)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SPRINTBOARD_ACTOR_ID", "designer-7")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ActorID != "designer-7" {
		t.Fatalf("ActorID = %q", cfg.ActorID)
	}
}

func TestLoadRejectsUnknownGateway(t *testing.T) {
	t.Setenv("SPRINTBOARD_GATEWAY", "carrier-pigeon")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for unknown gateway")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ListenAddr != DefaultListenAddr {
		t.Fatalf("ListenAddr = %q", cfg.ListenAddr)
	}
}
