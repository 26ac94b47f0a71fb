package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PEERFLOW_JWT_SECRET", "test-secret")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %s, want :8080", cfg.Server.Addr)
	}
	if cfg.Groups.DefaultThreshold != 50000 {
		t.Errorf("threshold = %d, want 50000", cfg.Groups.DefaultThreshold)
	}
	if cfg.TokenTTL().Hours() != 72 {
		t.Errorf("ttl = %v, want 72h", cfg.TokenTTL())
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[server]
addr = ":9090"

[auth]
jwt_secret = "file-secret"
token_ttl_hours = 24

[groups]
default_threshold = 10000
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	t.Setenv("PEERFLOW_ADDR", ":7070")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("addr = %s, want env override :7070", cfg.Server.Addr)
	}
	if cfg.Auth.JWTSecret != "file-secret" {
		t.Errorf("secret = %s, want file-secret", cfg.Auth.JWTSecret)
	}
	if cfg.Groups.DefaultThreshold != 10000 {
		t.Errorf("threshold = %d, want 10000", cfg.Groups.DefaultThreshold)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("PEERFLOW_JWT_SECRET", "")
	if _, err := Load(""); err == nil {
		t.Error("Expected error when jwt secret is missing")
	}
}
