package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load("")

	if cfg.Store.Path != "knowledge_base.json" {
		t.Fatalf("store path = %q", cfg.Store.Path)
	}
	if cfg.Arxiv.BatchSize != 50 || cfg.Arxiv.BatchDelay() != 3*time.Second {
		t.Fatalf("arxiv defaults = %+v", cfg.Arxiv)
	}
	if cfg.Server.Addr != ":8765" {
		t.Fatalf("server addr = %q", cfg.Server.Addr)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte(`
store:
  path: /tmp/kb.json
arxiv:
  batchSize: 10
logging:
  level: debug
`)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := Load(path)

	if cfg.Store.Path != "/tmp/kb.json" {
		t.Fatalf("store path = %q", cfg.Store.Path)
	}
	if cfg.Arxiv.BatchSize != 10 {
		t.Fatalf("batch size = %d", cfg.Arxiv.BatchSize)
	}
	// Untouched keys keep their defaults.
	if cfg.Store.HTMLPath != "knowledge_base.html" {
		t.Fatalf("html path = %q", cfg.Store.HTMLPath)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("log level = %q", cfg.Logging.Level)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  addr: :9000\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(serverAddrEnv, ":7777")
	t.Setenv(storePathEnv, "/data/kb.json")

	cfg := Load(path)

	if cfg.Server.Addr != ":7777" {
		t.Fatalf("server addr = %q", cfg.Server.Addr)
	}
	if cfg.Store.Path != "/data/kb.json" {
		t.Fatalf("store path = %q", cfg.Store.Path)
	}
}

func TestLoadUnreadableFileFallsBack(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	if cfg.Arxiv.APIURL != "https://export.arxiv.org/api/query" {
		t.Fatalf("api url = %q", cfg.Arxiv.APIURL)
	}
}
