package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvNodeURL, "")
	t.Setenv(EnvSuri, "")
	settings, err := Load(GlobalFlags{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if settings.Timeout != 30*time.Second {
		t.Fatalf("unexpected default timeout: %v", settings.Timeout)
	}
	if !settings.HistoryEnabled {
		t.Fatal("history should be enabled by default")
	}
	if settings.DefaultNodeURL != "" || settings.DefaultSuri != "" {
		t.Fatalf("expected empty url/suri defaults, got %q/%q", settings.DefaultNodeURL, settings.DefaultSuri)
	}
}

func TestLoadFileConfig(t *testing.T) {
	t.Setenv(EnvNodeURL, "")
	t.Setenv(EnvSuri, "")
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	content := `
url: wss://rpc.example.com
suri: //Alice
timeout: 5s
history:
  enabled: false
  path: /tmp/history.db
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	settings, err := Load(GlobalFlags{ConfigPath: cfgPath})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if settings.DefaultNodeURL != "wss://rpc.example.com" {
		t.Fatalf("unexpected url: %s", settings.DefaultNodeURL)
	}
	if settings.DefaultSuri != "//Alice" {
		t.Fatalf("unexpected suri: %s", settings.DefaultSuri)
	}
	if settings.Timeout != 5*time.Second {
		t.Fatalf("unexpected timeout: %v", settings.Timeout)
	}
	if settings.HistoryEnabled {
		t.Fatal("history should be disabled by file config")
	}
	if settings.HistoryPath != "/tmp/history.db" {
		t.Fatalf("unexpected history path: %s", settings.HistoryPath)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("url: ws://file:9944\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(EnvNodeURL, "ws://env:9944")
	t.Setenv(EnvSuri, "//Bob")

	settings, err := Load(GlobalFlags{ConfigPath: cfgPath})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if settings.DefaultNodeURL != "ws://env:9944" {
		t.Fatalf("env should override file, got %s", settings.DefaultNodeURL)
	}
	if settings.DefaultSuri != "//Bob" {
		t.Fatalf("unexpected suri: %s", settings.DefaultSuri)
	}
}

func TestLoadFlagTimeoutWins(t *testing.T) {
	settings, err := Load(GlobalFlags{
		ConfigPath: filepath.Join(t.TempDir(), "missing.yaml"),
		Timeout:    "90s",
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if settings.Timeout != 90*time.Second {
		t.Fatalf("unexpected timeout: %v", settings.Timeout)
	}
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	_, err := Load(GlobalFlags{
		ConfigPath: filepath.Join(t.TempDir(), "missing.yaml"),
		Timeout:    "soon",
	})
	if err == nil {
		t.Fatal("expected timeout parse error")
	}
}
