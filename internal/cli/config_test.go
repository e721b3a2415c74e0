package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
verbose = true
cache_dir = "/tmp/gltfkit-cache"
serve_addr = "localhost:9999"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.Verbose {
		t.Error("verbose should be true")
	}
	if cfg.CacheDir != "/tmp/gltfkit-cache" {
		t.Errorf("cache_dir = %q", cfg.CacheDir)
	}
	if cfg.ServeAddr != "localhost:9999" {
		t.Errorf("serve_addr = %q", cfg.ServeAddr)
	}
	if cfg.NoCache {
		t.Error("no_cache should keep its default")
	}
}

func TestLoadConfigPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("no_cache = true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.NoCache {
		t.Error("no_cache should be true")
	}
	// Unset fields keep defaults.
	if cfg.ServeAddr != DefaultConfig().ServeAddr {
		t.Errorf("serve_addr = %q", cfg.ServeAddr)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Error("missing file should error")
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	dir, err := cacheDir(Config{})
	if err != nil {
		t.Fatalf("cacheDir: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg", appName) {
		t.Errorf("dir = %q", dir)
	}

	// Explicit config wins over XDG.
	dir, err = cacheDir(Config{CacheDir: "/custom"})
	if err != nil {
		t.Fatalf("cacheDir: %v", err)
	}
	if dir != "/custom" {
		t.Errorf("dir = %q", dir)
	}
}
