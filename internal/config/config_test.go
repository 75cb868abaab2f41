package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := setHome(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ContentDir != "content" {
		t.Fatalf("unexpected content dir: %q", cfg.ContentDir)
	}
	if want := filepath.Join(home, ".arcadewiki", "snapshot"); cfg.SnapshotDir != want {
		t.Fatalf("snapshot dir = %q, want %q", cfg.SnapshotDir, want)
	}
	if cfg.SimilarLimit != 3 {
		t.Fatalf("similar limit = %d", cfg.SimilarLimit)
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "text" {
		t.Fatalf("unexpected logging defaults: %s", cfg.Logging)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	home := setHome(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "content_dir: ~/wiki/content\nsimilar_limit: 5\nlogging:\n  level: debug\n  format: json\n  file: ~/.arcadewiki/arcadewiki.log\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := filepath.Join(home, "wiki", "content"); cfg.ContentDir != want {
		t.Fatalf("content dir = %q, want %q", cfg.ContentDir, want)
	}
	if cfg.SimilarLimit != 5 {
		t.Fatalf("similar limit = %d", cfg.SimilarLimit)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging: %s", cfg.Logging)
	}
	if want := filepath.Join(home, ".arcadewiki", "arcadewiki.log"); cfg.Logging.FilePath != want {
		t.Fatalf("log file = %q, want %q", cfg.Logging.FilePath, want)
	}
	if cfg.SnapshotDir == "" {
		t.Fatalf("snapshot dir default lost")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	setHome(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("content_dir: from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvContentDir, "/srv/content")
	t.Setenv(EnvLogLevel, "error")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ContentDir != "/srv/content" {
		t.Fatalf("content dir = %q", cfg.ContentDir)
	}
	if cfg.Logging.Level != "error" {
		t.Fatalf("log level = %q", cfg.Logging.Level)
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	setHome(t)
	dir := t.TempDir()

	cases := map[string]string{
		"yaml":   "content_dir: [unterminated\n",
		"level":  "logging:\n  level: loud\n",
		"format": "logging:\n  format: xml\n",
	}
	for name, body := range cases {
		path := filepath.Join(dir, name+".yaml")
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestSave_RoundTrip(t *testing.T) {
	setHome(t)
	cfg, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	cfg.ContentDir = "/data/content"
	cfg.SimilarLimit = 7

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ContentDir != "/data/content" || got.SimilarLimit != 7 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}
