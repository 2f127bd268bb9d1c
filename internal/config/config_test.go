package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFile_MissingUsesDefaults(t *testing.T) {
	cfg, info, err := LoadConfigFile(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if info.PortSpecified {
		t.Fatal("port should not be marked as specified")
	}
	def := DefaultConfig()
	if cfg.Server.Port != def.Server.Port {
		t.Fatalf("port = %d, want %d", cfg.Server.Port, def.Server.Port)
	}
	if cfg.Generation != def.Generation {
		t.Fatalf("generation = %+v, want %+v", cfg.Generation, def.Generation)
	}
}

func TestLoadConfigFile_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
port = 8080

[generation]
max_phrases = 10
seed = 7
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, info, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !info.PortSpecified || cfg.Server.Port != 8080 {
		t.Fatalf("port = %d specified=%v", cfg.Server.Port, info.PortSpecified)
	}
	if cfg.Generation.MaxPhrases != 10 || cfg.Generation.Seed != 7 {
		t.Fatalf("generation = %+v", cfg.Generation)
	}
	// 未配置的字段保持默认值
	if cfg.Generation.MaxWords != 6 || cfg.Generation.MaxAttempts != 500 {
		t.Fatalf("defaults lost: %+v", cfg.Generation)
	}
	if cfg.Data.DictionariesDir != "dictionaries" {
		t.Fatalf("dictionaries_dir = %q", cfg.Data.DictionariesDir)
	}
}

func TestLoadConfigFile_InvalidToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[server\nport = "), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := LoadConfigFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadConfigFile_EnvOverrides(t *testing.T) {
	t.Setenv("GEMATRIA_DICTIONARIES_DIR", "/srv/dicts")
	t.Setenv("GEMATRIA_THEMES_DIR", "/srv/themes")
	t.Setenv("GEMATRIA_DATA_DIR", "/srv/data")

	cfg, _, err := LoadConfigFile(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Data.DictionariesDir != "/srv/dicts" || cfg.Data.ThemesDir != "/srv/themes" || cfg.Data.DataDir != "/srv/data" {
		t.Fatalf("env overrides not applied: %+v", cfg.Data)
	}
}

func TestResolvePath(t *testing.T) {
	if got := ResolvePath("/abs/path"); got != "/abs/path" {
		t.Fatalf("abs path changed: %s", got)
	}
	if got := ResolvePath(""); got != "" {
		t.Fatalf("empty path changed: %s", got)
	}
	if got := ResolvePath("dictionaries"); filepath.Base(got) != "dictionaries" {
		t.Fatalf("relative path not resolved: %s", got)
	}
}
