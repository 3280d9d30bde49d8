package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amonks/todoapp/internal/config"
	"github.com/amonks/todoapp/internal/testsupport"
)

func writeGlobal(t *testing.T, home, content string) {
	t.Helper()
	dir := filepath.Join(home, ".config", "todoapp")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write global config: %v", err)
	}
}

func TestLoad_NotFound(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if *cfg != *config.Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	home := testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	writeGlobal(t, home, `
[storage]
backend = "sqlite"
path = "~/todo.db"

[log]
level = "debug"
`)

	project := `
[log]
level = "error"
format = "json"

[tasks]
cascade = "subtree"
`
	if err := os.WriteFile(filepath.Join(tmpDir, "todoapp.toml"), []byte(project), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("Backend = %q, expected sqlite", cfg.Storage.Backend)
	}
	if cfg.Storage.Path != filepath.Join(home, "todo.db") {
		t.Errorf("Path = %q, expected expanded home path", cfg.Storage.Path)
	}
	if cfg.Storage.Key != "todo-app-data" {
		t.Errorf("Key = %q, expected default", cfg.Storage.Key)
	}
	if cfg.Log.Level != "error" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v, expected project values", cfg.Log)
	}
	if cfg.Tasks.Cascade != "subtree" {
		t.Errorf("Cascade = %q, expected subtree", cfg.Tasks.Cascade)
	}
}

func TestLoad_ProjectCanClearGlobalValue(t *testing.T) {
	home := testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	writeGlobal(t, home, "[storage]\npath = \"/var/todo\"\n")
	if err := os.WriteFile(filepath.Join(tmpDir, "todoapp.toml"), []byte("[storage]\npath = \"\"\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Storage.Path != "" {
		t.Errorf("Path = %q, expected empty", cfg.Storage.Path)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tmpDir, "todoapp.toml"), []byte("[storage\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := config.Load(tmpDir); err == nil {
		t.Fatal("expected error for invalid TOML")
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tmpDir, "todoapp.toml"), []byte("[storage]\nbackedn = \"file\"\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := config.Load(tmpDir)
	if err == nil || !strings.Contains(err.Error(), "storage.backedn") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}
