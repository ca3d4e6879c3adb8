package adapter

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Importer.TimeoutSeconds != 20 {
		t.Errorf("importer timeout = %d", cfg.Importer.TimeoutSeconds)
	}
	if cfg.UI.GridColumns != 3 {
		t.Errorf("grid columns = %d", cfg.UI.GridColumns)
	}
	if cfg.UI.DefaultScreen != "home" {
		t.Errorf("default screen = %q", cfg.UI.DefaultScreen)
	}
	if cfg.Logging.Level != "INFO" {
		t.Errorf("log level = %q", cfg.Logging.Level)
	}
	if cfg.Data.Dir == "" {
		t.Error("data dir should default to a real path")
	}
}

func TestClearData(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "data")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sous.db"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{Data: DataConfig{Dir: dir}}
	if err := ClearData(cfg); err != nil {
		t.Fatalf("ClearData: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("data dir should be gone")
	}

	// Clearing again and clearing a memory-only config are both no-ops
	if err := ClearData(cfg); err != nil {
		t.Errorf("second ClearData: %v", err)
	}
	if err := ClearData(&Config{}); err != nil {
		t.Errorf("memory-only ClearData: %v", err)
	}
}
