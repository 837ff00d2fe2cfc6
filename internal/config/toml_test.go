package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("missing config should not error: %v", err)
	}
	if cfg.Timer.HoldMs != nil {
		t.Fatalf("missing config produced values: %+v", cfg)
	}
}

func TestLoadConfigParsesValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[timer]
hold-ms = 300
inspection = true
inspection-sec = 8

[practice]
puzzle = "4x4"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Timer.HoldMs == nil || *cfg.Timer.HoldMs != 300 {
		t.Fatalf("hold-ms = %v, want 300", cfg.Timer.HoldMs)
	}
	if cfg.Timer.Inspection == nil || !*cfg.Timer.Inspection {
		t.Fatal("inspection not parsed")
	}
	if cfg.Timer.InspectionSec == nil || *cfg.Timer.InspectionSec != 8 {
		t.Fatalf("inspection-sec = %v, want 8", cfg.Timer.InspectionSec)
	}
	if cfg.Practice.Puzzle == nil || *cfg.Practice.Puzzle != "4x4" {
		t.Fatalf("puzzle = %v, want 4x4", cfg.Practice.Puzzle)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatal("empty path should error")
	}
}
