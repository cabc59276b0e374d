package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfigFile(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if *cfg != *DefaultAppConfig() {
		t.Fatalf("config = %+v, want defaults", cfg)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	want := &AppConfig{ExportScale: 2, DarkMode: true}

	if err := SaveConfigFile(path, want); err != nil {
		t.Fatalf("SaveConfigFile: %v", err)
	}
	got, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if *got != *want {
		t.Fatalf("config = %+v, want %+v", got, want)
	}
}

func TestConfigIgnoresGridSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := []byte(`{"grid":{"grid_n":16,"cell_size":25},"dark_mode":true}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if !cfg.DarkMode || cfg.ExportScale != 0 {
		t.Fatalf("config = %+v, want dark mode only", cfg)
	}

	if err := SaveConfigFile(path, cfg); err != nil {
		t.Fatalf("SaveConfigFile: %v", err)
	}
	saved, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(saved); strings.Contains(got, "grid") {
		t.Fatalf("saved config carries grid state: %s", got)
	}
}

func TestConfigBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{nope"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfigFile(path); err == nil {
		t.Fatalf("LoadConfigFile accepted invalid JSON")
	}
}

func TestConfigPathHonoursAppData(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("APPDATA", dir)
	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath: %v", err)
	}
	if want := filepath.Join(dir, "OpenTraceGrid", "config.json"); path != want {
		t.Fatalf("ConfigPath = %q, want %q", path, want)
	}
}
