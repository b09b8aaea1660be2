package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/cartsim/internal/track"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MaxTicks <= 0 {
		t.Error("max ticks should be positive")
	}
	if cfg.FPS <= 0 {
		t.Error("fps should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero max ticks", func(c *Config) { c.MaxTicks = 0 }},
		{"negative max ticks", func(c *Config) { c.MaxTicks = -5 }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"fps too high", func(c *Config) { c.FPS = 500 }},
		{"no data dir", func(c *Config) { c.DataDir = "" }},
		{"map and preset", func(c *Config) { c.Map = "input.txt"; c.Preset = "crash" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cartsim.yaml")

	cfg := DefaultConfig()
	cfg.Preset = "survivor"
	cfg.MaxTicks = 500
	cfg.Debug = true

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("loaded %+v, want %+v", loaded, cfg)
	}
}

func TestLoad_KeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("max_ticks: 42\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.MaxTicks != 42 {
		t.Errorf("expected max ticks 42, got %d", cfg.MaxTicks)
	}
	if cfg.FPS != DefaultFPS || cfg.DataDir != DefaultDataDir {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("fps: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected validation error")
	}
}

func TestSource(t *testing.T) {
	cfg := DefaultConfig()
	if _, err := cfg.Source(); err == nil {
		t.Error("expected error with neither map nor preset")
	}

	cfg.Preset = "crash"
	src, err := cfg.Source()
	if err != nil {
		t.Fatalf("preset source failed: %v", err)
	}
	if src != Presets["crash"].Map {
		t.Error("preset source mismatch")
	}

	cfg.Preset = "nonexistent"
	if _, err := cfg.Source(); err == nil {
		t.Error("expected error for unknown preset")
	}

	path := filepath.Join(t.TempDir(), "map.txt")
	if err := os.WriteFile(path, []byte("->-"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg.Preset = ""
	cfg.Map = path
	src, err = cfg.Source()
	if err != nil {
		t.Fatalf("file source failed: %v", err)
	}
	if src != "->-" {
		t.Errorf("unexpected source %q", src)
	}
}

func TestPresetsParse(t *testing.T) {
	for _, name := range ListPresets() {
		p := GetPreset(name)
		if p.Name != name {
			t.Errorf("preset %s has name %s", name, p.Name)
		}
		layout, err := track.ParseString(p.Map)
		if err != nil {
			t.Errorf("preset %s: %v", name, err)
			continue
		}
		if len(layout.Spawns) < 2 {
			t.Errorf("preset %s has %d carts", name, len(layout.Spawns))
		}
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}
