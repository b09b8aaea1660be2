package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxTicks = 100000
	DefaultFPS      = 10
	DefaultDataDir  = ".cartsim"
)

type Config struct {
	Map      string `yaml:"map"`
	Preset   string `yaml:"preset"`
	MaxTicks int    `yaml:"max_ticks" validate:"gte=1"`
	DataDir  string `yaml:"data_dir" validate:"required"`
	FPS      int    `yaml:"fps" validate:"gte=1,lte=120"`
	Debug    bool   `yaml:"debug"`
	Save     bool   `yaml:"save"`
}

func DefaultConfig() *Config {
	return &Config{
		MaxTicks: DefaultMaxTicks,
		DataDir:  DefaultDataDir,
		FPS:      DefaultFPS,
		Save:     true,
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if c.Map != "" && c.Preset != "" {
		return fmt.Errorf("map and preset are mutually exclusive")
	}
	return nil
}

// Source returns the map text named by the config: the preset if one is
// set, otherwise the contents of the map file.
func (c *Config) Source() (string, error) {
	if c.Preset != "" {
		p := GetPreset(c.Preset)
		if p == nil {
			return "", fmt.Errorf("unknown preset: %s (available: %v)", c.Preset, ListPresets())
		}
		return p.Map, nil
	}
	if c.Map == "" {
		return "", fmt.Errorf("no map file or preset given")
	}
	data, err := os.ReadFile(c.Map)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
