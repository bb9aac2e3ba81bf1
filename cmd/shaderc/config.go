package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

const defaultConfigPath = "shaderc.toml"

type Config struct {
	GLMajor int  `toml:"gl_major"`
	GLMinor int  `toml:"gl_minor"`
	Dry     bool `toml:"dry"`
	// Shaders are the combined shader files used when no files are passed on the command line
	Shaders []string `toml:"shaders"`
	// PollIntervalMs is how often watch mode applies pending reloads
	PollIntervalMs int `toml:"poll_interval_ms"`
}

func DefaultConfig() Config {
	return Config{
		GLMajor:        4,
		GLMinor:        1,
		PollIntervalMs: 100,
	}
}

// LoadConfig reads the config at path over the defaults. A missing file is not an error.
func LoadConfig(path string) (Config, error) {

	cfg := DefaultConfig()

	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	if err != nil {
		return Config{}, fmt.Errorf("failed to read config '%s': %w", path, err)
	}

	if err := toml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config '%s': %w", path, err)
	}

	if cfg.GLMajor < 3 || (cfg.GLMajor == 3 && cfg.GLMinor < 3) {
		return Config{}, fmt.Errorf("config '%s' asks for OpenGL %d.%d but at least 3.3 is needed", path, cfg.GLMajor, cfg.GLMinor)
	}

	if cfg.PollIntervalMs <= 0 {
		cfg.PollIntervalMs = DefaultConfig().PollIntervalMs
	}

	return cfg, nil
}
