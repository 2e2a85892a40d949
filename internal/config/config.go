// Package config loads server and curator settings from a YAML file
// layered over built-in defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"nonogrid/internal/domain"
)

type PoolConfig struct {
	Sizes        []int    `yaml:"sizes"`
	Difficulties []string `yaml:"difficulties"`
	Count        int      `yaml:"count"`
	Budget       int      `yaml:"budget"`
	Workers      int      `yaml:"workers"`
}

type Config struct {
	Addr     string `yaml:"addr"`
	DataDir  string `yaml:"data_dir"`
	LogLevel string `yaml:"log_level"`
	LogJSON  bool   `yaml:"log_json"`

	DailySize int `yaml:"daily_size"`

	// MinSolveTimeMs rejects submissions solved faster than this;
	// zero disables the check.
	MinSolveTimeMs int64 `yaml:"min_solve_time_ms"`

	// Live enables the websocket submission feed.
	Live bool `yaml:"live"`

	Pool PoolConfig `yaml:"pool"`

	// Difficulties overlays or extends the built-in density bands.
	Difficulties []domain.Difficulty `yaml:"difficulties"`
}

func Default() Config {
	return Config{
		Addr:      ":8080",
		DataDir:   "./data",
		LogLevel:  "info",
		DailySize: 15,
		Live:      true,
		Pool: PoolConfig{
			Sizes:        []int{5, 10, 15},
			Difficulties: []string{"easy", "medium", "hard"},
			Count:        100,
			Budget:       2000,
			Workers:      4,
		},
	}
}

// Load reads a YAML file over the defaults. An empty path means
// defaults only.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Table builds the difficulty table: defaults plus any overlays.
func (c Config) Table() (*domain.DifficultyTable, error) {
	t := domain.DefaultTable()
	for _, d := range c.Difficulties {
		if err := t.Add(d); err != nil {
			return nil, fmt.Errorf("config difficulty: %w", err)
		}
	}
	return t, nil
}
