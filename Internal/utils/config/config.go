package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Screening struct {
		Workers         int    `yaml:"workers"`
		TopK            int    `yaml:"top_k"`
		DefaultUniverse string `yaml:"default_universe"`
		Schedule        string `yaml:"schedule"`
	} `yaml:"screening"`

	Analysis struct {
		BarLimit int `yaml:"bar_limit"`
	} `yaml:"analysis"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Universes map[string][]string `yaml:"universes"`
}

func LoadConfig() (*Config, error) {
	// Resolve path relative to this file first
	_, filePath, _, ok := runtime.Caller(0)
	var basePath string
	if ok {
		basePath = filepath.Dir(filePath)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	// Try multiple paths to find config.yaml
	possiblePaths := []string{}
	if basePath != "" {
		possiblePaths = append(possiblePaths, filepath.Join(basePath, "config.yaml"))
	}
	possiblePaths = append(possiblePaths,
		filepath.Join(cwd, "Internal", "utils", "config", "config.yaml"),
		"Internal/utils/config/config.yaml",
		"config.yaml",
	)

	var data []byte
	for _, path := range possiblePaths {
		data, err = os.ReadFile(path)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Screening.Workers <= 0 {
		c.Screening.Workers = 5
	}
	if c.Screening.TopK <= 0 {
		c.Screening.TopK = 10
	}
	if c.Screening.DefaultUniverse == "" {
		c.Screening.DefaultUniverse = "sp500"
	}
	if c.Analysis.BarLimit <= 0 {
		c.Analysis.BarLimit = 252
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
}

// Universe resolves a universe name to its symbol list. Names are
// case-insensitive.
func (c *Config) Universe(name string) ([]string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if symbols, ok := c.Universes[name]; ok {
		return symbols, nil
	}
	return nil, fmt.Errorf("unknown universe %q (available: %s)", name, strings.Join(c.UniverseNames(), ", "))
}

// UniverseNames lists the configured universes in sorted order.
func (c *Config) UniverseNames() []string {
	names := make([]string, 0, len(c.Universes))
	for name := range c.Universes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func SaveConfig(cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile("Internal/utils/config/config.yaml", data, 0644)
}
