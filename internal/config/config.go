package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Package      string   `toml:"package"`
	TestsPackage string   `toml:"tests_package"`
	TestsDir     string   `toml:"tests_dir"`
	RootDir      string   `toml:"root_dir"`
	GitMode      string   `toml:"git_mode"`
	BaseBranch   string   `toml:"base_branch"`
	FixtureFiles []string `toml:"fixture_files"`
	HistoryPath  string   `toml:"history_path"`
	Watch        Watch    `toml:"watch"`
}

type Watch struct {
	Debounce     time.Duration `toml:"debounce"`
	ExcludeDirs  []string      `toml:"exclude_dirs"`
	ExcludeFiles []string      `toml:"exclude_files"`
	// Token bucket gating how often watch mode may re-run the analysis.
	RatePerSecond float64 `toml:"rate_per_second"`
	Burst         int     `toml:"burst"`
}

func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.RootDir == "" {
		c.RootDir = "."
	}
	if c.GitMode == "" {
		c.GitMode = "unstaged"
	}
	if len(c.FixtureFiles) == 0 {
		c.FixtureFiles = []string{"conftest.py"}
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = 500 * time.Millisecond
	}
	if c.Watch.RatePerSecond == 0 {
		c.Watch.RatePerSecond = 1
	}
	if c.Watch.Burst == 0 {
		c.Watch.Burst = 2
	}
}
