// Package config loads the optional YAML configuration file and supplies the
// defaults the original tool kept as module-level constants.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	CacheDir  string `yaml:"cache_dir"`
	Output    string `yaml:"output"`
	UserAgent string `yaml:"user_agent"`
	Language  string `yaml:"language"`

	TimeoutSec   int `yaml:"timeout_sec"`
	RetryCount   int `yaml:"retry_count"`
	RetryWaitSec int `yaml:"retry_wait_sec"`
	DelayMinSec  int `yaml:"delay_min_sec"`
	DelayMaxSec  int `yaml:"delay_max_sec"`
}

func DefaultConfig() *Config {
	return &Config{
		CacheDir:     "cache",
		Output:       ".",
		UserAgent:    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		Language:     "ru",
		TimeoutSec:   60,
		RetryCount:   3,
		RetryWaitSec: 2,
		DelayMinSec:  3,
		DelayMaxSec:  7,
	}
}

// Load reads the file at path when it exists and fills unset fields with
// defaults. An empty path returns the defaults untouched.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	normalize(cfg)
	return cfg, nil
}

func normalize(c *Config) {
	d := DefaultConfig()
	if c.CacheDir == "" {
		c.CacheDir = d.CacheDir
	}
	if c.Output == "" {
		c.Output = d.Output
	}
	if c.UserAgent == "" {
		c.UserAgent = d.UserAgent
	}
	if c.Language == "" {
		c.Language = d.Language
	}
	if c.TimeoutSec <= 0 {
		c.TimeoutSec = d.TimeoutSec
	}
	if c.RetryCount <= 0 {
		c.RetryCount = d.RetryCount
	}
	if c.RetryWaitSec <= 0 {
		c.RetryWaitSec = d.RetryWaitSec
	}
	if c.DelayMinSec <= 0 {
		c.DelayMinSec = d.DelayMinSec
	}
	if c.DelayMaxSec < c.DelayMinSec {
		c.DelayMaxSec = c.DelayMinSec
	}
}

func (c *Config) Timeout() time.Duration   { return time.Duration(c.TimeoutSec) * time.Second }
func (c *Config) RetryWait() time.Duration { return time.Duration(c.RetryWaitSec) * time.Second }
func (c *Config) DelayMin() time.Duration  { return time.Duration(c.DelayMinSec) * time.Second }
func (c *Config) DelayMax() time.Duration  { return time.Duration(c.DelayMaxSec) * time.Second }
