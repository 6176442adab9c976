package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the file name searched in the current directory.
const DefaultConfigFile = ".mepower"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the YAML configuration file. Fields left out keep their
// current value when applied. Numeric keys are pointers so that an explicit
// 0 (no timeout, no retry) is told apart from a missing key.
type File struct {
	BaseURL       string         `yaml:"base_url,omitempty"`
	UserAgent     string         `yaml:"user_agent,omitempty"`
	Concurrency   *int           `yaml:"concurrency,omitempty"`
	Timeout       *time.Duration `yaml:"timeout,omitempty"`
	Retries       *int           `yaml:"retries,omitempty"`
	Proxy         string         `yaml:"proxy,omitempty"`
	OnBranchError string         `yaml:"on_branch_error,omitempty"`
	Format        string         `yaml:"format,omitempty"`
}

// LoadConfigFile reads a YAML configuration file.
// A missing file yields ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// FindConfigFile returns the configuration file to load, searching:
//  1. configPath, when given
//  2. .mepower in the current directory
//  3. config.yaml in XDGConfigDir
//
// It returns the empty string when none exists.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	candidates = append(candidates, XDGConfigFile())

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// Apply copies every value set in f onto c.
func (f *File) Apply(c *Config) {
	if f.BaseURL != "" {
		c.BaseURL = f.BaseURL
	}
	if f.UserAgent != "" {
		c.UserAgent = f.UserAgent
	}
	if f.Concurrency != nil {
		c.Concurrency = *f.Concurrency
	}
	if f.Timeout != nil {
		c.Timeout = *f.Timeout
	}
	if f.Retries != nil {
		c.Retries = *f.Retries
	}
	if f.Proxy != "" {
		c.Proxy = f.Proxy
	}
	if f.OnBranchError != "" {
		c.BranchPolicy = f.OnBranchError
	}
	if f.Format != "" {
		c.Format = f.Format
	}
}
