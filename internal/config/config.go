package config

import (
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/nao1215/mepower/internal/fetcher"
	"github.com/nao1215/mepower/internal/log"
	"github.com/nao1215/mepower/internal/pipeline"
	"github.com/nao1215/mepower/internal/report"
)

// Default configuration values.
const (
	// AppName is used for XDG directory paths.
	AppName = "mepower"

	// DefaultBaseURL is the public outage portal of Central Maine Power.
	DefaultBaseURL = "https://ecmp.cmpco.com/OutageReports"

	// DefaultConcurrency of 4 keeps the portal load modest.
	// 1 reproduces a strictly sequential walk.
	DefaultConcurrency = pipeline.DefaultConcurrency

	// DefaultTimeout of 0 leaves requests without a deadline.
	DefaultTimeout time.Duration = 0

	// DefaultRetries of 0 makes every request a single attempt.
	DefaultRetries = 0

	// DefaultFormat writes NDJSON.
	DefaultFormat = report.FormatNDJSON

	// DefaultLogFormat writes slog text lines.
	DefaultLogFormat = log.FormatText
)

// Config holds every option of a run. It is populated by NewConfig, then
// File.Apply, then the command-line flags that were set explicitly.
type Config struct {
	// BaseURL is the directory holding CMP.html and the pages it links to.
	BaseURL string

	// UserAgent is sent with every request.
	UserAgent string

	// Concurrency is the number of pages fetched at once.
	Concurrency int

	// Timeout bounds each request. Zero disables it.
	Timeout time.Duration

	// Retries is the number of extra attempts after a failed request.
	Retries int

	// Proxy is an optional HTTP(S) proxy URL. It may carry credentials,
	// which are never logged.
	Proxy string

	// BranchPolicy is one of skip, report or abort.
	BranchPolicy string

	// Format is the output format, ndjson or markdown.
	Format string

	// OutputFile receives the output instead of stdout when set.
	OutputFile string

	// Verbose lowers the log level to debug.
	Verbose bool

	// LogFormat is text or json.
	LogFormat string

	// ConfigFilePath is the file given with --config. When empty the
	// default locations are searched.
	ConfigFilePath string
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		BaseURL:      DefaultBaseURL,
		UserAgent:    fetcher.DefaultUserAgent,
		Concurrency:  DefaultConcurrency,
		Timeout:      DefaultTimeout,
		Retries:      DefaultRetries,
		BranchPolicy: pipeline.DefaultBranchPolicy.String(),
		Format:       DefaultFormat,
		LogFormat:    DefaultLogFormat,
	}
}

// XDGConfigDir returns the XDG config directory for mepower,
// e.g. ~/.config/mepower on Linux.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGConfigFile returns the config file looked up in XDGConfigDir.
func XDGConfigFile() string {
	return filepath.Join(XDGConfigDir(), "config.yaml")
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidBaseURL
	}

	if strings.TrimSpace(c.UserAgent) == "" {
		return ErrEmptyUserAgent
	}

	if c.Concurrency < 1 {
		return ErrInvalidConcurrency
	}

	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}

	if c.Retries < 0 {
		return ErrInvalidRetries
	}

	if c.Proxy != "" {
		p, err := url.Parse(c.Proxy)
		if err != nil || !p.IsAbs() || p.Host == "" {
			return ErrInvalidProxy
		}
	}

	if _, err := pipeline.ParseBranchPolicy(c.BranchPolicy); err != nil {
		return ErrInvalidBranchPolicy
	}

	switch strings.ToLower(c.Format) {
	case report.FormatNDJSON, report.FormatMarkdown:
	default:
		return ErrInvalidFormat
	}

	switch strings.ToLower(c.LogFormat) {
	case log.FormatText, log.FormatJSON:
	default:
		return ErrInvalidLogFormat
	}

	return nil
}

// Policy returns the parsed branch policy. Call Validate first.
func (c *Config) Policy() pipeline.BranchPolicy {
	p, err := pipeline.ParseBranchPolicy(c.BranchPolicy)
	if err != nil {
		return pipeline.DefaultBranchPolicy
	}
	return p
}
