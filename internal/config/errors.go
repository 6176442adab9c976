package config

import "errors"

// Configuration validation errors, returned by Config.Validate.
var (
	// ErrInvalidBaseURL is returned when the base URL is not an absolute http(s) URL.
	ErrInvalidBaseURL = errors.New("invalid base URL: must be an absolute http or https URL")

	// ErrInvalidConcurrency is returned when concurrency is below 1.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be at least 1")

	// ErrInvalidTimeout is returned when the timeout is negative. Zero disables it.
	ErrInvalidTimeout = errors.New("invalid timeout: must be non-negative")

	// ErrInvalidRetries is returned when the retry count is negative.
	ErrInvalidRetries = errors.New("invalid retries: must be non-negative")

	// ErrInvalidProxy is returned when the proxy is not an absolute URL.
	ErrInvalidProxy = errors.New("invalid proxy: must be a URL such as http://host:3128")

	// ErrInvalidBranchPolicy is returned for an unknown on_branch_error value.
	ErrInvalidBranchPolicy = errors.New("invalid branch policy: must be skip, report or abort")

	// ErrInvalidFormat is returned for an unknown output format.
	ErrInvalidFormat = errors.New("invalid format: must be ndjson or markdown")

	// ErrInvalidLogFormat is returned for an unknown log format.
	ErrInvalidLogFormat = errors.New("invalid log format: must be text or json")

	// ErrEmptyUserAgent is returned when the User-Agent is blank.
	ErrEmptyUserAgent = errors.New("user agent must not be empty")
)
