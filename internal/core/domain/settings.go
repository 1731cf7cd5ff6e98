package domain

import (
	"net/url"
	"time"
)

// Client defaults.
const (
	DefaultBaseURL          = "http://localhost:8000"
	DefaultTimeout          = 5 * time.Minute
	DefaultMaxUploadBytes   = 10 << 20
	DefaultProgressInterval = 100 * time.Millisecond
)

// ClientSettings configures how the client reaches the backend.
type ClientSettings struct {
	// BaseURL is the backend origin, without the /api prefix.
	BaseURL string
	// Timeout bounds every request, including the upload.
	Timeout time.Duration
	// MaxUploadBytes rejects larger files before they are sent.
	MaxUploadBytes int64
	// ProgressInterval throttles progress notifications to observers.
	ProgressInterval time.Duration
}

// DefaultClientSettings returns settings for a local development backend.
func DefaultClientSettings() ClientSettings {
	return ClientSettings{
		BaseURL:          DefaultBaseURL,
		Timeout:          DefaultTimeout,
		MaxUploadBytes:   DefaultMaxUploadBytes,
		ProgressInterval: DefaultProgressInterval,
	}
}

// Validate checks the settings are usable.
func (s ClientSettings) Validate() error {
	u, err := url.Parse(s.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ValidationError{Field: "api.base_url", Message: "api.base_url must be an http(s) URL"}
	}
	if s.Timeout <= 0 {
		return &ValidationError{Field: "api.timeout_seconds", Message: "api.timeout_seconds must be positive"}
	}
	if s.MaxUploadBytes <= 0 {
		return &ValidationError{Field: "upload.max_bytes", Message: "upload.max_bytes must be positive"}
	}
	if s.ProgressInterval < 0 {
		return &ValidationError{Field: "ui.progress_interval_ms", Message: "ui.progress_interval_ms must not be negative"}
	}
	return nil
}
