package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// Default settings values.
const (
	DefaultUploadDirSegment  = "wp-content/uploads"
	DefaultResolverCacheSize = 256
)

// Integration names checked against the active integration list.
const (
	IntegrationElementor = "elementor"
	IntegrationThrive    = "thrive-visual-editor"
	IntegrationBrizy     = "brizy"
	IntegrationBrizyPro  = "brizy-pro"
	IntegrationDivi      = "divi-builder"

	// DiviThemeMarker is matched against the active theme name.
	DiviThemeMarker = "Divi"
)

// ReclaimSettings holds the configuration of the reclaim pipeline.
type ReclaimSettings struct {
	// UploadBaseURL is the absolute URL under which media files are served,
	// e.g. "https://example.com/wp-content/uploads".
	UploadBaseURL string

	// UploadDirSegment is the path segment that identifies upload URLs in body text.
	UploadDirSegment string

	// ActiveIntegrations lists enabled builder integrations.
	ActiveIntegrations []string

	// Theme is the active theme name.
	Theme string

	// DetectPayloads runs a builder's extractor whenever its payload is present,
	// even when the integration is not active.
	DetectPayloads bool

	// DryRun computes decisions without applying them.
	DryRun bool

	// ResolverCacheSize bounds the per-event URL resolution memo.
	ResolverCacheSize int

	// DataDir is the directory holding the content store database.
	DataDir string
}

// DefaultReclaimSettings returns settings with sensible defaults.
func DefaultReclaimSettings() ReclaimSettings {
	return ReclaimSettings{
		UploadDirSegment:  DefaultUploadDirSegment,
		ResolverCacheSize: DefaultResolverCacheSize,
	}
}

// Validate checks the settings for consistency.
func (s *ReclaimSettings) Validate() error {
	if s.UploadBaseURL != "" {
		u, err := url.Parse(s.UploadBaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: upload base URL must be an absolute http(s) URL: %q",
				ErrInvalidInput, s.UploadBaseURL)
		}
	}
	if strings.Trim(s.UploadDirSegment, "/") == "" {
		return fmt.Errorf("%w: upload directory segment is required", ErrInvalidInput)
	}
	if s.ResolverCacheSize <= 0 {
		return fmt.Errorf("%w: resolver cache size must be positive", ErrInvalidInput)
	}
	return nil
}

// NormalisedBaseURL returns the upload base URL without a trailing slash.
func (s *ReclaimSettings) NormalisedBaseURL() string {
	return strings.TrimRight(s.UploadBaseURL, "/")
}
