package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/reclaim/internal/core/domain"
	"github.com/custodia-labs/reclaim/internal/core/ports/driven"
	"github.com/custodia-labs/reclaim/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyUploadBaseURL     = "uploads.base_url"
	KeyUploadDirSegment  = "uploads.dir_segment"
	KeyIntegrations      = "integrations.active"
	KeyTheme             = "integrations.theme"
	KeyDetectPayloads    = "reclaim.detect_payloads"
	KeyDryRun            = "reclaim.dry_run"
	KeyResolverCacheSize = "reclaim.resolver_cache_size"
	KeyDataDir           = "storage.data_dir"
)

// SettingsService manages reclaim settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings, filling defaults for unset keys.
func (s *SettingsService) Get() (*domain.ReclaimSettings, error) {
	defaults := domain.DefaultReclaimSettings()

	settings := &domain.ReclaimSettings{
		UploadBaseURL:      s.configStore.GetString(KeyUploadBaseURL),
		UploadDirSegment:   s.getString(KeyUploadDirSegment, defaults.UploadDirSegment),
		ActiveIntegrations: s.configStore.GetStringSlice(KeyIntegrations),
		Theme:              s.configStore.GetString(KeyTheme),
		DetectPayloads:     s.getBool(KeyDetectPayloads, defaults.DetectPayloads),
		DryRun:             s.getBool(KeyDryRun, defaults.DryRun),
		ResolverCacheSize:  s.getInt(KeyResolverCacheSize, defaults.ResolverCacheSize),
		DataDir:            s.configStore.GetString(KeyDataDir),
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", s.configStore.Path(), err)
	}
	return settings, nil
}

// Save validates and persists settings.
func (s *SettingsService) Save(settings *domain.ReclaimSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyUploadBaseURL, settings.UploadBaseURL},
		{KeyUploadDirSegment, settings.UploadDirSegment},
		{KeyIntegrations, append([]string{}, settings.ActiveIntegrations...)},
		{KeyTheme, settings.Theme},
		{KeyDetectPayloads, settings.DetectPayloads},
		{KeyDryRun, settings.DryRun},
		{KeyResolverCacheSize, settings.ResolverCacheSize},
		{KeyDataDir, settings.DataDir},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses value for key, validates the result and persists it.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		// Allow repairing an invalid file one key at a time.
		defaults := domain.DefaultReclaimSettings()
		settings = &defaults
	}

	switch key {
	case KeyUploadBaseURL:
		settings.UploadBaseURL = strings.TrimSpace(value)
	case KeyUploadDirSegment:
		settings.UploadDirSegment = strings.Trim(strings.TrimSpace(value), "/")
	case KeyIntegrations:
		settings.ActiveIntegrations = splitList(value)
	case KeyTheme:
		settings.Theme = strings.TrimSpace(value)
	case KeyDetectPayloads, KeyDryRun:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		if key == KeyDryRun {
			settings.DryRun = b
		} else {
			settings.DetectPayloads = b
		}
	case KeyResolverCacheSize:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		settings.ResolverCacheSize = n
	case KeyDataDir:
		settings.DataDir = strings.TrimSpace(value)
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Keys returns the recognised setting keys, sorted.
func (s *SettingsService) Keys() []string {
	keys := []string{
		KeyUploadBaseURL, KeyUploadDirSegment, KeyIntegrations, KeyTheme,
		KeyDetectPayloads, KeyDryRun, KeyResolverCacheSize, KeyDataDir,
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.ReclaimSettings {
	return domain.DefaultReclaimSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
