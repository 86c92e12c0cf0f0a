package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reclaim/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/reclaim/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultReclaimSettings()
	assert.Equal(t, defaults.UploadDirSegment, settings.UploadDirSegment)
	assert.Equal(t, defaults.ResolverCacheSize, settings.ResolverCacheSize)
	assert.False(t, settings.DryRun)
	assert.False(t, settings.DetectPayloads)
	assert.Empty(t, settings.ActiveIntegrations)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{
		KeyUploadBaseURL:     "https://example.com/wp-content/uploads",
		KeyIntegrations:      []any{"elementor", "brizy"},
		KeyTheme:             "Divi",
		KeyDryRun:            true,
		KeyResolverCacheSize: int64(64),
	})
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "https://example.com/wp-content/uploads", settings.UploadBaseURL)
	assert.Equal(t, []string{"elementor", "brizy"}, settings.ActiveIntegrations)
	assert.Equal(t, "Divi", settings.Theme)
	assert.True(t, settings.DryRun)
	assert.Equal(t, 64, settings.ResolverCacheSize)
}

func TestSettingsService_Get_InvalidConfig(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{KeyUploadBaseURL: "ftp://example.com"})

	_, err := NewSettingsService(store).Get()

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), ":memory:")
}

func TestSettingsService_Save(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := domain.DefaultReclaimSettings()
	settings.UploadBaseURL = "https://example.com/uploads"
	settings.ActiveIntegrations = []string{"elementor"}
	settings.DetectPayloads = true

	require.NoError(t, service.Save(&settings))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings.UploadBaseURL, got.UploadBaseURL)
	assert.Equal(t, settings.ActiveIntegrations, got.ActiveIntegrations)
	assert.True(t, got.DetectPayloads)
}

func TestSettingsService_Save_Rejects(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	assert.ErrorIs(t, service.Save(nil), domain.ErrInvalidInput)

	settings := domain.DefaultReclaimSettings()
	settings.ResolverCacheSize = -1
	assert.ErrorIs(t, service.Save(&settings), domain.ErrInvalidInput)
	assert.Equal(t, 0, store.Saves())
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		key   string
		value string
		check func(t *testing.T, s *domain.ReclaimSettings)
	}{
		{KeyUploadBaseURL, " https://cdn.example.com/media ", func(t *testing.T, s *domain.ReclaimSettings) {
			assert.Equal(t, "https://cdn.example.com/media", s.UploadBaseURL)
		}},
		{KeyUploadDirSegment, "/media/uploads/", func(t *testing.T, s *domain.ReclaimSettings) {
			assert.Equal(t, "media/uploads", s.UploadDirSegment)
		}},
		{KeyIntegrations, "elementor, brizy,,divi-builder", func(t *testing.T, s *domain.ReclaimSettings) {
			assert.Equal(t, []string{"elementor", "brizy", "divi-builder"}, s.ActiveIntegrations)
		}},
		{KeyTheme, "Divi", func(t *testing.T, s *domain.ReclaimSettings) {
			assert.Equal(t, "Divi", s.Theme)
		}},
		{KeyDetectPayloads, "true", func(t *testing.T, s *domain.ReclaimSettings) {
			assert.True(t, s.DetectPayloads)
		}},
		{KeyDryRun, "1", func(t *testing.T, s *domain.ReclaimSettings) {
			assert.True(t, s.DryRun)
		}},
		{KeyResolverCacheSize, "32", func(t *testing.T, s *domain.ReclaimSettings) {
			assert.Equal(t, 32, s.ResolverCacheSize)
		}},
		{KeyDataDir, "/var/lib/reclaim", func(t *testing.T, s *domain.ReclaimSettings) {
			assert.Equal(t, "/var/lib/reclaim", s.DataDir)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStore())

			require.NoError(t, service.Set(tt.key, tt.value))

			settings, err := service.Get()
			require.NoError(t, err)
			tt.check(t, settings)
		})
	}
}

func TestSettingsService_Set_Errors(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.ErrorIs(t, service.Set("unknown.key", "x"), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Set(KeyDryRun, "maybe"), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Set(KeyResolverCacheSize, "many"), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Set(KeyResolverCacheSize, "0"), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Set(KeyUploadBaseURL, "not a url"), domain.ErrInvalidInput)
}

func TestSettingsService_Set_RepairsInvalidConfig(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{KeyUploadBaseURL: "ftp://broken"})
	service := NewSettingsService(store)

	require.NoError(t, service.Set(KeyUploadBaseURL, "https://example.com/uploads"))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/uploads", settings.UploadBaseURL)
}

func TestSettingsService_Keys(t *testing.T) {
	keys := NewSettingsService(memory.NewConfigStore()).Keys()

	assert.Len(t, keys, 8)
	assert.IsIncreasing(t, keys)
	assert.Contains(t, keys, KeyIntegrations)
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	assert.Equal(t, domain.DefaultReclaimSettings(), service.GetDefaults())
}
