package integrations

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/reclaim/internal/core/domain"
)

func TestChecker_IsIntegrationActive(t *testing.T) {
	c := NewChecker([]string{"Elementor", " brizy-pro/brizy-pro.php ", ""}, "Divi")

	assert.True(t, c.IsIntegrationActive(domain.IntegrationElementor))
	assert.True(t, c.IsIntegrationActive(domain.IntegrationBrizyPro))
	assert.False(t, c.IsIntegrationActive(domain.IntegrationBrizy))
	assert.False(t, c.IsIntegrationActive(""))
	assert.Equal(t, "Divi", c.ActiveTheme())
}

func TestFromSettings(t *testing.T) {
	settings := domain.DefaultReclaimSettings()
	settings.ActiveIntegrations = []string{"thrive-visual-editor"}
	settings.Theme = "  Divi Child "

	c := FromSettings(settings)
	assert.True(t, c.IsIntegrationActive(domain.IntegrationThrive))
	assert.Equal(t, "Divi Child", c.ActiveTheme())
}
