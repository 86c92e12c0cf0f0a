// Package integrations reports which builder integrations are enabled,
// as declared in the reclaim configuration.
package integrations

import (
	"strings"

	"github.com/custodia-labs/reclaim/internal/core/domain"
	"github.com/custodia-labs/reclaim/internal/core/ports/driven"
)

// Ensure Checker implements the interface.
var _ driven.IntegrationChecker = (*Checker)(nil)

// Checker answers integration queries from a fixed list.
// Names are compared case-insensitively.
type Checker struct {
	active map[string]struct{}
	theme  string
}

// NewChecker creates a checker for the given active integrations and theme.
func NewChecker(active []string, theme string) *Checker {
	c := &Checker{
		active: make(map[string]struct{}, len(active)),
		theme:  strings.TrimSpace(theme),
	}
	for _, name := range active {
		if n := normalise(name); n != "" {
			c.active[n] = struct{}{}
		}
	}
	return c
}

// FromSettings creates a checker from reclaim settings.
func FromSettings(settings domain.ReclaimSettings) *Checker {
	return NewChecker(settings.ActiveIntegrations, settings.Theme)
}

// IsIntegrationActive returns true if name is in the active list.
func (c *Checker) IsIntegrationActive(name string) bool {
	_, ok := c.active[normalise(name)]
	return ok
}

// ActiveTheme returns the configured theme name.
func (c *Checker) ActiveTheme() string {
	return c.theme
}

// normalise accepts both "brizy" and plugin paths such as "brizy/brizy.php".
func normalise(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if i := strings.IndexByte(name, '/'); i >= 0 {
		name = name[:i]
	}
	return name
}
