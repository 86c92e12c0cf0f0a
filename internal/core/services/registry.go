package services

import (
	"strings"

	"github.com/custodia-labs/reclaim/internal/core/domain"
	"github.com/custodia-labs/reclaim/internal/core/ports/driven"
	"github.com/custodia-labs/reclaim/internal/extractors/attached"
	"github.com/custodia-labs/reclaim/internal/extractors/nested"
	"github.com/custodia-labs/reclaim/internal/extractors/plainurl"
	"github.com/custodia-labs/reclaim/internal/extractors/shortcode"
	"github.com/custodia-labs/reclaim/internal/extractors/tagged"
	"github.com/custodia-labs/reclaim/internal/extractors/uploadurl"
)

// EncodingEntry binds an encoding to the integrations enabling it, its
// extractor and the usage strategy applied to the media it finds.
type EncodingEntry struct {
	// Always runs the entry regardless of integrations.
	Always bool

	// Integrations enable the entry when any of them is active.
	Integrations []string

	// ThemeMarker enables the entry when the active theme name contains it.
	ThemeMarker string

	Extractor driven.Extractor
	Strategy  domain.UsageStrategy
}

// Encoding returns the encoding handled by the entry.
func (e EncodingEntry) Encoding() domain.Encoding {
	return e.Extractor.Encoding()
}

// EncodingRegistry selects the encodings that apply to a record.
type EncodingRegistry struct {
	entries        []EncodingEntry
	checker        driven.IntegrationChecker
	detectPayloads bool
}

// NewEncodingRegistry creates a registry over entries, evaluated in order.
// With detectPayloads set, an entry also applies when its extractor detects a payload.
func NewEncodingRegistry(checker driven.IntegrationChecker, detectPayloads bool, entries ...EncodingEntry) *EncodingRegistry {
	return &EncodingRegistry{
		entries:        entries,
		checker:        checker,
		detectPayloads: detectPayloads,
	}
}

// NewDefaultEncodingRegistry creates the registry of the standard encoding
// and the four builder encodings.
func NewDefaultEncodingRegistry(
	store driven.ContentStore,
	checker driven.IntegrationChecker,
	settings domain.ReclaimSettings,
) *EncodingRegistry {
	urls := uploadurl.New(settings.UploadDirSegment)
	return NewEncodingRegistry(checker, settings.DetectPayloads,
		EncodingEntry{
			Always:    true,
			Extractor: attached.New(store),
			Strategy:  domain.UsageStandard,
		},
		EncodingEntry{
			Integrations: []string{domain.IntegrationElementor},
			Extractor:    nested.New(),
			Strategy:     domain.UsageStandard,
		},
		EncodingEntry{
			Integrations: []string{domain.IntegrationThrive},
			Extractor:    shortcode.New(urls),
			Strategy:     domain.UsageStandard,
		},
		EncodingEntry{
			Integrations: []string{domain.IntegrationBrizy, domain.IntegrationBrizyPro},
			Extractor:    tagged.New(settings.NormalisedBaseURL()),
			Strategy:     domain.UsageCorrelation,
		},
		EncodingEntry{
			Integrations: []string{domain.IntegrationDivi},
			ThemeMarker:  domain.DiviThemeMarker,
			Extractor:    plainurl.New(urls),
			Strategy:     domain.UsageSettingsURL,
		},
	)
}

// Entries returns all registered entries.
func (r *EncodingRegistry) Entries() []EncodingEntry {
	out := make([]EncodingEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Applicable returns the entries that apply to record, in registry order.
func (r *EncodingRegistry) Applicable(record *domain.ContentRecord) []EncodingEntry {
	var out []EncodingEntry
	for _, e := range r.entries {
		if r.enabled(e) || (r.detectPayloads && e.Extractor.Detect(record)) {
			out = append(out, e)
		}
	}
	return out
}

func (r *EncodingRegistry) enabled(e EncodingEntry) bool {
	if e.Always {
		return true
	}
	if r.checker == nil {
		return false
	}
	for _, name := range e.Integrations {
		if r.checker.IsIntegrationActive(name) {
			return true
		}
	}
	return e.ThemeMarker != "" && strings.Contains(r.checker.ActiveTheme(), e.ThemeMarker)
}
