package domain

// Encoding identifies a content encoding that may carry media references.
type Encoding string

// Known encodings.
const (
	// EncodingStandard covers media directly attached to the record.
	EncodingStandard Encoding = "standard"

	// EncodingElementor is builder A: a nested JSON layout tree.
	EncodingElementor Encoding = "elementor"

	// EncodingThrive is builder B: shortcodes and data attributes in the body.
	EncodingThrive Encoding = "thrive"

	// EncodingBrizy is builder C: JSON or serialized payload with correlation tags.
	EncodingBrizy Encoding = "brizy"

	// EncodingDivi is builder D: upload URLs in the body plus structured settings.
	EncodingDivi Encoding = "divi"
)

// AllEncodings returns every known encoding in evaluation order.
func AllEncodings() []Encoding {
	return []Encoding{
		EncodingStandard,
		EncodingElementor,
		EncodingThrive,
		EncodingBrizy,
		EncodingDivi,
	}
}

// IsValid returns true if the encoding is recognised.
func (e Encoding) IsValid() bool {
	switch e {
	case EncodingStandard, EncodingElementor, EncodingThrive, EncodingBrizy, EncodingDivi:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (e Encoding) String() string {
	return string(e)
}

// Description returns a human-readable description of the encoding.
func (e Encoding) Description() string {
	switch e {
	case EncodingStandard:
		return "Directly attached media"
	case EncodingElementor:
		return "Elementor layout data"
	case EncodingThrive:
		return "Thrive Architect shortcodes"
	case EncodingBrizy:
		return "Brizy content payload"
	case EncodingDivi:
		return "Divi Builder content"
	default:
		return "Unknown"
	}
}

// UsageStrategy selects how the usage index looks for other referrers.
type UsageStrategy string

// Usage strategies.
const (
	// UsageStandard checks thumbnails and content for canonical and variant URLs.
	UsageStandard UsageStrategy = "standard"

	// UsageCorrelation checks builder C payloads for the tag prefix or canonical URL.
	UsageCorrelation UsageStrategy = "correlation"

	// UsageSettingsURL checks builder D settings, then plain bodies, for the canonical URL.
	UsageSettingsURL UsageStrategy = "settings-url"
)

// IsValid returns true if the strategy is recognised.
func (s UsageStrategy) IsValid() bool {
	switch s {
	case UsageStandard, UsageCorrelation, UsageSettingsURL:
		return true
	default:
		return false
	}
}
