package driven

// ConfigStore holds the pipeline's persisted settings as dotted keys
// (e.g. "uploads.base_url", "reclaim.dry_run").
// Typed getters return the zero value for missing or mistyped keys.
type ConfigStore interface {
	// Get reports the raw value stored under key and whether it exists.
	Get(key string) (any, bool)

	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool

	// GetStringSlice returns nil unless key holds a list of strings.
	GetStringSlice(key string) []string

	// Set stores value under key and persists it.
	Set(key string, value any) error

	// Save writes the in-memory settings to storage.
	Save() error

	// Load replaces the in-memory settings with what storage holds.
	Load() error

	// Path is where the settings live, or "" when they are not file backed.
	Path() string
}
