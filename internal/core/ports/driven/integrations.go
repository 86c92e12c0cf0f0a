package driven

// IntegrationChecker reports which builder integrations are enabled.
type IntegrationChecker interface {
	// IsIntegrationActive returns true if the named integration is enabled.
	IsIntegrationActive(name string) bool

	// ActiveTheme returns the name of the active theme, or "".
	ActiveTheme() string
}
