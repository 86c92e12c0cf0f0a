package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/reclaim/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage reclaim settings",
	Long: `View and configure the upload location, active builder integrations and
pipeline options.

Use subcommands to change a single key or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a single setting",
	Long: `Sets one setting by key. Lists are comma-separated, e.g.

  reclaim settings set integrations.active elementor,brizy`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	RunE:  runSettingsKeys,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure the upload location and integrations.`,
	RunE:  runSettingsWizard,
}

// knownIntegrations are offered by the wizard.
var knownIntegrations = []string{
	domain.IntegrationElementor,
	domain.IntegrationThrive,
	domain.IntegrationBrizy,
	domain.IntegrationBrizyPro,
	domain.IntegrationDivi,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsMissing
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Uploads]")
	cmd.Printf("  Base URL: %s\n", orUnset(settings.UploadBaseURL))
	cmd.Printf("  Directory segment: %s\n", settings.UploadDirSegment)
	cmd.Println()

	cmd.Println("[Integrations]")
	cmd.Printf("  Active: %s\n", orUnset(strings.Join(settings.ActiveIntegrations, ", ")))
	cmd.Printf("  Theme: %s\n", orUnset(settings.Theme))
	cmd.Println()

	cmd.Println("[Reclaim]")
	cmd.Printf("  Detect payloads: %s\n", yesNo(settings.DetectPayloads))
	cmd.Printf("  Dry run: %s\n", yesNo(settings.DryRun))
	cmd.Printf("  Resolver cache size: %d\n", settings.ResolverCacheSize)
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Data directory: %s\n", orUnset(settings.DataDir))
	cmd.Println()

	if settings.UploadBaseURL == "" {
		cmd.Println("Warning: uploads.base_url is not set; media URLs cannot be resolved.")
		cmd.Println("Run 'reclaim settings wizard' to configure it.")
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsMissing
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsMissing
	}
	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsMissing
	}

	settings, err := settingsService.Get()
	if err != nil {
		defaults := settingsService.GetDefaults()
		settings = &defaults
	}

	cmd.Println("Reclaim Settings Wizard")
	cmd.Println("=======================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Step 1: Upload location")
	cmd.Println("-----------------------")
	cmd.Printf("Enter upload base URL [%s]: ", settings.UploadBaseURL)
	if input := readLine(reader); input != "" {
		settings.UploadBaseURL = input
	}
	cmd.Println()

	cmd.Println("Step 2: Builder integrations")
	cmd.Println("----------------------------")
	for i, name := range knownIntegrations {
		mark := " "
		if contains(settings.ActiveIntegrations, name) {
			mark = "x"
		}
		cmd.Printf("  %d. [%s] %s\n", i+1, mark, name)
	}
	cmd.Print("\nEnter the numbers to enable, comma-separated [keep]: ")
	if input := readLine(reader); input != "" {
		settings.ActiveIntegrations = parseSelection(input, knownIntegrations)
	}
	cmd.Println()

	cmd.Println("Step 3: Theme")
	cmd.Println("-------------")
	cmd.Printf("Enter active theme name [%s]: ", settings.Theme)
	if input := readLine(reader); input != "" {
		settings.Theme = input
	}
	cmd.Println()

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	cmd.Println("All settings are valid and saved.")
	return nil
}

// parseSelection maps 1-based choices to options, ignoring invalid entries.
func parseSelection(input string, options []string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		idx := parseChoice(strings.TrimSpace(part), len(options), 0)
		if idx == 0 || contains(out, options[idx-1]) {
			continue
		}
		out = append(out, options[idx-1])
	}
	return out
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
