// Package cli provides the reclaim command-line interface.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/reclaim/internal/core/ports/driving"
	"github.com/custodia-labs/reclaim/internal/logger"
)

var version = "dev"

// Services are the driving ports the commands operate on.
type Services struct {
	Reclaimer driving.Reclaimer
	Settings  driving.SettingsService
	History   driving.EventHistory
	Importer  driving.Importer
}

// Options carry the global flags needed to build services.
type Options struct {
	ConfigDir string
	DataDir   string
}

// BootstrapFunc builds the services for a command run.
// The returned cleanup function is called once the command has finished.
type BootstrapFunc func(opts Options) (*Services, func(), error)

var (
	reclaimer       driving.Reclaimer
	settingsService driving.SettingsService
	eventHistory    driving.EventHistory
	importer        driving.Importer

	bootstrap BootstrapFunc
	cleanup   func()

	verbose      bool
	printMetrics bool
	configDir    string
	dataDir      string
)

// skipBootstrap marks commands that never touch the services.
const skipBootstrap = "skip-bootstrap"

var rootCmd = &cobra.Command{
	Use:   "reclaim",
	Short: "Garbage-collect the media of deleted content",
	Long: `Reclaim finds every media file a content record references, across the
standard attachment relation and the supported page-builder encodings, and
deletes or re-homes each one when the record is deleted.

Media still used by another record are never deleted.`,
	SilenceUsage:       true,
	PersistentPreRunE:  preRun,
	PersistentPostRunE: postRun,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&printMetrics, "metrics", false, "print pipeline metrics after the command")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.reclaim)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "content store directory (overrides storage.data_dir)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap installs the function that builds services on demand.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// Configure injects services directly, bypassing bootstrap.
func Configure(s *Services) {
	if s == nil {
		s = &Services{}
	}
	reclaimer = s.Reclaimer
	settingsService = s.Settings
	eventHistory = s.History
	importer = s.Importer
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func preRun(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if bootstrap == nil || cmd.Annotations[skipBootstrap] == "true" {
		return nil
	}
	services, done, err := bootstrap(Options{ConfigDir: configDir, DataDir: dataDir})
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	Configure(services)
	cleanup = done
	return nil
}

func postRun(cmd *cobra.Command, _ []string) error {
	if cleanup != nil {
		cleanup()
		cleanup = nil
	}
	if !printMetrics {
		return nil
	}
	return writeMetrics(cmd.OutOrStdout())
}

var (
	errReclaimerMissing = errors.New("reclaim service not configured")
	errSettingsMissing  = errors.New("settings service not configured")
	errHistoryMissing   = errors.New("history service not configured")
	errImporterMissing  = errors.New("import service not configured")
)
