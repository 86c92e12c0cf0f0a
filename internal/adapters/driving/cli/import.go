package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/reclaim/internal/logger"
)

var importWatch bool

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Load records and media from a JSON export",
	Long: `Seeds the content store from a JSON export with "records" and "media" lists.
Use "-" to read the export from standard input.

With --watch the file is imported again every time it changes, until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVarP(&importWatch, "watch", "w", false, "re-import whenever the file changes")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if importer == nil {
		return errImporterMissing
	}
	path := args[0]

	if path == "-" {
		if importWatch {
			return errors.New("--watch needs a file, not standard input")
		}
		return importFrom(cmd, cmd.InOrStdin())
	}

	if err := importFile(cmd, path); err != nil {
		return err
	}
	if !importWatch {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	cmd.Printf("Watching %s for changes (Ctrl+C to stop)...\n", path)
	return watchExport(ctx, path, func() {
		if err := importFile(cmd, path); err != nil {
			logger.Warn("re-import of %s failed: %v", path, err)
		}
	})
}

func importFile(cmd *cobra.Command, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening export: %w", err)
	}
	defer f.Close()
	return importFrom(cmd, f)
}

func importFrom(cmd *cobra.Command, r io.Reader) error {
	summary, err := importer.Import(context.Background(), r)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	cmd.Printf("Imported %d records and %d media.\n", summary.Records, summary.Media)
	return nil
}

// watchExport calls reload each time path is written or re-created, until ctx is done.
// The parent directory is watched so editors that replace the file are followed.
func watchExport(ctx context.Context, path string, reload func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if isExportChange(event, path) {
				reload()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watching %s: %v", path, err)
		}
	}
}

func isExportChange(event fsnotify.Event, path string) bool {
	if filepath.Clean(event.Name) != path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create) != 0
}
