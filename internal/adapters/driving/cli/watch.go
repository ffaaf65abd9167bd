package cli

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	contentfile "github.com/h3x49r4m/peta-search/internal/adapters/driven/content/file"
	"github.com/h3x49r4m/peta-search/internal/core/services"
	"github.com/h3x49r4m/peta-search/internal/logger"
)

var (
	watchRecordsPath string
	watchOutPath     string
)

// watchRebuildLimit bounds rebuild frequency. Editors fire bursts of
// write events for one save; at most one rebuild per two seconds keeps
// the artifact fresh without thrashing the index.
var watchRebuildLimit = rate.Every(2 * time.Second)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the artifact whenever the manifest changes",
	Long: `Watch monitors the content manifest and rebuilds the search
artifact on every change. Rebuilds are rate limited so editor save
bursts produce one rebuild. Stop with Ctrl-C.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("creating watcher: %w", err)
		}
		defer watcher.Close()

		// Watch the directory, not the file: atomic saves rename over
		// the manifest, which drops a direct file watch.
		dir := filepath.Dir(watchRecordsPath)
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}

		if err := rebuild(ctx); err != nil {
			return err
		}

		cmd.Printf("Watching %s\n", watchRecordsPath)
		limiter := rate.NewLimiter(watchRebuildLimit, 1)

		for {
			select {
			case <-ctx.Done():
				cmd.Println("Stopped.")
				return nil

			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(event.Name) != filepath.Clean(watchRecordsPath) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}

				if err := limiter.Wait(ctx); err != nil {
					return nil
				}
				drainEvents(watcher.Events)
				if err := rebuild(ctx); err != nil {
					// A broken manifest mid-edit is routine; keep
					// serving the previous artifact and keep watching.
					logger.Warn("Rebuild failed: %v", err)
					continue
				}
				cmd.Println("Artifact rebuilt.")

			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				logger.Warn("Watcher error: %v", err)
			}
		}
	},
}

// drainEvents discards events buffered while a rebuild was pending, so
// a burst of write events collapses into the single rebuild that
// follows it.
func drainEvents(events <-chan fsnotify.Event) {
	for {
		select {
		case <-events:
		default:
			return
		}
	}
}

// rebuild runs one full build-and-save cycle.
func rebuild(ctx context.Context) error {
	cfg, tok := loadSettings()

	records, err := contentfile.NewSource(watchRecordsPath).Records(ctx)
	if err != nil {
		return err
	}

	builder := services.NewIndexBuilder(cfg, tok)
	artifact, report, err := builder.Build(ctx, records)
	if err != nil {
		return err
	}

	store, err := openArtifactStore(watchOutPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Save(ctx, artifact); err != nil {
		return err
	}

	logger.Info("Rebuild %s: %d documents", report.BuildID, report.Indexed)
	return nil
}

func init() {
	watchCmd.Flags().StringVar(&watchRecordsPath, "records", "", "path to the content manifest (required)")
	watchCmd.Flags().StringVar(&watchOutPath, "out", "search-index.json", "artifact output path")
	if err := watchCmd.MarkFlagRequired("records"); err != nil {
		panic(fmt.Sprintf("marking records flag required: %v", err))
	}
	rootCmd.AddCommand(watchCmd)
}
