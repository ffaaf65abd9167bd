// Package cli provides the command-line interface for Peta search.
// Commands are thin glue: they wire adapters to core services and
// format output. All search and indexing logic lives in the core.
package cli

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	configfile "github.com/h3x49r4m/peta-search/internal/adapters/driven/config/file"
	storagefile "github.com/h3x49r4m/peta-search/internal/adapters/driven/storage/file"
	"github.com/h3x49r4m/peta-search/internal/adapters/driven/storage/sqlite"
	"github.com/h3x49r4m/peta-search/internal/core/domain"
	"github.com/h3x49r4m/peta-search/internal/core/ports/driven"
	"github.com/h3x49r4m/peta-search/internal/core/services"
	"github.com/h3x49r4m/peta-search/internal/logger"
	"github.com/h3x49r4m/peta-search/internal/tokenizer"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "peta-search",
	Short: "Build and query the Peta site search index",
	Long: `peta-search builds the search index artifact for a Peta site and
answers ranked queries against it. The index is built once per site
build from the content manifest; queries load the artifact and score
documents with fixed field weights.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.peta)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadSettings resolves build tunables and the tokenizer from the
// config store. A missing or unreadable config falls back to defaults;
// configuration is an override mechanism, never a prerequisite.
func loadSettings() (services.BuildConfig, *tokenizer.Tokenizer) {
	cfg := services.DefaultBuildConfig()
	tok := tokenizer.New()

	store, err := configfile.NewConfigStore(configDir)
	if err != nil {
		logger.Warn("Config unavailable, using defaults: %v", err)
		return cfg, tok
	}

	if v := store.GetInt(configfile.KeyWordsPerMinute); v > 0 {
		cfg.WordsPerMinute = v
	}
	if v := store.GetInt(configfile.KeyMaxContentBytes); v > 0 {
		cfg.MaxContentBytes = v
	}
	if v := store.GetInt(configfile.KeyFailureThreshold); v > 0 {
		cfg.FailureThreshold = v
	}
	if p := store.GetString(configfile.KeyPunctuation); p != "" {
		tok = tokenizer.NewWithPunctuation(p)
	}

	return cfg, tok
}

// openArtifactStore picks a store implementation from the path
// extension: .db and .sqlite open the SQLite store, anything else the
// JSON file store.
func openArtifactStore(path string) (driven.ArtifactStore, error) {
	if strings.HasSuffix(path, ".db") || strings.HasSuffix(path, ".sqlite") {
		return sqlite.NewStore(path)
	}
	return storagefile.NewArtifactStore(path), nil
}

// loadEngine loads the artifact at path into a fresh query engine.
func loadEngine(cmd *cobra.Command, path string) (*services.QueryEngine, error) {
	store, err := openArtifactStore(path)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	artifact, err := store.Load(cmd.Context())
	if err != nil {
		return nil, err
	}

	_, tok := loadSettings()
	engine := services.NewQueryEngine(tok)
	if err := engine.Load(artifact); err != nil {
		return nil, err
	}

	return engine, nil
}

// isNoQuery reports whether err is the empty-query precondition notice.
func isNoQuery(err error) bool {
	return errors.Is(err, domain.ErrNoQuery)
}

// queryNow supplies the recency-scoring instant at the CLI boundary;
// the core never reads a clock itself.
func queryNow() time.Time {
	return time.Now()
}
