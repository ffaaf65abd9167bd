package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	contentfile "github.com/h3x49r4m/peta-search/internal/adapters/driven/content/file"
	"github.com/h3x49r4m/peta-search/internal/core/services"
	"github.com/h3x49r4m/peta-search/internal/logger"
)

var (
	buildRecordsPath string
	buildOutPath     string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the search artifact from a content manifest",
	Long: `Build reads the content manifest produced by the site pipeline,
indexes every record, and writes the search artifact. Malformed records
are skipped and reported by id; too many skips fail the build.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, tok := loadSettings()

		source := contentfile.NewSource(buildRecordsPath)
		records, err := source.Records(cmd.Context())
		if err != nil {
			return err
		}

		builder := services.NewIndexBuilder(cfg, tok)
		artifact, report, err := builder.Build(cmd.Context(), records)
		if err != nil {
			return err
		}

		store, err := openArtifactStore(buildOutPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Save(cmd.Context(), artifact); err != nil {
			return err
		}

		cmd.Printf("Indexed %d documents (%d terms) in %s\n",
			report.Indexed, artifact.Metadata.TotalTerms, report.Duration)
		for _, skip := range report.Skipped {
			cmd.Printf("  skipped: %v\n", skip)
		}
		if len(report.Skipped) > 0 {
			logger.Warn("Build %s skipped %d records", report.BuildID, len(report.Skipped))
		}
		cmd.Printf("Artifact written to %s\n", store.Path())

		return nil
	},
}

func init() {
	buildCmd.Flags().StringVar(&buildRecordsPath, "records", "", "path to the content manifest (required)")
	buildCmd.Flags().StringVar(&buildOutPath, "out", "search-index.json", "artifact output path (.db/.sqlite selects the SQLite store)")
	if err := buildCmd.MarkFlagRequired("records"); err != nil {
		panic(fmt.Sprintf("marking records flag required: %v", err))
	}
	rootCmd.AddCommand(buildCmd)
}
