package cli

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/h3x49r4m/peta-search/internal/core/domain"
)

var (
	searchIndexPath string
	searchLimit     int
	searchTypes     []string
	searchTags      []string
	searchJSON      bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Query the search artifact",
	Long: `Search loads the artifact and runs a ranked query against it.
Without a query, --type and --tag filters browse the index ranked by
recency. Results are capped at 20 regardless of --limit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) > 0 {
			query = args[0]
		}

		engine, err := loadEngine(cmd, searchIndexPath)
		if err != nil {
			return err
		}

		opts := domain.QueryOptions{
			Limit:        searchLimit,
			ContentTypes: searchTypes,
			Tags:         searchTags,
			Now:          queryNow(),
		}

		results, err := engine.Search(cmd.Context(), query, opts)
		if isNoQuery(err) {
			cmd.Println("Nothing to search for: supply a query, --type, or --tag.")
			return nil
		}
		if err != nil {
			return err
		}

		if searchJSON {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(results)
		}

		if len(results) == 0 {
			cmd.Println("No results found.")
			return nil
		}

		for i, res := range results {
			cmd.Printf("%2d. %s (%s, score %d)\n", i+1, res.Document.Title, res.Document.URL, res.Score)
			if len(res.Document.Tags) > 0 {
				cmd.Printf("    %s · %s\n", res.Document.ContentType, strings.Join(res.Document.Tags, ", "))
			} else {
				cmd.Printf("    %s\n", res.Document.ContentType)
			}
			for _, h := range res.Highlights {
				if h.Field == domain.HighlightExcerpt {
					cmd.Printf("    %s\n", h.Snippet)
					break
				}
			}
		}

		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show artifact metadata",
	RunE: func(cmd *cobra.Command, _ []string) error {
		engine, err := loadEngine(cmd, searchIndexPath)
		if err != nil {
			return err
		}

		meta, err := engine.Stats()
		if err != nil {
			return err
		}

		cmd.Printf("Version:           %s\n", meta.Version)
		cmd.Printf("Built:             %s\n", meta.BuildTimestamp.Format("2006-01-02 15:04:05 MST"))
		cmd.Printf("Documents:         %d\n", meta.TotalDocuments)
		cmd.Printf("Terms:             %d\n", meta.TotalTerms)
		cmd.Printf("Avg doc length:    %.1f tokens\n", meta.AvgDocumentLength)
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchIndexPath, "index", "search-index.json", "artifact path")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "maximum results (capped at 20)")
	searchCmd.Flags().StringSliceVar(&searchTypes, "type", nil, "filter by content type (repeatable, OR'd)")
	searchCmd.Flags().StringSliceVar(&searchTags, "tag", nil, "filter by tag (repeatable, OR'd)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "emit results as JSON")

	statsCmd.Flags().StringVar(&searchIndexPath, "index", "search-index.json", "artifact path")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(statsCmd)
}
