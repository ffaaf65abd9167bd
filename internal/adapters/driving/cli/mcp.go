package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/h3x49r4m/peta-search/internal/adapters/driving/mcp"
	"github.com/h3x49r4m/peta-search/internal/logger"
)

var (
	mcpIndexPath string
	mcpHTTPAddr  string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the search index over the Model Context Protocol",
	Long: `Mcp exposes the search index to MCP clients. By default the
server speaks stdio for direct assistant integration; --http serves the
streamable HTTP transport instead.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		engine, err := loadEngine(cmd, mcpIndexPath)
		if err != nil {
			return err
		}

		server, err := mcp.NewServer(&mcp.Ports{Query: engine})
		if err != nil {
			return err
		}

		if mcpHTTPAddr != "" {
			logger.Info("MCP server listening on %s", mcpHTTPAddr)
			return server.RunHTTP(ctx, mcpHTTPAddr)
		}
		return server.Run(ctx)
	},
}

func init() {
	mcpCmd.Flags().StringVar(&mcpIndexPath, "index", "search-index.json", "artifact path")
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "serve MCP over HTTP on this address instead of stdio")
	rootCmd.AddCommand(mcpCmd)
}
