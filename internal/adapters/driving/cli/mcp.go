package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/claims-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can ask
claim questions, upload policies and read claim statistics.

By default, the server communicates over stdio using JSON-RPC.

Use --port to start an HTTP server instead. In HTTP mode the backend
request metrics are also served at /metrics in Prometheus format.

Examples:
  # Stdio mode (default)
  claims mcp serve

  # HTTP mode (for MCP Inspector, remote access, metrics scraping)
  claims mcp serve --port 8080`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

// mcpPorts builds the MCP ports from the configured services.
func mcpPorts() *mcp.Ports {
	return &mcp.Ports{
		Query:    queryService,
		Upload:   uploadService,
		Document: documentService,
		Insights: insightsService,
	}
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	server, err := mcp.NewServer(mcpPorts())
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		cmd.PrintErrf("MCP server listening on http://localhost%s\n", addr)
		if metricsHandler != nil {
			cmd.PrintErrf("Metrics at http://localhost%s/metrics\n", addr)
		}
		return server.WithMetrics(metricsHandler).RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
