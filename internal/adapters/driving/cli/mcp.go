package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cookbook/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

The server exposes tools to import and analyse recipes, look up
ingredients and cuisines, and classify a recipe's cuisine. Ingredients
and cuisines are also readable as resources:
  cookbook://ingredients/{name}
  cookbook://cuisines/{name}

By default the server communicates over stdio. Use --port to serve over
HTTP instead.

Examples:
  # Stdio mode (default)
  cookbook mcp serve

  # HTTP mode
  cookbook mcp serve --port 8081`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &mcp.Ports{
		Recipes:    recipeService,
		Analyzer:   analyzerService,
		References: referenceService,
		Cuisines:   cuisineService,
	}
	if ports.Validate() != nil {
		return requireService("recipe services", false)
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
