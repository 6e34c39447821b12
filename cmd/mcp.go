package cmd

import (
	"context"

	"github.com/huangsam/tensorprep/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Tensorprep MCP server",
	Long:  `Launch an MCP server that allows AI agents to prepare, inspect and validate sensor datasets via standard tools.`,
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(context.Background(), cfg, runStore)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
