package cmd

import (
	"github.com/spf13/cobra"

	"github.com/quarkw/constfit/internal/contract"
	"github.com/quarkw/constfit/internal/mcp"
)

// mcpCmd runs the MCP server on stdio.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol server on stdio.",
	Long: `Serve the evaluation engine to MCP clients over stdio.

Tools:
  evaluate_expression - evaluate one expression against a target
  evaluate_batch      - evaluate and rank a batch of expressions
  list_constants      - the built-in constant table

Point an MCP-capable client at 'constfit mcp' to use them.`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := mcp.StartMCPServer(rootCtx, cfg); err != nil {
			contract.LogFatal("MCP server failed", err)
		}
	},
}
