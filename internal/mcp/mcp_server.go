// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/quarkw/constfit/internal/contract"
)

// NewMCPServer initializes and configures the constfit MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Constfit Evaluation Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
	}

	// --- 1. Tool: evaluate_expression ---
	s.AddTool(mcp.NewTool("evaluate_expression",
		mcp.WithDescription("Evaluate a mathematical expression against a target constant at high precision and score its quality."),
		mcp.WithString("expression", mcp.Description("The expression to evaluate, e.g. '355/113' or 'exp(pi*sqrt(163))'."), mcp.Required()),
		mcp.WithString("target", mcp.Description("The target value as a decimal string, or the name of a built-in constant (pi, e, phi, ...)."), mcp.Required()),
		mcp.WithString("target_name", mcp.Description("Optional label for the target constant.")),
		mcp.WithNumber("precision", mcp.Description("Significant decimal digits to report (10-90). Defaults to the configured precision.")),
	), h.handleEvaluateExpression)

	// --- 2. Tool: evaluate_batch ---
	s.AddTool(mcp.NewTool("evaluate_batch",
		mcp.WithDescription("Evaluate a batch of candidate expressions and return them ranked best-first with per-item errors."),
		mcp.WithString("items", mcp.Description("JSON array of items, each with 'expression' and 'target' fields."), mcp.Required()),
		mcp.WithNumber("limit", mcp.Description("Limit the number of ranked results returned.")),
		mcp.WithNumber("precision", mcp.Description("Significant decimal digits to report (10-90).")),
	), h.handleEvaluateBatch)

	// --- 3. Tool: list_constants ---
	s.AddTool(mcp.NewTool("list_constants",
		mcp.WithDescription("List the built-in high-precision mathematical constants with their aliases."),
	), h.handleListConstants)

	return s
}

// StartMCPServer starts the constfit MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
