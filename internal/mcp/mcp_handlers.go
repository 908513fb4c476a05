package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/quarkw/constfit/core"
	"github.com/quarkw/constfit/core/constants"
	"github.com/quarkw/constfit/internal/contract"
	"github.com/quarkw/constfit/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

func (h *toolHandler) handleEvaluateExpression(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetInt("precision", 0); p > 0 {
		if p < contract.MinPrecisionDigits || p > contract.MaxPrecisionDigits {
			return mcp.NewToolResultError(fmt.Sprintf("precision must be between %d and %d digits",
				contract.MinPrecisionDigits, contract.MaxPrecisionDigits)), nil
		}
		cfg.PrecisionDigits = p
	}

	target := request.GetString("target", "")
	targetName := request.GetString("target_name", "")

	// A target naming a built-in constant resolves to its table value
	if value, ok := constants.Lookup(target); ok {
		if targetName == "" {
			targetName = target
		}
		target = value
	}

	req := &schema.EvaluationRequest{
		Expression:  request.GetString("expression", ""),
		TargetValue: target,
		TargetName:  targetName,
	}

	result, err := core.EvaluateOne(cfg, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("evaluation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleEvaluateBatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetInt("precision", 0); p > 0 {
		if p < contract.MinPrecisionDigits || p > contract.MaxPrecisionDigits {
			return mcp.NewToolResultError(fmt.Sprintf("precision must be between %d and %d digits",
				contract.MinPrecisionDigits, contract.MaxPrecisionDigits)), nil
		}
		cfg.PrecisionDigits = p
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	items, mapErr := contract.MapBatchPayload([]byte(request.GetString("items", "")))
	if mapErr != nil {
		return mcp.NewToolResultError(mapErr.Error()), nil
	}

	batch := core.EvaluateBatch(ctx, cfg, items)
	batch.Ranked = core.RankResults(batch.Ranked, cfg.ResultLimit)

	jsonData, _ := json.MarshalIndent(batch, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListConstants(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonData, _ := json.MarshalIndent(constants.All(), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
