package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/tensorprep/core"
	"github.com/huangsam/tensorprep/internal/contract"
	"github.com/huangsam/tensorprep/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	store   contract.RunStore
}

// applyCommonOverrides maps shared request parameters onto a cloned config.
func (h *toolHandler) applyCommonOverrides(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if d := request.GetString("data_dir", ""); d != "" {
		cfg.DataDir = d
	}
	if a := request.GetString("activities", ""); a != "" {
		if err := contract.RevalidateActivities(cfg, a); err != nil {
			return nil, err
		}
	}
	if p := request.GetFloat("percentile", 0); p > 0 {
		if p > 1 {
			return nil, fmt.Errorf("percentile must be in (0, 1], got %g", p)
		}
		cfg.Percentile = p
	}
	return cfg, nil
}

func (h *toolHandler) handlePrepareDataset(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.applyCommonOverrides(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if f := request.GetFloat("train_fraction", 0); f > 0 {
		if f >= 1 {
			return mcp.NewToolResultError(fmt.Sprintf("train_fraction must be in (0, 1), got %g", f)), nil
		}
		cfg.TrainFraction = f
	}
	if s := request.GetInt("seed", 0); s != 0 {
		cfg.Seed = int64(s)
	}
	if t := request.GetString("truncate_from", ""); t != "" {
		side := schema.TruncateSide(t)
		if _, ok := schema.ValidTruncateSides[side]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid truncate_from '%s'", t)), nil
		}
		cfg.TruncateFrom = side
	}

	summary, err := core.GetPrepareResults(cfg, h.store)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("preparation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(summary, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetLengths(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.applyCommonOverrides(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	stats, _, err := core.GetLengthResults(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("length analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(stats, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCheckDataset(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if d := request.GetString("data_dir", ""); d != "" {
		cfg.DataDir = d
	}

	result, err := core.GetCheckResults(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("check failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListRuns(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.store == nil {
		return mcp.NewToolResultError("run tracking is disabled"), nil
	}
	limit := request.GetInt("limit", contract.DefaultRunsLimit)
	if limit > contract.MaxRunsLimit {
		limit = contract.MaxRunsLimit
	}

	records, err := h.store.ListRuns(limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing runs failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(records, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
