// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/tensorprep/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Tensorprep MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store contract.RunStore) *server.MCPServer {
	s := server.NewMCPServer(
		"Tensorprep Dataset Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		store:   store,
	}

	// --- 1. Tool: prepare_dataset ---
	s.AddTool(mcp.NewTool("prepare_dataset",
		mcp.WithDescription("Run the full preparation pipeline: extract labeled sensor observations, split by subject, window to a uniform pad size and export Parquet tensors."),
		mcp.WithString("data_dir", mcp.Description("Path to the raw dataset directory (defaults to the configured data directory).")),
		mcp.WithString("activities", mcp.Description("Comma-separated activity id allow-list, e.g. '1,2,3,4,5,6'.")),
		mcp.WithNumber("percentile", mcp.Description("Length percentile for pad sizing in (0, 1]. Defaults to 0.98.")),
		mcp.WithNumber("train_fraction", mcp.Description("Fraction of subjects assigned to the training split in (0, 1). Defaults to 0.7.")),
		mcp.WithNumber("seed", mcp.Description("Seed for the deterministic subject shuffle.")),
		mcp.WithString("truncate_from", mcp.Description("Which side to drop when an observation exceeds the pad size."), mcp.Enum("head", "tail")),
	), h.handlePrepareDataset)

	// --- 2. Tool: get_lengths ---
	s.AddTool(mcp.NewTool("get_lengths",
		mcp.WithDescription("Report the observation length distribution per activity (count, min, median, percentile, max, mean)."),
		mcp.WithString("data_dir", mcp.Description("Path to the raw dataset directory.")),
		mcp.WithString("activities", mcp.Description("Comma-separated activity id allow-list.")),
		mcp.WithNumber("percentile", mcp.Description("Length percentile to report in (0, 1].")),
	), h.handleGetLengths)

	// --- 3. Tool: check_dataset ---
	s.AddTool(mcp.NewTool("check_dataset",
		mcp.WithDescription("Validate dataset integrity and report every violation: malformed labels, missing or misaligned signal files, out-of-range intervals, unknown activities."),
		mcp.WithString("data_dir", mcp.Description("Path to the raw dataset directory.")),
	), h.handleCheckDataset)

	// --- 4. Tool: list_runs ---
	s.AddTool(mcp.NewTool("list_runs",
		mcp.WithDescription("List recent preparation runs recorded in the run store, newest first."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of runs to return.")),
	), h.handleListRuns)

	return s
}

// StartMCPServer starts the Tensorprep MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store contract.RunStore) error {
	s := NewMCPServer(baseCfg, store)
	return server.ServeStdio(s)
}
