// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/shieldstats/shieldstats/internal/contract"
)

// NewMCPServer initializes and configures the shieldstats MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, loader contract.Loader) *server.MCPServer {
	s := server.NewMCPServer(
		"Shielded Activity Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		loader:  loader,
	}

	// --- 1. Tool: get_series ---
	s.AddTool(mcp.NewTool("get_series",
		mcp.WithDescription("Aggregate shielded pool volume by block height, as cumulative totals or per-4-week buckets."),
		mcp.WithString("data_url", mcp.Description("URL of the JSON sample array (defaults to the configured data url).")),
		mcp.WithString("pool", mcp.Description("Pools to include. Defaults to 'default' (both)."), mcp.Enum("default", "orchard", "sapling")),
		mcp.WithBoolean("cumulative", mcp.Description("Cumulative totals (true) or per-period buckets (false). Defaults to true.")),
		mcp.WithBoolean("filter", mcp.Description("Also return the filtered series.")),
	), h.handleGetSeries)

	// --- 2. Tool: build_donation_uri ---
	s.AddTool(mcp.NewTool("build_donation_uri",
		mcp.WithDescription("Build a zcash: payment URI for the configured donation address."),
		mcp.WithNumber("amount", mcp.Description("Amount in ZEC. Zero or missing leaves the amount to the wallet.")),
		mcp.WithString("memo", mcp.Description("Optional memo, at most 512 bytes. Not allowed for transparent addresses.")),
	), h.handleBuildDonationURI)

	return s
}

// StartMCPServer starts the shieldstats MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, loader contract.Loader) error {
	s := NewMCPServer(baseCfg, loader)
	return server.ServeStdio(s)
}
