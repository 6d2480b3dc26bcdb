package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/shieldstats/shieldstats/core"
	"github.com/shieldstats/shieldstats/internal/contract"
	"github.com/shieldstats/shieldstats/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	loader  contract.Loader
}

// seriesPayload is the get_series result: the points with their hover text.
type seriesPayload struct {
	DataURL string                 `json:"dataUrl"`
	Params  schema.AggregateParams `json:"params"`
	Samples int                    `json:"samples"`
	Kind    schema.ChartKind       `json:"kind"`
	Points  []schema.EnrichedPoint `json:"points"`
}

func (h *toolHandler) handleGetSeries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if u := request.GetString("data_url", ""); u != "" {
		if err := contract.ValidateDataURL(u); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		cfg.DataURL = u
	}

	params, err := contract.ParseParams(
		request.GetString("pool", string(cfg.Params.Pool)),
		request.GetBool("cumulative", cfg.Params.Mode != schema.PeriodicMode),
		request.GetBool("filter", cfg.Params.ShowFiltered),
	)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid series parameters: %v", err)), nil
	}
	cfg.Params = params

	result, err := core.GetSeriesResult(core.WithSuppressHeader(ctx), cfg, h.loader)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("series failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(seriesPayload{
		DataURL: result.DataURL,
		Params:  result.Params,
		Samples: result.Samples,
		Kind:    result.Chart.Kind,
		Points:  schema.EnrichPoints(result.Points, result.Chart.Series, cfg.Precision),
	}, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleBuildDonationURI(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	view, err := core.BuildDonation(h.baseCfg, request.GetFloat("amount", 0), request.GetString("memo", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid donation: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(view, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
