package cmd

import (
	"github.com/shieldstats/shieldstats/internal/loader"
	"github.com/shieldstats/shieldstats/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp [data-url]",
	Short: "Start the shieldstats MCP server",
	Long:  `Launch an MCP server on stdio that lets AI agents query shielded activity series and build donation URIs.`,
	Args:  cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Tool handlers suppress the stderr header themselves; stdio carries the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		cached := loader.NewCachingLoader(loader.NewFromConfig(cfg), cfg.CacheSize, cfg.CacheTTL)
		return mcp.StartMCPServer(rootCtx, cfg, cached)
	},
}
