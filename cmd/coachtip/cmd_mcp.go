package main

import (
	"github.com/claude/coachtip/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd(a *app) *cobra.Command {
	var remote string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the coaching tools over MCP stdio",
		Long: `Serve the coaching MCP tools (compose_coach_tip, check_injury_conflict,
search_exercises, describe_rpe) on stdin/stdout.

With --remote the catalog and client profiles are read from a running
coachtipd (for example over Tailscale); otherwise the configured catalog
is opened locally.`,
		Example: `  coachtip --db catalog.db mcp
  coachtip mcp --remote http://coachtip.tailnet.ts.net`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var ds mcp.DataSource
			if remote != "" {
				ds = mcp.NewHTTPClient(remote)
				a.log.Info().Str("remote", remote).Msg("using remote catalog")
			} else {
				store, err := a.openStore(cmd.Context())
				if err != nil {
					return err
				}
				defer store.Close()
				ds = store
			}

			srv := mcp.New(ds, Version, a.cfg.Coaching.MaxCues, a.log.With().Str("component", "mcp").Logger())
			return mcpserver.ServeStdio(srv)
		},
	}

	cmd.Flags().StringVar(&remote, "remote", "", "base URL of a coachtipd server")
	return cmd
}
