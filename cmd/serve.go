package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jiragate/jiragate/internal/config"
	"github.com/jiragate/jiragate/internal/dispatch"
	"github.com/jiragate/jiragate/internal/jira"
	"github.com/jiragate/jiragate/internal/mcpserver"
	"github.com/jiragate/jiragate/internal/tools"
)

var httpAddr string

// buildDispatcher wires the full gateway from configuration: tracker
// client, project links, tool catalog.
func buildDispatcher() (*dispatch.Dispatcher, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	links, err := config.LoadLinks()
	if err != nil {
		return nil, err
	}

	client, err := jira.NewHTTPClient(cfg.BaseURL, cfg.Email, cfg.APIToken, jira.Options{
		Timeout:       cfg.RequestTimeout,
		MaxResults:    cfg.MaxResults,
		StoryPointsID: cfg.StoryPointsField,
	})
	if err != nil {
		return nil, fmt.Errorf("building tracker client: %w", err)
	}

	d := dispatch.NewDispatcher()
	if err := tools.Register(d, tools.Deps{
		Client:         client,
		Links:          links,
		DefaultBoardID: cfg.DefaultBoardID,
	}); err != nil {
		return nil, fmt.Errorf("registering tool catalog: %w", err)
	}
	return d, nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server (stdio by default)",
	Long: `Starts the gateway. Without flags it speaks MCP over stdio, the
transport MCP clients spawn subprocesses with. With --http it serves the
streamable HTTP transport instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDispatcher()
		if err != nil {
			return err
		}
		srv := mcpserver.New(d, version)
		if httpAddr != "" {
			return srv.ServeHTTP(httpAddr)
		}
		log.Info().Msg("Starting jiragate on stdio")
		return srv.ServeStdio()
	},
}

func init() {
	serveCmd.Flags().StringVar(&httpAddr, "http", "", "Serve streamable HTTP on this address instead of stdio (e.g. :8080)")
	rootCmd.AddCommand(serveCmd)
}
