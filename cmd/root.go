// Package cmd contains the jiragate command-line interface.
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// version is set during build time via ldflags; "dev" for local builds.
var version = "dev"

var logLevel string

// configureLogger sets up the global zerolog logger based on the
// --log-level flag. Logs go to stderr: stdout may carry the MCP stdio
// stream and must stay clean.
func configureLogger(levelStr string) error {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	level, err := zerolog.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		log.Warn().Msgf("Invalid log level '%s', defaulting to 'info'", levelStr)
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Debug().Msgf("Log level set to '%s'", level.String())
	return nil
}

var rootCmd = &cobra.Command{
	Use:   "jiragate",
	Short: "Jira tool-dispatch gateway speaking the Model Context Protocol",
	Long: `jiragate exposes Jira operations (issue CRUD, JQL search, sprint
planning, scrum reports) as a catalog of schema-described tools behind an
MCP server, so a language-model agent can drive Jira through a fixed tool
set instead of raw HTTP calls.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Println(version)
			os.Exit(0)
		}
		return configureLogger(logLevel)
	},
}

// Execute runs the root command. Called from main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command execution failed")
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.Flags().BoolP("version", "v", false, "Print version and exit")
}
