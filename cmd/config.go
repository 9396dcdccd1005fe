package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jiragate/jiragate/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage jiragate configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config directory with starter files",
	Long: `Creates the configuration directory and drops commented starter
versions of config.yaml and projects.yaml into it. Existing files are never
overwritten.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := config.WriteDefaultFiles()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration initialized in %s\n", dir)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	Long:  `Loads and prints the effective configuration with the API token redacted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "base_url:           %s\n", cfg.BaseURL)
		fmt.Fprintf(out, "email:              %s\n", cfg.Email)
		fmt.Fprintf(out, "api_token:          %s\n", redact(cfg.APIToken))
		fmt.Fprintf(out, "story_points_field: %s\n", cfg.StoryPointsField)
		fmt.Fprintf(out, "default_board_id:   %d\n", cfg.DefaultBoardID)
		fmt.Fprintf(out, "max_results:        %d\n", cfg.MaxResults)
		fmt.Fprintf(out, "request_timeout:    %s\n", cfg.RequestTimeout)
		return nil
	},
}

var configSetTokenCmd = &cobra.Command{
	Use:   "set-token <token>",
	Short: "Store the tracker API token in the OS keyring",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.StoreAPIToken(args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "API token stored in OS keyring.")
		return nil
	},
}

var configLocateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Print the configuration directory path",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := config.Dir()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), dir)
		return nil
	},
}

// redact keeps just enough of a secret to recognize it.
func redact(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetTokenCmd)
	configCmd.AddCommand(configLocateCmd)
	rootCmd.AddCommand(configCmd)
}
