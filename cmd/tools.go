package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jiragate/jiragate/internal/dispatch"
	"github.com/jiragate/jiragate/internal/tools"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Print the tool catalog as JSON",
	Long: `Prints every tool the gateway publishes, with its description and
input schema, in registration order. Useful for checking what an MCP client
will discover without starting a server or configuring credentials.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Listing never invokes a handler, so no tracker client is needed.
		d := dispatch.NewDispatcher()
		if err := tools.Register(d, tools.Deps{}); err != nil {
			return err
		}

		type entry struct {
			Name        string          `json:"name"`
			Description string          `json:"description"`
			InputSchema json.RawMessage `json:"inputSchema"`
		}
		catalog := make([]entry, 0)
		for _, desc := range d.Tools() {
			catalog = append(catalog, entry{
				Name:        desc.Name,
				Description: desc.Description,
				InputSchema: desc.Schema.JSON(),
			})
		}
		out, err := json.MarshalIndent(catalog, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
