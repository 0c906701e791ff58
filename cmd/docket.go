package cmd

import (
	"github.com/spf13/cobra"
)

var docketPath string

// docketCmd represents the docket command
var docketCmd = &cobra.Command{
	Use:   "docket <docket-id>",
	Short: "Retrieve a docket",
	Long: `Retrieve a docket by its docket ID and print the JSON response.

Use --path to print a single field with a gjson path, e.g. --path title.`,
	Example: `  regfetch docket EPA-HQ-OAR-2011-0028
  regfetch docket EPA-HQ-OAR-2011-0028 --path agency`,
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runDocket,
}

func init() {
	docketCmd.Flags().StringVar(&docketPath, "path", "", "gjson path selecting part of the response")
}

func runDocket(cmd *cobra.Command, args []string) error {
	docketID := args[0]
	logger.Debug().Str("docket_id", docketID).Msg("Retrieving docket")

	docket, err := client.GetDocket(cmd.Context(), docketID)
	if err != nil {
		return err
	}

	return writeJSON(cmd.OutOrStdout(), []byte(docket), docketPath, cfg.Output.Pretty)
}
