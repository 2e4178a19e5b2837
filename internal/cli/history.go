package cli

import (
	"github.com/spf13/cobra"
)

var historyCampaign string

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "history",
		Short:   "Show the persisted attempt trail for a campaign",
		Example: `  adprompt history --campaign 4f1c...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.logger.Sync()

			records, err := a.store.ListByCampaign(historyCampaign)
			if err != nil {
				return err
			}
			return printJSON(cmd, records)
		},
	}

	cmd.Flags().StringVar(&historyCampaign, "campaign", "", "Campaign id (required)")
	_ = cmd.MarkFlagRequired("campaign")
	return cmd
}

func init() { rootCmd.AddCommand(newHistoryCmd()) }
