package cli

import (
	"github.com/spf13/cobra"

	"adprompt/internal/config"
	"adprompt/internal/generation"
)

var generateBrief string

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Short:   "Generate one video without critique",
		Example: `  adprompt generate --brief briefs/glowly.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer a.logger.Sync()

			brief, err := config.LoadBrief(generateBrief)
			if err != nil {
				return err
			}

			attempt, err := a.orchestrator.GenerateOnly(ctx, generation.Request{
				Brand:    &brief.Brand,
				Campaign: &brief.Campaign,
				Caption:  brief.Caption,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, attempt)
		},
	}

	cmd.Flags().StringVar(&generateBrief, "brief", "", "Path to the JSON brief file (required)")
	_ = cmd.MarkFlagRequired("brief")
	return cmd
}

func init() { rootCmd.AddCommand(newGenerateCmd()) }
