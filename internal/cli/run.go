package cli

import (
	"github.com/spf13/cobra"

	"adprompt/internal/config"
	"adprompt/internal/critique"
	"adprompt/internal/generation"
)

var (
	runBrief      string
	runRegenLimit int
	runThreshold  float64
	runExtended   bool
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full generation-critique loop for a brief",
		Example: `  adprompt run --brief briefs/glowly.json
  adprompt run --brief briefs/glowly.json --regen-limit 3 --threshold 0.85 --extended`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer a.logger.Sync()

			brief, err := config.LoadBrief(runBrief)
			if err != nil {
				return err
			}

			req := generation.Request{
				Brand:          &brief.Brand,
				Campaign:       &brief.Campaign,
				Caption:        brief.Caption,
				RegenLimit:     runRegenLimit,
				ScoreThreshold: runThreshold,
			}
			if runExtended {
				req.Specialists = critique.ExtendedSpecialists()
			}

			result, err := a.orchestrator.Run(ctx, req)
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}

	cmd.Flags().StringVar(&runBrief, "brief", "", "Path to the JSON brief file (required)")
	cmd.Flags().IntVar(&runRegenLimit, "regen-limit", 0, "Override the campaign regeneration limit")
	cmd.Flags().Float64Var(&runThreshold, "threshold", 0, "Override the passing score threshold")
	cmd.Flags().BoolVar(&runExtended, "extended", false, "Also run TextAccuracy and ProductPresence agents")
	_ = cmd.MarkFlagRequired("brief")
	return cmd
}

func init() { rootCmd.AddCommand(newRunCmd()) }
