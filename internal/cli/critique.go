package cli

import (
	"github.com/spf13/cobra"

	"adprompt/internal/config"
	"adprompt/internal/critique"
	"adprompt/internal/prompt"
	"adprompt/internal/score"
)

var (
	critiqueBrief    string
	critiqueVideo    string
	critiqueExtended bool
)

func newCritiqueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "critique",
		Short:   "Score an existing video against a brief without regenerating",
		Example: `  adprompt critique --brief briefs/glowly.json --video out/ad.mp4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer a.logger.Sync()

			brief, err := config.LoadBrief(critiqueBrief)
			if err != nil {
				return err
			}

			frames, cleanup, err := a.sampler.ExtractFrames(ctx, critiqueVideo, a.cfg.FrameSampleCount)
			if err != nil {
				return err
			}
			defer cleanup()

			labels := make([]string, len(frames))
			for i := range frames {
				labels[i] = frames[i].Path
			}

			specialists := critique.DefaultSpecialists()
			if critiqueExtended {
				specialists = critique.ExtendedSpecialists()
			}

			responses, err := a.pool.Evaluate(ctx, specialists, frames, prompt.CritiqueContext{
				BrandName:         brief.Brand.Name,
				BrandTone:         brief.Brand.ToneDescription,
				TargetAudience:    brief.Campaign.Audience,
				CallToAction:      brief.Campaign.CallToAction,
				ProhibitedPhrases: brief.Brand.ProhibitedPhrases,
				DerivedPaletteHex: brief.Brand.DerivedPaletteHex,
				ScoreThreshold:    a.cfg.ScoreThreshold,
				FrameLabels:       labels,
				Caption:           brief.Caption,
			})
			if err != nil {
				return err
			}

			card, err := score.Aggregate(responses, a.cfg.ScoreThreshold, critiqueVideo, 1)
			if err != nil {
				return err
			}
			return printJSON(cmd, card)
		},
	}

	cmd.Flags().StringVar(&critiqueBrief, "brief", "", "Path to the JSON brief file (required)")
	cmd.Flags().StringVar(&critiqueVideo, "video", "", "Path to the video to score (required)")
	cmd.Flags().BoolVar(&critiqueExtended, "extended", false, "Also run TextAccuracy and ProductPresence agents")
	_ = cmd.MarkFlagRequired("brief")
	_ = cmd.MarkFlagRequired("video")
	return cmd
}

func init() { rootCmd.AddCommand(newCritiqueCmd()) }
