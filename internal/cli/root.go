// Package cli wires the cobra commands. Commands are thin glue: they load
// config, build the loop's collaborators, and print results.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"adprompt/internal/ai"
	"adprompt/internal/config"
	"adprompt/internal/critique"
	"adprompt/internal/generation"
	"adprompt/internal/media"
	"adprompt/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "adprompt",
	Short: "Generate short brand videos and critique them until they pass",
	Long: "adprompt turns a brand/campaign brief into a short marketing video, " +
		"scores it along independent quality dimensions with specialist critique " +
		"agents, and regenerates with feedback until it passes or the retry " +
		"budget runs out.",
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app bundles everything a command needs after bootstrapping.
type app struct {
	cfg          *config.Config
	logger       *zap.Logger
	orchestrator *generation.Orchestrator
	sampler      *media.Sampler
	pool         *critique.Pool
	store        *store.Store
}

// bootstrap builds the full dependency graph from the environment.
func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}

	client, err := ai.NewClient(ctx, cfg.VeoAPIKey)
	if err != nil {
		return nil, err
	}

	generator := ai.NewVeoClient(client, cfg.VeoAPIKey, cfg.VideoModel, cfg.UploadDir, cfg.PollInterval, logger)
	critic := ai.NewGeminiCritic(client, cfg.CritiqueModel, logger)
	pool := critique.NewPool(critic, logger)
	sampler := media.NewSampler(cfg.TempDir)

	attempts, err := store.Open(cfg.DBPath, logger)
	if err != nil {
		return nil, err
	}

	orchestrator := generation.New(generator, sampler, pool, attempts, generation.Options{
		DefaultRegenLimit: cfg.DefaultRegenLimit,
		ScoreThreshold:    cfg.ScoreThreshold,
		FrameSampleCount:  cfg.FrameSampleCount,
	}, logger)

	return &app{
		cfg:          cfg,
		logger:       logger,
		orchestrator: orchestrator,
		sampler:      sampler,
		pool:         pool,
		store:        attempts,
	}, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
