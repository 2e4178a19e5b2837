// Package generation drives the generate → sample → critique → aggregate
// loop until the asset passes or the regeneration limit is exhausted.
package generation

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"adprompt/internal/ai"
	"adprompt/internal/brand"
	"adprompt/internal/critique"
	"adprompt/internal/media"
	"adprompt/internal/prompt"
	"adprompt/internal/score"
	"adprompt/internal/store"
)

// Generator produces one video for one composed prompt.
type Generator interface {
	Generate(ctx context.Context, promptText string, refs []ai.ReferenceAsset) (*ai.GeneratedVideo, error)
}

// Sampler extracts evenly spaced stills from a generated video.
type Sampler interface {
	ExtractFrames(ctx context.Context, videoPath string, count int) ([]media.Frame, media.CleanupFunc, error)
}

// Evaluator fans the configured specialists out against a frame set.
type Evaluator interface {
	Evaluate(ctx context.Context, specialists []critique.Specialist, frames []media.Frame, cctx prompt.CritiqueContext) ([]score.AgentResponse, error)
}

// AttemptStore persists completed attempts.
type AttemptStore interface {
	SaveAttempt(brandKitID, campaignID string, iteration int, card *score.Scorecard, videoPath, caption string) (*store.AttemptRecord, error)
}

// Attempt is one full generate-then-evaluate pass.
type Attempt struct {
	Iteration   int              `json:"iteration"`
	VideoPath   string           `json:"videoPath"`
	OperationID string           `json:"operationId,omitempty"`
	Scorecard   *score.Scorecard `json:"scorecard,omitempty"`
	Passed      bool             `json:"passed"`
}

// Request is the caller-facing input for one run.
type Request struct {
	Brand    *brand.Kit
	Campaign *brand.CampaignBrief
	// Caption is the optional user creative direction.
	Caption string
	// RegenLimit overrides the campaign limit when > 0.
	RegenLimit int
	// ScoreThreshold overrides the configured default when > 0.
	ScoreThreshold float64
	// PreviousScorecard seeds the first prompt's feedback section
	// (continuation mode); iteration numbering still starts at 1.
	PreviousScorecard *score.Scorecard
	// Specialists replaces the default evaluator set when non-nil.
	Specialists []critique.Specialist
}

// RunResult is the outcome plus the complete audit trail.
type RunResult struct {
	Final   *Attempt
	History []*Attempt
}

// Options are the process-wide loop defaults injected at construction.
type Options struct {
	DefaultRegenLimit int
	ScoreThreshold    float64
	FrameSampleCount  int
}

// Orchestrator owns the iteration state machine. Iterations are strictly
// sequential: each prompt depends on the previous scorecard.
type Orchestrator struct {
	generator Generator
	sampler   Sampler
	evaluator Evaluator
	attempts  AttemptStore
	opts      Options
	logger    *zap.Logger
}

// New wires an orchestrator from its collaborators.
func New(generator Generator, sampler Sampler, evaluator Evaluator, attempts AttemptStore, opts Options, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.DefaultRegenLimit <= 0 {
		opts.DefaultRegenLimit = 5
	}
	if opts.ScoreThreshold <= 0 {
		opts.ScoreThreshold = 0.8
	}
	if opts.FrameSampleCount <= 0 {
		opts.FrameSampleCount = 6
	}
	return &Orchestrator{
		generator: generator,
		sampler:   sampler,
		evaluator: evaluator,
		attempts:  attempts,
		opts:      opts,
		logger:    logger,
	}
}

// Run executes the bounded feedback loop. It returns on the first passing
// attempt, or after the regeneration limit with the last attempt as the
// best-effort final result. Exhaustion is not an error; provider, frame,
// critique-shape, and persistence faults are, and propagate unmodified.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*RunResult, error) {
	limit := o.regenLimit(req)
	threshold := o.threshold(req)
	specialists := req.Specialists
	if specialists == nil {
		specialists = critique.DefaultSpecialists()
	}

	cctx := o.critiqueContext(req, threshold)
	refs := referenceAssets(req)

	var history []*Attempt
	previous := req.PreviousScorecard

	for iteration := 1; iteration <= limit; iteration++ {
		o.logger.Info("starting attempt",
			zap.Int("iteration", iteration),
			zap.Int("limit", limit),
			zap.String("campaign", req.Campaign.ID))

		attempt, err := o.runAttempt(ctx, req, iteration, previous, specialists, cctx, refs)
		if err != nil {
			return nil, err
		}
		history = append(history, attempt)

		if attempt.Passed {
			o.logger.Info("attempt passed", zap.Int("iteration", iteration))
			return &RunResult{Final: attempt, History: history}, nil
		}
		previous = attempt.Scorecard
	}

	o.logger.Info("regeneration limit exhausted", zap.Int("limit", limit))
	return &RunResult{Final: history[len(history)-1], History: history}, nil
}

// GenerateOnly is the degenerate one-shot path: compose and generate, no
// critique. Passed is false because no evaluation happened, not because
// the asset failed one.
func (o *Orchestrator) GenerateOnly(ctx context.Context, req Request) (*Attempt, error) {
	text := prompt.BuildGenerationPrompt(prompt.GenerationContext{
		Brand:             req.Brand,
		Campaign:          req.Campaign,
		Iteration:         1,
		PreviousScorecard: req.PreviousScorecard,
		Caption:           req.Caption,
	})

	video, err := o.generator.Generate(ctx, text, referenceAssets(req))
	if err != nil {
		return nil, err
	}
	return &Attempt{
		Iteration:   1,
		VideoPath:   video.VideoPath,
		OperationID: video.OperationID,
		Passed:      false,
	}, nil
}

// runAttempt performs one Attempting(n) → Evaluated(n) transition: compose,
// generate, sample, evaluate, aggregate, persist.
func (o *Orchestrator) runAttempt(
	ctx context.Context,
	req Request,
	iteration int,
	previous *score.Scorecard,
	specialists []critique.Specialist,
	cctx prompt.CritiqueContext,
	refs []ai.ReferenceAsset,
) (*Attempt, error) {
	text := prompt.BuildGenerationPrompt(prompt.GenerationContext{
		Brand:             req.Brand,
		Campaign:          req.Campaign,
		Iteration:         iteration,
		PreviousScorecard: previous,
		Caption:           req.Caption,
	})

	video, err := o.generator.Generate(ctx, text, refs)
	if err != nil {
		return nil, err
	}

	frames, cleanup, err := o.sampler.ExtractFrames(ctx, video.VideoPath, o.opts.FrameSampleCount)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	cctx.FrameLabels = frameLabels(frames)
	responses, err := o.evaluator.Evaluate(ctx, specialists, frames, cctx)
	if err != nil {
		return nil, err
	}

	card, err := score.Aggregate(responses, cctx.ScoreThreshold, video.VideoPath, iteration)
	if err != nil {
		return nil, err
	}

	// Durability of partial progress: the record lands as soon as the
	// scorecard exists, not only when the run finishes.
	if _, err := o.attempts.SaveAttempt(req.Brand.ID, req.Campaign.ID, iteration, card, video.VideoPath, req.Caption); err != nil {
		return nil, err
	}

	return &Attempt{
		Iteration:   iteration,
		VideoPath:   video.VideoPath,
		OperationID: video.OperationID,
		Scorecard:   card,
		Passed:      card.OverallStatus == score.StatusPass,
	}, nil
}

// regenLimit resolves precedence: call override, then campaign, then the
// process-wide default.
func (o *Orchestrator) regenLimit(req Request) int {
	if req.RegenLimit > 0 {
		return req.RegenLimit
	}
	if req.Campaign.RegenLimit > 0 {
		return req.Campaign.RegenLimit
	}
	return o.opts.DefaultRegenLimit
}

func (o *Orchestrator) threshold(req Request) float64 {
	if req.ScoreThreshold > 0 {
		return req.ScoreThreshold
	}
	return o.opts.ScoreThreshold
}

func (o *Orchestrator) critiqueContext(req Request, threshold float64) prompt.CritiqueContext {
	return prompt.CritiqueContext{
		BrandName:         req.Brand.Name,
		BrandTone:         req.Brand.ToneDescription,
		TargetAudience:    req.Campaign.Audience,
		CallToAction:      req.Campaign.CallToAction,
		ProhibitedPhrases: req.Brand.ProhibitedPhrases,
		DerivedPaletteHex: req.Brand.DerivedPaletteHex,
		ScoreThreshold:    threshold,
		Caption:           req.Caption,
	}
}

func referenceAssets(req Request) []ai.ReferenceAsset {
	var refs []ai.ReferenceAsset
	if req.Campaign.ProductImagePath != "" {
		refs = append(refs, ai.ReferenceAsset{Path: req.Campaign.ProductImagePath})
	}
	if req.Brand.LogoPath != "" {
		refs = append(refs, ai.ReferenceAsset{Path: req.Brand.LogoPath})
	}
	for _, asset := range req.Campaign.AdditionalAssets {
		refs = append(refs, ai.ReferenceAsset{Path: asset})
	}
	return refs
}

func frameLabels(frames []media.Frame) []string {
	labels := make([]string, len(frames))
	for i := range frames {
		labels[i] = "Extracted frame " + strconv.Itoa(i+1)
	}
	return labels
}
