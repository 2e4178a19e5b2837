package generation

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adprompt/internal/ai"
	"adprompt/internal/brand"
	"adprompt/internal/critique"
	"adprompt/internal/fault"
	"adprompt/internal/media"
	"adprompt/internal/prompt"
	"adprompt/internal/score"
	"adprompt/internal/store"
)

type fakeGenerator struct {
	prompts []string
	err     error
}

func (g *fakeGenerator) Generate(ctx context.Context, promptText string, refs []ai.ReferenceAsset) (*ai.GeneratedVideo, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.prompts = append(g.prompts, promptText)
	n := len(g.prompts)
	return &ai.GeneratedVideo{
		VideoPath:   fmt.Sprintf("out/video-%d.mp4", n),
		OperationID: fmt.Sprintf("op-%d", n),
	}, nil
}

type fakeSampler struct {
	cleanups int
	err      error
}

func (s *fakeSampler) ExtractFrames(ctx context.Context, videoPath string, count int) ([]media.Frame, media.CleanupFunc, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	frames := make([]media.Frame, count)
	for i := range frames {
		frames[i] = media.Frame{Index: i + 1, Timestamp: float64(i + 1), Path: fmt.Sprintf("%s.frame%d.png", videoPath, i+1)}
	}
	return frames, func() { s.cleanups++ }, nil
}

// fakeEvaluator replays scripted scores, one map per iteration.
type fakeEvaluator struct {
	scripts  []map[score.Dimension]float64
	contexts []prompt.CritiqueContext
	err      error
}

func (e *fakeEvaluator) Evaluate(ctx context.Context, specialists []critique.Specialist, frames []media.Frame, cctx prompt.CritiqueContext) ([]score.AgentResponse, error) {
	e.contexts = append(e.contexts, cctx)
	if e.err != nil {
		return nil, e.err
	}

	call := len(e.contexts) - 1
	script := e.scripts[call]
	responses := make([]score.AgentResponse, len(specialists))
	for i, spec := range specialists {
		responses[i] = score.AgentResponse{
			Agent: "fake-critic",
			Output: score.AgentScore{
				Dimension: spec.Dimension,
				Score:     script[spec.Dimension],
				Status:    score.StatusFail, // aggregation must ignore this
				Evidence:  score.Evidence{Summary: fmt.Sprintf("%s evidence at iteration %d", spec.Dimension, call+1)},
			},
		}
	}
	return responses, nil
}

type fakeStore struct {
	saved []int
	err   error
}

func (s *fakeStore) SaveAttempt(brandKitID, campaignID string, iteration int, card *score.Scorecard, videoPath, caption string) (*store.AttemptRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.saved = append(s.saved, iteration)
	return &store.AttemptRecord{Iteration: iteration}, nil
}

func allScores(v float64) map[score.Dimension]float64 {
	return map[score.Dimension]float64{
		score.DimensionBrandFit:      v,
		score.DimensionVisualQuality: v,
		score.DimensionSafety:        v,
		score.DimensionClarity:       v,
	}
}

func testRequest() Request {
	return Request{
		Brand:    &brand.Kit{ID: "brand-1", Name: "Glowly"},
		Campaign: &brand.CampaignBrief{ID: "camp-1", ProductDescription: "serum", Audience: "20-35", CallToAction: "Shop", RegenLimit: 3},
	}
}

func newTestOrchestrator(g *fakeGenerator, s *fakeSampler, e *fakeEvaluator, st *fakeStore) *Orchestrator {
	return New(g, s, e, st, Options{DefaultRegenLimit: 5, ScoreThreshold: 0.8, FrameSampleCount: 6}, nil)
}

func TestRunFeedbackCarryForward(t *testing.T) {
	gen := &fakeGenerator{}
	sampler := &fakeSampler{}
	iter1 := allScores(0.9)
	iter1[score.DimensionVisualQuality] = 0.6
	eval := &fakeEvaluator{scripts: []map[score.Dimension]float64{iter1, allScores(0.9)}}
	attempts := &fakeStore{}

	result, err := newTestOrchestrator(gen, sampler, eval, attempts).Run(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Final.Iteration)
	assert.True(t, result.Final.Passed)
	require.Len(t, result.History, 2)
	assert.Equal(t, score.StatusFail, result.History[0].Scorecard.OverallStatus)

	// The second prompt carries the literal failing evidence from the first
	// attempt, and preservation bullets for the passing dimensions.
	require.Len(t, gen.prompts, 2)
	assert.Contains(t, gen.prompts[0], "No previous critique feedback")
	assert.Contains(t, gen.prompts[1], "VisualQuality: VisualQuality evidence at iteration 1")
	assert.Contains(t, gen.prompts[1], "Keep these aspects from previous attempt:")
	assert.Contains(t, gen.prompts[1], "BrandFit: BrandFit evidence at iteration 1")
	assert.Contains(t, gen.prompts[1], "Refinement pass #2")

	assert.Equal(t, []int{1, 2}, attempts.saved)
	assert.Equal(t, 2, sampler.cleanups)
}

func TestRunStopsAtFirstPass(t *testing.T) {
	eval := &fakeEvaluator{scripts: []map[score.Dimension]float64{allScores(0.95)}}
	attempts := &fakeStore{}

	result, err := newTestOrchestrator(&fakeGenerator{}, &fakeSampler{}, eval, attempts).Run(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Final.Iteration)
	assert.Len(t, result.History, 1)
	assert.Equal(t, []int{1}, attempts.saved)
}

func TestRunExhaustionIsNotAnError(t *testing.T) {
	eval := &fakeEvaluator{scripts: []map[score.Dimension]float64{allScores(0.5), allScores(0.5), allScores(0.5)}}
	attempts := &fakeStore{}

	result, err := newTestOrchestrator(&fakeGenerator{}, &fakeSampler{}, eval, attempts).Run(context.Background(), testRequest())
	require.NoError(t, err)

	require.Len(t, result.History, 3)
	assert.Same(t, result.History[2], result.Final)
	assert.False(t, result.Final.Passed)
	assert.Equal(t, []int{1, 2, 3}, attempts.saved)
}

func TestRunMalformedCritiqueAbortsWithoutPersisting(t *testing.T) {
	eval := &fakeEvaluator{err: fault.New(fault.CodeMalformedOutput, "not json")}
	attempts := &fakeStore{}

	result, err := newTestOrchestrator(&fakeGenerator{}, &fakeSampler{}, eval, attempts).Run(context.Background(), testRequest())

	assert.Nil(t, result)
	assert.Equal(t, fault.CodeMalformedOutput, fault.CodeOf(err))
	assert.Empty(t, attempts.saved)
}

func TestRunPersistenceFailureIsFatalToRun(t *testing.T) {
	eval := &fakeEvaluator{scripts: []map[score.Dimension]float64{allScores(0.9)}}
	attempts := &fakeStore{err: fault.New(fault.CodePersistence, "disk full")}

	result, err := newTestOrchestrator(&fakeGenerator{}, &fakeSampler{}, eval, attempts).Run(context.Background(), testRequest())

	assert.Nil(t, result)
	assert.Equal(t, fault.CodePersistence, fault.CodeOf(err))
}

func TestRunGeneratorFaultPropagates(t *testing.T) {
	gen := &fakeGenerator{err: fault.New(fault.CodeProviderAuth, "bad key")}
	attempts := &fakeStore{}

	_, err := newTestOrchestrator(gen, &fakeSampler{}, &fakeEvaluator{}, attempts).Run(context.Background(), testRequest())
	assert.Equal(t, fault.CodeProviderAuth, fault.CodeOf(err))
	assert.Empty(t, attempts.saved)
}

func TestRunFrameExtractionFaultPropagates(t *testing.T) {
	sampler := &fakeSampler{err: fault.New(fault.CodeFrameExtraction, "unreadable")}
	_, err := newTestOrchestrator(&fakeGenerator{}, sampler, &fakeEvaluator{}, &fakeStore{}).Run(context.Background(), testRequest())
	assert.Equal(t, fault.CodeFrameExtraction, fault.CodeOf(err))
}

func TestRunContinuationModeSeedsFirstPrompt(t *testing.T) {
	gen := &fakeGenerator{}
	eval := &fakeEvaluator{scripts: []map[score.Dimension]float64{allScores(0.9)}}

	req := testRequest()
	req.PreviousScorecard = &score.Scorecard{
		Scores: []score.AgentScore{{
			Dimension: score.DimensionClarity,
			Status:    score.StatusFail,
			Evidence:  score.Evidence{Summary: "CTA missing in prior run"},
		}},
	}

	result, err := newTestOrchestrator(gen, &fakeSampler{}, eval, &fakeStore{}).Run(context.Background(), req)
	require.NoError(t, err)

	// Numbering starts fresh at 1 even though feedback was seeded.
	assert.Equal(t, 1, result.Final.Iteration)
	assert.Contains(t, gen.prompts[0], "Initial concept")
	assert.Contains(t, gen.prompts[0], "Clarity: CTA missing in prior run")
}

func TestRunPrecedenceAndContext(t *testing.T) {
	eval := &fakeEvaluator{scripts: []map[score.Dimension]float64{allScores(0.5), allScores(0.5)}}

	req := testRequest()
	req.Campaign.RegenLimit = 4
	req.RegenLimit = 2        // call-time override wins
	req.ScoreThreshold = 0.75 // call-time threshold wins

	result, err := newTestOrchestrator(&fakeGenerator{}, &fakeSampler{}, eval, &fakeStore{}).Run(context.Background(), req)
	require.NoError(t, err)

	assert.Len(t, result.History, 2)
	require.Len(t, eval.contexts, 2)
	assert.Equal(t, 0.75, eval.contexts[0].ScoreThreshold)
	assert.Equal(t, []string{
		"Extracted frame 1", "Extracted frame 2", "Extracted frame 3",
		"Extracted frame 4", "Extracted frame 5", "Extracted frame 6",
	}, eval.contexts[0].FrameLabels)
}

func TestRunCampaignLimitUsedWhenNoOverride(t *testing.T) {
	eval := &fakeEvaluator{scripts: []map[score.Dimension]float64{allScores(0.5), allScores(0.5), allScores(0.5)}}

	req := testRequest() // campaign limit 3, no call override
	result, err := newTestOrchestrator(&fakeGenerator{}, &fakeSampler{}, eval, &fakeStore{}).Run(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, result.History, 3)
}

func TestGenerateOnlySkipsCritique(t *testing.T) {
	gen := &fakeGenerator{}
	sampler := &fakeSampler{}
	eval := &fakeEvaluator{}
	attempts := &fakeStore{}

	attempt, err := newTestOrchestrator(gen, sampler, eval, attempts).GenerateOnly(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, attempt.Iteration)
	assert.False(t, attempt.Passed)
	assert.Nil(t, attempt.Scorecard)
	assert.Empty(t, eval.contexts)
	assert.Equal(t, 0, sampler.cleanups)
	assert.Empty(t, attempts.saved)
}

func TestRunReconciliationIgnoresSelfReportedStatus(t *testing.T) {
	// The fake evaluator always self-reports fail; scores above threshold
	// must still pass after aggregation.
	eval := &fakeEvaluator{scripts: []map[score.Dimension]float64{allScores(0.99)}}

	result, err := newTestOrchestrator(&fakeGenerator{}, &fakeSampler{}, eval, &fakeStore{}).Run(context.Background(), testRequest())
	require.NoError(t, err)
	assert.True(t, result.Final.Passed)
	for _, s := range result.Final.Scorecard.Scores {
		assert.Equal(t, score.StatusPass, s.Status)
		assert.Equal(t, "fake-critic", s.Metadata["agent"])
	}
}
