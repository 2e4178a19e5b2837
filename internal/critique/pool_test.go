package critique

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adprompt/internal/fault"
	"adprompt/internal/media"
	"adprompt/internal/prompt"
	"adprompt/internal/score"
)

// fakeCritic answers from a canned score per dimension, derived from the
// prompt text it receives.
type fakeCritic struct {
	calls  atomic.Int32
	failOn score.Dimension
}

func (f *fakeCritic) Evaluate(ctx context.Context, promptText string, frames []media.Frame) (*score.AgentResponse, error) {
	f.calls.Add(1)

	var dim score.Dimension
	for _, known := range score.KnownDimensions {
		if strings.Contains(promptText, "specialist agent focused on "+string(known)) {
			dim = known
			break
		}
	}
	if dim == f.failOn {
		return nil, fault.New(fault.CodeMalformedOutput, "not json")
	}
	return &score.AgentResponse{
		Agent: "fake",
		Output: score.AgentScore{
			Dimension: dim,
			Score:     0.9,
			Status:    score.StatusPass,
			Evidence:  score.Evidence{Summary: "fine"},
		},
	}, nil
}

func TestPoolEvaluatePreservesConfigOrder(t *testing.T) {
	pool := NewPool(&fakeCritic{}, nil)
	specialists := ExtendedSpecialists()

	responses, err := pool.Evaluate(context.Background(), specialists, nil,
		prompt.CritiqueContext{BrandName: "Glowly", ScoreThreshold: 0.8})
	require.NoError(t, err)
	require.Len(t, responses, len(specialists))

	for i, spec := range specialists {
		assert.Equal(t, spec.Dimension, responses[i].Output.Dimension)
	}
}

func TestPoolEvaluateAbortsOnAnyFailure(t *testing.T) {
	critic := &fakeCritic{failOn: score.DimensionSafety}
	pool := NewPool(critic, nil)

	responses, err := pool.Evaluate(context.Background(), DefaultSpecialists(), nil,
		prompt.CritiqueContext{BrandName: "Glowly", ScoreThreshold: 0.8})

	assert.Nil(t, responses)
	assert.Equal(t, fault.CodeMalformedOutput, fault.CodeOf(err))
}

func TestDefaultSpecialistsOrderAndScope(t *testing.T) {
	specialists := DefaultSpecialists()
	require.Len(t, specialists, 4)

	assert.Equal(t, score.DimensionBrandFit, specialists[0].Dimension)
	assert.Equal(t, score.DimensionVisualQuality, specialists[1].Dimension)
	assert.Equal(t, score.DimensionSafety, specialists[2].Dimension)
	assert.Equal(t, score.DimensionClarity, specialists[3].Dimension)

	// Responsibility split: safety must not judge spelling, brand fit must.
	assert.Contains(t, specialists[0].SystemInstruction, "Brand name spelling")
	assert.Contains(t, specialists[2].SystemInstruction, "DO NOT evaluate brand name spelling")
}

func TestExtendedSpecialists(t *testing.T) {
	specialists := ExtendedSpecialists()
	require.Len(t, specialists, 6)
	assert.Equal(t, score.DimensionTextAccuracy, specialists[4].Dimension)
	assert.Equal(t, score.DimensionProductPresence, specialists[5].Dimension)
}
