package critique

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"adprompt/internal/media"
	"adprompt/internal/prompt"
	"adprompt/internal/score"
)

// Critic is one evaluator call against the critique provider.
type Critic interface {
	Evaluate(ctx context.Context, promptText string, frames []media.Frame) (*score.AgentResponse, error)
}

// Pool runs the configured specialists concurrently against one frame set.
type Pool struct {
	critic Critic
	logger *zap.Logger
}

// NewPool builds a pool around a critic.
func NewPool(critic Critic, logger *zap.Logger) *Pool {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pool{critic: critic, logger: logger}
}

// Evaluate fans one call per specialist out, joins them, and returns raw
// responses in specialist order. Any evaluator error cancels the rest and
// aborts the whole evaluation; there are no partial results.
func (p *Pool) Evaluate(ctx context.Context, specialists []Specialist, frames []media.Frame, cctx prompt.CritiqueContext) ([]score.AgentResponse, error) {
	g, gctx := errgroup.WithContext(ctx)
	responses := make([]score.AgentResponse, len(specialists))

	for i, spec := range specialists {
		g.Go(func() error {
			text := prompt.BuildAgentPrompt(cctx, spec.Dimension, spec.SystemInstruction)
			resp, err := p.critic.Evaluate(gctx, text, frames)
			if err != nil {
				p.logger.Warn("specialist evaluation failed",
					zap.String("dimension", string(spec.Dimension)), zap.Error(err))
				return err
			}
			responses[i] = *resp
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return responses, nil
}
