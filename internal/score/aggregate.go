package score

import (
	"fmt"
	"time"
)

// Aggregate validates every raw specialist response, reconciles each
// self-reported status against the single run threshold, and derives the
// overall verdict. Any invalid response fails the whole aggregation; there
// are no partial scorecards.
//
// The evaluator's own pass/fail claim is discarded: status is recomputed as
// score >= threshold, so one configurable boundary applies to every
// dimension regardless of what the evaluator concluded.
func Aggregate(responses []AgentResponse, threshold float64, assetRef string, iteration int) (*Scorecard, error) {
	if len(responses) == 0 {
		return nil, fmt.Errorf("aggregate: no agent responses")
	}

	scores := make([]AgentScore, 0, len(responses))
	overall := StatusPass
	for i, resp := range responses {
		out := resp.Output
		if err := out.Validate(); err != nil {
			return nil, fmt.Errorf("aggregate: response %d from %s: %w", i, resp.Agent, err)
		}

		if out.Score >= threshold {
			out.Status = StatusPass
		} else {
			out.Status = StatusFail
			overall = StatusFail
		}

		// Traceability: record which evaluator produced the score without
		// touching its evidence.
		meta := make(map[string]any, len(out.Metadata)+1)
		for k, v := range out.Metadata {
			meta[k] = v
		}
		meta["agent"] = resp.Agent
		out.Metadata = meta

		scores = append(scores, out)
	}

	return &Scorecard{
		AssetRef:      assetRef,
		Iteration:     iteration,
		Scores:        scores,
		OverallStatus: overall,
		CreatedAt:     time.Now().UTC(),
	}, nil
}
