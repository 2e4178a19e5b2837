// Package score defines the critique scorecard model and the aggregation
// rules that turn raw specialist outputs into one authoritative pass/fail
// verdict per generated asset.
package score

import (
	"fmt"
	"strings"
	"time"
)

// Dimension is one independent quality axis judged by a specialist agent.
type Dimension string

const (
	DimensionBrandFit        Dimension = "BrandFit"
	DimensionVisualQuality   Dimension = "VisualQuality"
	DimensionSafety          Dimension = "Safety"
	DimensionClarity         Dimension = "Clarity"
	DimensionTextAccuracy    Dimension = "TextAccuracy"
	DimensionProductPresence Dimension = "ProductPresence"
)

// KnownDimensions lists every dimension an agent may report, in the order
// the default specialist set runs them.
var KnownDimensions = []Dimension{
	DimensionBrandFit,
	DimensionVisualQuality,
	DimensionSafety,
	DimensionClarity,
	DimensionTextAccuracy,
	DimensionProductPresence,
}

// Status is a binary pass/fail verdict.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
)

// Evidence is the human-readable rationale attached to an agent score.
type Evidence struct {
	// Summary is a one-sentence rationale with concrete findings.
	Summary string `json:"summary"`
	// Citations optionally reference frame numbers or copy snippets.
	Citations []string `json:"citations,omitempty"`
}

// AgentScore is a single specialist's verdict on one dimension.
type AgentScore struct {
	Dimension Dimension      `json:"dimension"`
	Score     float64        `json:"score"`
	Status    Status         `json:"status"`
	Evidence  Evidence       `json:"evidence"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Validate checks the raw agent output shape before it is admitted into a
// scorecard. The self-reported status only needs to be a legal enum value
// here; aggregation recomputes it against the run threshold.
func (s *AgentScore) Validate() error {
	if !isKnownDimension(s.Dimension) {
		return fmt.Errorf("unknown dimension %q", s.Dimension)
	}
	if s.Score < 0 || s.Score > 1 {
		return fmt.Errorf("dimension %s: score %v outside [0,1]", s.Dimension, s.Score)
	}
	if s.Status != StatusPass && s.Status != StatusFail {
		return fmt.Errorf("dimension %s: invalid status %q", s.Dimension, s.Status)
	}
	if strings.TrimSpace(s.Evidence.Summary) == "" {
		return fmt.Errorf("dimension %s: evidence summary is empty", s.Dimension)
	}
	return nil
}

func isKnownDimension(d Dimension) bool {
	for _, known := range KnownDimensions {
		if d == known {
			return true
		}
	}
	return false
}

// AgentResponse pairs a raw specialist output with the identifier of the
// evaluator that produced it.
type AgentResponse struct {
	Agent  string     `json:"agent"`
	Output AgentScore `json:"output"`
}

// Scorecard is the aggregated, threshold-reconciled result of all
// dimensions for one generated asset.
type Scorecard struct {
	AssetRef      string       `json:"assetRef"`
	Iteration     int          `json:"iteration"`
	Scores        []AgentScore `json:"scores"`
	OverallStatus Status       `json:"overallStatus"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// Failing returns the scores that did not clear the threshold.
func (c *Scorecard) Failing() []AgentScore {
	return c.filter(StatusFail)
}

// Passing returns the scores that cleared the threshold.
func (c *Scorecard) Passing() []AgentScore {
	return c.filter(StatusPass)
}

func (c *Scorecard) filter(status Status) []AgentScore {
	var out []AgentScore
	for _, s := range c.Scores {
		if s.Status == status {
			out = append(out, s)
		}
	}
	return out
}
