package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"adprompt/internal/fault"
	"adprompt/internal/media"
	"adprompt/internal/score"
)

// GeminiCritic runs one specialist critique call: inline frame images plus
// the composed text block, asking for a single JSON object back.
type GeminiCritic struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewGeminiCritic wires a critique client around a shared genai client.
func NewGeminiCritic(client *genai.Client, model string, logger *zap.Logger) *GeminiCritic {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeminiCritic{client: client, model: model, logger: logger}
}

// Model reports the evaluator identifier stamped into score metadata.
func (c *GeminiCritic) Model() string { return c.model }

// Evaluate sends the frames and prompt to Gemini and parses the structured
// reply. A non-JSON or schema-invalid reply is a malformed-output fault;
// it is never substituted with a default score.
func (c *GeminiCritic) Evaluate(ctx context.Context, promptText string, frames []media.Frame) (*score.AgentResponse, error) {
	parts := make([]*genai.Part, 0, len(frames)+1)
	for _, frame := range frames {
		data, err := frame.Bytes()
		if err != nil {
			return nil, fault.Wrap(fault.CodeFrameExtraction, fmt.Sprintf("read frame %d", frame.Index), err)
		}
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: "image/png", Data: data},
		})
	}
	parts = append(parts, &genai.Part{Text: promptText})

	contents := []*genai.Content{{Role: genai.RoleUser, Parts: parts}}
	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, classify(err, "critique call")
	}

	var sb strings.Builder
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, p := range resp.Candidates[0].Content.Parts {
			if p.Text != "" {
				sb.WriteString(p.Text)
			}
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return nil, fault.New(fault.CodeMalformedOutput, "critique agent returned empty response")
	}

	var output score.AgentScore
	if err := json.Unmarshal([]byte(text), &output); err != nil {
		return nil, fault.Wrap(fault.CodeMalformedOutput, fmt.Sprintf("parse critique JSON: %.200s", text), err)
	}
	if err := output.Validate(); err != nil {
		return nil, fault.Wrap(fault.CodeMalformedOutput, "critique output shape", err)
	}

	c.logger.Debug("specialist replied",
		zap.String("dimension", string(output.Dimension)),
		zap.Float64("score", output.Score))
	return &score.AgentResponse{Agent: c.model, Output: output}, nil
}
