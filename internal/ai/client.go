// Package ai wraps the Google Gen AI SDK: Veo long-running video
// generation and Gemini structured critique calls.
package ai

import (
	"context"
	"errors"
	"net/http"

	"google.golang.org/genai"

	"adprompt/internal/fault"
)

// NewClient builds a Gen AI client against the Gemini API backend.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, fault.New(fault.CodeProviderAuth, "missing API key")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fault.Wrap(fault.CodeProviderAuth, "create genai client", err)
	}
	return client, nil
}

// classify maps provider API errors onto the fault taxonomy. Auth and
// quota problems are fatal to the whole run, everything else is an
// upstream provider failure.
func classify(err error, op string) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fault.Wrap(fault.CodeProviderAuth, op, err)
		case http.StatusTooManyRequests:
			return fault.Wrap(fault.CodeQuotaExceeded, op, err)
		}
	}
	return fault.Wrap(fault.CodeProviderUpstream, op, err)
}
