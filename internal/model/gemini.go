package model

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// Gemini generates replies through the Google Gemini API.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGemini creates a Gemini-backed generator. The caller decides what to do
// when no API key is configured; passing an empty key is an error here.
func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Gemini{
		client:  client,
		model:   model,
		timeout: timeout,
	}, nil
}

// GenerateReply sends the turn sequence and returns the reply text.
// The call is bounded by the configured timeout; a timeout surfaces as an
// ordinary error and is not retried.
func (g *Gemini) GenerateReply(ctx context.Context, turns []Turn, systemInstruction string) (string, error) {
	if len(turns) == 0 {
		return "", fmt.Errorf("at least one turn is required")
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	contents := make([]*genai.Content, len(turns))
	for i, turn := range turns {
		var role genai.Role = genai.RoleModel
		if turn.Role == TurnRoleUser {
			role = genai.RoleUser
		}
		contents[i] = genai.NewContentFromText(turn.Text, role)
	}

	var cfg *genai.GenerateContentConfig
	if systemInstruction != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty reply")
	}
	return text, nil
}
