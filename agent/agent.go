// Package agent writes a short risk assessment of each deal with a language
// model.
package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Generator answers a prompt under a system instruction.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Expert is a Gemini model configured for short, low temperature answers.
type Expert struct {
	Name      string
	ModelName string
	Config    *genai.GenerateContentConfig
	client    *genai.Client
}

// NewExpert creates a Gemini client from the environment (GEMINI_API_KEY or
// the Vertex AI variables) for the given model.
func NewExpert(ctx context.Context, model string) (*Expert, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("initializing Gemini's client: %w", err)
	}
	return &Expert{
		Name:      "risk analyst",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Temperature:     genai.Ptr[float32](0.3),
			MaxOutputTokens: 100,
		},
		client: client,
	}, nil
}

// Generate implements Generator.
func (e *Expert) Generate(ctx context.Context, system, prompt string) (string, error) {
	cfg := *e.Config
	cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)

	resp, err := e.client.Models.GenerateContent(ctx, e.ModelName, genai.Text(prompt), &cfg)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from expert %s", e.Name)
	}
	return resp.Text(), nil
}
