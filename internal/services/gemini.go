package services

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"relay-backend/internal/models"
)

// GeminiGenerator talks to the Gemini Developer API with an API key.
type GeminiGenerator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiGenerator(ctx context.Context, apiKey, modelName string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerator{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

func (g *GeminiGenerator) Generate(ctx context.Context, message string) (*models.UpstreamResponse, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(message))
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}
	return fromGeminiResponse(resp), nil
}

func fromGeminiResponse(resp *genai.GenerateContentResponse) *models.UpstreamResponse {
	out := &models.UpstreamResponse{}
	if resp == nil {
		return out
	}

	for _, cand := range resp.Candidates {
		// A nil entry keeps its slot so it cannot promote a later candidate.
		if cand == nil {
			out.Candidates = append(out.Candidates, models.UpstreamCandidate{})
			continue
		}
		c := models.UpstreamCandidate{FinishReason: cand.FinishReason.String()}
		if cand.Content != nil {
			content := &models.UpstreamContent{Role: cand.Content.Role}
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					content.Parts = append(content.Parts, models.TextPart(string(t)))
				} else {
					content.Parts = append(content.Parts, models.UpstreamPart{})
				}
			}
			c.Content = content
		}
		out.Candidates = append(out.Candidates, c)
	}
	return out
}
