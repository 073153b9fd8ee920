package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/auth/credentials"
	vertexai "google.golang.org/genai"

	"relay-backend/internal/models"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// VertexGenerator talks to Gemini models hosted on Vertex AI.
type VertexGenerator struct {
	client *vertexai.Client
	model  string
}

// NewVertexGenerator authenticates with credentialsFile when set and falls
// back to application default credentials otherwise.
func NewVertexGenerator(ctx context.Context, projectID, location, credentialsFile, modelName string) (*VertexGenerator, error) {
	creds, err := credentials.DetectDefault(&credentials.DetectOptions{
		Scopes:          []string{cloudPlatformScope},
		CredentialsFile: credentialsFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load Google Cloud credentials: %w", err)
	}

	client, err := vertexai.NewClient(ctx, &vertexai.ClientConfig{
		Backend:     vertexai.BackendVertexAI,
		Project:     projectID,
		Location:    location,
		Credentials: creds,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
	}

	return &VertexGenerator{client: client, model: modelName}, nil
}

func (g *VertexGenerator) Close() error {
	return nil
}

func (g *VertexGenerator) Generate(ctx context.Context, message string) (*models.UpstreamResponse, error) {
	contents := []*vertexai.Content{{
		Role:  vertexai.RoleUser,
		Parts: []*vertexai.Part{{Text: message}},
	}}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("Vertex AI API error: %w", err)
	}
	return fromVertexResponse(resp), nil
}

func fromVertexResponse(resp *vertexai.GenerateContentResponse) *models.UpstreamResponse {
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
		c := models.UpstreamCandidate{FinishReason: string(cand.FinishReason)}
		if cand.Content != nil {
			content := &models.UpstreamContent{Role: cand.Content.Role}
			for _, part := range cand.Content.Parts {
				// The SDK flattens the union; an empty Text means a non-text part.
				if part != nil && part.Text != "" {
					content.Parts = append(content.Parts, models.TextPart(part.Text))
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
