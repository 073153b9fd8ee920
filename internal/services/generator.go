package services

import (
	"context"
	"fmt"

	"relay-backend/internal/config"
	"relay-backend/internal/models"
)

// Generator performs one single-turn generation call for a user message.
type Generator interface {
	Generate(ctx context.Context, message string) (*models.UpstreamResponse, error)
	Close() error
}

// NewGenerator builds the backend selected by cfg.Backend.
func NewGenerator(ctx context.Context, cfg *config.Config) (Generator, error) {
	switch cfg.Backend {
	case config.BackendVertex:
		return NewVertexGenerator(ctx, cfg.ProjectID, cfg.Location, cfg.CredentialsFile, cfg.ModelName)
	case config.BackendGemini:
		return NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.ModelName)
	default:
		return nil, fmt.Errorf("unsupported model backend %q", cfg.Backend)
	}
}
