package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"relay-backend/internal/models"
)

// PlaceholderReply is returned for a text-less first part under PolicyPlaceholder.
const PlaceholderReply = "No response text found"

type EmptyTextPolicy int

const (
	// PolicyFail treats a missing first-part text as a malformed upstream shape.
	PolicyFail EmptyTextPolicy = iota
	// PolicyPlaceholder answers with PlaceholderReply instead.
	PolicyPlaceholder
)

// ParseEmptyTextPolicy maps the config value onto a policy; anything other
// than "placeholder" fails closed.
func ParseEmptyTextPolicy(s string) EmptyTextPolicy {
	if strings.EqualFold(strings.TrimSpace(s), "placeholder") {
		return PolicyPlaceholder
	}
	return PolicyFail
}

// RelayService turns one chat message into one model reply. It keeps no state
// between calls.
type RelayService struct {
	generator Generator
	logger    *slog.Logger
	timeout   time.Duration
	policy    EmptyTextPolicy
}

func NewRelayService(generator Generator, logger *slog.Logger, timeout time.Duration, policy EmptyTextPolicy) (*RelayService, error) {
	if generator == nil {
		return nil, errors.New("relay: generator must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RelayService{
		generator: generator,
		logger:    logger,
		timeout:   timeout,
		policy:    policy,
	}, nil
}

func (s *RelayService) Relay(ctx context.Context, message string) (string, error) {
	msg := strings.TrimSpace(message)
	if msg == "" {
		s.logger.WarnContext(ctx, "chat message rejected", "reason", "empty_message")
		return "", newRelayError(ErrorInvalidInput, "empty_message", nil)
	}

	s.logger.InfoContext(ctx, "message received", "message", msg, "length", len(msg))

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := s.generator.Generate(ctx, msg)
	if err != nil {
		s.logger.ErrorContext(ctx, "upstream generation failed",
			"err", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", newRelayError(ErrorUpstream, "generate_failed", err)
	}

	reply, err := ExtractReply(resp, s.policy)
	if err != nil {
		s.logger.ErrorContext(ctx, "no valid candidates in upstream response",
			"err", err,
			"upstream", rawPayload(resp),
		)
		return "", err
	}

	s.logger.InfoContext(ctx, "upstream response",
		"upstream", rawPayload(resp),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return reply, nil
}

// ExtractReply walks candidates -> content -> parts -> text of the first
// candidate.
func ExtractReply(resp *models.UpstreamResponse, policy EmptyTextPolicy) (string, error) {
	cand := resp.FirstCandidate()
	if cand == nil {
		return "", newRelayError(ErrorEmptyResponse, "no_candidates", nil)
	}
	if cand.Content == nil {
		return "", newRelayError(ErrorMalformedUpstreamShape, "missing_content", nil)
	}

	part := cand.FirstPart()
	if part == nil {
		return "", newRelayError(ErrorMalformedUpstreamShape, "missing_parts", nil)
	}

	if part.Text == nil || *part.Text == "" {
		if policy == PolicyPlaceholder {
			return PlaceholderReply, nil
		}
		return "", newRelayError(ErrorMalformedUpstreamShape, "missing_text", nil)
	}
	return *part.Text, nil
}

func rawPayload(resp *models.UpstreamResponse) string {
	if resp == nil {
		return "null"
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return err.Error()
	}
	return string(data)
}
