package chatclient

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

type chatter interface {
	Chat(ctx context.Context, message string) (string, error)
}

// Session drives one client form: every submitted message is shown right
// away, and the reply is added only when the relay answers successfully.
type Session struct {
	client     chatter
	transcript *Transcript
	logger     *slog.Logger
	onAppend   func(Entry)
}

func NewSession(client chatter, logger *slog.Logger) (*Session, error) {
	if client == nil {
		return nil, errors.New("chatclient: client must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		client:     client,
		transcript: &Transcript{},
		logger:     logger,
	}, nil
}

// OnAppend registers a callback invoked after each new transcript entry.
func (s *Session) OnAppend(fn func(Entry)) {
	s.onAppend = fn
}

func (s *Session) Transcript() *Transcript {
	return s.transcript
}

// Submit sends one message. Blank input is ignored. Failures are logged and
// returned; no entry is added for them.
func (s *Session) Submit(ctx context.Context, input string) error {
	if strings.TrimSpace(input) == "" {
		return nil
	}

	s.append(RoleUser, input)

	reply, err := s.client.Chat(ctx, input)
	if err != nil {
		s.logger.ErrorContext(ctx, "chatbot error", "err", err)
		return err
	}

	s.append(RoleBot, reply)
	return nil
}

func (s *Session) append(role Role, content string) {
	e := s.transcript.Append(role, content)
	if s.onAppend != nil {
		s.onAppend(e)
	}
}
