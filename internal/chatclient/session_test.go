package chatclient

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChatter struct {
	reply string
	err   error
	calls []string
	// seen is the transcript length observed when Chat runs.
	seen       int
	transcript *Transcript
}

func (s *stubChatter) Chat(_ context.Context, message string) (string, error) {
	s.calls = append(s.calls, message)
	if s.transcript != nil {
		s.seen = s.transcript.Len()
	}
	return s.reply, s.err
}

func newTestSession(t *testing.T, c *stubChatter) *Session {
	t.Helper()
	s, err := NewSession(c, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	c.transcript = s.Transcript()
	return s
}

func TestNewSession_RequiresClient(t *testing.T) {
	_, err := NewSession(nil, nil)
	require.Error(t, err)
}

func TestSession_SubmitSuccess(t *testing.T) {
	c := &stubChatter{reply: "pong"}
	s := newTestSession(t, c)

	require.NoError(t, s.Submit(context.Background(), "ping"))

	assert.Equal(t, []string{"ping"}, c.calls)
	assert.Equal(t, 1, c.seen, "user entry should be appended before the call")
	assert.Equal(t, []Entry{
		{Role: RoleUser, Content: "ping"},
		{Role: RoleBot, Content: "pong"},
	}, s.Transcript().Entries())
}

func TestSession_SubmitFailureKeepsTranscript(t *testing.T) {
	c := &stubChatter{err: errors.New("connection refused")}
	s := newTestSession(t, c)

	err := s.Submit(context.Background(), "ping")

	require.Error(t, err)
	assert.Equal(t, []Entry{{Role: RoleUser, Content: "ping"}}, s.Transcript().Entries(),
		"a failed call leaves only the user entry and shows no error entry")
}

func TestSession_IgnoresBlankInput(t *testing.T) {
	c := &stubChatter{reply: "pong"}
	s := newTestSession(t, c)

	require.NoError(t, s.Submit(context.Background(), "  \t "))

	assert.Empty(t, c.calls)
	assert.Zero(t, s.Transcript().Len())
}

func TestSession_AppendOnlyOrder(t *testing.T) {
	c := &stubChatter{reply: "r"}
	s := newTestSession(t, c)

	var appended []Entry
	s.OnAppend(func(e Entry) { appended = append(appended, e) })

	require.NoError(t, s.Submit(context.Background(), "one"))
	c.err = errors.New("down")
	require.Error(t, s.Submit(context.Background(), "two"))
	c.err = nil
	require.NoError(t, s.Submit(context.Background(), "three"))

	want := []Entry{
		{Role: RoleUser, Content: "one"},
		{Role: RoleBot, Content: "r"},
		{Role: RoleUser, Content: "two"},
		{Role: RoleUser, Content: "three"},
		{Role: RoleBot, Content: "r"},
	}
	assert.Equal(t, want, s.Transcript().Entries())
	assert.Equal(t, want, appended)
}

func TestTranscript_EntriesIsACopy(t *testing.T) {
	var tr Transcript
	tr.Append(RoleUser, "hello")

	entries := tr.Entries()
	entries[0].Content = "changed"

	assert.Equal(t, "hello", tr.Entries()[0].Content)
}
