package chatclient

import "sync"

type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

type Entry struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Transcript is an ordered, append-only log of one session's exchange.
type Transcript struct {
	mu      sync.RWMutex
	entries []Entry
}

func (t *Transcript) Append(role Role, content string) Entry {
	e := Entry{Role: role, Content: content}
	t.mu.Lock()
	t.entries = append(t.entries, e)
	t.mu.Unlock()
	return e
}

// Entries returns a copy; callers cannot mutate the transcript through it.
func (t *Transcript) Entries() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
