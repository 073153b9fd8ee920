package models

// UpstreamResponse is the generation service output normalized into an
// optional chain. Any level may be missing; nothing here is guaranteed by the
// upstream service.
type UpstreamResponse struct {
	Candidates []UpstreamCandidate `json:"candidates,omitempty"`
}

type UpstreamCandidate struct {
	Content      *UpstreamContent `json:"content,omitempty"`
	FinishReason string           `json:"finishReason,omitempty"`
}

type UpstreamContent struct {
	Role  string         `json:"role,omitempty"`
	Parts []UpstreamPart `json:"parts,omitempty"`
}

// UpstreamPart holds a nil Text for non-text parts (function calls, inline data).
type UpstreamPart struct {
	Text *string `json:"text,omitempty"`
}

// FirstCandidate returns nil when there are no candidates.
func (r *UpstreamResponse) FirstCandidate() *UpstreamCandidate {
	if r == nil || len(r.Candidates) == 0 {
		return nil
	}
	return &r.Candidates[0]
}

// FirstPart returns nil when the candidate has no content or no parts.
func (c *UpstreamCandidate) FirstPart() *UpstreamPart {
	if c == nil || c.Content == nil || len(c.Content.Parts) == 0 {
		return nil
	}
	return &c.Content.Parts[0]
}

// TextPart builds a part carrying text.
func TextPart(text string) UpstreamPart {
	return UpstreamPart{Text: &text}
}
