package core

import "osce-simulator/pkg"

// Conversation is the ordered, append-only turn log for one browser session
// and its active case. Turns are never mutated in place; switching to a
// different case discards the whole log so dialogue cannot leak between
// patients. The full history is resent upstream on every turn with no
// windowing, so it grows for the lifetime of the session.
type Conversation struct {
	caseID string
	turns  []pkg.Turn
}

// NewConversation returns an empty conversation with no active case.
func NewConversation() *Conversation {
	return &Conversation{}
}

// CaseID returns the id of the active case, or "" if none is selected.
func (c *Conversation) CaseID() string { return c.caseID }

// SelectCase makes caseID the active case. Selecting a different case clears
// the turn log; re-selecting the current case keeps it.
func (c *Conversation) SelectCase(caseID string) {
	if c.caseID == caseID {
		return
	}
	c.caseID = caseID
	c.turns = nil
}

// AppendUser records a student message.
func (c *Conversation) AppendUser(content string) {
	c.turns = append(c.turns, pkg.Turn{Role: pkg.RoleUser, Content: content})
}

// AppendAssistant records a simulated-patient reply.
func (c *Conversation) AppendAssistant(content string) {
	c.turns = append(c.turns, pkg.Turn{Role: pkg.RoleAssistant, Content: content})
}

// Clear empties the turn log without changing the active case.
func (c *Conversation) Clear() {
	c.turns = nil
}

// Messages returns a copy of every turn so far in insertion order. The copy
// keeps callers from mutating session state through the returned slice.
func (c *Conversation) Messages() []pkg.Turn {
	out := make([]pkg.Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Len returns the number of turns recorded so far.
func (c *Conversation) Len() int { return len(c.turns) }
