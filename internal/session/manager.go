package session

import (
	"net/http"
	"sync"

	"github.com/google/uuid"

	"osce-simulator/internal/core"
)

// CookieName identifies the browser session.
const CookieName = "osce_session"

// State is the per-browser session state: the active case pointer and the
// conversation log. It is created on first access and lives until the server
// restarts; nothing here is durable.
type State struct {
	ID           string
	Conversation *core.Conversation
}

// Manager hands out session state keyed by a uuid cookie. Sessions do not
// share mutable state with each other; the map itself is mutex-guarded so
// concurrent browsers are safe.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*State
}

// NewManager constructs an empty session registry.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*State)}
}

// Get returns the session state for the request, creating it (and setting
// the session cookie on the response) on first access.
func (m *Manager) Get(w http.ResponseWriter, r *http.Request) *State {
	var id string
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		id = c.Value
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if id != "" {
		if st, ok := m.sessions[id]; ok {
			return st
		}
	}
	if id == "" {
		id = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	st := &State{ID: id, Conversation: core.NewConversation()}
	m.sessions[id] = st
	return st
}
