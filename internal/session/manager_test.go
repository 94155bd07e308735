package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCreatesSessionAndSetsCookie(t *testing.T) {
	m := NewManager()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	st := m.Get(w, r)

	require.NotNil(t, st)
	assert.NotEmpty(t, st.ID)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, st.ID, cookies[0].Value)
}

func TestGetReturnsSameStateForSameCookie(t *testing.T) {
	m := NewManager()
	w := httptest.NewRecorder()
	first := m.Get(w, httptest.NewRequest(http.MethodGet, "/", nil))
	first.Conversation.AppendUser("hello")

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(w.Result().Cookies()[0])
	second := m.Get(httptest.NewRecorder(), r)

	assert.Same(t, first, second)
	assert.Equal(t, 1, second.Conversation.Len())
}

func TestGetIsolatesBrowsers(t *testing.T) {
	m := NewManager()
	a := m.Get(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	b := m.Get(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	a.Conversation.AppendUser("only in a")

	assert.NotEqual(t, a.ID, b.ID)
	assert.Zero(t, b.Conversation.Len())
}
