package http

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"osce-simulator/internal/core"
	"osce-simulator/internal/feedback"
	"osce-simulator/internal/logging"
	"osce-simulator/internal/session"
	"osce-simulator/pkg"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server bundles the dependencies required by the HTTP handlers and builds
// the router for the three views: home, simulator, and feedback.
type Server struct {
	Cases     map[string]pkg.CaseRecord
	CaseIDs   []string
	Chat      *core.ChatService
	Feedback  *feedback.Sink
	Sessions  *session.Manager
	Templates *template.Template
	Log       *logging.Logger
}

// NewServer constructs a Server with the embedded HTML templates parsed.
func NewServer(cases map[string]pkg.CaseRecord, caseIDs []string, chat *core.ChatService, sink *feedback.Sink, log *logging.Logger) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Server{
		Cases:     cases,
		CaseIDs:   caseIDs,
		Chat:      chat,
		Feedback:  sink,
		Sessions:  session.NewManager(),
		Templates: tmpl,
		Log:       log,
	}, nil
}

// Router assembles the chi router with standard logging and panic recovery
// middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleHome)
	r.Get("/simulator", s.handleSimulator)
	r.Post("/simulator/select", s.handleSelectCase)
	r.Post("/simulator/messages", s.handlePostMessage)
	r.Post("/simulator/clear", s.handleClearChat)
	r.Get("/feedback", s.handleFeedbackForm)
	r.Post("/feedback", s.handleFeedbackSubmit)

	return r
}

// caseOption is one entry in the simulator's case selector.
type caseOption struct {
	ID       string
	Label    string
	Selected bool
}

// vitalItem is one named value in the patient-details vitals grid.
type vitalItem struct {
	Label string
	Value string
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, "home.html", struct{ Active string }{"home"})
}

// handleSimulator renders the chat view for the session's active case. If no
// case is selected yet, the first case in the catalog becomes active. An
// empty catalog renders a blocking notice instead of the chat.
func (s *Server) handleSimulator(w http.ResponseWriter, r *http.Request) {
	st := s.Sessions.Get(w, r)

	if len(s.Cases) == 0 {
		s.render(w, "simulator.html", struct {
			Active  string
			NoCases bool
		}{"simulator", true})
		return
	}

	caseID := st.Conversation.CaseID()
	if _, ok := s.Cases[caseID]; !ok {
		caseID = s.CaseIDs[0]
		st.Conversation.SelectCase(caseID)
	}
	record := s.Cases[caseID]

	options := make([]caseOption, 0, len(s.CaseIDs))
	for _, id := range s.CaseIDs {
		c := s.Cases[id]
		options = append(options, caseOption{
			ID:       id,
			Label:    caseLabel(c),
			Selected: id == caseID,
		})
	}

	vitals := make([]vitalItem, 0, len(record.Vitals))
	for _, key := range sortedKeys(record.Vitals) {
		vitals = append(vitals, vitalItem{Label: vitalLabel(key), Value: record.Vitals[key]})
	}

	s.render(w, "simulator.html", struct {
		Active  string
		NoCases bool
		Cases   []caseOption
		Case    pkg.CaseRecord
		Vitals  []vitalItem
		Turns   []pkg.Turn
	}{"simulator", false, options, record, vitals, st.Conversation.Messages()})
}

// handleSelectCase activates the submitted case for this session. Switching
// to a different case clears the transcript so dialogue never leaks between
// patients.
func (s *Server) handleSelectCase(w http.ResponseWriter, r *http.Request) {
	st := s.Sessions.Get(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	caseID := r.FormValue("case_id")
	if _, ok := s.Cases[caseID]; !ok {
		http.Error(w, "unknown case", http.StatusBadRequest)
		return
	}
	st.Conversation.SelectCase(caseID)
	http.Redirect(w, r, "/simulator", http.StatusSeeOther)
}

// handlePostMessage appends the student's message, asks the gateway for the
// patient reply, appends that too, and returns an HTML snippet with both
// bubbles for the transcript. Triggered via HTMX; the call blocks until the
// gateway returns.
func (s *Server) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	st := s.Sessions.Get(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	content := strings.TrimSpace(r.FormValue("content"))
	if content == "" {
		http.Error(w, "empty message", http.StatusBadRequest)
		return
	}
	// No explicit selection yet means the selector default, the first case.
	record, ok := s.Cases[st.Conversation.CaseID()]
	if !ok {
		if len(s.CaseIDs) == 0 {
			http.Error(w, "no cases available", http.StatusBadRequest)
			return
		}
		st.Conversation.SelectCase(s.CaseIDs[0])
		record = s.Cases[s.CaseIDs[0]]
	}

	st.Conversation.AppendUser(content)
	reply := s.Chat.Reply(r.Context(), st.Conversation.Messages(), record)
	st.Conversation.AppendAssistant(reply)

	s.render(w, "messages.html", struct{ Turns []pkg.Turn }{[]pkg.Turn{
		{Role: pkg.RoleUser, Content: content},
		{Role: pkg.RoleAssistant, Content: reply},
	}})
}

// handleClearChat empties the transcript without changing the active case.
func (s *Server) handleClearChat(w http.ResponseWriter, r *http.Request) {
	st := s.Sessions.Get(w, r)
	st.Conversation.Clear()
	http.Redirect(w, r, "/simulator", http.StatusSeeOther)
}

func (s *Server) handleFeedbackForm(w http.ResponseWriter, r *http.Request) {
	s.renderFeedback(w, "", false)
}

// handleFeedbackSubmit appends one feedback row. Whitespace-only feedback is
// rejected with a user-visible message and nothing is written.
func (s *Server) handleFeedbackSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	text := r.FormValue("feedback_text")
	rating := r.FormValue("rating")
	if err := s.Feedback.Save(text, rating); err != nil {
		if errors.Is(err, feedback.ErrEmptyFeedback) {
			s.renderFeedback(w, "Please enter your feedback before submitting.", false)
			return
		}
		s.Log.Error("failed to save feedback", "error", err)
		s.renderFeedback(w, "Something went wrong saving your feedback. Please try again.", false)
		return
	}
	s.renderFeedback(w, "", true)
}

func (s *Server) renderFeedback(w http.ResponseWriter, errMsg string, submitted bool) {
	s.render(w, "feedback.html", struct {
		Active    string
		Ratings   []string
		Error     string
		Submitted bool
	}{"feedback", pkg.Ratings, errMsg, submitted})
}

func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	if err := s.Templates.ExecuteTemplate(w, name, data); err != nil {
		s.Log.Error("template render failed", "template", name, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// caseLabel is the selector text for a case: patient name and complaint.
func caseLabel(c pkg.CaseRecord) string {
	name := c.PatientName
	if name == "" {
		name = "Unknown"
	}
	complaint := c.ChiefComplaint
	if complaint == "" {
		complaint = "Unknown"
	}
	return name + " - " + complaint
}

// vitalLabel turns a snake_case vitals key into a display label.
func vitalLabel(key string) string {
	words := strings.Split(key, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
