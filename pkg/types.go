package pkg

import "time"

// CaseRecord describes one simulated patient encounter. Records are loaded
// from static JSON files at startup and are read-only afterwards, so a single
// catalog is safely shared across browser sessions. Missing fields fall back
// to documented defaults when the persona prompt is built rather than failing
// the load.
type CaseRecord struct {
	CaseID             string            `json:"case_id"`
	PatientName        string            `json:"patient_name"`
	Age                int               `json:"age"`
	Gender             string            `json:"gender"`
	ChiefComplaint     string            `json:"chief_complaint"`
	PresentingHistory  string            `json:"presenting_history"`
	PastMedicalHistory []string          `json:"past_medical_history"`
	SocialHistory      string            `json:"social_history"`
	Allergies          string            `json:"allergies"`
	Vitals             map[string]string `json:"vitals"`
	SinglishLevel      string            `json:"singlish_level"`
	ScriptInstructions string            `json:"script_instructions"`
	// SecretInfo is revealed only on targeted questioning. This is a
	// prompt-level instruction to the model, not an enforced barrier.
	SecretInfo string `json:"secret_info"`
}

// TurnRole describes who authored a conversation turn.
type TurnRole string

const (
	RoleUser      TurnRole = "user"
	RoleAssistant TurnRole = "assistant"
)

// Turn is one message in a conversation. Turns are append-only within a
// session and are discarded wholesale on case change or explicit clear.
type Turn struct {
	Role    TurnRole `json:"role"`
	Content string   `json:"content"`
}

// Rating labels accepted by the feedback sink. Exactly these five values.
const (
	RatingVeryPoor  = "Very Poor"
	RatingPoor      = "Poor"
	RatingAverage   = "Average"
	RatingGood      = "Good"
	RatingExcellent = "Excellent"
)

// Ratings lists the labels in ascending order for the feedback form.
var Ratings = []string{RatingVeryPoor, RatingPoor, RatingAverage, RatingGood, RatingExcellent}

// ValidRating reports whether label is one of the five fixed rating labels.
func ValidRating(label string) bool {
	for _, r := range Ratings {
		if r == label {
			return true
		}
	}
	return false
}

// FeedbackEntry is one submitted feedback row. Write-once, appended to the
// feedback CSV, never updated or deleted.
type FeedbackEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Feedback  string    `json:"feedback"`
	Rating    string    `json:"rating"`
}
