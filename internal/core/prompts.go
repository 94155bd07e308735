package core

import (
	"fmt"
	"strings"

	"osce-simulator/pkg"
)

// prompts.go holds the persona prompt construction for the simulated patient.
// Keeping the prompt text in one file makes it easy to tune without touching
// the rest of the code.

// Defaults substituted for missing case fields. The prompt builder never
// fails on an incomplete record.
const (
	defaultPatientName  = "Patient"
	defaultAge          = "Unknown"
	defaultGender       = "Unknown"
	defaultComplaint    = "Not specified"
	defaultHistory      = "Not provided"
	defaultSocial       = "Not provided"
	defaultAllergies    = "No known allergies"
	defaultInstructions = "Act as a cooperative patient."
	defaultSecret       = "None"
)

// behavioralRules is the fixed rule block appended to every persona prompt.
const behavioralRules = `IMPORTANT RULES:
1. Stay in character at all times as the patient
2. Only provide information when asked - don't volunteer everything at once
3. Show appropriate emotions (pain, anxiety, etc.) based on your condition
4. If asked about vitals or examination findings, say "The doctor/nurse can check that"
5. Do not diagnose yourself or suggest what condition you might have
6. Respond naturally as a real patient would - be conversational
7. Keep responses concise (1-3 sentences usually) unless the question requires more detail
8. If the student asks something inappropriate or off-topic, redirect politely as a patient would`

// Language-style directives per Singlish intensity tier.
const (
	singlishHigh = "Use heavy Singlish expressions naturally. Include common phrases like 'lah', 'leh', 'lor', 'sia', 'can or not', 'how come', 'aiyo', 'walao'. " +
		"Mix English with occasional Chinese/Malay words. Speak in a very casual, local Singaporean manner."
	singlishModerate = "Use moderate Singlish. Include occasional 'lah', 'leh', 'lor' at the end of sentences. " +
		"Speak in a casual but understandable Singaporean English style. Don't overdo the slang."
	singlishLow = "Speak in standard English with minimal Singlish. You may occasionally use 'lah' or 'okay' in a Singaporean way, " +
		"but keep the language clear and professional."
)

// SinglishInstruction maps an intensity level to its language-style
// directive. Anything other than "high" or "moderate" gets the low tier.
func SinglishInstruction(level string) string {
	switch level {
	case "high":
		return singlishHigh
	case "moderate":
		return singlishModerate
	default:
		return singlishLow
	}
}

// BuildSystemPrompt assembles the instruction payload that turns a case
// record into a bounded patient persona. It is a pure function: missing
// fields degrade to the documented defaults and the section order is fixed.
// The secret information block is a narrative constraint enforced by the
// model, not by this code.
func BuildSystemPrompt(c pkg.CaseRecord) string {
	age := defaultAge
	if c.Age > 0 {
		age = fmt.Sprintf("%d", c.Age)
	}
	history := c.PastMedicalHistory
	if len(history) == 0 {
		history = []string{defaultHistory}
	}

	var b strings.Builder
	b.WriteString("You are a standardized patient in an OSCE (Objective Structured Clinical Examination) simulation for medical students.\n\n")
	b.WriteString("CHARACTER PROFILE:\n")
	fmt.Fprintf(&b, "- Name: %s\n", orDefault(c.PatientName, defaultPatientName))
	fmt.Fprintf(&b, "- Age: %s years old\n", age)
	fmt.Fprintf(&b, "- Gender: %s\n", orDefault(c.Gender, defaultGender))
	fmt.Fprintf(&b, "- Chief Complaint: %s\n\n", orDefault(c.ChiefComplaint, defaultComplaint))
	fmt.Fprintf(&b, "PRESENTING HISTORY:\n%s\n\n", orDefault(c.PresentingHistory, defaultHistory))
	fmt.Fprintf(&b, "PAST MEDICAL HISTORY:\n%s\n\n", strings.Join(history, "\n"))
	fmt.Fprintf(&b, "SOCIAL HISTORY:\n%s\n\n", orDefault(c.SocialHistory, defaultSocial))
	fmt.Fprintf(&b, "ALLERGIES:\n%s\n\n", orDefault(c.Allergies, defaultAllergies))
	fmt.Fprintf(&b, "ACTING INSTRUCTIONS:\n%s\n\n", orDefault(c.ScriptInstructions, defaultInstructions))
	fmt.Fprintf(&b, "SECRET INFORMATION (only reveal if directly asked relevant questions):\n%s\n\n", orDefault(c.SecretInfo, defaultSecret))
	fmt.Fprintf(&b, "LANGUAGE STYLE:\n%s\n\n", SinglishInstruction(c.SinglishLevel))
	b.WriteString(behavioralRules)
	return b.String()
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
