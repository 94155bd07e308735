package core

import (
	"context"
	"fmt"

	"osce-simulator/internal/llm"
	"osce-simulator/pkg"
)

// Sampling policy for patient replies. Fixed constants, not user
// configurable: 300 tokens keeps replies patient-sized and 0.7 balances
// persona consistency with conversational variety.
const (
	replyMaxTokens   = 300
	replyTemperature = 0.7
)

// ChatService is the gateway between a conversation and the completion API.
// It builds the persona prompt for the active case, sends it with the full
// turn history, and never surfaces an error to the caller: any failure
// becomes a fixed in-character fallback so the chat UI always has displayable
// text.
type ChatService struct {
	LLM llm.Client
}

// NewChatService constructs a ChatService around the given completion client.
func NewChatService(client llm.Client) *ChatService {
	return &ChatService{LLM: client}
}

// Reply produces the simulated patient's next line for the given turn
// history. A single call, no retries: on any failure the returned string is
// the apologetic fallback embedding the raw error for operator diagnosis.
func (s *ChatService) Reply(ctx context.Context, turns []pkg.Turn, caseRecord pkg.CaseRecord) string {
	messages := make([]llm.Message, 0, len(turns)+1)
	messages = append(messages, llm.Message{
		Role:    "system",
		Content: BuildSystemPrompt(caseRecord),
	})
	for _, t := range turns {
		messages = append(messages, llm.Message{Role: string(t.Role), Content: t.Content})
	}

	reply, err := s.LLM.Chat(ctx, messages, llm.Options{
		MaxTokens:   replyMaxTokens,
		Temperature: replyTemperature,
	})
	if err != nil {
		return fmt.Sprintf("I'm sorry, I'm having trouble responding right now. (Error: %s)", err)
	}
	return reply
}
