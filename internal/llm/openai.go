package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Message is a minimal chat message passed to the completion API.
// Role must be one of: "system", "user", or "assistant".
type Message struct {
	Role    string
	Content string
}

// Options carries the per-call sampling policy. The caller owns these values;
// the client applies them verbatim.
type Options struct {
	MaxTokens   int
	Temperature float32
}

// Client defines the completion call required by the chat gateway.
// Chat accepts the full message history (system + prior turns + latest user).
type Client interface {
	Chat(ctx context.Context, messages []Message, opts Options) (string, error)
}

// OpenAIClient calls the OpenAI chat completion API. A missing API key is not
// a construction error: it surfaces as a failed call the first time a
// completion is attempted, which the gateway converts to its fallback reply.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient constructs an OpenAI-backed client for the given
// credentials and model.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Chat sends the message history to the chat completion API and returns the
// assistant's response text.
func (c *OpenAIClient) Chat(ctx context.Context, messages []Message, opts Options) (string, error) {
	if c.client == nil {
		return "", errors.New("openai client not initialized")
	}

	oaMsgs := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		role := m.Role
		if role != openai.ChatMessageRoleSystem && role != openai.ChatMessageRoleUser && role != openai.ChatMessageRoleAssistant {
			// coerce anything unknown to user
			role = openai.ChatMessageRoleUser
		}
		oaMsgs = append(oaMsgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    oaMsgs,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
