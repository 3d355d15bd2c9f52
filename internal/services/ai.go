package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

var (
	ErrAINotConfigured = errors.New("AI service is not configured")
	ErrAIEmptyReply    = errors.New("no response from AI service")
)

// AIService relays a single chat message to the external generative-model
// API. No conversation state is kept server-side.
type AIService struct {
	client *openai.Client
}

func NewAIService(apiKey string) *AIService {
	if apiKey == "" {
		return &AIService{}
	}
	return &AIService{client: openai.NewClient(apiKey)}
}

// NewAIServiceWithConfig builds the service against a custom client config,
// used by tests to point at a fake upstream.
func NewAIServiceWithConfig(cfg openai.ClientConfig) *AIService {
	return &AIService{client: openai.NewClientWithConfig(cfg)}
}

// Configured reports whether a backing API key was provided.
func (s *AIService) Configured() bool {
	return s.client != nil
}

// Relay forwards the message and returns the raw reply text.
func (s *AIService) Relay(ctx context.Context, message string) (string, error) {
	if s.client == nil {
		return "", ErrAINotConfigured
	}

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4oMini,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: message,
				},
			},
		},
	)
	if err != nil {
		return "", fmt.Errorf("AI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrAIEmptyReply
	}

	return resp.Choices[0].Message.Content, nil
}
