// Package llm implements the inference port against any OpenAI-compatible
// chat-completion endpoint (the hosted Llama endpoint in production).
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"experano/internal/domain"
)

type openAIClient struct {
	client *openai.Client
	model  string
}

// NewClient returns an InferenceClient speaking the OpenAI chat-completion
// protocol. baseURL may point at any compatible provider; empty keeps the
// library default.
func NewClient(baseURL, apiKey, model string) (domain.InferenceClient, error) {
	if apiKey == "" {
		return nil, errors.New("inference API key is required")
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &openAIClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

func (c *openAIClient) ChatCompletion(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	converted := make([]openai.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		converted[i] = openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: converted,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", domain.ErrNoReply
	}
	return resp.Choices[0].Message.Content, nil
}
