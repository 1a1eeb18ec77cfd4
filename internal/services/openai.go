package services

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

type openAICompleter struct {
	client *openai.Client
	model  string
}

func newOpenAICompleter(apiKey, model string) (*openAICompleter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
	}
	return &openAICompleter{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

func (c *openAICompleter) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai completion: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}
