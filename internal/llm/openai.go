package llm

import (
	"context"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// openAIStyleProvider serves any backend speaking the OpenAI chat API.
// Grok exposes an OpenAI-compatible endpoint, so it is the same variant
// with a different base URL and credential.
type openAIStyleProvider struct {
	name        string
	envVar      string
	baseURL     string // empty for api.openai.com
	model       string
	temperature float64
	maxTokens   int
}

func (p *openAIStyleProvider) Name() string { return p.name }

func (p *openAIStyleProvider) Available() bool {
	return os.Getenv(p.envVar) != ""
}

func (p *openAIStyleProvider) Create() (Handle, error) {
	apiKey := os.Getenv(p.envVar)
	if apiKey == "" {
		return nil, nil
	}

	clientCfg := openai.DefaultConfig(apiKey)
	if p.baseURL != "" {
		clientCfg.BaseURL = p.baseURL
	}

	return &chatHandle{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       p.model,
		temperature: float32(p.temperature),
		maxTokens:   p.maxTokens,
	}, nil
}

// chatHandle is a live OpenAI-style chat model.
type chatHandle struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

func (h *chatHandle) Model() string { return h.model }

func (h *chatHandle) Generate(ctx context.Context, messages []Message) (*Response, error) {
	apiMessages := make([]openai.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		apiMessages[i] = openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		}
	}

	resp, err := h.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       h.model,
		Messages:    apiMessages,
		Temperature: h.temperature,
		MaxTokens:   h.maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("model returned no choices")
	}

	return &Response{
		Content:      resp.Choices[0].Message.Content,
		Model:        resp.Model,
		FinishReason: string(resp.Choices[0].FinishReason),
	}, nil
}
