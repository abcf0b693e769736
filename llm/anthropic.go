package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultAnthropicModel is the Claude model used for code reviews.
const DefaultAnthropicModel = "claude-sonnet-4-20250514"

// Anthropic implements Generator for Anthropic's Claude API.
type Anthropic struct {
	client *anthropic.Client
	model  string
}

// NewAnthropic creates a Claude generator. An empty model means DefaultAnthropicModel.
// SDK-level retries are turned off; a failed call surfaces immediately.
func NewAnthropic(apiKey, model, baseURL string) *Anthropic {
	if model == "" {
		model = DefaultAnthropicModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &Anthropic{
		client: anthropic.NewClient(opts...),
		model:  model,
	}
}

func (a *Anthropic) Name() string { return "Claude" }

// Generate sends prompt as one user message and returns the first text block.
func (a *Anthropic) Generate(ctx context.Context, prompt string) (string, error) {
	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.F(anthropic.Model(a.model)),
		MaxTokens: anthropic.F(int64(4096)),
		Messages: anthropic.F([]anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		}),
	})
	if err != nil {
		return "", fmt.Errorf("Claude API error: %w", err)
	}

	for _, block := range message.Content {
		if block.Type == anthropic.ContentBlockTypeText && block.Text != "" {
			return block.Text, nil
		}
	}

	return "", ErrEmptyResponse
}
