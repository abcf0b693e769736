// Package llm provides the generative-text backends used for code reviews.
package llm

import (
	"context"
	"errors"
	"fmt"
)

const (
	// ProviderGemini selects Google's Gemini API.
	ProviderGemini = "gemini"
	// ProviderAnthropic selects Anthropic's Claude API.
	ProviderAnthropic = "anthropic"
)

var (
	// ErrEmptyResponse indicates the model replied without any text.
	ErrEmptyResponse = errors.New("no text content in model response")
	// ErrMissingAPIKey indicates no API key was supplied for the provider.
	ErrMissingAPIKey = errors.New("API key is empty")
)

// Generator turns a single prompt into a single text reply.
// Implementations keep no conversation state between calls.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	// Name is the human-readable provider label used in posted comments.
	Name() string
}

// Options selects and configures a Generator.
type Options struct {
	Provider string
	APIKey   string
	Model    string
	// BaseURL overrides the provider endpoint. Empty uses the provider default.
	BaseURL string
}

// New creates the Generator described by opts.
func New(ctx context.Context, opts Options) (Generator, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("%s: %w", opts.Provider, ErrMissingAPIKey)
	}

	switch opts.Provider {
	case ProviderGemini, "":
		return NewGemini(ctx, opts.APIKey, opts.Model, opts.BaseURL)
	case ProviderAnthropic:
		return NewAnthropic(opts.APIKey, opts.Model, opts.BaseURL), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", opts.Provider)
	}
}

// ExtractKeyHint returns the last 4 characters of an API key for display purposes.
func ExtractKeyHint(apiKey string) string {
	if len(apiKey) < 4 {
		return "****"
	}
	return apiKey[len(apiKey)-4:]
}
