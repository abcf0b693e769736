package review

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shipitai/prreviewbot/github"
	"github.com/shipitai/prreviewbot/llm"
)

// Engine turns a pull request's changes into a Result using a text generator.
type Engine struct {
	generator llm.Generator
	logger    *slog.Logger
}

// NewEngine creates a review engine. A nil generator yields a disabled engine
// whose Review always returns the zero Result.
func NewEngine(generator llm.Generator, logger *slog.Logger) *Engine {
	return &Engine{
		generator: generator,
		logger:    logger,
	}
}

// Enabled reports whether the engine has a generator configured.
func (e *Engine) Enabled() bool {
	return e.generator != nil
}

// Provider returns the display name of the generator backend, or "" when disabled.
func (e *Engine) Provider() string {
	if e.generator == nil {
		return ""
	}
	return e.generator.Name()
}

// outcome is the tagged result of one generation call: exactly one of text or err is meaningful.
type outcome struct {
	text string
	err  error
}

// Review builds a prompt from the pull request, asks the generator for a review,
// and interprets the reply. A failed generation is reported in the Summary; Review
// itself never fails.
func (e *Engine) Review(ctx context.Context, title, body string, files []github.FileChange) Result {
	if !e.Enabled() {
		e.logger.Error("review engine is not configured, skipping review")
		return Result{}
	}

	prompt := BuildPrompt(title, body, files)
	e.logger.Debug("generating review", "provider", e.generator.Name(), "files", len(files), "prompt_chars", len(prompt))

	out := e.generate(ctx, prompt)
	if out.err != nil {
		e.logger.Error("failed to generate review", "provider", e.generator.Name(), "error", out.err)
		return Result{
			Summary:      fmt.Sprintf("Error generating review: %v", out.err),
			FileComments: []FileComment{},
		}
	}

	return ParseReview(out.text, files)
}

func (e *Engine) generate(ctx context.Context, prompt string) (out outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = outcome{err: fmt.Errorf("generator panicked: %v", r)}
		}
	}()

	text, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		return outcome{err: err}
	}
	return outcome{text: text}
}
