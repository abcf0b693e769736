package review

import (
	"context"
	"log/slog"
)

// Target is where a review is published, typically one pull request.
type Target interface {
	// CreateIssueComment posts a comment on the pull request conversation.
	CreateIssueComment(ctx context.Context, body string) error
	// CreateReviewComment posts a comment anchored to a line of the head commit.
	CreateReviewComment(ctx context.Context, path string, line int, body string) error
}

// Publisher posts review results as pull request comments.
type Publisher struct {
	provider string
	logger   *slog.Logger
}

// NewPublisher creates a publisher that labels summaries with the given provider name.
func NewPublisher(provider string, logger *slog.Logger) *Publisher {
	return &Publisher{
		provider: provider,
		logger:   logger,
	}
}

// Publish posts the summary and any line-anchored comments. Failures are logged and
// never stop the remaining posts; an inline comment the platform rejects is re-posted
// once as a plain comment.
func (p *Publisher) Publish(ctx context.Context, target Target, result Result) {
	if result.IsEmpty() {
		return
	}

	if err := target.CreateIssueComment(ctx, FormatSummary(p.provider, result)); err != nil {
		p.logger.Error("failed to post review summary", "error", err)
	}

	var inline, fallbacks int
	for _, c := range result.FileComments {
		if c.Path == "" || !c.HasLine() {
			continue
		}
		line := *c.Line

		if err := target.CreateReviewComment(ctx, c.Path, line, c.Comment); err != nil {
			p.logger.Warn("failed to post inline comment, falling back to PR comment",
				"path", c.Path, "line", line, "error", err)
			fallbacks++
			if err := target.CreateIssueComment(ctx, formatFallback(c, line)); err != nil {
				p.logger.Error("failed to post fallback comment", "path", c.Path, "line", line, "error", err)
			}
			continue
		}
		inline++
	}

	p.logger.Info("review published", "file_comments", len(result.FileComments), "inline", inline, "fallbacks", fallbacks)
}
