package review

import (
	"fmt"
	"strings"
)

// FormatSummary renders the summary issue comment for a review.
func FormatSummary(provider string, result Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## 🤖 AI Code Review (Powered by %s)\n\n", provider)
	b.WriteString(result.Summary)

	if len(result.FileComments) > 0 {
		b.WriteString("\n\n### File-specific Comments\n\n")
		for _, c := range result.FileComments {
			fmt.Fprintf(&b, "**`%s`**", c.Path)
			if c.HasLine() {
				fmt.Fprintf(&b, " (line %d)", *c.Line)
			}
			fmt.Fprintf(&b, ":\n%s\n\n", c.Comment)
		}
	}

	fmt.Fprintf(&b, "\n---\n*This review was generated automatically by the %s AI Code Review Bot.*", provider)
	return b.String()
}

// formatFallback renders an inline comment that could not be anchored as a plain PR comment.
func formatFallback(c FileComment, line int) string {
	return fmt.Sprintf("**%s** (line %d):\n%s", c.Path, line, c.Comment)
}
