// Package review builds review prompts, interprets model replies, and publishes the feedback.
package review

import (
	"fmt"
	"strings"

	"github.com/shipitai/prreviewbot/github"
)

const (
	// MaxPatchChars caps how much of each file's diff goes into the prompt.
	MaxPatchChars = 5000

	// TruncationMarker is appended after a diff that was cut at MaxPatchChars.
	TruncationMarker = "[... diff truncated ...]"
)

const promptHeaderTemplate = `You are an expert code reviewer. Review the following pull request and provide constructive feedback.

Pull Request Title: %s

Pull Request Description:
%s

Changed Files:
`

const promptInstructions = `
Please provide a comprehensive code review with the following structure:

1. **Overall Assessment**: Brief summary of the PR
2. **Strengths**: What was done well
3. **Issues Found**: List any bugs, security issues, performance problems, or code quality concerns
4. **Suggestions**: Recommendations for improvement
5. **File-specific Comments**: For each file with issues, provide:
   - File path
   - Line number (if applicable)
   - Specific comment

Format your response clearly with markdown. Be constructive and professional.
`

// BuildPrompt constructs the review prompt for a pull request.
// Files without a patch (binary or omitted by the API) contribute only their metadata.
func BuildPrompt(title, body string, files []github.FileChange) string {
	var b strings.Builder
	fmt.Fprintf(&b, promptHeaderTemplate, title, body)

	for _, f := range files {
		fmt.Fprintf(&b, "\n--- File: %s (%s) ---\n", f.Filename, f.Status)
		fmt.Fprintf(&b, "Additions: +%d, Deletions: -%d\n", f.Additions, f.Deletions)

		if f.Patch == "" {
			continue
		}
		patch, truncated := truncatePatch(f.Patch, MaxPatchChars)
		fmt.Fprintf(&b, "\nDiff:\n%s\n", patch)
		if truncated {
			b.WriteString("\n" + TruncationMarker + "\n")
		}
	}

	b.WriteString(promptInstructions)
	return b.String()
}

// truncatePatch returns the first max characters of patch and whether anything was cut.
func truncatePatch(patch string, max int) (string, bool) {
	runes := []rune(patch)
	if len(runes) <= max {
		return patch, false
	}
	return string(runes[:max]), true
}
