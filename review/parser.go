package review

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/shipitai/prreviewbot/github"
)

// MaxInlineCommentChars caps the text attached to the file comment produced by ParseReview.
const MaxInlineCommentChars = 500

// ParseReview interprets a free-form markdown review. The scan is a heuristic:
//
//   - a line containing "File:" or "**" that mentions one of the changed filenames
//     makes that file current (first match in files order);
//   - a line containing "line" (any case) and a digit makes its first all-digit
//     word the current line number.
//
// When a file was identified, the result carries exactly one FileComment for the
// last file and line seen, holding the whole review cut to MaxInlineCommentChars.
// Summary is always the full text.
func ParseReview(text string, files []github.FileChange) Result {
	var currentFile string
	var currentLine *int

	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, "File:") || strings.Contains(line, "**") {
			for _, f := range files {
				if f.Filename != "" && strings.Contains(line, f.Filename) {
					currentFile = f.Filename
					break
				}
			}
		}

		if strings.Contains(strings.ToLower(line), "line") && strings.IndexFunc(line, unicode.IsDigit) >= 0 {
			if n, ok := firstNumber(line); ok {
				currentLine = &n
			}
		}
	}

	result := Result{
		Summary:      text,
		FileComments: []FileComment{},
	}
	if currentFile != "" {
		result.FileComments = append(result.FileComments, FileComment{
			Path:    currentFile,
			Line:    currentLine,
			Comment: truncateRunes(text, MaxInlineCommentChars),
		})
	}

	return result
}

// firstNumber returns the first whitespace-separated word made only of ASCII digits.
func firstNumber(line string) (int, bool) {
	for _, word := range strings.Fields(line) {
		if !isDigits(word) {
			continue
		}
		n, err := strconv.Atoi(word)
		if err != nil {
			continue // overflow
		}
		return n, true
	}
	return 0, false
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
