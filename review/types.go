package review

// Result is the outcome of one review. The zero value means no review was produced
// (the reviewer is disabled) and nothing should be published.
type Result struct {
	// Summary is the full model reply, or an error message when generation failed.
	Summary string
	// FileComments holds best-effort file-level feedback. It may be empty.
	FileComments []FileComment
}

// IsEmpty reports whether the result carries nothing to publish.
func (r Result) IsEmpty() bool {
	return r.Summary == "" && len(r.FileComments) == 0
}

// FileComment is feedback attached to a file, optionally at a specific line.
type FileComment struct {
	Path    string
	Line    *int // nil when no line number was identified
	Comment string
}

// HasLine reports whether the comment is anchored to a real (1-based) line.
func (c FileComment) HasLine() bool {
	return c.Line != nil && *c.Line > 0
}
