package review

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/shipitai/prreviewbot/github"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubGenerator struct {
	reply  string
	err    error
	panics bool

	calls   int
	prompts []string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.calls++
	s.prompts = append(s.prompts, prompt)
	if s.panics {
		panic("backend exploded")
	}
	return s.reply, s.err
}

func (s *stubGenerator) Name() string { return "Stub" }

func TestEngineReview(t *testing.T) {
	files := []github.FileChange{
		{Filename: "auth.py", Status: "added", Additions: 3, Patch: "+def login(): pass"},
	}

	t.Run("successful generation is parsed", func(t *testing.T) {
		gen := &stubGenerator{reply: "## Review\n**File: auth.py**\nline 2 hardcodes a password"}
		engine := NewEngine(gen, discardLogger())

		got := engine.Review(context.Background(), "Add login", "body", files)

		if gen.calls != 1 {
			t.Fatalf("Generate calls = %d, want 1", gen.calls)
		}
		if gen.prompts[0] != BuildPrompt("Add login", "body", files) {
			t.Error("Generate received an unexpected prompt")
		}
		if got.Summary != gen.reply {
			t.Errorf("Summary = %q, want reply", got.Summary)
		}
		if len(got.FileComments) != 1 || got.FileComments[0].Path != "auth.py" || *got.FileComments[0].Line != 2 {
			t.Errorf("FileComments = %+v", got.FileComments)
		}
	})

	t.Run("generation error degrades to error summary", func(t *testing.T) {
		gen := &stubGenerator{err: errors.New("quota exceeded")}
		engine := NewEngine(gen, discardLogger())

		got := engine.Review(context.Background(), "Add login", "", files)

		if got.Summary != "Error generating review: quota exceeded" {
			t.Errorf("Summary = %q", got.Summary)
		}
		if got.FileComments == nil || len(got.FileComments) != 0 {
			t.Errorf("FileComments = %#v, want empty non-nil slice", got.FileComments)
		}
	})

	t.Run("generator panic degrades to error summary", func(t *testing.T) {
		engine := NewEngine(&stubGenerator{panics: true}, discardLogger())

		got := engine.Review(context.Background(), "Add login", "", files)

		if !strings.HasPrefix(got.Summary, "Error generating review: ") || !strings.Contains(got.Summary, "backend exploded") {
			t.Errorf("Summary = %q", got.Summary)
		}
	})

	t.Run("disabled engine returns empty result", func(t *testing.T) {
		engine := NewEngine(nil, discardLogger())
		if engine.Enabled() {
			t.Fatal("Enabled() = true for nil generator")
		}
		if engine.Provider() != "" {
			t.Errorf("Provider() = %q, want empty", engine.Provider())
		}

		got := engine.Review(context.Background(), "Add login", "", files)
		if !got.IsEmpty() {
			t.Errorf("Review() = %+v, want empty result", got)
		}
	})
}

func TestEngineProvider(t *testing.T) {
	engine := NewEngine(&stubGenerator{}, discardLogger())
	if !engine.Enabled() {
		t.Error("Enabled() = false with generator")
	}
	if engine.Provider() != "Stub" {
		t.Errorf("Provider() = %q, want Stub", engine.Provider())
	}
}
