package llm

import (
	"context"
	"fmt"
)

const checkPrompt = "Say 'Hello, GitHub Bot!' if you can read this."

// Check verifies the generator works by making a minimal call.
// It returns the reply trimmed to 100 characters.
func Check(ctx context.Context, g Generator) (string, error) {
	reply, err := g.Generate(ctx, checkPrompt)
	if err != nil {
		return "", fmt.Errorf("%s connection check failed: %w", g.Name(), err)
	}

	runes := []rune(reply)
	if len(runes) > 100 {
		reply = string(runes[:100])
	}
	return reply, nil
}
