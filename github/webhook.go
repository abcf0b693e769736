package github

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

const (
	// EventPullRequest is the X-GitHub-Event value for pull request events.
	EventPullRequest = "pull_request"

	signaturePrefix = "sha256="
)

// VerifySignature reports whether signatureHeader is the HMAC-SHA256 of payload under secret.
// The header must be in the format "sha256=<hex-encoded-signature>".
//
// An empty secret disables verification and always returns true. This exists for local
// testing only; deployments must configure a secret.
func VerifySignature(secret string, payload []byte, signatureHeader string) bool {
	if secret == "" {
		return true
	}
	if signatureHeader == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := signaturePrefix + hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signatureHeader))
}

// ParsePullRequestEvent parses a pull_request webhook payload.
// Missing optional objects decode to nil; callers check them before use.
func ParsePullRequestEvent(payload []byte) (*WebhookEvent, error) {
	var event WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to parse webhook payload: %w", err)
	}
	return &event, nil
}

// ShouldProcess determines if the event should trigger a review.
// Returns true for pull_request events with actions: opened, synchronize, reopened.
func ShouldProcess(eventType, action string) bool {
	if eventType != EventPullRequest {
		return false
	}

	switch action {
	case "opened", "synchronize", "reopened":
		return true
	default:
		return false
	}
}
