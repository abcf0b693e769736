package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shipitai/prreviewbot/github"
)

const (
	headerEvent     = "X-GitHub-Event"
	headerSignature = "X-Hub-Signature-256"
)

var (
	statusProcessed = gin.H{"status": "processed"}
	statusIgnored   = gin.H{"status": "ignored"}
)

func (s *Server) handleWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		s.logger.Error("failed to read webhook body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	if !github.VerifySignature(s.webhookSecret, payload, c.GetHeader(headerSignature)) {
		s.logger.Warn("invalid webhook signature")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
		return
	}

	eventType := c.GetHeader(headerEvent)
	s.logger.Info("received webhook", "event", eventType, "size", len(payload))

	if eventType != github.EventPullRequest {
		c.JSON(http.StatusOK, statusIgnored)
		return
	}

	event, err := github.ParsePullRequestEvent(payload)
	if err != nil {
		s.logger.Error("failed to parse webhook payload", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	s.logger.Info("pull request event", "action", event.Action)
	if !github.ShouldProcess(eventType, event.Action) {
		c.JSON(http.StatusOK, statusIgnored)
		return
	}

	installationID, ok := event.InstallationID()
	if !ok {
		s.logger.Error("no installation ID in webhook payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "No installation ID"})
		return
	}

	// The sender may hang up before the review finishes; the pipeline still runs to completion.
	ctx := context.WithoutCancel(c.Request.Context())
	if err := s.reviewPullRequest(ctx, installationID, event); err != nil {
		s.logger.Error("failed to process pull request review", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, statusProcessed)
}

// reviewPullRequest runs the review pipeline for one event. Authentication failures
// abort the review without an error; fetch failures are returned.
func (s *Server) reviewPullRequest(ctx context.Context, installationID int64, event *github.WebhookEvent) error {
	var repoFullName string
	var number int
	if event.PullRequest != nil {
		repoFullName = event.PullRequest.RepoFullName()
		number = event.PullRequest.Number
	}
	if number == 0 {
		number = event.Number
	}

	logger := s.logger.With("repo", repoFullName, "pr", number, "installation_id", installationID)
	logger.Info("reviewing pull request")

	client, err := s.clients.CreateClient(ctx, installationID)
	if err != nil {
		if errors.Is(err, github.ErrCredentialUnavailable) || errors.Is(err, github.ErrAuthExchangeFailed) {
			logger.Error("failed to create GitHub client, skipping review", "error", err)
			return nil
		}
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}

	pr, err := client.GetPullRequest(ctx, repoFullName, number)
	if err != nil {
		return err
	}

	files, err := client.ListFiles(ctx, repoFullName, number)
	if err != nil {
		return err
	}
	logger.Info("found changed files", "count", len(files))

	result := s.engine.Review(ctx, pr.Title, pr.Body, files)
	if result.IsEmpty() {
		logger.Info("no review generated")
		return nil
	}

	target, err := client.PullRequest(pr)
	if err != nil {
		return err
	}
	s.publisher.Publish(ctx, target, result)

	return nil
}
