// Package server exposes the webhook endpoint that drives pull request reviews.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shipitai/prreviewbot/github"
	"github.com/shipitai/prreviewbot/review"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "github-pr-review-bot"

// ClientFactory creates a GitHub client authenticated for one installation.
type ClientFactory interface {
	CreateClient(ctx context.Context, installationID int64) (*github.Client, error)
}

// Options are the collaborators a Server dispatches to.
type Options struct {
	// WebhookSecret empty disables signature verification.
	WebhookSecret string
	Clients       ClientFactory
	Engine        *review.Engine
	Publisher     *review.Publisher
}

// Server routes inbound webhooks through authentication, review, and publishing.
type Server struct {
	webhookSecret string
	clients       ClientFactory
	engine        *review.Engine
	publisher     *review.Publisher
	logger        *slog.Logger
	router        *gin.Engine
}

// New creates a Server and registers its routes.
func New(opts Options, logger *slog.Logger) *Server {
	s := &Server{
		webhookSecret: opts.WebhookSecret,
		clients:       opts.Clients,
		engine:        opts.Engine,
		publisher:     opts.Publisher,
		logger:        logger,
	}

	if s.webhookSecret == "" {
		logger.Warn("GITHUB_WEBHOOK_SECRET not set, webhook signature verification is disabled")
	}

	r := gin.New()
	r.Use(gin.CustomRecovery(s.handlePanic), RequestLogger(logger))
	r.GET("/health", s.handleHealth)
	r.POST("/webhook", s.handleWebhook)
	s.router = r

	return s
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handlePanic(c *gin.Context, recovered any) {
	s.logger.Error("panic while handling request", "path", c.Request.URL.Path, "panic", recovered)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprint(recovered)})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": ServiceName})
}
