package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/shipitai/prreviewbot/config"
	"github.com/shipitai/prreviewbot/github"
	"github.com/shipitai/prreviewbot/llm"
	"github.com/shipitai/prreviewbot/review"
	"github.com/shipitai/prreviewbot/server"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the webhook server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.loadConfig(os.Stdout)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, logger)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	gen, err := llm.New(ctx, cfg.LLMOptions())
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	logger.Info("LLM configured",
		"provider", cfg.LLM.Provider,
		"model", cfg.Model(),
		"key_hint", llm.ExtractKeyHint(cfg.APIKey()),
	)

	if cfg.GitHub.AppID == 0 {
		logger.Warn("GITHUB_APP_ID not set, GitHub authentication will fail")
	}

	srv := server.New(server.Options{
		WebhookSecret: cfg.GitHub.WebhookSecret,
		Clients:       github.NewClientFactory(cfg.GitHub.AppID, cfg.KeySource(), cfg.GitHub.APIURL, logger),
		Engine:        review.NewEngine(gen, logger),
		Publisher:     review.NewPublisher(gen.Name(), logger),
	}, logger)

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}
