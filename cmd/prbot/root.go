package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shipitai/prreviewbot/config"
)

type rootOptions struct {
	configPath string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "prbot",
		Short:        "AI pull request review bot for GitHub",
		Long:         "prbot receives GitHub pull request webhooks, reviews the diff with an LLM, and posts the feedback as comments.",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file (default $"+config.ConfigFileEnv+")")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging in text format")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(newSampleCmd(opts))

	return cmd
}

// loadConfig loads and validates the configuration, then builds the process logger.
func (o *rootOptions) loadConfig(logOutput io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	if o.debug {
		cfg.Log.Level = "debug"
		cfg.Log.Format = config.LogFormatText
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger, err := newLogger(cfg.Log, logOutput)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func newLogger(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(cfg.Level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if cfg.Format == config.LogFormatText {
		return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
	}
	return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
}
