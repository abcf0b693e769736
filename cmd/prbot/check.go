package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shipitai/prreviewbot/llm"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the configured LLM provider responds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.loadConfig(io.Discard)
			if err != nil {
				return err
			}

			gen, err := llm.New(cmd.Context(), cfg.LLMOptions())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Testing %s API connection (key ...%s)...\n", gen.Name(), llm.ExtractKeyHint(cfg.APIKey()))
			reply, err := llm.Check(cmd.Context(), gen)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s API connection successful\nResponse: %s\n", gen.Name(), reply)
			return nil
		},
	}
}
