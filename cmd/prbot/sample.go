package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shipitai/prreviewbot/github"
	"github.com/shipitai/prreviewbot/llm"
	"github.com/shipitai/prreviewbot/review"
)

const (
	sampleTitle = "Add user authentication"
	sampleBody  = "This PR adds user authentication functionality"
)

var sampleFiles = []github.FileChange{
	{
		Filename:  "auth.py",
		Status:    "added",
		Additions: 4,
		Deletions: 0,
		Changes:   4,
		Patch: `@@ -0,0 +1,4 @@
+def login(username, password):
+    if username == "admin" and password == "password":
+        return True
+    return False`,
	},
}

func newSampleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Review a built-in sample pull request and print the summary comment",
		Long:  "Runs the review engine against a small sample pull request and prints the comment that would be posted. Nothing is sent to GitHub.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.loadConfig(os.Stderr)
			if err != nil {
				return err
			}

			gen, err := llm.New(cmd.Context(), cfg.LLMOptions())
			if err != nil {
				return err
			}

			result := review.NewEngine(gen, logger).Review(cmd.Context(), sampleTitle, sampleBody, sampleFiles)
			fmt.Fprintln(cmd.OutOrStdout(), review.FormatSummary(gen.Name(), result))
			return nil
		},
	}
}
