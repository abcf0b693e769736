// Command prbot is a GitHub App that reviews pull requests with an LLM.
//
// Usage:
//
//	prbot serve              # run the webhook server
//	prbot check              # verify the LLM provider is reachable
//	prbot sample             # review a built-in sample pull request and print the result
//
// Configuration is read from an optional YAML file (--config or $PRBOT_CONFIG),
// a .env file in the working directory, and the environment:
//
//	LLM_PROVIDER            - gemini (default) or anthropic
//	GEMINI_API_KEY          - Gemini API key (required for gemini)
//	ANTHROPIC_API_KEY       - Anthropic API key (required for anthropic)
//	GITHUB_APP_ID           - GitHub App ID
//	GITHUB_PRIVATE_KEY_B64  - GitHub App private key, base64-encoded PEM
//	GITHUB_PRIVATE_KEY_PATH - path to the GitHub App private key
//	GITHUB_WEBHOOK_SECRET   - webhook signature secret (verification disabled when unset)
//	HOST, PORT              - listen address (default 0.0.0.0:3000)
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
