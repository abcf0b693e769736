package github

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
)

// DefaultBaseURL is the public GitHub REST API endpoint.
const DefaultBaseURL = "https://api.github.com/"

var (
	// ErrCredentialUnavailable indicates neither the base64 key nor the key file yielded a private key.
	ErrCredentialUnavailable = errors.New("no GitHub App private key available")
	// ErrAuthExchangeFailed indicates the installation access token exchange failed.
	ErrAuthExchangeFailed = errors.New("installation token exchange failed")
)

// KeySource describes where the GitHub App private key comes from.
// Base64 is tried first, then Path.
type KeySource struct {
	Base64 string
	Path   string
}

// ClientFactory exchanges an installation id for a short-lived access token
// and builds a REST client authenticated with it.
type ClientFactory struct {
	appID     int64
	keys      KeySource
	baseURL   string
	transport http.RoundTripper
	logger    *slog.Logger
}

// NewClientFactory creates a client factory for the given GitHub App.
// An empty baseURL means DefaultBaseURL.
func NewClientFactory(appID int64, keys KeySource, baseURL string, logger *slog.Logger) *ClientFactory {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &ClientFactory{
		appID:     appID,
		keys:      keys,
		baseURL:   baseURL,
		transport: http.DefaultTransport,
		logger:    logger,
	}
}

// CreateClient performs exactly one token exchange for installationID and returns
// a client holding that token. Tokens are neither cached nor refreshed.
func (f *ClientFactory) CreateClient(ctx context.Context, installationID int64) (*Client, error) {
	privateKey, err := f.resolvePrivateKey()
	if err != nil {
		return nil, err
	}

	itr, err := ghinstallation.New(f.transport, f.appID, installationID, privateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create installation transport: %v", ErrAuthExchangeFailed, err)
	}
	itr.BaseURL = strings.TrimSuffix(f.baseURL, "/")

	token, err := itr.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthExchangeFailed, err)
	}

	client, err := newClient(token, f.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}
	return client, nil
}

// resolvePrivateKey returns the PEM private key, preferring the base64 value over the file path.
func (f *ClientFactory) resolvePrivateKey() ([]byte, error) {
	if f.keys.Base64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(f.keys.Base64))
		if err != nil {
			f.logger.Warn("failed to decode base64 private key", "error", err)
		} else if len(decoded) > 0 {
			f.logger.Debug("using private key from base64 value")
			return decoded, nil
		}
	}

	if f.keys.Path != "" {
		key, err := os.ReadFile(f.keys.Path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			f.logger.Error("private key file not found", "path", f.keys.Path)
		case err != nil:
			f.logger.Error("failed to read private key file", "path", f.keys.Path, "error", err)
		case len(key) > 0:
			f.logger.Debug("using private key from file", "path", f.keys.Path)
			return key, nil
		}
	}

	return nil, ErrCredentialUnavailable
}
