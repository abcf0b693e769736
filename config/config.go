// Package config loads the bot's process configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/shipitai/prreviewbot/github"
	"github.com/shipitai/prreviewbot/llm"
)

const (
	// DefaultDotEnvPath is the dotenv file read from the working directory, if present.
	DefaultDotEnvPath = ".env"

	// ConfigFileEnv names the environment variable holding an optional YAML config file path.
	ConfigFileEnv = "PRBOT_CONFIG"

	DefaultHost = "0.0.0.0"
	DefaultPort = 3000

	LogFormatJSON = "json"
	LogFormatText = "text"
)

var (
	// ErrMissingAPIKey indicates the selected provider has no API key configured.
	ErrMissingAPIKey = errors.New("API key for the selected LLM provider is not set")
	// ErrInvalidProvider indicates an unsupported LLM provider name.
	ErrInvalidProvider = errors.New("invalid LLM provider")
)

// ParseError indicates a configuration file exists but contains invalid content.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid config at %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Config is the complete process configuration. It is built once at startup.
type Config struct {
	LLM    LLMConfig    `yaml:"llm"`
	GitHub GitHubConfig `yaml:"github"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

// LLMConfig selects and configures the review model.
type LLMConfig struct {
	// Provider is "gemini" or "anthropic".
	Provider        string `yaml:"provider" env:"LLM_PROVIDER"`
	GeminiAPIKey    string `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	GeminiModel     string `yaml:"gemini_model" env:"GEMINI_MODEL"`
	AnthropicAPIKey string `yaml:"anthropic_api_key" env:"ANTHROPIC_API_KEY"`
	AnthropicModel  string `yaml:"anthropic_model" env:"ANTHROPIC_MODEL"`
	// BaseURL overrides the provider endpoint (proxies, tests).
	BaseURL string `yaml:"base_url" env:"LLM_BASE_URL"`
}

// GitHubConfig holds the GitHub App identity and webhook settings.
type GitHubConfig struct {
	AppID            int64  `yaml:"app_id" env:"GITHUB_APP_ID"`
	PrivateKeyBase64 string `yaml:"private_key_b64" env:"GITHUB_PRIVATE_KEY_B64"`
	PrivateKeyPath   string `yaml:"private_key_path" env:"GITHUB_PRIVATE_KEY_PATH"`
	// WebhookSecret empty disables signature verification.
	WebhookSecret string `yaml:"webhook_secret" env:"GITHUB_WEBHOOK_SECRET"`
	APIURL        string `yaml:"api_url" env:"GITHUB_API_URL"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host string `yaml:"host" env:"HOST"`
	Port int    `yaml:"port" env:"PORT"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:       llm.ProviderGemini,
			GeminiModel:    llm.DefaultGeminiModel,
			AnthropicModel: llm.DefaultAnthropicModel,
		},
		GitHub: GitHubConfig{
			APIURL: github.DefaultBaseURL,
		},
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Log: LogConfig{
			Level:  "info",
			Format: LogFormatJSON,
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file at path,
// a .env file in the working directory, and the process environment, in that order.
// Later sources override earlier ones. An empty path falls back to $PRBOT_CONFIG.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(ConfigFileEnv)
	}
	return load(path, DefaultDotEnvPath, os.Environ())
}

func load(path, dotEnvPath string, environ []string) (*Config, error) {
	cfg := Default()

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
	}

	environment := environMap(environ)
	if dotEnvPath != "" {
		values, err := godotenv.Read(dotEnvPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// optional
		case err != nil:
			return nil, &ParseError{Path: dotEnvPath, Err: err}
		default:
			// Real environment variables take precedence over the dotenv file.
			for k, v := range values {
				if _, ok := environment[k]; !ok {
					environment[k] = v
				}
			}
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Environment: environment}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	return cfg, nil
}

func environMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			m[k] = v
		}
	}
	return m
}

// Validate reports configuration the process cannot start with.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case llm.ProviderGemini, llm.ProviderAnthropic:
	default:
		return fmt.Errorf("%w: %q (must be %q or %q)", ErrInvalidProvider, c.LLM.Provider, llm.ProviderGemini, llm.ProviderAnthropic)
	}

	if c.APIKey() == "" {
		return fmt.Errorf("%w (provider %s)", ErrMissingAPIKey, c.LLM.Provider)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	switch c.Log.Format {
	case LogFormatJSON, LogFormatText:
	default:
		return fmt.Errorf("invalid log format: %q (must be %q or %q)", c.Log.Format, LogFormatJSON, LogFormatText)
	}

	return nil
}

// APIKey returns the API key for the selected provider.
func (c *Config) APIKey() string {
	if c.LLM.Provider == llm.ProviderAnthropic {
		return c.LLM.AnthropicAPIKey
	}
	return c.LLM.GeminiAPIKey
}

// Model returns the model for the selected provider.
func (c *Config) Model() string {
	if c.LLM.Provider == llm.ProviderAnthropic {
		return c.LLM.AnthropicModel
	}
	return c.LLM.GeminiModel
}

// LLMOptions returns the generator options for the selected provider.
func (c *Config) LLMOptions() llm.Options {
	return llm.Options{
		Provider: c.LLM.Provider,
		APIKey:   c.APIKey(),
		Model:    c.Model(),
		BaseURL:  c.LLM.BaseURL,
	}
}

// KeySource returns where the GitHub App private key is read from.
func (c *Config) KeySource() github.KeySource {
	return github.KeySource{
		Base64: c.GitHub.PrivateKeyBase64,
		Path:   c.GitHub.PrivateKeyPath,
	}
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}
