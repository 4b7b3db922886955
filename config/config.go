package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DefaultBaseURL     = "https://integrate.api.nvidia.com/v1"
	DefaultModel       = "meta/llama-3.1-70b-instruct"
	DefaultEmbedModel  = "nvidia/nv-embedqa-e5-v5"
	DefaultTemperature = 0.7
	DefaultTopP        = 0.9
	DefaultMaxTokens   = 2048
)

// ErrMissingAPIKey is returned when NVIDIA_API_KEY is not set.
var ErrMissingAPIKey = errors.New("missing NVIDIA_API_KEY, create a .env from .env.template and set your key")

var validate = validator.New()

// Config is the hosted chat-completion endpoint configuration, read from
// the environment. A .env file in the working directory is loaded first
// when present.
type Config struct {
	// BaseURL OpenAI-compatible endpoint, trailing slash trimmed.
	BaseURL string `validate:"required,url"`
	// APIKey bearer token for the endpoint.
	APIKey string `validate:"required"`
	// Model chat model name.
	Model string `validate:"required"`
	// EmbedModel embedding model name used for destination notes.
	EmbedModel string
	// Temperature for response generation.
	Temperature float32 `validate:"gte=0,lte=2"`
	// TopP nucleus sampling parameter.
	TopP float32 `validate:"gte=0,lte=1"`
	// MaxTokens maximum number of tokens in the response.
	MaxTokens int `validate:"gt=0"`
	// TavilyAPIKey key for the flight search web API, optional.
	TavilyAPIKey string
}

// FromEnv loads the configuration from the environment, reading .env first
// when one exists in the working directory.
func FromEnv() (*Config, error) {
	// .env is optional, real env vars win either way.
	_ = godotenv.Load()

	apiKey := os.Getenv("NVIDIA_API_KEY")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	temperature, err := envFloat("TEMPERATURE", DefaultTemperature)
	if err != nil {
		return nil, err
	}
	topP, err := envFloat("TOP_P", DefaultTopP)
	if err != nil {
		return nil, err
	}
	maxTokens, err := envInt("MAX_TOKENS", DefaultMaxTokens)
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		BaseURL:      strings.TrimRight(envOr("NVIDIA_BASE_URL", DefaultBaseURL), "/"),
		APIKey:       apiKey,
		Model:        envOr("MODEL_NAME", DefaultModel),
		EmbedModel:   envOr("EMBED_MODEL_NAME", DefaultEmbedModel),
		Temperature:  temperature,
		TopP:         topP,
		MaxTokens:    maxTokens,
		TavilyAPIKey: os.Getenv("TAVILY_API_KEY"),
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func envFloat(name string, fallback float32) (float32, error) {
	v := os.Getenv(name)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, v, err)
	}
	return float32(f), nil
}

func envInt(name string, fallback int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, v, err)
	}
	return i, nil
}
