package config

import (
	"errors"
	"strings"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("NVIDIA_API_KEY", "nvapi-test")
	t.Setenv("NVIDIA_BASE_URL", "")
	t.Setenv("MODEL_NAME", "")
	t.Setenv("TEMPERATURE", "")
	t.Setenv("TOP_P", "")
	t.Setenv("MAX_TOKENS", "")
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("Expect default base URL, but got %s", cfg.BaseURL)
	}
	if cfg.Model != DefaultModel {
		t.Errorf("Expect default model, but got %s", cfg.Model)
	}
	if cfg.Temperature != DefaultTemperature || cfg.TopP != DefaultTopP || cfg.MaxTokens != DefaultMaxTokens {
		t.Errorf("Expect default sampling params, but got %v/%v/%d", cfg.Temperature, cfg.TopP, cfg.MaxTokens)
	}
}

func TestFromEnvMissingKey(t *testing.T) {
	t.Setenv("NVIDIA_API_KEY", "")
	if _, err := FromEnv(); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Expect ErrMissingAPIKey, but got %v", err)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("NVIDIA_API_KEY", "nvapi-test")
	t.Setenv("NVIDIA_BASE_URL", "https://example.com/v1/")
	t.Setenv("MODEL_NAME", "meta/llama-3.3-70b-instruct")
	t.Setenv("TEMPERATURE", "0.2")
	t.Setenv("TOP_P", "0.5")
	t.Setenv("MAX_TOKENS", "512")
	t.Setenv("TAVILY_API_KEY", "tvly-test")
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cfg.BaseURL != "https://example.com/v1" {
		t.Errorf("Expect trailing slash trimmed, but got %s", cfg.BaseURL)
	}
	if cfg.Model != "meta/llama-3.3-70b-instruct" {
		t.Errorf("Expect model override, but got %s", cfg.Model)
	}
	if cfg.Temperature != 0.2 || cfg.TopP != 0.5 || cfg.MaxTokens != 512 {
		t.Errorf("Expect sampling overrides, but got %v/%v/%d", cfg.Temperature, cfg.TopP, cfg.MaxTokens)
	}
	if cfg.TavilyAPIKey != "tvly-test" {
		t.Errorf("Expect tavily key, but got %s", cfg.TavilyAPIKey)
	}
}

func TestFromEnvBadNumbers(t *testing.T) {
	t.Setenv("NVIDIA_API_KEY", "nvapi-test")
	t.Setenv("TEMPERATURE", "warm")
	if _, err := FromEnv(); err == nil || !strings.Contains(err.Error(), "TEMPERATURE") {
		t.Errorf("Expect error naming TEMPERATURE, but got %v", err)
	}
	t.Setenv("TEMPERATURE", "")
	t.Setenv("MAX_TOKENS", "lots")
	if _, err := FromEnv(); err == nil || !strings.Contains(err.Error(), "MAX_TOKENS") {
		t.Errorf("Expect error naming MAX_TOKENS, but got %v", err)
	}
}
