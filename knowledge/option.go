package knowledge

import "github.com/philippgille/chromem-go"

type Option func(*Config)

// WithEmbeddingFunc sets a custom embedding function.
func WithEmbeddingFunc(fn chromem.EmbeddingFunc) Option {
	return func(c *Config) {
		c.embeddingFunc = fn
	}
}

// WithOpenAICompat points embeddings at an OpenAI-compatible endpoint,
// e.g. the NVIDIA Integrate API.
func WithOpenAICompat(baseURL, apiKey, model string) Option {
	return func(c *Config) {
		c.embeddingFunc = chromem.NewEmbeddingFuncOpenAICompat(baseURL, apiKey, model, nil)
	}
}
