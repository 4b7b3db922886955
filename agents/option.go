package agents

import (
	"github.com/bububa/instructor-go/pkg/instructor"

	"github.com/wanderkit/wanderkit/components"
	"github.com/wanderkit/wanderkit/components/systemprompt"
)

type Option func(c *Config)

func WithClient(clt instructor.Instructor) Option {
	return func(c *Config) {
		c.client = clt
	}
}

func WithMemory(m *components.Memory) Option {
	return func(c *Config) {
		c.memory = m
	}
}

func WithSystemPromptGenerator(g systemprompt.Generator) Option {
	return func(c *Config) {
		c.systemPromptGenerator = g
	}
}

func WithModel(model string) Option {
	return func(c *Config) {
		c.model = model
	}
}

func WithTemperature(temperature float32) Option {
	return func(c *Config) {
		c.temperature = temperature
	}
}

func WithTopP(topP float32) Option {
	return func(c *Config) {
		c.topP = topP
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(c *Config) {
		c.maxTokens = maxTokens
	}
}

func WithStopSequences(stops ...string) Option {
	return func(c *Config) {
		c.stopSequences = stops
	}
}

func WithName(name string) Option {
	return func(c *Config) {
		c.name = name
	}
}
