package planner

import (
	"github.com/bububa/instructor-go/pkg/instructor"

	"github.com/wanderkit/wanderkit/knowledge"
	"github.com/wanderkit/wanderkit/tools/budget"
	"github.com/wanderkit/wanderkit/tools/flightsearch"
)

type Option func(c *Config)

func WithClient(clt instructor.Instructor) Option {
	return func(c *Config) {
		c.client = clt
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

func WithFlightTool(tool *flightsearch.Tool) Option {
	return func(c *Config) {
		c.flightTool = tool
	}
}

func WithBudgetTool(tool *budget.Tool) Option {
	return func(c *Config) {
		c.budgetTool = tool
	}
}

func WithNotes(store *knowledge.Store, topK int) Option {
	return func(c *Config) {
		c.notes = store
		c.notesTopK = topK
	}
}
