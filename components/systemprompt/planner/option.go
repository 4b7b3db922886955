package planner

import "github.com/wanderkit/wanderkit/components/systemprompt"

type Option = func(g *Generator)

// WithBackground set the identity section lines
func WithBackground(lines ...string) Option {
	return func(g *Generator) {
		g.background = append(g.background, lines...)
	}
}

// WithSteps set the internal steps section lines
func WithSteps(lines ...string) Option {
	return func(g *Generator) {
		g.steps = append(g.steps, lines...)
	}
}

// WithOutputInstructions prepend extra output instruction lines
func WithOutputInstructions(lines ...string) Option {
	return func(g *Generator) {
		g.outputInstructs = append(g.outputInstructs, lines...)
	}
}

// WithContextProviders set Generator context providers
func WithContextProviders(providers ...systemprompt.ContextProvider) Option {
	return func(g *Generator) {
		g.AddContextProviders(providers...)
	}
}
