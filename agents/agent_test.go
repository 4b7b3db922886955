package agents

import (
	"context"
	"strings"
	"testing"

	"github.com/wanderkit/wanderkit/components"
	"github.com/wanderkit/wanderkit/components/systemprompt"
	"github.com/wanderkit/wanderkit/schema"
)

func TestNewAgentDefaults(t *testing.T) {
	agent := NewAgent[schema.String, schema.String](
		WithName("itinerary"),
		WithModel("meta/llama-3.1-70b-instruct"),
		WithTemperature(0.7),
		WithMaxTokens(2048),
	)
	if agent.Name() != "itinerary" {
		t.Errorf("Expect name itinerary, but got %s", agent.Name())
	}
	prompt := agent.SystemPrompt()
	if !strings.Contains(prompt, "Return ONLY the itinerary in Markdown.") {
		t.Errorf("Expect default planner prompt, but got:\n%s", prompt)
	}
}

func TestAgentContextProviders(t *testing.T) {
	agent := NewAgent[schema.String, schema.String]()
	agent.RegisterSystemPromptContextProvider(systemprompt.NewStaticProvider("Flight Context", "- Depart late morning"))
	if _, err := agent.SystemPromptContextProvider("Flight Context"); err != nil {
		t.Fatalf("Expect provider registered: %v", err)
	}
	if !strings.Contains(agent.SystemPrompt(), "## Flight Context") {
		t.Error("Expect provider info in system prompt")
	}
	agent.UnregisterSystemPromptContextProvider("Flight Context")
	if _, err := agent.SystemPromptContextProvider("Flight Context"); err == nil {
		t.Error("Expect provider unregistered")
	}
}

func TestAgentResetMemory(t *testing.T) {
	mem := components.NewMemory(10)
	agent := NewAgent[schema.String, schema.String](WithMemory(mem))
	agent.NewMessage(components.UserRole, schema.String("plan Tokyo"))
	if mem.MessageCount() != 1 {
		t.Fatalf("Expect 1 message, but got %d", mem.MessageCount())
	}
	agent.ResetMemory()
	if mem.MessageCount() != 0 {
		t.Errorf("Expect empty memory after reset, but got %d", mem.MessageCount())
	}
}

func TestRunForChainRejectsWrongSchema(t *testing.T) {
	agent := NewAgent[schema.String, schema.String]()
	type other struct{ schema.Base }
	if _, err := agent.RunForChain(context.Background(), &other{}, nil); err == nil {
		t.Error("Expect invalid input schema error")
	}
}

func TestRunWithoutClient(t *testing.T) {
	agent := NewAgent[schema.String, schema.String]()
	in := schema.String("anywhere")
	out := new(schema.String)
	if err := agent.Run(context.Background(), &in, out, nil); err == nil {
		t.Error("Expect error when no client is configured")
	}
}
