package planner

import (
	"strings"
	"testing"

	"github.com/wanderkit/wanderkit/components/systemprompt"
)

func TestGeneratorDefaults(t *testing.T) {
	g := New()
	prompt := g.Generate()
	for _, expect := range []string{
		"# IDENTITY and PURPOSE",
		"travel planner",
		"# OUTPUT INSTRUCTIONS",
		"- Return ONLY the itinerary in Markdown.",
		"- Follow the provided template headings exactly.",
	} {
		if !strings.Contains(prompt, expect) {
			t.Errorf("Expect prompt to contain %q, but got:\n%s", expect, prompt)
		}
	}
}

func TestGeneratorContextProviders(t *testing.T) {
	g := New(WithContextProviders(systemprompt.NewStaticProvider("Flight Context", "- Arrive in the afternoon")))
	prompt := g.Generate()
	if !strings.Contains(prompt, "# EXTRA INFORMATION AND CONTEXT") {
		t.Errorf("Expect context section, but got:\n%s", prompt)
	}
	if !strings.Contains(prompt, "## Flight Context") {
		t.Errorf("Expect provider title, but got:\n%s", prompt)
	}
	g.RemoveContextProviders("Flight Context")
	if strings.Contains(g.Generate(), "Flight Context") {
		t.Error("Expect provider removed from prompt")
	}
}

func TestGeneratorProviderLookup(t *testing.T) {
	g := New()
	if _, err := g.ContextProvider("missing"); err == nil {
		t.Error("Expect error for unknown provider")
	}
	p := systemprompt.NewStaticProvider("Destination Notes", "- Museums close on Mondays")
	g.AddContextProviders(p)
	g.AddContextProviders(p) // duplicate titles are ignored
	if n := len(g.ContextProviders()); n != 1 {
		t.Errorf("Expect 1 provider, but got %d", n)
	}
}
