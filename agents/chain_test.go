package agents

import (
	"context"
	"errors"
	"testing"

	"github.com/wanderkit/wanderkit/components"
	"github.com/wanderkit/wanderkit/schema"
)

type fakeAgent struct {
	name   string
	suffix string
	fail   bool
	usage  *components.ApiUsage
}

func (f fakeAgent) Name() string { return f.name }

func (f fakeAgent) RunForChain(ctx context.Context, input any, apiResp *components.ApiResponse) (any, error) {
	if f.fail {
		return nil, errors.New("boom")
	}
	in, ok := input.(*schema.String)
	if !ok {
		return nil, errors.New("invalid input schema")
	}
	out := schema.String(string(*in) + f.suffix)
	if apiResp != nil {
		apiResp.Usage = f.usage
	}
	return &out, nil
}

func TestChainRun(t *testing.T) {
	chain := NewChain[schema.String, schema.String](
		fakeAgent{name: "flights", suffix: "+flights", usage: &components.ApiUsage{InputTokens: 5, OutputTokens: 2}},
		fakeAgent{name: "itinerary", suffix: "+plan", usage: &components.ApiUsage{InputTokens: 7, OutputTokens: 11}},
	)
	in := schema.String("rome")
	out := new(schema.String)
	resps, err := chain.Run(context.Background(), &in, out)
	if err != nil {
		t.Fatalf("Chain run failed: %v", err)
	}
	if string(*out) != "rome+flights+plan" {
		t.Errorf("Expect rome+flights+plan, but got %s", *out)
	}
	if len(resps) != 2 {
		t.Fatalf("Expect 2 api responses, but got %d", len(resps))
	}
}

func TestChainUsageMerge(t *testing.T) {
	chain := NewChain[schema.String, schema.String](
		fakeAgent{name: "flights", suffix: "a", usage: &components.ApiUsage{InputTokens: 5, OutputTokens: 2}},
		fakeAgent{name: "itinerary", suffix: "b", usage: &components.ApiUsage{InputTokens: 7, OutputTokens: 11}},
	)
	apiResp := new(components.ApiResponse)
	out, err := chain.RunForChain(context.Background(), new(schema.String), apiResp)
	if err != nil {
		t.Fatalf("Chain run failed: %v", err)
	}
	if _, ok := out.(*schema.String); !ok {
		t.Fatal("Expect string schema output")
	}
	if apiResp.Usage == nil || apiResp.Usage.InputTokens != 12 || apiResp.Usage.OutputTokens != 13 {
		t.Errorf("Expect merged usage 12/13, but got %+v", apiResp.Usage)
	}
}

func TestChainStopsOnError(t *testing.T) {
	chain := NewChain[schema.String, schema.String](
		fakeAgent{name: "flights", fail: true},
		fakeAgent{name: "itinerary", suffix: "b"},
	)
	in := schema.String("rome")
	out := new(schema.String)
	if _, err := chain.Run(context.Background(), &in, out); err == nil {
		t.Error("Expect chain to propagate the first error")
	}
}
