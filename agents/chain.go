package agents

import (
	"context"
	"errors"

	"github.com/wanderkit/wanderkit/components"
	"github.com/wanderkit/wanderkit/schema"
)

// Chain runs agents sequentially, feeding each agent's output into the next.
type Chain[I schema.Schema, O schema.Schema] struct {
	agents []ChainableAgent
	name   string
}

// NewChain returns a new Chain instance
func NewChain[I schema.Schema, O schema.Schema](agents ...ChainableAgent) *Chain[I, O] {
	return &Chain[I, O]{
		agents: agents,
	}
}

func (c Chain[I, O]) Name() string {
	return c.name
}

func (c *Chain[I, O]) SetName(name string) {
	c.name = name
}

// Run runs the chained agents with the given user input synchronously.
func (c *Chain[I, O]) Run(ctx context.Context, input *I, output *O) ([]components.ApiResponse, error) {
	apiRespList := make([]components.ApiResponse, 0, len(c.agents))
	var (
		in  any = input
		out any
	)
	for _, agent := range c.agents {
		apiResp := new(components.ApiResponse)
		ret, err := agent.RunForChain(ctx, in, apiResp)
		if err != nil {
			return apiRespList, err
		}
		in = ret
		out = ret
		apiRespList = append(apiRespList, *apiResp)
	}
	outO, ok := out.(*O)
	if !ok {
		return apiRespList, errors.New("invalid output schema")
	}
	*output = *outO
	return apiRespList, nil
}

// RunForChain allows a chain to act as a step of an outer chain.
func (c *Chain[I, O]) RunForChain(ctx context.Context, input any, apiResp *components.ApiResponse) (any, error) {
	in, ok := input.(*I)
	if !ok {
		return nil, errors.New("invalid input schema")
	}
	out := new(O)
	apiRespList, err := c.Run(ctx, in, out)
	if err != nil {
		return nil, err
	}
	for _, v := range apiRespList {
		if v.Usage == nil {
			continue
		}
		if apiResp.Usage == nil {
			apiResp.Usage = new(components.ApiUsage)
		}
		apiResp.Usage.Merge(v.Usage)
	}
	return out, nil
}
