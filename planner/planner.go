package planner

import (
	"context"
	"fmt"

	"github.com/bububa/instructor-go/pkg/instructor"
	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/wanderkit/wanderkit/agents"
	"github.com/wanderkit/wanderkit/components"
	"github.com/wanderkit/wanderkit/components/systemprompt"
	sysplanner "github.com/wanderkit/wanderkit/components/systemprompt/planner"
	"github.com/wanderkit/wanderkit/knowledge"
	"github.com/wanderkit/wanderkit/prompt"
	"github.com/wanderkit/wanderkit/schema"
	"github.com/wanderkit/wanderkit/tools/budget"
	"github.com/wanderkit/wanderkit/tools/flightsearch"
)

// Report carries run metadata alongside a generated itinerary.
type Report struct {
	// RunID unique identifier of this planning run.
	RunID string `json:"run_id"`
	// EstimatedPromptTokens tokenizer estimate of the user prompt size.
	EstimatedPromptTokens int `json:"estimated_prompt_tokens,omitempty"`
	// Usage accumulated token usage reported by the model provider.
	Usage components.ApiUsage `json:"usage,omitempty"`
	// Flight flight search output, when flight search ran.
	Flight *flightsearch.Output `json:"flight,omitempty"`
	// Budget evaluated cost expression, when the request carries one.
	Budget *budget.Output `json:"budget,omitempty"`
	// StructureWarning set when the generated markdown misses a documented section.
	StructureWarning string `json:"structure_warning,omitempty"`
}

type Config struct {
	client      instructor.Instructor
	model       string
	temperature float32
	topP        float32
	maxTokens   int
	flightTool  *flightsearch.Tool
	budgetTool  *budget.Tool
	notes       *knowledge.Store
	notesTopK   int
}

// Planner generates trip itineraries: it optionally runs flight search and
// destination note retrieval, then asks the model to fill the itinerary
// template.
type Planner struct {
	Config
	inputTokens  atomic.Int64
	outputTokens atomic.Int64
}

// NewPlanner returns a new Planner
func NewPlanner(options ...Option) *Planner {
	ret := new(Planner)
	for _, opt := range options {
		opt(&ret.Config)
	}
	if ret.notesTopK == 0 {
		ret.notesTopK = 3
	}
	return ret
}

// TotalUsage returns token usage accumulated across runs.
func (p *Planner) TotalUsage() components.ApiUsage {
	return components.ApiUsage{
		InputTokens:  int(p.inputTokens.Load()),
		OutputTokens: int(p.outputTokens.Load()),
	}
}

// Run generates an itinerary for the request.
func (p *Planner) Run(ctx context.Context, req *Request) (*Itinerary, *Report, error) {
	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}
	report := &Report{
		RunID: uuid.NewString(),
	}

	providers, err := p.contextProviders(ctx, req, report)
	if err != nil {
		return nil, report, err
	}

	userPrompt := req.UserPrompt()
	if n, err := prompt.EstimateTokens(p.model, userPrompt); err == nil {
		report.EstimatedPromptTokens = n
	}

	agent := agents.NewAgent[schema.String, Itinerary](
		agents.WithClient(p.client),
		agents.WithModel(p.model),
		agents.WithTemperature(p.temperature),
		agents.WithTopP(p.topP),
		agents.WithMaxTokens(p.maxTokens),
		agents.WithStopSequences(prompt.StopSequences()...),
		agents.WithSystemPromptGenerator(sysplanner.New(sysplanner.WithContextProviders(providers...))),
		agents.WithName("itinerary"),
	)

	input := schema.String(userPrompt)
	output := new(Itinerary)
	apiResp := new(components.ApiResponse)
	if err := agent.Run(ctx, &input, output, apiResp); err != nil {
		return nil, report, fmt.Errorf("itinerary generation: %w", err)
	}
	if usage := apiResp.Usage; usage != nil {
		report.Usage.Merge(usage)
		p.inputTokens.Add(int64(usage.InputTokens))
		p.outputTokens.Add(int64(usage.OutputTokens))
	}
	if err := prompt.ValidateStructure(output.ItineraryMarkdown); err != nil {
		report.StructureWarning = err.Error()
	}
	return output, report, nil
}

// contextProviders runs flight search and note retrieval for the request.
func (p *Planner) contextProviders(ctx context.Context, req *Request, report *Report) ([]systemprompt.ContextProvider, error) {
	var providers []systemprompt.ContextProvider
	if p.flightTool != nil && req.Origin != "" {
		flightInput := flightsearch.NewInput(req.Origin, req.Destination, req.StartDate)
		flightInput.ReturnDate = req.EndDate
		flightInput.DayStartTime = req.DayStartTime
		flightInput.Pace = req.Pace
		flightInput.Constraints = req.Constraints
		flightInput.SpecialRequests = req.SpecialRequests
		flightOut, err := p.flightTool.Run(ctx, flightInput)
		if err != nil {
			return nil, fmt.Errorf("flight search: %w", err)
		}
		report.Flight = flightOut
		providers = append(providers, systemprompt.NewStaticProvider("Flight Context", flightOut.FlightContextMarkdown))
	}
	if p.budgetTool != nil && req.CostExpression != "" {
		budgetOut, err := p.budgetTool.Run(ctx, budget.NewInput(req.CostExpression, req.CostParams))
		if err != nil {
			return nil, fmt.Errorf("budget estimate: %w", err)
		}
		report.Budget = budgetOut
		info := fmt.Sprintf("- `%s` = %v", req.CostExpression, budgetOut.Result)
		providers = append(providers, systemprompt.NewStaticProvider("Budget Estimate", info))
	}
	if p.notes != nil {
		provider, err := p.notes.Provider(ctx, req.Interests, req.Destination, p.notesTopK)
		if err != nil {
			return nil, fmt.Errorf("destination notes: %w", err)
		}
		if provider != nil {
			providers = append(providers, provider)
		}
	}
	return providers, nil
}
