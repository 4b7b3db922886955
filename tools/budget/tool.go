package budget

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/Knetic/govaluate"

	"github.com/wanderkit/wanderkit/schema"
	"github.com/wanderkit/wanderkit/tools"
)

// Input is a trip-cost expression to evaluate. Supports basic arithmetic
// plus round/min/max helpers. Use parameters like nights, travelers or
// nightly_rate to keep expressions readable.
type Input struct {
	schema.Base
	// Expression trip cost expression to evaluate, e.g. 'nights * nightly_rate * travelers'.
	Expression string `json:"expression" jsonschema:"title=expression,description=Trip cost expression to evaluate. For example 'nights * nightly_rate * travelers'."`
	// Params parameters referenced by the expression
	Params map[string]interface{} `json:"params,omitempty" jsonschema:"title=params,description=Parameters referenced by the expression."`
}

func NewInput(exp string, params map[string]interface{}) *Input {
	return &Input{
		Expression: exp,
		Params:     params,
	}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Output is the evaluated cost.
type Output struct {
	schema.Base
	// Result result of the evaluation
	Result interface{} `json:"result,omitempty" jsonschema:"title=result,description=Result of the evaluation."`
}

func NewOutput(result interface{}) *Output {
	return &Output{
		Result: result,
	}
}

func (s Output) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

var functions = map[string]govaluate.ExpressionFunction{
	"round": func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("round expects 1 argument, got %d", len(args))
		}
		v, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("round expects a number")
		}
		return math.Round(v), nil
	},
	"min": func(args ...interface{}) (interface{}, error) {
		return pick(args, func(a, b float64) bool { return a < b })
	},
	"max": func(args ...interface{}) (interface{}, error) {
		return pick(args, func(a, b float64) bool { return a > b })
	},
}

func pick(args []interface{}, better func(a, b float64) bool) (interface{}, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("expects at least 1 argument")
	}
	best, ok := args[0].(float64)
	if !ok {
		return nil, fmt.Errorf("expects numbers")
	}
	for _, arg := range args[1:] {
		v, ok := arg.(float64)
		if !ok {
			return nil, fmt.Errorf("expects numbers")
		}
		if better(v, best) {
			best = v
		}
	}
	return best, nil
}

type Tool struct {
	tools.Config
}

func New(opts ...tools.Option) *Tool {
	ret := new(Tool)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("BudgetTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Evaluate trip cost expressions, e.g. per-day budgets and totals.")
	}
	return ret
}

// Run evaluates the cost expression with the given parameters.
func (t *Tool) Run(ctx context.Context, input *Input) (*Output, error) {
	exp, err := govaluate.NewEvaluableExpressionWithFunctions(input.Expression, functions)
	if err != nil {
		return nil, err
	}
	result, err := exp.Evaluate(normalizeParams(input.Params))
	if err != nil {
		return nil, err
	}
	return NewOutput(result), nil
}

// normalizeParams converts integer parameters to float64, the only numeric
// type govaluate arithmetic operates on. YAML trip files decode whole
// numbers as int.
func normalizeParams(params map[string]interface{}) map[string]interface{} {
	if len(params) == 0 {
		return params
	}
	out := make(map[string]interface{}, len(params))
	for k, v := range params {
		switch n := v.(type) {
		case int:
			out[k] = float64(n)
		case int64:
			out[k] = float64(n)
		case float32:
			out[k] = float64(n)
		default:
			out[k] = v
		}
	}
	return out
}
