package budget

import (
	"context"
	"testing"
)

func TestRunTripTotal(t *testing.T) {
	tool := New()
	input := NewInput("nights * nightly_rate * travelers + flights", map[string]interface{}{
		"nights":       4.0,
		"nightly_rate": 120.0,
		"travelers":    2.0,
		"flights":      640.0,
	})
	out, err := tool.Run(context.Background(), input)
	if err != nil {
		t.Fatalf("Error running budget tool: %v", err)
	}
	if got, ok := out.Result.(float64); !ok || got != 1600 {
		t.Errorf("Expect 1600, but got %v", out.Result)
	}
}

func TestRunHelpers(t *testing.T) {
	tool := New()
	tests := []struct {
		expression string
		expect     float64
	}{
		{"round(10/3)", 3},
		{"min(80, 120, 65)", 65},
		{"max(80, 120, 65)", 120},
	}
	for _, tt := range tests {
		out, err := tool.Run(context.Background(), NewInput(tt.expression, nil))
		if err != nil {
			t.Fatalf("Error evaluating %s: %v", tt.expression, err)
		}
		if got, ok := out.Result.(float64); !ok || got != tt.expect {
			t.Errorf("Expect %s = %v, but got %v", tt.expression, tt.expect, out.Result)
		}
	}
}

func TestRunIntegerParams(t *testing.T) {
	tool := New()
	input := NewInput("nights * nightly_rate", map[string]interface{}{
		"nights":       4,
		"nightly_rate": 120,
	})
	out, err := tool.Run(context.Background(), input)
	if err != nil {
		t.Fatalf("Error running budget tool: %v", err)
	}
	if got, ok := out.Result.(float64); !ok || got != 480 {
		t.Errorf("Expect 480, but got %v", out.Result)
	}
}

func TestRunInvalidExpression(t *testing.T) {
	tool := New()
	if _, err := tool.Run(context.Background(), NewInput("nights *", nil)); err == nil {
		t.Error("Expect parse error")
	}
	if _, err := tool.Run(context.Background(), NewInput("round()", nil)); err == nil {
		t.Error("Expect arity error")
	}
}
