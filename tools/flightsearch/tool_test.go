package flightsearch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"
)

func startSearchServer(t *testing.T, results []map[string]string) *httptest.Server {
	t.Helper()
	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("Expect /search path, but got %s", r.URL.Path)
		}
		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode search request: %v", err)
		}
		if req.APIKey == "" {
			t.Error("Expect api_key in search request")
		}
		json.NewEncoder(w).Encode(map[string]any{"results": results})
	}
	return httptest.NewServer(http.HandlerFunc(handler))
}

func TestQueryRoundTrip(t *testing.T) {
	input := NewInput("DEL", "SIN", "2026-03-10")
	input.ReturnDate = "2026-03-14"
	input.Adults = 2
	expect := "flights DEL to SIN round trip 2026-03-10 to 2026-03-14 2 adults economy prices"
	if got := input.Query(); got != expect {
		t.Errorf("Expect %q, but got %q", expect, got)
	}
}

func TestQueryOneWay(t *testing.T) {
	input := NewInput("DEL", "Singapore", "2026-03-10")
	expect := "flights DEL to Singapore one way 2026-03-10 1 adults economy prices"
	if got := input.Query(); got != expect {
		t.Errorf("Expect %q, but got %q", expect, got)
	}
}

func TestRun(t *testing.T) {
	srv := startSearchServer(t, []map[string]string{
		{"title": "DEL to SIN deals", "url": "https://example.com/deals", "content": "Cheap fares from 220 USD"},
		{"title": "", "url": "https://example.com/untitled", "content": strings.Repeat("x", 400)},
	})
	defer srv.Close()
	tool := New(WithBaseURL(srv.URL), WithAPIKey("test-key"))
	input := NewInput("DEL", "SIN", "2026-03-10")
	out, err := tool.Run(context.Background(), input)
	if err != nil {
		t.Fatalf("Error running flight search: %v", err)
	}
	if len(out.Options) != 2 {
		t.Fatalf("Expect 2 options, but got %d", len(out.Options))
	}
	if out.Options[0].Title != "DEL to SIN deals" {
		t.Errorf("Expect title passthrough, but got %s", out.Options[0].Title)
	}
	if out.Options[1].Title != "Flight result" {
		t.Errorf("Expect fallback title, but got %s", out.Options[1].Title)
	}
	if len(out.Options[1].Snippet) != 300 {
		t.Errorf("Expect snippet truncated to 300, but got %d", len(out.Options[1].Snippet))
	}
	if out.TimingAdvice.RecommendedArrivalWindow == "" {
		t.Error("Expect timing advice even with results")
	}
	if !strings.Contains(out.FlightContextMarkdown, "[DEL to SIN deals](https://example.com/deals)") {
		t.Errorf("Expect markdown link, but got:\n%s", out.FlightContextMarkdown)
	}
	if out.Note == "" {
		t.Error("Expect disclaimer note")
	}
}

func TestRunSnippetTruncationKeepsValidUTF8(t *testing.T) {
	srv := startSearchServer(t, []map[string]string{
		{"title": "Fares", "url": "https://example.com/fares", "content": strings.Repeat("é", 400)},
	})
	defer srv.Close()
	tool := New(WithBaseURL(srv.URL), WithAPIKey("test-key"))
	out, err := tool.Run(context.Background(), NewInput("DEL", "SIN", "2026-03-10"))
	if err != nil {
		t.Fatalf("Error running flight search: %v", err)
	}
	if len(out.Options) != 1 {
		t.Fatalf("Expect 1 option, but got %d", len(out.Options))
	}
	snippet := out.Options[0].Snippet
	if !utf8.ValidString(snippet) {
		t.Errorf("Expect valid UTF-8 snippet, but got tail %q", snippet[len(snippet)-3:])
	}
	if n := len([]rune(snippet)); n != 300 {
		t.Errorf("Expect snippet truncated to 300 characters, but got %d", n)
	}
}

func TestRunNoResults(t *testing.T) {
	srv := startSearchServer(t, []map[string]string{})
	defer srv.Close()
	tool := New(WithBaseURL(srv.URL), WithAPIKey("test-key"))
	out, err := tool.Run(context.Background(), NewInput("DEL", "SIN", "2026-03-10"))
	if err != nil {
		t.Fatalf("Error running flight search: %v", err)
	}
	if len(out.Options) != 0 {
		t.Errorf("Expect 0 options, but got %d", len(out.Options))
	}
	if out.TimingAdvice.Reasoning == "" {
		t.Error("Expect timing advice with no results")
	}
	if !strings.Contains(out.FlightContextMarkdown, "Flight shopping summary") {
		t.Error("Expect markdown block with no results")
	}
}

func TestRunMissingAPIKey(t *testing.T) {
	tool := New()
	_, err := tool.Run(context.Background(), NewInput("DEL", "SIN", "2026-03-10"))
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Expect ErrMissingAPIKey, but got %v", err)
	}
}

func TestRunInvalidInput(t *testing.T) {
	srv := startSearchServer(t, nil)
	defer srv.Close()
	tool := New(WithBaseURL(srv.URL), WithAPIKey("test-key"))
	input := NewInput("DEL", "SIN", "2026-03-10")
	input.Adults = 12
	if _, err := tool.Run(context.Background(), input); err == nil {
		t.Error("Expect validation error for 12 adults")
	}
	input = NewInput("", "SIN", "2026-03-10")
	if _, err := tool.Run(context.Background(), input); err == nil {
		t.Error("Expect validation error for missing origin")
	}
}

func TestTimingAdvicePace(t *testing.T) {
	slow := NewInput("DEL", "SIN", "2026-03-10")
	slow.Pace = "slow and relaxed"
	advice := adviseTiming(slow)
	if !strings.Contains(advice.RecommendedArrivalWindow, "14:00-20:00") {
		t.Errorf("Expect relaxed arrival window, but got %s", advice.RecommendedArrivalWindow)
	}

	fast := NewInput("DEL", "SIN", "2026-03-10")
	fast.Pace = "packed"
	advice = adviseTiming(fast)
	if !strings.Contains(advice.RecommendedArrivalWindow, "07:00-11:00") {
		t.Errorf("Expect early arrival window, but got %s", advice.RecommendedArrivalWindow)
	}
	if !strings.Contains(advice.RecommendedDepartureWindow, "17:00-22:00") {
		t.Errorf("Expect late departure window, but got %s", advice.RecommendedDepartureWindow)
	}
}

func TestTimingAdviceConstraints(t *testing.T) {
	input := NewInput("DEL", "SIN", "2026-03-10")
	input.Constraints = "avoid very early flights, avoid long commutes"
	advice := adviseTiming(input)
	if !strings.Contains(advice.RecommendedDepartureWindow, "13:00-21:00") {
		t.Errorf("Expect late departure window, but got %s", advice.RecommendedDepartureWindow)
	}
	if !strings.Contains(advice.Reasoning, "peak transit") {
		t.Errorf("Expect commute reasoning, but got %s", advice.Reasoning)
	}
	if !strings.Contains(advice.Reasoning, "09:00") {
		t.Errorf("Expect day start time in reasoning, but got %s", advice.Reasoning)
	}
}

func TestContextMarkdownCapsLinks(t *testing.T) {
	out := &Output{Query: "q", TimingAdvice: TimingAdvice{RecommendedArrivalWindow: "a", RecommendedDepartureWindow: "d", Reasoning: "r"}}
	for i := 0; i < 8; i++ {
		out.Options = append(out.Options, FlightOption{Title: "t", URL: "https://example.com"})
	}
	md := contextMarkdown(out)
	if got := strings.Count(md, "](https://example.com)"); got != 5 {
		t.Errorf("Expect 5 links, but got %d", got)
	}
}
