package flightsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/wanderkit/wanderkit/schema"
	"github.com/wanderkit/wanderkit/tools"
)

// DefaultBaseURL is the hosted Tavily search API endpoint.
const DefaultBaseURL = "https://api.tavily.com"

// ErrMissingAPIKey is returned when no Tavily API key is configured.
var ErrMissingAPIKey = errors.New("missing TAVILY_API_KEY, add it to .env (not only .env.template)")

var validate = validator.New()

// Input is the schema for a flight shopping search.
// Finds flight shopping links and summaries using web search.
// Not a booking system, results are links for live prices and schedules.
type Input struct {
	schema.Base
	// Origin city/airport code (e.g., DEL)
	Origin string `json:"origin" jsonschema:"title=origin,description=Origin city/airport code (e.g. DEL)." validate:"required"`
	// Destination city/airport/city (e.g., SIN or Singapore)
	Destination string `json:"destination" jsonschema:"title=destination,description=Destination city/airport/city (e.g. SIN or Singapore)." validate:"required"`
	// DepartDate departure date in YYYY-MM-DD
	DepartDate string `json:"depart_date" jsonschema:"title=depart_date,description=Departure date in YYYY-MM-DD." validate:"required"`
	// ReturnDate return date in YYYY-MM-DD (optional)
	ReturnDate string `json:"return_date,omitempty" jsonschema:"title=return_date,description=Return date in YYYY-MM-DD (optional)."`
	// Adults number of adult travelers
	Adults int `json:"adults,omitempty" jsonschema:"title=adults,default=1,description=Number of adult travelers." validate:"omitempty,min=1,max=9"`
	// Cabin economy/premium economy/business/first
	Cabin string `json:"cabin,omitempty" jsonschema:"title=cabin,default=economy,description=Cabin: economy/premium economy/business/first."`
	// MaxResults how many web results to return
	MaxResults int `json:"max_results,omitempty" jsonschema:"title=max_results,default=5,description=How many web results to return." validate:"omitempty,min=1,max=10"`

	// Itinerary context used for timing advice.

	// DayStartTime typical itinerary day start time
	DayStartTime string `json:"day_start_time,omitempty" jsonschema:"title=day_start_time,default=09:00,description=Typical itinerary day start time."`
	// Pace itinerary pace (slow/moderate/fast)
	Pace string `json:"pace,omitempty" jsonschema:"title=pace,default=moderate,description=Itinerary pace (slow/moderate/fast)."`
	// Constraints trip constraints that may affect flight timing
	Constraints string `json:"constraints,omitempty" jsonschema:"title=constraints,description=Trip constraints that may affect flight timing."`
	// SpecialRequests special requests that may affect flight timing
	SpecialRequests string `json:"special_requests,omitempty" jsonschema:"title=special_requests,description=Special requests that may affect flight timing."`
}

func NewInput(origin, destination, departDate string) *Input {
	return &Input{
		Origin:       origin,
		Destination:  destination,
		DepartDate:   departDate,
		Adults:       1,
		Cabin:        "economy",
		MaxResults:   5,
		DayStartTime: "09:00",
		Pace:         "moderate",
	}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Query builds the web search query for the flight shopping request.
func (s Input) Query() string {
	var trip string
	if s.ReturnDate != "" {
		trip = fmt.Sprintf("round trip %s to %s", s.DepartDate, s.ReturnDate)
	} else {
		trip = fmt.Sprintf("one way %s", s.DepartDate)
	}
	return fmt.Sprintf("flights %s to %s %s %d adults %s prices", s.Origin, s.Destination, trip, s.Adults, s.Cabin)
}

// FlightOption is a single flight shopping result.
type FlightOption struct {
	schema.Base
	// Title of the search result
	Title string `json:"title" jsonschema:"title=title,description=The title of the search result."`
	// URL of the search result
	URL string `json:"url,omitempty" jsonschema:"title=url,description=The URL of the search result."`
	// Snippet content snippet of the search result
	Snippet string `json:"snippet,omitempty" jsonschema:"title=snippet,description=The content snippet of the search result."`
}

func (s FlightOption) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// TimingAdvice is heuristic arrival/departure window guidance.
// No hallucinated exact schedules.
type TimingAdvice struct {
	schema.Base
	RecommendedArrivalWindow   string `json:"recommended_arrival_window" jsonschema:"title=recommended_arrival_window,description=Suggested arrival window for day one."`
	RecommendedDepartureWindow string `json:"recommended_departure_window" jsonschema:"title=recommended_departure_window,description=Suggested departure window for the last day."`
	Reasoning                  string `json:"reasoning" jsonschema:"title=reasoning,description=Why these windows fit the trip."`
}

func (s TimingAdvice) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Output is the schema of a flight shopping search result.
type Output struct {
	schema.Base
	// Query the web search query that was used
	Query string `json:"query" jsonschema:"title=query,description=The web search query that was used."`
	// Options flight shopping results
	Options []FlightOption `json:"options,omitempty" jsonschema:"title=options,description=Flight shopping results."`
	// TimingAdvice heuristic arrival/departure windows
	TimingAdvice TimingAdvice `json:"timing_advice" jsonschema:"title=timing_advice,description=Heuristic arrival/departure windows."`
	// FlightContextMarkdown compact markdown block for embedding into an itinerary prompt
	FlightContextMarkdown string `json:"flight_context_markdown,omitempty" jsonschema:"title=flight_context_markdown,description=Compact markdown block for the itinerary prompt."`
	// Note usage disclaimer
	Note string `json:"note,omitempty" jsonschema:"title=note,description=Usage disclaimer."`
}

func (s Output) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// searchRequest is the Tavily search API request body.
type searchRequest struct {
	APIKey            string `json:"api_key"`
	Query             string `json:"query"`
	MaxResults        int    `json:"max_results,omitempty"`
	IncludeAnswer     bool   `json:"include_answer"`
	IncludeRawContent bool   `json:"include_raw_content"`
}

// searchResult is a single Tavily search API result.
type searchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// searchResponse is the Tavily search API response body.
type searchResponse struct {
	Results []searchResult `json:"results"`
}

type Config struct {
	tools.Config
	baseURL    string
	apiKey     string
	maxResults int
	httpClient *http.Client
}

// Tool searches the web for flight shopping links and derives timing advice.
type Tool struct {
	Config
}

func New(opts ...Option) *Tool {
	ret := new(Tool)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("FlightSearchTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Find flight shopping links and summaries using web search. Use this tool when the user asks about flights, prices, airlines, or routes.")
	}
	if ret.baseURL == "" {
		ret.baseURL = DefaultBaseURL
	}
	if ret.maxResults == 0 {
		ret.maxResults = 5
	}
	if ret.httpClient == nil {
		ret.httpClient = http.DefaultClient
	}
	return ret
}

// Run executes the flight search with the given parameters.
func (t *Tool) Run(ctx context.Context, input *Input) (*Output, error) {
	if t.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if input.Adults == 0 {
		input.Adults = 1
	}
	if input.Cabin == "" {
		input.Cabin = "economy"
	}
	if input.MaxResults == 0 {
		input.MaxResults = t.maxResults
	}
	if input.DayStartTime == "" {
		input.DayStartTime = "09:00"
	}
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid flight search input: %w", err)
	}
	query := input.Query()
	results, err := t.search(ctx, query, input.MaxResults)
	if err != nil {
		return nil, err
	}
	options := make([]FlightOption, 0, len(results))
	for _, r := range results {
		title := strings.TrimSpace(r.Title)
		if title == "" {
			title = "Flight result"
		}
		snippet := strings.TrimSpace(r.Content)
		// Truncate on rune boundaries so multi-byte content stays valid UTF-8.
		if runes := []rune(snippet); len(runes) > 300 {
			snippet = string(runes[:300])
		}
		options = append(options, FlightOption{
			Title:   title,
			URL:     strings.TrimSpace(r.URL),
			Snippet: snippet,
		})
	}
	out := &Output{
		Query:        query,
		Options:      options,
		TimingAdvice: adviseTiming(input),
		Note:         "Web-based flight discovery only; not a booking system. Use links for live prices and schedules.",
	}
	out.FlightContextMarkdown = contextMarkdown(out)
	return out, nil
}

func (t *Tool) search(ctx context.Context, query string, maxResults int) ([]searchResult, error) {
	body := searchRequest{
		APIKey:     t.apiKey,
		Query:      query,
		MaxResults: maxResults,
	}
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(&body); err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/search", t.baseURL), buf)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error querying search api: %w", err)
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 response from search api: %d", httpResp.StatusCode)
	}
	var resp searchResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, err
	}
	if len(resp.Results) > maxResults {
		resp.Results = resp.Results[:maxResults]
	}
	return resp.Results, nil
}

// contextMarkdown builds a compact markdown block the itinerary prompt can embed directly.
func contextMarkdown(out *Output) string {
	lines := make([]string, 0, len(out.Options)+9)
	lines = append(lines, "**Flight shopping summary (web results):**")
	lines = append(lines, fmt.Sprintf("- Query: `%s`", out.Query))
	lines = append(lines, fmt.Sprintf("- Arrival window: %s", out.TimingAdvice.RecommendedArrivalWindow))
	lines = append(lines, fmt.Sprintf("- Departure window: %s", out.TimingAdvice.RecommendedDepartureWindow))
	lines = append(lines, fmt.Sprintf("- Why: %s", out.TimingAdvice.Reasoning))
	lines = append(lines, "")
	lines = append(lines, "**Where to check live prices/availability:**")
	limit := len(out.Options)
	if limit > 5 {
		limit = 5
	}
	for _, opt := range out.Options[:limit] {
		if opt.URL != "" {
			lines = append(lines, fmt.Sprintf("- [%s](%s)", opt.Title, opt.URL))
		} else {
			lines = append(lines, fmt.Sprintf("- %s", opt.Title))
		}
	}
	lines = append(lines, "")
	lines = append(lines, "_Note: Prices/availability change frequently; open links for live details._")
	return strings.Join(lines, "\n")
}
