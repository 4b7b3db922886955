package planner

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/wanderkit/wanderkit/prompt"
	"github.com/wanderkit/wanderkit/schema"
)

var validate = validator.New()

// Request is a structured trip request.
type Request struct {
	schema.Base
	// Destination primary destination city/region/country
	Destination string `json:"destination" yaml:"destination" jsonschema:"title=destination,description=Primary destination city/region/country." validate:"required"`
	// StartDate trip start date (e.g., 2026-03-10)
	StartDate string `json:"start_date" yaml:"start_date" jsonschema:"title=start_date,description=Trip start date (e.g. 2026-03-10)." validate:"required,datetime=2006-01-02"`
	// EndDate trip end date (e.g., 2026-03-14)
	EndDate string `json:"end_date" yaml:"end_date" jsonschema:"title=end_date,description=Trip end date (e.g. 2026-03-14)." validate:"required,datetime=2006-01-02"`

	// Origin city/airport the trip starts from, used for flight search.
	Origin string `json:"origin,omitempty" yaml:"origin" jsonschema:"title=origin,description=Origin city/airport code used for flight search."`
	// Travelers who is traveling (e.g., '2 adults', 'family of 4')
	Travelers string `json:"travelers,omitempty" yaml:"travelers" jsonschema:"title=travelers,default=1 adult,description=Who is traveling (e.g. '2 adults')."`
	// Budget budget level (e.g., 'budget', 'mid-range', 'luxury')
	Budget string `json:"budget,omitempty" yaml:"budget" jsonschema:"title=budget,default=mid-range,description=Budget level (e.g. 'budget')."`
	// TravelStyle style (e.g., 'relaxed', 'packed', 'balanced')
	TravelStyle string `json:"travel_style,omitempty" yaml:"travel_style" jsonschema:"title=travel_style,default=balanced,description=Style (e.g. 'relaxed')."`
	// Interests comma-separated interests
	Interests string `json:"interests,omitempty" yaml:"interests" jsonschema:"title=interests,default=sightseeing, food,description=Comma-separated interests."`
	// DayStartTime typical day start time
	DayStartTime string `json:"day_start_time,omitempty" yaml:"day_start_time" jsonschema:"title=day_start_time,default=09:00,description=Typical day start time."`
	// Pace pace (slow/moderate/fast)
	Pace string `json:"pace,omitempty" yaml:"pace" jsonschema:"title=pace,default=moderate,description=Pace (slow/moderate/fast)."`
	// Mobility mobility constraints if any
	Mobility string `json:"mobility,omitempty" yaml:"mobility" jsonschema:"title=mobility,default=no constraints,description=Mobility constraints if any."`
	// FoodPrefs food preferences/allergies
	FoodPrefs string `json:"food_prefs,omitempty" yaml:"food_prefs" jsonschema:"title=food_prefs,default=no constraints,description=Food preferences/allergies."`
	// Constraints hard constraints (must-dos, avoid, etc.)
	Constraints string `json:"constraints,omitempty" yaml:"constraints" jsonschema:"title=constraints,description=Hard constraints (must-dos, avoid, etc.)."`
	// SpecialRequests any special requests
	SpecialRequests string `json:"special_requests,omitempty" yaml:"special_requests" jsonschema:"title=special_requests,description=Any special requests."`
	// CostExpression trip cost expression evaluated into the planning context
	CostExpression string `json:"cost_expression,omitempty" yaml:"cost_expression" jsonschema:"title=cost_expression,description=Trip cost expression evaluated into the planning context (e.g. 'nights * nightly_rate * travelers + flights')."`
	// CostParams parameters referenced by the cost expression
	CostParams map[string]interface{} `json:"cost_params,omitempty" yaml:"cost_params" jsonschema:"title=cost_params,description=Parameters referenced by the cost expression."`
}

func (s Request) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// ApplyDefaults fills empty optional fields with their documented defaults.
func (s *Request) ApplyDefaults() {
	if s.Travelers == "" {
		s.Travelers = "1 adult"
	}
	if s.Budget == "" {
		s.Budget = "mid-range"
	}
	if s.TravelStyle == "" {
		s.TravelStyle = "balanced"
	}
	if s.Interests == "" {
		s.Interests = "sightseeing, food"
	}
	if s.DayStartTime == "" {
		s.DayStartTime = "09:00"
	}
	if s.Pace == "" {
		s.Pace = "moderate"
	}
	if s.Mobility == "" {
		s.Mobility = "no constraints"
	}
	if s.FoodPrefs == "" {
		s.FoodPrefs = "no constraints"
	}
}

// Validate checks required fields and date formats.
func (s *Request) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid trip request: %w", err)
	}
	return nil
}

// TemplateValues maps the request onto the itinerary template placeholders.
func (s *Request) TemplateValues() map[string]string {
	return map[string]string{
		"destination":    s.Destination,
		"start_date":     s.StartDate,
		"end_date":       s.EndDate,
		"travelers":      s.Travelers,
		"budget":         s.Budget,
		"travel_style":   s.TravelStyle,
		"interests":      s.Interests,
		"day_start_time": s.DayStartTime,
		"pace":           s.Pace,
		"mobility":       s.Mobility,
		"food_prefs":     s.FoodPrefs,
	}
}

// UserPrompt renders the itinerary template with the request values and
// wraps it with the hard requirements block.
func (s *Request) UserPrompt() string {
	filled := prompt.Render(prompt.ItineraryTemplate(), s.TemplateValues())
	return prompt.BuildUserPrompt(filled, s.Constraints, s.SpecialRequests)
}

// LoadRequest reads a trip request from a YAML file.
func LoadRequest(path string) (*Request, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trip file: %w", err)
	}
	req := new(Request)
	if err := yaml.Unmarshal(bs, req); err != nil {
		return nil, fmt.Errorf("parse trip file: %w", err)
	}
	return req, nil
}

// Itinerary is the generated trip plan.
type Itinerary struct {
	schema.Base
	// ItineraryMarkdown full itinerary in Markdown
	ItineraryMarkdown string `json:"itinerary_markdown" jsonschema:"title=itinerary_markdown,description=Full itinerary in Markdown." validate:"required"`
}

func (s Itinerary) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}
