package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bububa/instructor-go/pkg/instructor"
	openai "github.com/sashabaranov/go-openai"

	"github.com/wanderkit/wanderkit/config"
	"github.com/wanderkit/wanderkit/knowledge"
	"github.com/wanderkit/wanderkit/planner"
	"github.com/wanderkit/wanderkit/tools/budget"
	"github.com/wanderkit/wanderkit/tools/flightsearch"
	"github.com/wanderkit/wanderkit/tools/guidescraper"
)

func main() {
	var (
		tripFile        string
		destination     string
		origin          string
		startDate       string
		endDate         string
		travelers       string
		budgetLevel     string
		travelStyle     string
		interests       string
		dayStartTime    string
		pace            string
		mobility        string
		foodPrefs       string
		constraints     string
		specialRequests string
		costExpression  string
		guideURLs       string
		outputFile      string
	)
	flag.StringVar(&tripFile, "trip", "", "trip request YAML file")
	flag.StringVar(&destination, "destination", "", "primary destination city/region/country")
	flag.StringVar(&origin, "origin", "", "origin city/airport code, enables flight search")
	flag.StringVar(&startDate, "start", "", "trip start date (YYYY-MM-DD)")
	flag.StringVar(&endDate, "end", "", "trip end date (YYYY-MM-DD)")
	flag.StringVar(&travelers, "travelers", "", "who is traveling (e.g. '2 adults')")
	flag.StringVar(&budgetLevel, "budget", "", "budget level (budget/mid-range/luxury)")
	flag.StringVar(&travelStyle, "style", "", "travel style (relaxed/packed/balanced)")
	flag.StringVar(&interests, "interests", "", "comma-separated interests")
	flag.StringVar(&dayStartTime, "day-start", "", "typical day start time")
	flag.StringVar(&pace, "pace", "", "pace (slow/moderate/fast)")
	flag.StringVar(&mobility, "mobility", "", "mobility constraints if any")
	flag.StringVar(&foodPrefs, "food", "", "food preferences/allergies")
	flag.StringVar(&constraints, "constraints", "", "hard constraints (must-dos, avoid, etc.)")
	flag.StringVar(&specialRequests, "requests", "", "any special requests")
	flag.StringVar(&costExpression, "cost", "", "trip cost expression evaluated into the planning context (e.g. '4 * 120 * 2 + 640')")
	flag.StringVar(&guideURLs, "guides", "", "comma-separated destination guide URLs to scrape into planning notes")
	flag.StringVar(&outputFile, "o", "", "write the itinerary to a file instead of stdout")
	flag.Parse()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}

	req := new(planner.Request)
	if tripFile != "" {
		if req, err = planner.LoadRequest(tripFile); err != nil {
			log.Fatal(err)
		}
	}
	override(&req.Destination, destination)
	override(&req.Origin, origin)
	override(&req.StartDate, startDate)
	override(&req.EndDate, endDate)
	override(&req.Travelers, travelers)
	override(&req.Budget, budgetLevel)
	override(&req.TravelStyle, travelStyle)
	override(&req.Interests, interests)
	override(&req.DayStartTime, dayStartTime)
	override(&req.Pace, pace)
	override(&req.Mobility, mobility)
	override(&req.FoodPrefs, foodPrefs)
	override(&req.Constraints, constraints)
	override(&req.SpecialRequests, specialRequests)
	override(&req.CostExpression, costExpression)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	options := []planner.Option{
		planner.WithClient(newInstructor(cfg)),
		planner.WithModel(cfg.Model),
		planner.WithTemperature(cfg.Temperature),
		planner.WithTopP(cfg.TopP),
		planner.WithMaxTokens(cfg.MaxTokens),
		planner.WithBudgetTool(budget.New()),
	}
	if cfg.TavilyAPIKey != "" {
		options = append(options, planner.WithFlightTool(flightsearch.New(flightsearch.WithAPIKey(cfg.TavilyAPIKey))))
	} else if req.Origin != "" {
		log.Println("TAVILY_API_KEY not set, skipping flight search")
		req.Origin = ""
	}
	if guideURLs != "" {
		store, err := buildNotes(ctx, cfg, req.Destination, strings.Split(guideURLs, ","))
		if err != nil {
			log.Fatal(err)
		}
		options = append(options, planner.WithNotes(store, 3))
	}

	p := planner.NewPlanner(options...)
	itinerary, report, err := p.Run(ctx, req)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("run %s: %d prompt tokens estimated, %d/%d tokens used",
		report.RunID, report.EstimatedPromptTokens, report.Usage.InputTokens, report.Usage.OutputTokens)
	if report.StructureWarning != "" {
		log.Printf("warning: %s", report.StructureWarning)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(itinerary.ItineraryMarkdown), 0o644); err != nil {
			log.Fatal(err)
		}
		log.Printf("itinerary written to %s", outputFile)
		return
	}
	fmt.Println(itinerary.ItineraryMarkdown)
}

func newInstructor(cfg *config.Config) instructor.Instructor {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL
	clt := openai.NewClientWithConfig(clientCfg)
	return instructor.FromOpenAI(clt, instructor.WithMode(instructor.ModeJSON), instructor.WithMaxRetries(3), instructor.WithValidation())
}

// buildNotes scrapes guide pages and indexes their paragraphs as
// destination notes.
func buildNotes(ctx context.Context, cfg *config.Config, destination string, urls []string) (*knowledge.Store, error) {
	store, err := knowledge.New(knowledge.WithOpenAICompat(cfg.BaseURL, cfg.APIKey, cfg.EmbedModel))
	if err != nil {
		return nil, err
	}
	scraper := guidescraper.New()
	var notes []knowledge.Note
	for _, link := range urls {
		link = strings.TrimSpace(link)
		if link == "" {
			continue
		}
		out, err := scraper.Run(ctx, guidescraper.NewInput(link))
		if err != nil {
			return nil, fmt.Errorf("scrape %s: %w", link, err)
		}
		for idx, para := range strings.Split(out.Content, "\n\n") {
			para = strings.TrimSpace(para)
			if len(para) < 80 {
				continue
			}
			notes = append(notes, knowledge.Note{
				ID:          fmt.Sprintf("%s#%d", link, idx),
				Destination: destination,
				Content:     para,
			})
		}
	}
	if err := store.Add(ctx, notes...); err != nil {
		return nil, err
	}
	return store, nil
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
