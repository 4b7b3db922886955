package prompt

import (
	"fmt"

	"gitlab.com/golang-commonmark/markdown"
)

// RequiredSections is the documented itinerary section structure.
var RequiredSections = []string{
	"Overview",
	"Assumptions",
	"Flights",
	"Day-by-day Plan",
	"Booking Checklist",
	"Packing Suggestions",
}

// Headings parses markdown text and returns its heading lines in order.
func Headings(text string) []string {
	md := markdown.New()
	tokens := md.Parse([]byte(text))
	var (
		headings  []string
		inHeading bool
	)
	for _, tok := range tokens {
		switch v := tok.(type) {
		case *markdown.HeadingOpen:
			inHeading = true
		case *markdown.HeadingClose:
			inHeading = false
		case *markdown.Inline:
			if inHeading {
				headings = append(headings, v.Content)
			}
		}
	}
	return headings
}

// ValidateStructure checks that markdown text carries every documented
// itinerary section heading.
func ValidateStructure(text string) error {
	headings := Headings(text)
	for _, section := range RequiredSections {
		found := false
		for _, h := range headings {
			if h == section {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("missing section heading %q", section)
		}
	}
	return nil
}
