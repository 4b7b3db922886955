package prompt

import (
	_ "embed"
	"regexp"
	"strings"
)

//go:embed templates/itinerary_template_v1.md
var itineraryTemplate string

// placeholderRE matches {{name}} substitution tokens. No escaping rules.
var placeholderRE = regexp.MustCompile(`\{\{([a-zA-Z0-9_]+)\}\}`)

// ItineraryTemplate returns the embedded itinerary template text.
func ItineraryTemplate() string {
	return itineraryTemplate
}

// Render replaces {{key}} tokens with the given values.
// Tokens without a matching value are left intact.
func Render(template string, values map[string]string) string {
	return placeholderRE.ReplaceAllStringFunc(template, func(token string) string {
		key := placeholderRE.FindStringSubmatch(token)[1]
		if v, ok := values[key]; ok {
			return v
		}
		return token
	})
}

// Missing returns the names of unsubstituted placeholders left in text.
func Missing(text string) []string {
	matches := placeholderRE.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		names = append(names, m[1])
	}
	return names
}

// BuildUserPrompt wraps the filled template with the hard requirements block
// and optional extra constraints, producing the final user message.
func BuildUserPrompt(filledTemplate, constraints, specialRequests string) string {
	var b strings.Builder
	b.WriteString("Generate a complete itinerary using the template below.\n\n")
	b.WriteString("Hard requirements:\n")
	b.WriteString("- Follow the template headings exactly.\n")
	b.WriteString("- Provide realistic place suggestions and transit notes.\n")
	b.WriteString("- Include 2 optional swaps per day.\n")
	b.WriteString("- Output only Markdown.\n")
	b.WriteString("- Do not mention that you are using a template.\n\n")
	b.WriteString("Extra constraints (if any): ")
	b.WriteString(constraints)
	b.WriteString("\nSpecial requests (if any): ")
	b.WriteString(specialRequests)
	b.WriteString("\n\nTEMPLATE (filled inputs):\n")
	b.WriteString("-------------------------\n")
	b.WriteString(filledTemplate)
	b.WriteString("\n")
	return b.String()
}

// StopSequences guard against ReAct-style artifacts leaking into the itinerary.
func StopSequences() []string {
	return []string{"\n\nObservation:", "\n\nAction:", "\n\nThought:"}
}
