package flightsearch

import (
	"fmt"
	"strings"
)

// adviseTiming derives heuristic arrival/departure windows from the trip's
// pace and constraints. Suggestions only, no exact schedules.
func adviseTiming(input *Input) TimingAdvice {
	arrival := "Arrive afternoon (12:00-18:00) for an easy check-in + evening activity"
	depart := "Depart late morning/afternoon (10:00-16:00) to avoid very early rush"

	var reasons []string

	pace := strings.ToLower(input.Pace)
	switch {
	case strings.Contains(pace, "slow") || strings.Contains(pace, "relax"):
		arrival = "Arrive afternoon/evening (14:00-20:00) for a relaxed first day"
		reasons = append(reasons, "Relaxed pace means a later arrival is fine.")
	case strings.Contains(pace, "fast") || strings.Contains(pace, "packed"):
		arrival = "Arrive morning (07:00-11:00) to maximize Day 1"
		depart = "Depart evening (17:00-22:00) to maximize final day"
		reasons = append(reasons, "Fast/packed pace means maximizing usable daylight hours.")
	}

	constraints := strings.ToLower(input.Constraints)
	if strings.Contains(constraints, "avoid") && strings.Contains(constraints, "early") {
		depart = "Depart afternoon/evening (13:00-21:00) to avoid early departures"
		reasons = append(reasons, "Constraint mentions avoiding early times.")
	}
	if strings.Contains(constraints, "avoid long commutes") {
		reasons = append(reasons, "Avoid long commutes: prefer an arrival that avoids peak transit if possible.")
	}

	reasons = append(reasons, fmt.Sprintf("Day start time is %s so flights that don't force a 04:00 wake-up are preferable.", input.DayStartTime))
	reasoning := strings.TrimSpace(strings.Join(reasons, " "))
	if reasoning == "" {
		reasoning = "General travel comfort + check-in/check-out practicality."
	}

	return TimingAdvice{
		RecommendedArrivalWindow:   arrival,
		RecommendedDepartureWindow: depart,
		Reasoning:                  reasoning,
	}
}
