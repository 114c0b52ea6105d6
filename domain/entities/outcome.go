package entities

import (
	"fmt"
	"strings"
)

// Outcome is the three-way result of a match
type Outcome string

const (
	OutcomeHome Outcome = "home"
	OutcomeDraw Outcome = "draw"
	OutcomeAway Outcome = "away"
)

// OutcomeFromScores classifies a score line
func OutcomeFromScores(homeScore, awayScore int) Outcome {
	switch {
	case homeScore > awayScore:
		return OutcomeHome
	case homeScore < awayScore:
		return OutcomeAway
	default:
		return OutcomeDraw
	}
}

// ParseOutcome accepts the stored outcome values, case-insensitive
func ParseOutcome(s string) (Outcome, error) {
	switch o := Outcome(strings.ToLower(strings.TrimSpace(s))); o {
	case OutcomeHome, OutcomeDraw, OutcomeAway:
		return o, nil
	default:
		return "", fmt.Errorf("unknown outcome %q", s)
	}
}

// String returns the string representation of the outcome
func (o Outcome) String() string {
	return string(o)
}
