package models

import "strings"

// RiskLevel is the coarse flood-hazard classification of a city.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// ParseRiskLevel accepts low, moderate and high in any case. "medium" is
// accepted as moderate since operators send it on broadcast alerts.
func ParseRiskLevel(s string) (RiskLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return RiskLow, true
	case "moderate", "medium":
		return RiskModerate, true
	case "high":
		return RiskHigh, true
	}
	return "", false
}

// Valid reports whether r is one of the three defined levels.
func (r RiskLevel) Valid() bool {
	return r == RiskLow || r == RiskModerate || r == RiskHigh
}

// RequiresAlert reports whether users should be notified at this level.
func (r RiskLevel) RequiresAlert() bool {
	return r == RiskModerate || r == RiskHigh
}

func (r RiskLevel) String() string { return string(r) }
