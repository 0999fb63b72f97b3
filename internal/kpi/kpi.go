// Package kpi provides the key-performance-indicator report types and the
// fixed threat bands shared by the engine, the decision strategy, and the
// consultation generator.
package kpi

// ThreatLevel grades how alarming a KPI reading is.
type ThreatLevel string

const (
	ThreatLow      ThreatLevel = "low"
	ThreatModerate ThreatLevel = "moderate"
	ThreatCritical ThreatLevel = "critical"
)

// Entry is a single indicator: its value, trend since the prior quarter,
// and derived threat level.
type Entry struct {
	Value       float64     `json:"value"`
	Trend       float64     `json:"trend"` // first difference from prior quarter
	ThreatLevel ThreatLevel `json:"threat_level"`
}

// Report bundles the four campaign indicators.
type Report struct {
	Stability      Entry `json:"stability"`
	EconomicGrowth Entry `json:"economic_growth"`
	SecurityIndex  Entry `json:"security_index"`
	ActiveCrises   Entry `json:"active_crises"`
}

// Names in canonical order, matching Entries.
var Names = []string{"stability", "economic_growth", "security_index", "active_crises"}

// Entries returns the four entries in canonical order.
func (r Report) Entries() []Entry {
	return []Entry{r.Stability, r.EconomicGrowth, r.SecurityIndex, r.ActiveCrises}
}

// GradeHigherBetter grades an indicator where larger values are healthier
// (stability, growth, security): <critical band ⇒ critical, <moderate band
// ⇒ moderate, else low threat.
func GradeHigherBetter(value, criticalBelow, moderateBelow float64) ThreatLevel {
	switch {
	case value < criticalBelow:
		return ThreatCritical
	case value < moderateBelow:
		return ThreatModerate
	default:
		return ThreatLow
	}
}

// GradeLowerBetter grades an indicator where larger values are worse
// (active crises).
func GradeLowerBetter(value, criticalAbove, moderateAbove float64) ThreatLevel {
	switch {
	case value > criticalAbove:
		return ThreatCritical
	case value > moderateAbove:
		return ThreatModerate
	default:
		return ThreatLow
	}
}

// Weight converts a threat level into a scoring multiplier for the decision
// strategy: effects matter more when the related indicator is burning.
func Weight(t ThreatLevel) float64 {
	switch t {
	case ThreatCritical:
		return 1.6
	case ThreatModerate:
		return 1.2
	default:
		return 1.0
	}
}
