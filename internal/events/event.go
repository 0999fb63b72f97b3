package events

import "github.com/avolkov/imperium/internal/realm"

// Severity grades how serious an event is.
type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeverityMajor    Severity = "major"
)

// Category buckets events for hybrid-mode routing and reporting.
type Category string

const (
	CategoryUnrest     Category = "unrest"
	CategoryEconomic   Category = "economic"
	CategorySecurity   Category = "security"
	CategoryDiplomatic Category = "diplomatic"
	CategoryScience    Category = "science"
)

// OriginKind says what kind of entity triggered an event.
type OriginKind string

const (
	OriginRegion OriginKind = "region"
	OriginEstate OriginKind = "estate"
	OriginMetric OriginKind = "metric"
)

// Origin records what triggered an event instance.
type Origin struct {
	Kind OriginKind `json:"kind"`
	Name string     `json:"name"`
}

// Option is one way to resolve an event.
type Option struct {
	ID          string              `json:"id"`
	Description string              `json:"description"`
	Cost        *realm.ResourcePool `json:"cost,omitempty"`
	Effects     []Effect            `json:"effects"`
	Cooldown    int                 `json:"cooldown,omitempty"` // quarters before the option's template may retrigger
	FollowUps   []string            `json:"follow_ups,omitempty"` // template ids queued on selection
}

// FailureClause is what happens when an event times out unresolved.
type FailureClause struct {
	Timeout     int      `json:"timeout"` // quarters
	Effects     []Effect `json:"effects"`
	Description string   `json:"description"`
}

// EscalationClause is a chance each quarter that an unresolved event spawns
// a follow-up.
type EscalationClause struct {
	Chance      float64 `json:"chance"` // 0–1, sampled independently per clause
	EventID     string  `json:"event_id"` // template id of the follow-up
	Description string  `json:"description"`
}

// SimulationEvent is a concrete event instance built from a template. The id
// is template-derived and stable across occurrences of the same trigger.
type SimulationEvent struct {
	ID          string             `json:"id"`
	TemplateID  string             `json:"template_id"`
	Category    Category           `json:"category"`
	Severity    Severity           `json:"severity"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Options     []Option           `json:"options"`
	Failure     FailureClause      `json:"failure"`
	Escalations []EscalationClause `json:"escalations,omitempty"`
	Origin      Origin             `json:"origin"`
}

// Option returns the option with the given id, or nil.
func (e *SimulationEvent) Option(id string) *Option {
	for i := range e.Options {
		if e.Options[i].ID == id {
			return &e.Options[i]
		}
	}
	return nil
}

// ActiveEvent is a triggered event awaiting resolution.
type ActiveEvent struct {
	Event         SimulationEvent `json:"event"`
	RemainingTime int             `json:"remaining_time"` // quarters until forced failure
	OriginQuarter int             `json:"origin_quarter"`
}

// OutcomeStatus is how an active event was settled.
type OutcomeStatus string

const (
	OutcomeResolved OutcomeStatus = "resolved"
	OutcomeFailed   OutcomeStatus = "failed"
	OutcomeDeferred OutcomeStatus = "deferred"
)

// ResolutionMode says who made the call.
type ResolutionMode string

const (
	ResolvedByPlayer  ResolutionMode = "player"
	ResolvedByCouncil ResolutionMode = "council"
)

// Preview is the decision the automated strategy would have made. It is
// computed for every event regardless of who decides, for comparison.
type Preview struct {
	OptionID string  `json:"option_id,omitempty"` // empty means the strategy would defer
	Score    float64 `json:"score"`
	Note     string  `json:"note,omitempty"`
}

// Outcome is the closed record of one event settlement.
type Outcome struct {
	EventID          string         `json:"event_id"`
	Title            string         `json:"title"`
	Status           OutcomeStatus  `json:"status"`
	SelectedOptionID string         `json:"selected_option_id,omitempty"`
	AppliedEffects   []Effect       `json:"applied_effects,omitempty"`
	ResolutionMode   ResolutionMode `json:"resolution_mode,omitempty"`
	AdvisorPreview   *Preview       `json:"advisor_preview,omitempty"`
	Note             string         `json:"note,omitempty"`
}
