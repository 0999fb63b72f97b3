// Control-mode state machine: who is authorized to resolve interventions.
package engine

import (
	"time"

	"github.com/avolkov/imperium/internal/events"
)

// ControlMode says which actor resolves interventions.
type ControlMode string

const (
	ControlManual  ControlMode = "manual"
	ControlAdvisor ControlMode = "advisor"
	ControlHybrid  ControlMode = "hybrid"
)

// RouteTarget is where a hybrid routing rule sends an event category.
type RouteTarget string

const (
	RouteToPlayer  RouteTarget = "player"
	RouteToCouncil RouteTarget = "council"
)

// ControlModeLogEntry is one append-only record of a mode transition.
type ControlModeLogEntry struct {
	Mode      ControlMode `json:"mode"`
	Quarter   int         `json:"quarter"`
	Timestamp time.Time   `json:"timestamp"`
	Reason    string      `json:"reason,omitempty"`
	Source    string      `json:"source,omitempty"`
}

// ControlState tracks the current mode and its full transition history.
// History is append-only and monotonically non-decreasing in quarter.
type ControlState struct {
	Mode    ControlMode                           `json:"mode"`
	Routing map[events.Category]RouteTarget       `json:"routing,omitempty"` // hybrid only
	History []ControlModeLogEntry                 `json:"history"`
}

// SetMode transitions to a new mode and appends the log entry.
func (c *ControlState) SetMode(mode ControlMode, quarter int, reason, source string) {
	c.Mode = mode
	c.History = append(c.History, ControlModeLogEntry{
		Mode:      mode,
		Quarter:   quarter,
		Timestamp: time.Now().UTC(),
		Reason:    reason,
		Source:    source,
	})
}

// routeFor decides who settles an event under the current mode. Hybrid
// categories without a routing rule go to the council.
func (c *ControlState) routeFor(cat events.Category) RouteTarget {
	switch c.Mode {
	case ControlManual:
		return RouteToPlayer
	case ControlAdvisor:
		return RouteToCouncil
	case ControlHybrid:
		if t, ok := c.Routing[cat]; ok {
			return t
		}
		return RouteToCouncil
	}
	return RouteToCouncil
}

// Clone deep-copies the control state.
func (c ControlState) Clone() ControlState {
	out := ControlState{Mode: c.Mode}
	if c.Routing != nil {
		out.Routing = make(map[events.Category]RouteTarget, len(c.Routing))
		for k, v := range c.Routing {
			out.Routing[k] = v
		}
	}
	out.History = append([]ControlModeLogEntry(nil), c.History...)
	return out
}
