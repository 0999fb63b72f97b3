// Package engine provides the quarterly simulation core: the live campaign
// state, the fixed per-quarter pipeline, the intervention state machine, and
// the resumable Session wrapper.
package engine

import (
	"github.com/avolkov/imperium/internal/decree"
	"github.com/avolkov/imperium/internal/entropy"
	"github.com/avolkov/imperium/internal/events"
	"github.com/avolkov/imperium/internal/kpi"
	"github.com/avolkov/imperium/internal/realm"
)

// QueuedTrigger is a follow-up event scheduled to instantiate next quarter.
type QueuedTrigger struct {
	TemplateID string        `json:"template_id"`
	Origin     events.Origin `json:"origin"`
}

// State is the complete live campaign state. The engine is its only
// mutator; everything handed outward is a copied snapshot.
type State struct {
	Quarter       int `json:"quarter"`
	TotalQuarters int `json:"total_quarters"`

	Treasury    realm.ResourcePool                        `json:"treasury"`
	Regions     []*realm.Region                           `json:"regions"`
	Estates     []*realm.Estate                           `json:"estates"`
	Departments map[realm.Department]*realm.DepartmentState `json:"departments"`
	Council     []*realm.CouncilMember                    `json:"council"`
	Mandates    []*realm.Mandate                          `json:"mandates"`

	Active  []*events.ActiveEvent `json:"active_events"`
	Queued  []QueuedTrigger       `json:"queued_triggers"`
	ambient []QueuedTrigger       // emitted during entity updates, consumed same quarter

	Trust   realm.TrustLevels `json:"trust"`
	Decree  decree.Decree     `json:"decree"`
	Control ControlState      `json:"control"`

	InterventionLog []InterventionLogEntry `json:"intervention_log"`

	Cooldowns       map[string]int `json:"cooldowns"`        // template id → quarters left
	ChronicCritical map[string]int `json:"chronic_critical"` // KPI name → consecutive critical quarters

	PrevKPI    *kpi.Report `json:"prev_kpi,omitempty"`
	PrevIncome float64     `json:"prev_income"`

	Rand *entropy.Stream `json:"-"`
}

// worldView adapts State to the events.World effect-application contract.
type worldView struct{ s *State }

func (w worldView) Treasury() *realm.ResourcePool { return &w.s.Treasury }

func (w worldView) Region(name string) *realm.Region {
	for _, r := range w.s.Regions {
		if r.Name == name {
			return r
		}
	}
	return nil
}

func (w worldView) Regions() []*realm.Region { return w.s.Regions }

func (w worldView) Estate(name string) *realm.Estate {
	for _, e := range w.s.Estates {
		if e.Name == name {
			return e
		}
	}
	return nil
}

func (w worldView) DepartmentState(d realm.Department) *realm.DepartmentState {
	return w.s.Departments[d]
}

func (w worldView) Trust() *realm.TrustLevels { return &w.s.Trust }

// Clone deep-copies the state, including the entropy stream position, so a
// quarter can run copy-then-commit.
func (s *State) Clone() *State {
	c := &State{
		Quarter:       s.Quarter,
		TotalQuarters: s.TotalQuarters,
		Treasury:      s.Treasury,
		Trust:         s.Trust.Clone(),
		Decree:        s.Decree,
		Control:       s.Control.Clone(),
		PrevIncome:    s.PrevIncome,
		Rand:          entropy.Restore(s.Rand.State()),
	}
	c.Regions = make([]*realm.Region, len(s.Regions))
	for i, r := range s.Regions {
		cp := *r
		c.Regions[i] = &cp
	}
	c.Estates = make([]*realm.Estate, len(s.Estates))
	for i, e := range s.Estates {
		cp := *e
		c.Estates[i] = &cp
	}
	c.Departments = make(map[realm.Department]*realm.DepartmentState, len(s.Departments))
	for d, ds := range s.Departments {
		cp := *ds
		c.Departments[d] = &cp
	}
	c.Council = make([]*realm.CouncilMember, len(s.Council))
	for i, m := range s.Council {
		c.Council[i] = m.Clone()
	}
	c.Mandates = make([]*realm.Mandate, len(s.Mandates))
	for i, m := range s.Mandates {
		cp := *m
		c.Mandates[i] = &cp
	}
	c.Active = make([]*events.ActiveEvent, len(s.Active))
	for i, ae := range s.Active {
		cp := *ae
		c.Active[i] = &cp
	}
	c.Queued = append([]QueuedTrigger(nil), s.Queued...)
	c.InterventionLog = append([]InterventionLogEntry(nil), s.InterventionLog...)
	c.Cooldowns = make(map[string]int, len(s.Cooldowns))
	for k, v := range s.Cooldowns {
		c.Cooldowns[k] = v
	}
	c.ChronicCritical = make(map[string]int, len(s.ChronicCritical))
	for k, v := range s.ChronicCritical {
		c.ChronicCritical[k] = v
	}
	if s.PrevKPI != nil {
		cp := *s.PrevKPI
		c.PrevKPI = &cp
	}
	return c
}

// hasActive reports whether an event instance id is already pending.
func (s *State) hasActive(eventID string) bool {
	for _, ae := range s.Active {
		if ae.Event.ID == eventID {
			return true
		}
	}
	return false
}

func (s *State) findRegion(name string) *realm.Region  { return worldView{s}.Region(name) }
func (s *State) findEstate(name string) *realm.Estate  { return worldView{s}.Estate(name) }
