// Session snapshot encoding. The snapshot carries everything needed to
// reconstruct live state exactly, including the entropy stream position, so
// a resumed campaign replays bit-for-bit.
package engine

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/avolkov/imperium/internal/decree"
	"github.com/avolkov/imperium/internal/entropy"
	"github.com/avolkov/imperium/internal/events"
	"github.com/avolkov/imperium/internal/kpi"
	"github.com/avolkov/imperium/internal/realm"
)

// SnapshotVersion is bumped on incompatible schema changes; loading a
// snapshot with a different version fails with ErrSnapshotSchema.
const SnapshotVersion = 1

// Snapshot is the serialized form of a campaign.
type Snapshot struct {
	Version    int    `json:"version"`
	PolicyName string `json:"policy,omitempty"`

	Quarter       int                                        `json:"quarter"`
	TotalQuarters int                                        `json:"total_quarters"`
	Treasury      realm.ResourcePool                         `json:"treasury"`
	Regions       []realm.Region                             `json:"regions"`
	Estates       []realm.Estate                             `json:"estates"`
	Departments   map[realm.Department]realm.DepartmentState `json:"departments"`
	Council       []realm.CouncilMember                      `json:"council"`
	Mandates      []realm.Mandate                            `json:"mandates"`

	Active []events.ActiveEvent `json:"active_events"`
	Queued []QueuedTrigger      `json:"queued_triggers"`

	Trust   realm.TrustLevels `json:"trust"`
	Decree  decree.Decree     `json:"decree"`
	Control ControlState      `json:"control"`

	InterventionLog []InterventionLogEntry `json:"intervention_log"`
	Cooldowns       map[string]int         `json:"cooldowns"`
	ChronicCritical map[string]int         `json:"chronic_critical"`

	PrevKPI    *kpi.Report `json:"prev_kpi,omitempty"`
	PrevIncome float64     `json:"prev_income"`
	RandState  uint64      `json:"rand_state"`
}

// snapshotSchema is the structural contract a loaded blob must satisfy
// before it is trusted as a Snapshot.
const snapshotSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["version", "quarter", "total_quarters", "treasury", "regions", "estates", "departments", "trust", "control", "rand_state"],
  "properties": {
    "version": {"type": "integer", "minimum": 1},
    "quarter": {"type": "integer", "minimum": 0},
    "total_quarters": {"type": "integer", "minimum": 1},
    "treasury": {
      "type": "object",
      "required": ["gold", "influence", "labor"],
      "properties": {
        "gold": {"type": "number", "minimum": 0},
        "influence": {"type": "number"},
        "labor": {"type": "number"}
      }
    },
    "regions": {"type": "array", "minItems": 1},
    "estates": {"type": "array"},
    "departments": {"type": "object"},
    "trust": {"type": "object", "required": ["advisor"]},
    "control": {"type": "object", "required": ["mode", "history"]},
    "rand_state": {"type": "integer", "minimum": 0}
  }
}`

var compiledSnapshotSchema = jsonschema.MustCompileString("snapshot.schema.json", snapshotSchema)

// exportSnapshot builds the serializable form of the state.
func exportSnapshot(s *State, policyName string) Snapshot {
	snap := Snapshot{
		Version:         SnapshotVersion,
		PolicyName:      policyName,
		Quarter:         s.Quarter,
		TotalQuarters:   s.TotalQuarters,
		Treasury:        s.Treasury,
		Trust:           s.Trust.Clone(),
		Decree:          s.Decree,
		Control:         s.Control.Clone(),
		InterventionLog: append([]InterventionLogEntry(nil), s.InterventionLog...),
		Queued:          append([]QueuedTrigger(nil), s.Queued...),
		PrevIncome:      s.PrevIncome,
		RandState:       s.Rand.State(),
	}
	for _, r := range s.Regions {
		snap.Regions = append(snap.Regions, *r)
	}
	for _, e := range s.Estates {
		snap.Estates = append(snap.Estates, *e)
	}
	snap.Departments = make(map[realm.Department]realm.DepartmentState, len(s.Departments))
	for d, ds := range s.Departments {
		snap.Departments[d] = *ds
	}
	for _, m := range s.Council {
		snap.Council = append(snap.Council, *m.Clone())
	}
	for _, m := range s.Mandates {
		snap.Mandates = append(snap.Mandates, *m)
	}
	for _, ae := range s.Active {
		snap.Active = append(snap.Active, *ae)
	}
	snap.Cooldowns = make(map[string]int, len(s.Cooldowns))
	for k, v := range s.Cooldowns {
		snap.Cooldowns[k] = v
	}
	snap.ChronicCritical = make(map[string]int, len(s.ChronicCritical))
	for k, v := range s.ChronicCritical {
		snap.ChronicCritical[k] = v
	}
	if s.PrevKPI != nil {
		cp := *s.PrevKPI
		snap.PrevKPI = &cp
	}
	return snap
}

// restoreState rebuilds live state from a decoded snapshot.
func restoreState(snap Snapshot) *State {
	st := &State{
		Quarter:         snap.Quarter,
		TotalQuarters:   snap.TotalQuarters,
		Treasury:        snap.Treasury,
		Trust:           snap.Trust.Clone(),
		Decree:          snap.Decree,
		Control:         snap.Control.Clone(),
		InterventionLog: append([]InterventionLogEntry(nil), snap.InterventionLog...),
		Queued:          append([]QueuedTrigger(nil), snap.Queued...),
		PrevIncome:      snap.PrevIncome,
		Rand:            entropy.Restore(snap.RandState),
		Cooldowns:       make(map[string]int, len(snap.Cooldowns)),
		ChronicCritical: make(map[string]int, len(snap.ChronicCritical)),
	}

	for i := range snap.Regions {
		r := snap.Regions[i]
		st.Regions = append(st.Regions, &r)
	}
	for i := range snap.Estates {
		e := snap.Estates[i]
		st.Estates = append(st.Estates, &e)
	}
	st.Departments = make(map[realm.Department]*realm.DepartmentState, len(snap.Departments))
	for d, ds := range snap.Departments {
		cp := ds
		st.Departments[d] = &cp
	}
	for i := range snap.Council {
		m := snap.Council[i]
		st.Council = append(st.Council, m.Clone())
	}
	for i := range snap.Mandates {
		m := snap.Mandates[i]
		st.Mandates = append(st.Mandates, &m)
	}
	for i := range snap.Active {
		ae := snap.Active[i]
		st.Active = append(st.Active, &ae)
	}
	for k, v := range snap.Cooldowns {
		st.Cooldowns[k] = v
	}
	for k, v := range snap.ChronicCritical {
		st.ChronicCritical[k] = v
	}
	if snap.PrevKPI != nil {
		cp := *snap.PrevKPI
		st.PrevKPI = &cp
	}
	return st
}

// decodeSnapshot validates a blob against the snapshot schema and version
// before trusting its contents.
func decodeSnapshot(blob []byte) (Snapshot, error) {
	var raw any
	if err := json.Unmarshal(blob, &raw); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrSnapshotSchema, err)
	}
	if err := compiledSnapshotSchema.Validate(raw); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrSnapshotSchema, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(blob, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrSnapshotSchema, err)
	}
	if snap.Version != SnapshotVersion {
		return Snapshot{}, fmt.Errorf("%w: snapshot version %d, want %d", ErrSnapshotSchema, snap.Version, SnapshotVersion)
	}
	return snap, nil
}
