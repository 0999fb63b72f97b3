// Session: the externally-facing handle on a running campaign.
package engine

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/avolkov/imperium/internal/advisor"
	"github.com/avolkov/imperium/internal/events"
	"github.com/avolkov/imperium/internal/realm"
)

// BlobStore is the opaque named-blob contract persistence collaborators
// implement. The engine never knows where blobs live.
type BlobStore interface {
	WriteBlob(name string, data []byte) error
	ReadBlob(name string) ([]byte, error)
}

// LogSink receives committed intervention log entries chronologically,
// independent of quarterly reports.
type LogSink interface {
	AppendIntervention(entry InterventionLogEntry) error
}

// Session wraps the engine with mutable campaign state. Exactly one
// AdvanceQuarter call may be in flight at a time; the engine suspends
// per-active-event while awaiting handler decisions, so outcome ordering
// follows the insertion order of the active set.
type Session struct {
	cfg     Config
	catalog *events.Catalog
	policy  advisor.Policy
	state   *State
	history []QuarterlyReport
	sink    LogSink
}

// NewSession validates the initial state and builds a session. Malformed
// initial state (no regions, missing departments, no entropy stream) is a
// construction error; a campaign never starts from it.
func NewSession(cfg Config, st *State, catalog *events.Catalog, policy advisor.Policy) (*Session, error) {
	cfg.Normalize()
	if st == nil {
		return nil, fmt.Errorf("nil initial state")
	}
	if len(st.Regions) == 0 {
		return nil, fmt.Errorf("campaign needs at least one region")
	}
	if len(st.Estates) == 0 {
		return nil, fmt.Errorf("campaign needs at least one estate")
	}
	for _, d := range realm.Departments {
		if st.Departments[d] == nil {
			return nil, fmt.Errorf("department %q missing from initial state", d)
		}
	}
	if st.TotalQuarters <= 0 {
		return nil, fmt.Errorf("total quarters must be positive")
	}
	if st.Rand == nil {
		return nil, fmt.Errorf("initial state carries no entropy stream")
	}
	if catalog == nil {
		return nil, fmt.Errorf("nil event catalog")
	}
	if policy == nil {
		return nil, fmt.Errorf("nil advisor policy")
	}
	if st.Cooldowns == nil {
		st.Cooldowns = make(map[string]int)
	}
	if st.ChronicCritical == nil {
		st.ChronicCritical = make(map[string]int)
	}
	if st.Control.Routing == nil && cfg.Routing != nil {
		st.Control.Routing = cfg.Routing
	}
	return &Session{cfg: cfg, catalog: catalog, policy: policy, state: st}, nil
}

// SetLogSink attaches a persistence sink for intervention log entries.
func (s *Session) SetLogSink(sink LogSink) { s.sink = sink }

// AdvanceQuarter runs one full quarter using copy-then-commit: live state
// mutates only after every step succeeds, so an aborted quarter leaves the
// campaign exactly where it was.
func (s *Session) AdvanceQuarter(handler Handler) (QuarterlyReport, error) {
	if s.state.Quarter >= s.state.TotalQuarters {
		return QuarterlyReport{}, ErrCampaignOver
	}

	work := s.state.Clone()
	logMark := len(work.InterventionLog)

	var observer LogObserver
	if o, ok := handler.(LogObserver); ok {
		observer = o
	}

	report := runQuarter(work, s.cfg, s.catalog, s.policy, handler, observer)

	// Commit.
	s.state = work
	s.history = append(s.history, report)

	if s.sink != nil {
		for _, entry := range work.InterventionLog[logMark:] {
			if err := s.sink.AppendIntervention(entry); err != nil {
				slog.Warn("intervention log sink failed", "entry", entry.ID, "error", err)
			}
		}
	}
	return report, nil
}

// Quarter returns the number of completed quarters.
func (s *Session) Quarter() int { return s.state.Quarter }

// TotalQuarters returns the current campaign length limit.
func (s *Session) TotalQuarters() int { return s.state.TotalQuarters }

// Done reports whether the campaign has reached its quarter limit.
func (s *Session) Done() bool { return s.state.Quarter >= s.state.TotalQuarters }

// Reports returns the full ordered report history. This is the sole
// contract reporting collaborators consume; they never see live state.
func (s *Session) Reports() []QuarterlyReport {
	return append([]QuarterlyReport(nil), s.history...)
}

// Summary returns the derived KPI averages over the report history.
func (s *Session) Summary() KPIAverages {
	return AverageKPIs(s.history)
}

// InterventionLog returns the chronological settlement log.
func (s *Session) InterventionLog() []InterventionLogEntry {
	return append([]InterventionLogEntry(nil), s.state.InterventionLog...)
}

// ControlHistory returns the append-only control-mode transition history.
func (s *Session) ControlHistory() []ControlModeLogEntry {
	return append([]ControlModeLogEntry(nil), s.state.Control.History...)
}

// ControlMode returns the current control mode.
func (s *Session) ControlMode() ControlMode { return s.state.Control.Mode }

// SetControlMode transitions the control mode, logging the change with the
// current quarter number.
func (s *Session) SetControlMode(mode ControlMode, reason, source string) {
	s.state.Control.SetMode(mode, s.state.Quarter, reason, source)
	slog.Info("control mode changed", "mode", mode, "quarter", s.state.Quarter, "reason", reason, "source", source)
}

// ExtendQuarters raises the campaign length limit.
func (s *Session) ExtendQuarters(extra int) {
	if extra > 0 {
		s.state.TotalQuarters += extra
		slog.Info("campaign extended", "total_quarters", s.state.TotalQuarters)
	}
}

// ExportState serializes the campaign into an opaque snapshot blob.
func (s *Session) ExportState() ([]byte, error) {
	snap := exportSnapshot(s.state, s.policy.Name())
	return json.Marshal(snap)
}

// SaveTo exports the current state into the named blob of a store.
func (s *Session) SaveTo(store BlobStore, name string) error {
	blob, err := s.ExportState()
	if err != nil {
		return fmt.Errorf("export state: %w", err)
	}
	if err := store.WriteBlob(name, blob); err != nil {
		return fmt.Errorf("write snapshot %q: %w", name, err)
	}
	slog.Info("snapshot saved", "name", name, "quarter", s.state.Quarter, "bytes", len(blob))
	return nil
}

// FromState reconstructs a session from a snapshot blob. The resumed
// session's subsequent quarters replay identically to an uninterrupted run.
func FromState(cfg Config, catalog *events.Catalog, policy advisor.Policy, blob []byte) (*Session, error) {
	snap, err := decodeSnapshot(blob)
	if err != nil {
		return nil, err
	}
	st := restoreState(snap)
	sess, err := NewSession(cfg, st, catalog, policy)
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	slog.Info("session restored", "quarter", st.Quarter, "total_quarters", st.TotalQuarters)
	return sess, nil
}
