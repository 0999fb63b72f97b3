// Event intervention state machine: every active event is settled by the
// player, the council, or the countdown, and every settlement produces
// exactly one outcome and one chronological log entry.
package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/avolkov/imperium/internal/council"
	"github.com/avolkov/imperium/internal/events"
	"github.com/avolkov/imperium/internal/kpi"
	"github.com/avolkov/imperium/internal/realm"
)

// PlayerDecisionKind is what the handler chose to do with a presented event.
type PlayerDecisionKind string

const (
	DecisionOption  PlayerDecisionKind = "option"  // resolve with OptionID
	DecisionDefer   PlayerDecisionKind = "defer"   // leave the event pending
	DecisionHandoff PlayerDecisionKind = "handoff" // let the council settle it now
)

// PlayerDecision is the handler's answer to a presented panel.
type PlayerDecision struct {
	Kind     PlayerDecisionKind
	OptionID string
}

// Panel is everything a handler needs to present one pending event.
type Panel struct {
	Event          events.SimulationEvent
	RemainingTime  int
	Quarter        int
	Summary        string
	CouncilPreview events.Preview // what the council would do
}

// Handler is the external intervention contract. A handler that returns an
// error or a malformed decision defers the event; it can never break a
// quarter.
type Handler interface {
	Present(p Panel) (PlayerDecision, error)
}

// LogObserver is an optional side-channel a handler may implement to mirror
// committed log entries in its own UI.
type LogObserver interface {
	Record(entry InterventionLogEntry)
}

// InterventionLogEntry is the chronological record of one event settlement,
// kept independently of quarterly reports.
type InterventionLogEntry struct {
	ID               string                `json:"id"`
	Quarter          int                   `json:"quarter"`
	Timestamp        time.Time             `json:"timestamp"`
	EventID          string                `json:"event_id"`
	Status           events.OutcomeStatus  `json:"status"`
	SelectedOptionID string                `json:"selected_option_id,omitempty"`
	ResolutionMode   events.ResolutionMode `json:"resolution_mode,omitempty"`
	Note             string                `json:"note,omitempty"`
}

// resolveInterventions runs step 6 for every currently active event, in
// insertion order. Resolved events are consumed; deferred events stay in the
// active set for the countdown.
func (s *State) resolveInterventions(handler Handler, observer LogObserver) []events.Outcome {
	var outcomes []events.Outcome
	var remaining []*events.ActiveEvent

	for _, ae := range s.Active {
		outcome := s.settleEvent(ae, handler)
		s.logOutcome(&outcome, observer)
		outcomes = append(outcomes, outcome)
		if outcome.Status == events.OutcomeDeferred {
			remaining = append(remaining, ae)
		}
	}
	s.Active = remaining
	return outcomes
}

// settleEvent runs one event through the intervention state machine.
func (s *State) settleEvent(ae *events.ActiveEvent, handler Handler) events.Outcome {
	ev := &ae.Event

	// The advisor preview is always computed, whoever decides.
	preview := council.Decide(ev, council.DecideInput{
		Treasury: s.Treasury,
		KPI:      s.lastKPI(),
		Trust:    s.Trust,
	})

	route := s.Control.routeFor(ev.Category)
	if route == RouteToPlayer && handler != nil {
		return s.settleByPlayer(ae, handler, preview)
	}
	return s.settleByCouncil(ae, preview)
}

func (s *State) settleByPlayer(ae *events.ActiveEvent, handler Handler, preview council.Decision) events.Outcome {
	ev := &ae.Event
	panel := Panel{
		Event:          *ev,
		RemainingTime:  ae.RemainingTime,
		Quarter:        s.Quarter,
		Summary:        fmt.Sprintf("%s: %s (%d quarters before %s)", ev.Title, ev.Description, ae.RemainingTime, ev.Failure.Description),
		CouncilPreview: *preview.Preview(),
	}

	decision, err := handler.Present(panel)
	if err != nil {
		slog.Warn("intervention handler failed, deferring", "event", ev.ID, "error", err)
		return deferredOutcome(ev, preview, fmt.Sprintf("handler error: %v", err), "")
	}

	switch decision.Kind {
	case DecisionOption:
		opt := ev.Option(decision.OptionID)
		if opt == nil {
			slog.Warn("handler selected unknown option, deferring", "event", ev.ID, "option", decision.OptionID)
			return deferredOutcome(ev, preview, fmt.Sprintf("unknown option %q", decision.OptionID), "")
		}
		return s.resolveWithOption(ev, opt, events.ResolvedByPlayer, preview)
	case DecisionHandoff:
		return s.settleByCouncil(ae, preview)
	case DecisionDefer:
		return deferredOutcome(ev, preview, "deferred by player", "")
	default:
		return deferredOutcome(ev, preview, fmt.Sprintf("malformed handler decision %q", decision.Kind), "")
	}
}

func (s *State) settleByCouncil(ae *events.ActiveEvent, preview council.Decision) events.Outcome {
	ev := &ae.Event
	if preview.Deferred {
		return deferredOutcome(ev, preview, preview.Note, events.ResolvedByCouncil)
	}
	opt := ev.Option(preview.OptionID)
	if opt == nil {
		// Strategy returned an id the event doesn't carry; treat as policy
		// degeneracy and defer.
		slog.Warn("strategy picked unknown option, deferring", "event", ev.ID, "option", preview.OptionID)
		return deferredOutcome(ev, preview, "degenerate strategy decision", events.ResolvedByCouncil)
	}
	return s.resolveWithOption(ev, opt, events.ResolvedByCouncil, preview)
}

func deferredOutcome(ev *events.SimulationEvent, preview council.Decision, note string, mode events.ResolutionMode) events.Outcome {
	return events.Outcome{
		EventID:        ev.ID,
		Title:          ev.Title,
		Status:         events.OutcomeDeferred,
		ResolutionMode: mode,
		AdvisorPreview: preview.Preview(),
		Note:           note,
	}
}

// resolveWithOption pays the option cost, applies its effects, queues its
// follow-ups, and drifts trust.
func (s *State) resolveWithOption(ev *events.SimulationEvent, opt *events.Option, mode events.ResolutionMode, preview council.Decision) events.Outcome {
	if opt.Cost != nil {
		s.Treasury = s.Treasury.Sub(*opt.Cost).ClampGold()
	}
	events.ApplyAll(worldView{s}, opt.Effects)

	for _, followUp := range opt.FollowUps {
		s.Queued = append(s.Queued, QueuedTrigger{TemplateID: followUp, Origin: ev.Origin})
	}
	if opt.Cooldown > 0 {
		s.Cooldowns[ev.TemplateID] = opt.Cooldown
	}

	s.driftTrust(opt, mode, preview)

	return events.Outcome{
		EventID:          ev.ID,
		Title:            ev.Title,
		Status:           events.OutcomeResolved,
		SelectedOptionID: opt.ID,
		AppliedEffects:   append([]events.Effect(nil), opt.Effects...),
		ResolutionMode:   mode,
		AdvisorPreview:   preview.Preview(),
	}
}

// driftTrust moves advisor trust toward agreement with the preview and
// estate trust toward whether the choice served each estate's favored
// department.
func (s *State) driftTrust(opt *events.Option, mode events.ResolutionMode, preview council.Decision) {
	if mode == events.ResolvedByPlayer {
		if preview.OptionID == opt.ID {
			s.Trust.Advisor = realm.ClampUnit(s.Trust.Advisor + 0.02)
		} else {
			s.Trust.Advisor = realm.ClampUnit(s.Trust.Advisor - 0.03)
		}
	}

	touched := make(map[realm.Department]bool)
	for _, e := range opt.Effects {
		if d, ok := events.AffectedDepartment(e.Kind); ok && e.Amount > 0 {
			touched[d] = true
		}
	}
	for _, est := range s.Estates {
		cur := s.Trust.Estates[est.Name]
		if touched[est.FavoredDepartment] {
			s.Trust.Estates[est.Name] = realm.ClampUnit(cur + 0.015)
		} else {
			s.Trust.Estates[est.Name] = realm.ClampUnit(cur - 0.005)
		}
	}
}

// logOutcome appends the chronological intervention log entry for a
// settlement. Entry ids are derived deterministically so replayed campaigns
// produce identical logs.
func (s *State) logOutcome(outcome *events.Outcome, observer LogObserver) {
	seq := len(s.InterventionLog)
	entry := InterventionLogEntry{
		ID:               uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s|q%d|%d", outcome.EventID, s.Quarter, seq))).String(),
		Quarter:          s.Quarter,
		Timestamp:        time.Now().UTC(),
		EventID:          outcome.EventID,
		Status:           outcome.Status,
		SelectedOptionID: outcome.SelectedOptionID,
		ResolutionMode:   outcome.ResolutionMode,
		Note:             outcome.Note,
	}
	s.InterventionLog = append(s.InterventionLog, entry)
	if observer != nil {
		observer.Record(entry)
	}
}

// lastKPI returns the previous quarter's KPI report for scoring, or a zero
// report on the first quarter.
func (s *State) lastKPI() kpi.Report {
	if s.PrevKPI != nil {
		return *s.PrevKPI
	}
	return kpi.Report{}
}
