// Mandate progress tracking and council wear. Runs inside step 4, before
// event triggering, so mandate status can feed the quarter's reports.
package engine

import (
	"log/slog"

	"github.com/avolkov/imperium/internal/realm"
)

// updateMandates advances every non-terminal mandate from its goal metric,
// derives status, and drifts the stress and motivation of assigned council
// members.
func (s *State) updateMandates() {
	for _, m := range s.Mandates {
		if m.Status.Terminal() {
			continue
		}
		if m.Horizon > 0 {
			m.Horizon--
		}

		gain := s.mandateGain(m)
		prev := m.Progress
		m.Progress = realm.ClampUnit(m.Progress + gain)

		// Confidence follows the recent slope.
		m.Confidence = realm.ClampUnit(m.Confidence*0.7 + (m.Progress-prev)*10*0.3 + 0.15)

		switch {
		case m.Progress >= 1:
			m.Status = realm.MandateCompleted
			slog.Info("mandate completed", "mandate", m.ID, "goal", m.Goal)
		case m.Horizon <= 0:
			m.Status = realm.MandateFailed
			slog.Info("mandate failed at horizon", "mandate", m.ID, "goal", m.Goal)
		case m.Progress == 0 && prev == 0:
			m.Status = realm.MandateNotStarted
		case onTrack(m):
			m.Status = realm.MandateOnTrack
		case m.Progress > 0 && m.Progress < 0.3 && m.Horizon <= 2:
			m.Status = realm.MandateAtRisk
		default:
			m.Status = realm.MandateInProgress
		}
		if m.Status == realm.MandateInProgress && m.Urgency > 0.7 && m.Horizon <= 3 && m.Progress < 0.6 {
			m.Status = realm.MandateAtRisk
		}
	}

	s.wearCouncil()
}

// mandateGain converts this quarter's relevant metric into a progress
// increment.
func (s *State) mandateGain(m *realm.Mandate) float64 {
	switch m.Goal {
	case realm.GoalRaiseLoyalty:
		if r := s.findRegion(m.Target); r != nil {
			return (r.Loyalty - 50) / 500
		}
	case realm.GoalBuildInfra:
		if r := s.findRegion(m.Target); r != nil {
			return (r.Infrastructure - 60) / 600
		}
	case realm.GoalAppeaseEstate:
		if est := s.findEstate(m.Target); est != nil {
			return (est.Satisfaction - 40) / 400
		}
	case realm.GoalGrowTreasury:
		if s.PrevIncome > 0 {
			return (s.Treasury.Gold - s.PrevIncome*4) / 2000
		}
		return s.Treasury.Gold / 4000
	case realm.GoalRestoreStability:
		if s.PrevKPI != nil {
			return (s.PrevKPI.Stability.Value - 45) / 400
		}
	}
	return 0
}

func onTrack(m *realm.Mandate) bool {
	if m.Horizon <= 0 {
		return false
	}
	// Progress proportional to elapsed share of the horizon counts as on
	// track; the 0.1 slack avoids flapping near the line.
	return m.Progress >= 0.3 && m.Progress+0.1 >= 1.0-float64(m.Horizon)*0.1
}

// wearCouncil drifts stress and motivation from mandate workload.
func (s *State) wearCouncil() {
	byID := make(map[string]*realm.Mandate, len(s.Mandates))
	for _, m := range s.Mandates {
		byID[m.ID] = m
	}
	for _, member := range s.Council {
		atRisk, onGoing := 0, 0
		for _, id := range member.AssignedMandates {
			m, ok := byID[id]
			if !ok || m.Status.Terminal() {
				continue
			}
			onGoing++
			if m.Status == realm.MandateAtRisk {
				atRisk++
			}
		}
		member.Stress = realm.ClampUnit(member.Stress + float64(atRisk)*0.08 + float64(onGoing)*0.01 - 0.04)
		if atRisk == 0 && onGoing > 0 {
			member.Motivation = realm.ClampUnit(member.Motivation + 0.03)
		} else {
			member.Motivation = realm.ClampUnit(member.Motivation - float64(atRisk)*0.04)
		}
	}
}
