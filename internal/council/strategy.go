// Package council provides the automated side of government: the decision
// strategy that scores event options, the consultation generator, and the
// quarterly council and mandate reports. Everything here is a pure function
// of the state it is handed; nothing mutates live campaign state.
package council

import (
	"fmt"

	"github.com/avolkov/imperium/internal/events"
	"github.com/avolkov/imperium/internal/kpi"
	"github.com/avolkov/imperium/internal/realm"
)

// RejectionThreshold is the score below which the strategy refuses to pick
// any option and defers instead.
const RejectionThreshold = 0.5

// DecideInput is the state slice the strategy scores against.
type DecideInput struct {
	Treasury realm.ResourcePool
	KPI      kpi.Report
	Trust    realm.TrustLevels
}

// Decision is the strategy's verdict on one event.
type Decision struct {
	OptionID string  // empty when Deferred
	Score    float64
	Deferred bool
	Note     string
}

// Preview converts the decision into the outcome-attached preview record.
func (d Decision) Preview() *events.Preview {
	return &events.Preview{OptionID: d.OptionID, Score: d.Score, Note: d.Note}
}

// severityPenalty is the fixed score deduction per event severity: graver
// events demand more certain options.
var severityPenalty = map[events.Severity]float64{
	events.SeverityMinor:    0,
	events.SeverityModerate: 1.0,
	events.SeverityMajor:    2.0,
}

// kindBenefit normalizes effect amounts of different kinds onto one scale.
var kindBenefit = map[events.EffectKind]float64{
	events.EffectGold:               0.04,
	events.EffectInfluence:          0.05,
	events.EffectLabor:              0.03,
	events.EffectRegionLoyalty:      0.35,
	events.EffectRegionWealth:       0.12,
	events.EffectRegionInfra:        0.25,
	events.EffectEstateSatisfaction: 0.35,
	events.EffectEstateInfluence:    0.15,
	events.EffectDeptEfficiency:     8.0,
	events.EffectAdvisorTrust:       20.0,
}

// Decide scores every option of the event and picks the best, or defers when
// even the best option scores below the rejection threshold.
func Decide(ev *events.SimulationEvent, in DecideInput) Decision {
	best := Decision{Score: -1e9, Deferred: true}
	for i := range ev.Options {
		opt := &ev.Options[i]
		if opt.Cost != nil && !in.Treasury.CanAfford(*opt.Cost) {
			continue
		}
		score := scoreOption(ev, opt, in)
		if score > best.Score {
			best = Decision{OptionID: opt.ID, Score: score}
		}
	}
	if best.OptionID == "" {
		return Decision{Deferred: true, Note: "no affordable option", Score: best.Score}
	}
	if best.Score < RejectionThreshold {
		return Decision{Deferred: true, Note: fmt.Sprintf("too risky: best option %q scored %.2f", best.OptionID, best.Score), Score: best.Score}
	}
	return best
}

func scoreOption(ev *events.SimulationEvent, opt *events.Option, in DecideInput) float64 {
	score := 0.0

	// Effect benefit, weighted by how threatened the related indicator is
	// and how long the effect matters.
	for _, e := range opt.Effects {
		benefit := e.Amount * kindBenefit[e.Kind]
		benefit *= kpi.Weight(relatedThreat(e.Kind, in.KPI))
		if e.Duration > 1 {
			benefit *= 1 + 0.15*float64(e.Duration-1)
		}
		score += benefit
	}

	// Activation cost.
	if opt.Cost != nil {
		score -= opt.Cost.Gold*0.03 + opt.Cost.Influence*0.04 + opt.Cost.Labor*0.02
	}

	score -= severityPenalty[ev.Severity]

	// A trusted council acts with more latitude.
	score += in.Trust.Advisor * 1.5

	// Options that open follow-up chains carry narrative weight.
	score += 0.4 * float64(len(opt.FollowUps))

	return score
}

// relatedThreat maps an effect kind to the KPI whose threat level should
// weight it, via the authoritative kind → department table.
func relatedThreat(k events.EffectKind, report kpi.Report) kpi.ThreatLevel {
	dept, ok := events.AffectedDepartment(k)
	if !ok {
		return kpi.ThreatLow
	}
	switch dept {
	case realm.DeptMilitary:
		return report.SecurityIndex.ThreatLevel
	case realm.DeptInternal, realm.DeptDiplomacy:
		return report.Stability.ThreatLevel
	default:
		return report.EconomicGrowth.ThreatLevel
	}
}
