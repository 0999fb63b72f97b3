// Package scenario builds the initial engine state from a campaign
// definition. Starting numbers get a small seeded noise jitter so that two
// campaigns with different seeds diverge from quarter one, while the same
// seed always reproduces the same realm.
package scenario

import (
	"fmt"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/avolkov/imperium/internal/config"
	"github.com/avolkov/imperium/internal/engine"
	"github.com/avolkov/imperium/internal/entropy"
	"github.com/avolkov/imperium/internal/events"
	"github.com/avolkov/imperium/internal/realm"
)

// Build converts a validated campaign into a live starting state.
func Build(c config.Campaign) (*engine.State, error) {
	noise := opensimplex.NewNormalized(c.Seed)

	st := &engine.State{
		Quarter:         0,
		TotalQuarters:   c.Quarters,
		Treasury:        c.Treasury.Pool(),
		Decree:          c.Decree,
		Cooldowns:       make(map[string]int),
		ChronicCritical: make(map[string]int),
		Rand:            entropy.NewStream(c.Seed),
	}

	st.Regions = make([]*realm.Region, len(c.Regions))
	for i, spec := range c.Regions {
		// Two independent noise samples per region, offset along one axis
		// so wealth and population jitter do not correlate.
		wj := jitter(noise.Eval2(float64(i), 0.25), c.Jitter)
		pj := jitter(noise.Eval2(float64(i), 7.75), c.Jitter)
		st.Regions[i] = &realm.Region{
			Name:           spec.Name,
			Population:     int(float64(spec.Population) * pj),
			Wealth:         spec.Wealth * wj,
			Loyalty:        realm.ClampLoyalty(spec.Loyalty),
			Infrastructure: realm.ClampInfrastructure(spec.Infrastructure),
			Specialization: spec.Specialization,
			ResourceOutput: spec.Output.Pool(),
		}
	}

	st.Estates = make([]*realm.Estate, len(c.Estates))
	st.Trust = realm.TrustLevels{
		Advisor: realm.ClampUnit(c.AdvisorTrust),
		Estates: make(map[string]float64, len(c.Estates)),
	}
	for i, spec := range c.Estates {
		st.Estates[i] = &realm.Estate{
			Name:              spec.Name,
			Influence:         spec.Influence,
			Satisfaction:      realm.ClampSatisfaction(spec.Satisfaction),
			FavoredDepartment: spec.Favored,
		}
		st.Trust.Estates[spec.Name] = realm.ClampUnit(spec.Trust)
	}

	st.Departments = make(map[realm.Department]*realm.DepartmentState, len(realm.Departments))
	for _, d := range realm.Departments {
		st.Departments[d] = &realm.DepartmentState{Department: d, Efficiency: 1.0}
	}

	st.Council = make([]*realm.CouncilMember, len(c.Council))
	for i, spec := range c.Council {
		st.Council[i] = &realm.CouncilMember{
			ID:               spec.ID,
			Name:             spec.Name,
			Portfolio:        spec.Portfolio,
			Competence:       realm.ClampUnit(spec.Competence),
			Loyalty:          realm.ClampUnit(spec.Loyalty),
			Motivation:       realm.ClampUnit(spec.Motivation),
			AssignedMandates: append([]string(nil), spec.Mandates...),
		}
	}

	st.Mandates = make([]*realm.Mandate, len(c.Mandates))
	for i, spec := range c.Mandates {
		st.Mandates[i] = &realm.Mandate{
			ID:         spec.ID,
			Goal:       spec.Goal,
			TargetKind: spec.TargetKind,
			Target:     spec.Target,
			Urgency:    realm.ClampUnit(spec.Urgency),
			Horizon:    spec.Horizon,
			Status:     realm.MandateNotStarted,
			Confidence: 0.5,
		}
	}

	st.Control = engine.ControlState{Mode: engine.ControlMode(c.ControlMode)}
	if len(c.Routing) > 0 {
		st.Control.Routing = make(map[events.Category]engine.RouteTarget, len(c.Routing))
		for cat, dst := range c.Routing {
			st.Control.Routing[events.Category(cat)] = engine.RouteTarget(dst)
		}
	}
	st.Control.SetMode(st.Control.Mode, 0, "campaign start", "scenario")

	if len(st.Regions) == 0 {
		return nil, fmt.Errorf("campaign %q has no regions", c.Name)
	}
	return st, nil
}

// EngineConfig derives the engine tuning from the campaign.
func EngineConfig(c config.Campaign) engine.Config {
	cfg := engine.Config{
		BaseQuarterBudget: c.BaseQuarterBudget,
		ChronicQuarters:   c.ChronicQuarters,
	}
	if len(c.Routing) > 0 {
		cfg.Routing = make(map[events.Category]engine.RouteTarget, len(c.Routing))
		for cat, dst := range c.Routing {
			cfg.Routing[events.Category(cat)] = engine.RouteTarget(dst)
		}
	}
	return cfg
}

// jitter maps a normalized noise sample in [0,1] onto a multiplicative
// factor in [1-amp, 1+amp].
func jitter(sample, amp float64) float64 {
	if amp <= 0 {
		return 1
	}
	return 1 + (sample*2-1)*amp
}
