// Package events provides the event catalog, the effect model, and the
// condition triggers that turn campaign metrics into narrative events.
package events

import "github.com/avolkov/imperium/internal/realm"

// EffectKind is the closed set of things an event effect can do.
type EffectKind string

const (
	EffectGold               EffectKind = "gold"
	EffectInfluence          EffectKind = "influence"
	EffectLabor              EffectKind = "labor"
	EffectRegionLoyalty      EffectKind = "region_loyalty"
	EffectRegionWealth       EffectKind = "region_wealth"
	EffectRegionInfra        EffectKind = "region_infrastructure"
	EffectEstateSatisfaction EffectKind = "estate_satisfaction"
	EffectEstateInfluence    EffectKind = "estate_influence"
	EffectDeptEfficiency     EffectKind = "department_efficiency"
	EffectAdvisorTrust       EffectKind = "advisor_trust"
)

// Effect is one concrete consequence of an event option or failure clause.
// Target names a region, estate, or department depending on the kind; an
// empty target on a region kind applies to every region.
type Effect struct {
	Kind     EffectKind `json:"kind"`
	Target   string     `json:"target,omitempty"`
	Amount   float64    `json:"amount"`
	Duration int        `json:"duration,omitempty"` // quarters the change matters for scoring
}

// World is the slice of live state effects can touch. The engine's State
// implements it.
type World interface {
	Treasury() *realm.ResourcePool
	Region(name string) *realm.Region
	Regions() []*realm.Region
	Estate(name string) *realm.Estate
	DepartmentState(d realm.Department) *realm.DepartmentState
	Trust() *realm.TrustLevels
}

// kindInfo is the single authoritative row for one effect kind: the
// department it concerns and how to apply it. Scoring, estate-trust
// matching, and application all consult this table; nothing reinterprets
// kinds ad hoc.
type kindInfo struct {
	Dept  realm.Department
	Apply func(w World, e Effect)
}

var kindTable = map[EffectKind]kindInfo{
	EffectGold: {Dept: realm.DeptEconomy, Apply: func(w World, e Effect) {
		t := w.Treasury()
		*t = t.Add(realm.ResourcePool{Gold: e.Amount}).ClampGold()
	}},
	EffectInfluence: {Dept: realm.DeptDiplomacy, Apply: func(w World, e Effect) {
		t := w.Treasury()
		*t = t.Add(realm.ResourcePool{Influence: e.Amount})
	}},
	EffectLabor: {Dept: realm.DeptInternal, Apply: func(w World, e Effect) {
		t := w.Treasury()
		*t = t.Add(realm.ResourcePool{Labor: e.Amount})
	}},
	EffectRegionLoyalty: {Dept: realm.DeptInternal, Apply: func(w World, e Effect) {
		forRegions(w, e.Target, func(r *realm.Region) {
			r.Loyalty = realm.ClampLoyalty(r.Loyalty + e.Amount)
		})
	}},
	EffectRegionWealth: {Dept: realm.DeptEconomy, Apply: func(w World, e Effect) {
		forRegions(w, e.Target, func(r *realm.Region) {
			r.Wealth += e.Amount
			if r.Wealth < 0 {
				r.Wealth = 0
			}
		})
	}},
	EffectRegionInfra: {Dept: realm.DeptEconomy, Apply: func(w World, e Effect) {
		forRegions(w, e.Target, func(r *realm.Region) {
			r.Infrastructure = realm.ClampInfrastructure(r.Infrastructure + e.Amount)
		})
	}},
	EffectEstateSatisfaction: {Dept: realm.DeptInternal, Apply: func(w World, e Effect) {
		if est := w.Estate(e.Target); est != nil {
			est.Satisfaction = realm.ClampSatisfaction(est.Satisfaction + e.Amount)
		}
	}},
	EffectEstateInfluence: {Dept: realm.DeptDiplomacy, Apply: func(w World, e Effect) {
		if est := w.Estate(e.Target); est != nil {
			est.Influence += e.Amount
			if est.Influence < 0 {
				est.Influence = 0
			}
		}
	}},
	EffectDeptEfficiency: {Dept: realm.DeptScience, Apply: func(w World, e Effect) {
		if ds := w.DepartmentState(realm.Department(e.Target)); ds != nil {
			ds.Efficiency = realm.ClampEfficiency(ds.Efficiency + e.Amount)
		}
	}},
	EffectAdvisorTrust: {Dept: realm.DeptDiplomacy, Apply: func(w World, e Effect) {
		tr := w.Trust()
		tr.Advisor = realm.ClampUnit(tr.Advisor + e.Amount)
	}},
}

func forRegions(w World, target string, f func(*realm.Region)) {
	if target != "" {
		if r := w.Region(target); r != nil {
			f(r)
		}
		return
	}
	for _, r := range w.Regions() {
		f(r)
	}
}

// AffectedDepartment returns the department an effect kind concerns. Used by
// estate-trust drift and consultation relevance in addition to scoring.
func AffectedDepartment(k EffectKind) (realm.Department, bool) {
	info, ok := kindTable[k]
	return info.Dept, ok
}

// Apply applies a single effect to the world. Unknown kinds are ignored.
func Apply(w World, e Effect) {
	if info, ok := kindTable[e.Kind]; ok {
		info.Apply(w, e)
	}
}

// ApplyAll applies a list of effects in order.
func ApplyAll(w World, effects []Effect) {
	for _, e := range effects {
		Apply(w, e)
	}
}

// EffectDeptEfficiencyFor is a convenience constructor; the department goes
// in the target field of the tagged union.
func EffectDeptEfficiencyFor(d realm.Department, amount float64) Effect {
	return Effect{Kind: EffectDeptEfficiency, Target: string(d), Amount: amount}
}
