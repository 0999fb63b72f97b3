package advisor

import "github.com/avolkov/imperium/internal/realm"

// Equalizer favors the least-efficient departments so the administration
// levels out over time.
type Equalizer struct{}

func (Equalizer) Name() string { return "equalizer" }

func (Equalizer) AllocateBudget(ctx *Context) map[realm.Department]float64 {
	alloc := make(map[realm.Department]float64, len(realm.Departments))
	for _, d := range realm.Departments {
		eff := 1.0
		if ds, ok := ctx.Departments[d]; ok {
			eff = ds.Efficiency
		}
		// Inverse-efficiency weighting: 2.5 is the efficiency ceiling, so
		// the weakest department gets the largest share.
		alloc[d] = 2.6 - eff
	}
	applyTrustPressure(alloc, ctx)
	return alloc
}

// Hardliner keeps a fixed security core (military and internal affairs) and
// surges it when advisor trust is high, damping it when the court has lost
// confidence.
type Hardliner struct{}

func (Hardliner) Name() string { return "hardliner" }

func (Hardliner) AllocateBudget(ctx *Context) map[realm.Department]float64 {
	alloc := map[realm.Department]float64{
		realm.DeptEconomy:   0.8,
		realm.DeptDiplomacy: 0.5,
		realm.DeptInternal:  1.4,
		realm.DeptMilitary:  1.8,
		realm.DeptScience:   0.5,
	}
	// Trust-driven surge: a trusted hardliner doubles down, a distrusted
	// one is forced to moderate.
	surge := 0.6 + ctx.Trust.Advisor*0.8
	alloc[realm.DeptMilitary] *= surge
	alloc[realm.DeptInternal] *= surge
	applyTrustPressure(alloc, ctx)
	return alloc
}

// Mercantile favors the economy/science pair and reallocates toward the
// economy under treasury pressure.
type Mercantile struct{}

func (Mercantile) Name() string { return "mercantile" }

func (Mercantile) AllocateBudget(ctx *Context) map[realm.Department]float64 {
	alloc := map[realm.Department]float64{
		realm.DeptEconomy:   1.7,
		realm.DeptDiplomacy: 0.8,
		realm.DeptInternal:  0.7,
		realm.DeptMilitary:  0.6,
		realm.DeptScience:   1.3,
	}
	// Under treasury pressure everything non-economic is squeezed toward
	// revenue recovery.
	if ctx.BaseBudget > 0 && ctx.Treasury.Gold < ctx.BaseBudget*1.5 {
		pressure := 1.0 - ctx.Treasury.Gold/(ctx.BaseBudget*1.5)
		alloc[realm.DeptEconomy] += pressure * 1.2
		alloc[realm.DeptMilitary] *= 1.0 - pressure*0.5
		alloc[realm.DeptScience] *= 1.0 - pressure*0.3
	}
	applyTrustPressure(alloc, ctx)
	return alloc
}
