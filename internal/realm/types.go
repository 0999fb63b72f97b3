// Package realm provides the entity model for a campaign: resource pools,
// regions, social estates, government departments, council members, and
// strategic mandates. Pure data with range invariants; all mutation happens
// in the engine.
package realm

// ResourcePool holds the three imperial currencies.
type ResourcePool struct {
	Gold      float64 `json:"gold"`
	Influence float64 `json:"influence"`
	Labor     float64 `json:"labor"`
}

// Add returns the pointwise sum of two pools.
func (p ResourcePool) Add(o ResourcePool) ResourcePool {
	return ResourcePool{
		Gold:      p.Gold + o.Gold,
		Influence: p.Influence + o.Influence,
		Labor:     p.Labor + o.Labor,
	}
}

// Sub returns the pointwise difference of two pools.
func (p ResourcePool) Sub(o ResourcePool) ResourcePool {
	return ResourcePool{
		Gold:      p.Gold - o.Gold,
		Influence: p.Influence - o.Influence,
		Labor:     p.Labor - o.Labor,
	}
}

// Scale returns the pool multiplied pointwise by f.
func (p ResourcePool) Scale(f float64) ResourcePool {
	return ResourcePool{
		Gold:      p.Gold * f,
		Influence: p.Influence * f,
		Labor:     p.Labor * f,
	}
}

// ClampGold floors gold at zero. Influence and labor may run negative in
// practice; gold never does.
func (p ResourcePool) ClampGold() ResourcePool {
	if p.Gold < 0 {
		p.Gold = 0
	}
	return p
}

// CanAfford reports whether every component of cost is covered.
func (p ResourcePool) CanAfford(cost ResourcePool) bool {
	return p.Gold >= cost.Gold && p.Influence >= cost.Influence && p.Labor >= cost.Labor
}

// Specialization is a region's economic orientation.
type Specialization string

const (
	SpecTrade       Specialization = "trade"
	SpecAgriculture Specialization = "agriculture"
	SpecIndustry    Specialization = "industry"
)

// Region is a province of the empire. Regions are never destroyed during a
// campaign; their numbers drift each quarter.
type Region struct {
	Name           string         `json:"name"` // unique key
	Population     int            `json:"population"`
	Wealth         float64        `json:"wealth"`
	Loyalty        float64        `json:"loyalty"`        // 0–100
	Infrastructure float64        `json:"infrastructure"` // 0–120
	Specialization Specialization `json:"specialization"`
	ResourceOutput ResourcePool   `json:"resource_output"` // per-quarter base rate
}

// Estate is a social stratum with a stake in one government department.
type Estate struct {
	Name              string     `json:"name"` // unique key
	Influence         float64    `json:"influence"`
	Satisfaction      float64    `json:"satisfaction"` // 10–90
	FavoredDepartment Department `json:"favored_department"`
}

// Department is one of the fixed government portfolios.
type Department string

const (
	DeptEconomy   Department = "economy"
	DeptDiplomacy Department = "diplomacy"
	DeptInternal  Department = "internal"
	DeptMilitary  Department = "military"
	DeptScience   Department = "science"
)

// Departments lists every department in canonical order. Allocation vectors
// iterate this slice so that spend ordering is deterministic.
var Departments = []Department{DeptEconomy, DeptDiplomacy, DeptInternal, DeptMilitary, DeptScience}

// DepartmentState is the live fiscal state of one department.
type DepartmentState struct {
	Department           Department `json:"department"`
	Efficiency           float64    `json:"efficiency"` // 0.6–2.5
	Budget               float64    `json:"budget"`     // last quarter's spend
	CumulativeInvestment float64    `json:"cumulative_investment"`
}

// TrustLevels tracks how much the player's choices are trusted.
type TrustLevels struct {
	Advisor float64            `json:"advisor"` // 0–1
	Estates map[string]float64 `json:"estates"` // estate name → 0–1
}

// Clone deep-copies the trust map.
func (t TrustLevels) Clone() TrustLevels {
	c := TrustLevels{Advisor: t.Advisor, Estates: make(map[string]float64, len(t.Estates))}
	for k, v := range t.Estates {
		c.Estates[k] = v
	}
	return c
}

// Clamp keeps a value within [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampLoyalty applies the region loyalty range.
func ClampLoyalty(v float64) float64 { return Clamp(v, 0, 100) }

// ClampInfrastructure applies the region infrastructure range.
func ClampInfrastructure(v float64) float64 { return Clamp(v, 0, 120) }

// ClampSatisfaction applies the estate satisfaction range.
func ClampSatisfaction(v float64) float64 { return Clamp(v, 10, 90) }

// ClampEfficiency applies the department efficiency range.
func ClampEfficiency(v float64) float64 { return Clamp(v, 0.6, 2.5) }

// ClampUnit keeps a value within [0, 1].
func ClampUnit(v float64) float64 { return Clamp(v, 0, 1) }
