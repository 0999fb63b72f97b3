// Package decree provides the standing-policy modifier tables. A decree is
// a tax policy plus an investment priority; everything here is a pure table
// lookup consumed by the engine each quarter.
package decree

import "github.com/avolkov/imperium/internal/realm"

// TaxPolicy is the empire-wide taxation stance.
type TaxPolicy string

const (
	TaxLight    TaxPolicy = "light"
	TaxModerate TaxPolicy = "moderate"
	TaxHeavy    TaxPolicy = "heavy"
)

// Priority is the investment priority of the current decree.
type Priority string

const (
	PriorityBalanced      Priority = "balanced"
	PriorityCommerce      Priority = "commerce"
	PriorityAgrarian      Priority = "agrarian"
	PriorityIndustrial    Priority = "industrial"
	PrioritySecurity      Priority = "security"
	PriorityEnlightenment Priority = "enlightenment"
)

// Decree is the standing policy pair applied to every quarter's multipliers.
type Decree struct {
	Tax      TaxPolicy `json:"tax" yaml:"tax"`
	Priority Priority  `json:"priority" yaml:"priority"`
}

// taxTable holds the per-policy modifiers. Heavier taxation earns more now
// and erodes loyalty and estate satisfaction.
var taxTable = map[TaxPolicy]struct {
	income       float64
	loyalty      float64 // additive drift per quarter
	satisfaction float64 // additive drift per quarter
}{
	TaxLight:    {income: 0.85, loyalty: 0.8, satisfaction: 0.5},
	TaxModerate: {income: 1.0, loyalty: 0, satisfaction: 0},
	TaxHeavy:    {income: 1.25, loyalty: -1.2, satisfaction: -0.9},
}

// IncomeModifier returns the tax multiplier on all region income.
func IncomeModifier(t TaxPolicy) float64 {
	if m, ok := taxTable[t]; ok {
		return m.income
	}
	return 1.0
}

// LoyaltyDrift returns the additive per-quarter region loyalty drift.
func LoyaltyDrift(t TaxPolicy) float64 {
	return taxTable[t].loyalty
}

// SatisfactionDrift returns the additive per-quarter estate satisfaction drift.
func SatisfactionDrift(t TaxPolicy) float64 {
	return taxTable[t].satisfaction
}

// specializationTable maps priority → per-specialization income multiplier.
// Priorities favor the regions whose economy matches them.
var specializationTable = map[Priority]map[realm.Specialization]float64{
	PriorityBalanced:      {realm.SpecTrade: 1.0, realm.SpecAgriculture: 1.0, realm.SpecIndustry: 1.0},
	PriorityCommerce:      {realm.SpecTrade: 1.3, realm.SpecAgriculture: 0.95, realm.SpecIndustry: 1.0},
	PriorityAgrarian:      {realm.SpecTrade: 0.95, realm.SpecAgriculture: 1.3, realm.SpecIndustry: 0.95},
	PriorityIndustrial:    {realm.SpecTrade: 1.0, realm.SpecAgriculture: 0.9, realm.SpecIndustry: 1.35},
	PrioritySecurity:      {realm.SpecTrade: 0.9, realm.SpecAgriculture: 1.0, realm.SpecIndustry: 1.1},
	PriorityEnlightenment: {realm.SpecTrade: 1.05, realm.SpecAgriculture: 0.95, realm.SpecIndustry: 1.0},
}

// SpecializationMultiplier returns the income multiplier a priority grants a
// region of the given specialization.
func SpecializationMultiplier(p Priority, s realm.Specialization) float64 {
	if row, ok := specializationTable[p]; ok {
		if m, ok := row[s]; ok {
			return m
		}
	}
	return 1.0
}

// boostTable maps priority → per-department budget boost. The engine
// reweights the normalized advisor allocation by these and renormalizes.
var boostTable = map[Priority]map[realm.Department]float64{
	PriorityBalanced: {},
	PriorityCommerce: {realm.DeptEconomy: 0.3, realm.DeptDiplomacy: 0.1},
	PriorityAgrarian: {realm.DeptEconomy: 0.2, realm.DeptInternal: 0.15},
	PriorityIndustrial: {realm.DeptEconomy: 0.25, realm.DeptScience: 0.15},
	PrioritySecurity: {realm.DeptMilitary: 0.35, realm.DeptInternal: 0.2},
	PriorityEnlightenment: {realm.DeptScience: 0.4, realm.DeptDiplomacy: 0.1},
}

// BudgetBoost returns the multiplicative boost (1 + table value) a priority
// grants the department's allocation weight.
func BudgetBoost(p Priority, d realm.Department) float64 {
	return 1.0 + boostTable[p][d]
}

// PriorityBonus returns the efficiency drift bonus factor for departments the
// priority boosts. Used by the department efficiency update.
func PriorityBonus(p Priority, d realm.Department) float64 {
	if boostTable[p][d] > 0 {
		return 1.0
	}
	return 0
}

// Valid reports whether both halves of the decree are known values.
func (d Decree) Valid() bool {
	_, taxOK := taxTable[d.Tax]
	_, priOK := specializationTable[d.Priority]
	return taxOK && priOK
}
