// Quarterly report assembly. Reports are value snapshots: no field aliases
// live state, and reports are never mutated after creation.
package engine

import (
	"github.com/avolkov/imperium/internal/council"
	"github.com/avolkov/imperium/internal/events"
	"github.com/avolkov/imperium/internal/kpi"
	"github.com/avolkov/imperium/internal/realm"
)

// RegionIncome is one region's contribution to a quarter's income.
type RegionIncome struct {
	Region string             `json:"region"`
	Income realm.ResourcePool `json:"income"`
}

// QuarterlyReport is the immutable per-quarter snapshot and the unit of
// persisted campaign history.
type QuarterlyReport struct {
	Quarter int `json:"quarter"`

	Incomes     []RegionIncome                 `json:"incomes"`
	TotalIncome realm.ResourcePool             `json:"total_income"`
	Expenses    map[realm.Department]float64   `json:"expenses"`
	TotalSpend  float64                        `json:"total_spend"`
	Treasury    realm.ResourcePool             `json:"treasury"`

	Regions     []realm.Region                        `json:"regions"`
	Estates     []realm.Estate                        `json:"estates"`
	Departments map[realm.Department]realm.DepartmentState `json:"departments"`

	KPI   kpi.Report        `json:"kpi"`
	Trust realm.TrustLevels `json:"trust"`

	EventOutcomes []events.Outcome        `json:"event_outcomes"`
	ActiveEvents  []events.ActiveEvent    `json:"active_events"`
	Council       []council.MemberReport  `json:"council"`
	Mandates      []council.MandateReport `json:"mandates"`
	Consultations []council.Thread        `json:"consultations"`

	ControlMode ControlMode `json:"control_mode"`
}

// snapshotEntities copies the live entities into report values.
func (s *State) snapshotEntities(r *QuarterlyReport) {
	r.Regions = make([]realm.Region, len(s.Regions))
	for i, reg := range s.Regions {
		r.Regions[i] = *reg
	}
	r.Estates = make([]realm.Estate, len(s.Estates))
	for i, est := range s.Estates {
		r.Estates[i] = *est
	}
	r.Departments = make(map[realm.Department]realm.DepartmentState, len(s.Departments))
	for d, ds := range s.Departments {
		r.Departments[d] = *ds
	}
	r.ActiveEvents = make([]events.ActiveEvent, len(s.Active))
	for i, ae := range s.Active {
		r.ActiveEvents[i] = *ae
	}
	r.Trust = s.Trust.Clone()
	r.Treasury = s.Treasury
	r.ControlMode = s.Control.Mode
}

// KPIAverages is the derived summary over the full report history.
type KPIAverages struct {
	Quarters       int     `json:"quarters"`
	Stability      float64 `json:"stability"`
	EconomicGrowth float64 `json:"economic_growth"`
	SecurityIndex  float64 `json:"security_index"`
	ActiveCrises   float64 `json:"active_crises"`
}

// AverageKPIs computes the mean of each indicator over a report list.
func AverageKPIs(reports []QuarterlyReport) KPIAverages {
	avg := KPIAverages{Quarters: len(reports)}
	if len(reports) == 0 {
		return avg
	}
	for _, r := range reports {
		avg.Stability += r.KPI.Stability.Value
		avg.EconomicGrowth += r.KPI.EconomicGrowth.Value
		avg.SecurityIndex += r.KPI.SecurityIndex.Value
		avg.ActiveCrises += r.KPI.ActiveCrises.Value
	}
	n := float64(len(reports))
	avg.Stability /= n
	avg.EconomicGrowth /= n
	avg.SecurityIndex /= n
	avg.ActiveCrises /= n
	return avg
}
