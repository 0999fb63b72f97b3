// The fixed ten-step quarterly pipeline. runQuarter mutates the state it is
// given; the Session hands it a clone and commits only on success.
package engine

import (
	"log/slog"

	"github.com/avolkov/imperium/internal/advisor"
	"github.com/avolkov/imperium/internal/council"
	"github.com/avolkov/imperium/internal/decree"
	"github.com/avolkov/imperium/internal/events"
	"github.com/avolkov/imperium/internal/kpi"
	"github.com/avolkov/imperium/internal/realm"
)

// runQuarter advances the state one quarter and returns the report.
func runQuarter(s *State, cfg Config, catalog *events.Catalog, policy advisor.Policy, handler Handler, observer LogObserver) QuarterlyReport {
	s.Quarter++
	s.ambient = nil

	report := QuarterlyReport{Quarter: s.Quarter}

	// 1. Income.
	incomes, total := s.collectIncome()
	report.Incomes = incomes
	report.TotalIncome = total
	s.Treasury = s.Treasury.Add(total)

	// 2–3. Allocation and spending.
	spend, totalSpend := s.allocateAndSpend(cfg, policy)
	report.Expenses = spend
	report.TotalSpend = totalSpend

	// 4. Entity updates (may emit ambient events).
	s.updateDepartments(spend, totalSpend)
	s.updateRegions(spend)
	s.updateEstates(spend, totalSpend)
	s.updateMandates()

	// 5. Event triggering.
	s.pollTriggers(cfg, catalog)

	// 6. Intervention resolution.
	report.EventOutcomes = s.resolveInterventions(handler, observer)

	// 7. Countdown and escalation.
	failed := s.countdownAndEscalate()
	report.EventOutcomes = append(report.EventOutcomes, failed...)

	// 8. KPIs.
	report.KPI = s.computeKPIs(total.Gold)

	// 9. Read-only advisory output.
	report.Consultations = council.Consultations(council.ConsultInput{
		KPI:         report.KPI,
		Active:      s.Active,
		Departments: s.Departments,
		Members:     s.Council,
	})
	report.Council = council.MemberReports(s.Council)
	report.Mandates = council.MandateReports(s.Mandates)

	// 10. Snapshot the entities into the report.
	s.snapshotEntities(&report)

	slog.Info("quarter complete",
		"quarter", s.Quarter,
		"income", report.TotalIncome.Gold,
		"spend", report.TotalSpend,
		"treasury", s.Treasury.Gold,
		"active_events", len(s.Active),
		"outcomes", len(report.EventOutcomes),
	)
	return report
}

// collectIncome computes per-region income from loyalty, infrastructure,
// specialization, department efficiency, and tax policy.
func (s *State) collectIncome() ([]RegionIncome, realm.ResourcePool) {
	econEff := s.Departments[realm.DeptEconomy].Efficiency
	sciEff := s.Departments[realm.DeptScience].Efficiency
	effFactor := econEff*0.7 + sciEff*0.3
	taxMod := decree.IncomeModifier(s.Decree.Tax)

	var incomes []RegionIncome
	var total realm.ResourcePool
	for _, r := range s.Regions {
		loyaltyFactor := realm.Clamp(r.Loyalty/80, 0.3, 1.2)
		infraFactor := 0.5 + r.Infrastructure/120*0.7
		specMult := decree.SpecializationMultiplier(s.Decree.Priority, r.Specialization)

		base := r.Wealth*0.15 + float64(r.Population)*0.01 + r.ResourceOutput.Gold
		income := realm.ResourcePool{
			Gold:      base * loyaltyFactor * infraFactor * specMult * effFactor * taxMod,
			Influence: r.ResourceOutput.Influence * loyaltyFactor,
			Labor:     r.ResourceOutput.Labor * (0.5 + float64(r.Population)/2000),
		}
		incomes = append(incomes, RegionIncome{Region: r.Name, Income: income})
		total = total.Add(income)
	}
	return incomes, total
}

// allocateAndSpend invokes the advisor, normalizes, applies decree boosts,
// and spends against the treasury. Total spend never exceeds treasury gold.
func (s *State) allocateAndSpend(cfg Config, policy advisor.Policy) (map[realm.Department]float64, float64) {
	ctx := &advisor.Context{
		Quarter:     s.Quarter,
		Treasury:    s.Treasury,
		Estates:     s.Estates,
		Departments: s.Departments,
		Decree:      s.Decree,
		Trust:       s.Trust,
		Mandates:    s.Mandates,
		Council:     s.Council,
		BaseBudget:  cfg.BaseQuarterBudget,
	}
	alloc := advisor.Normalize(policy.AllocateBudget(ctx))

	// Decree priority reweighting, then renormalize.
	boosted := make(map[realm.Department]float64, len(alloc))
	boostTotal := 0.0
	for _, d := range realm.Departments {
		boosted[d] = alloc[d] * decree.BudgetBoost(s.Decree.Priority, d)
		boostTotal += boosted[d]
	}
	for _, d := range realm.Departments {
		boosted[d] /= boostTotal
	}

	budget := cfg.BaseQuarterBudget
	if ceiling := s.Treasury.Gold * 0.6; ceiling < budget {
		budget = ceiling
	}

	spend := make(map[realm.Department]float64, len(realm.Departments))
	totalSpend := 0.0
	for _, d := range realm.Departments {
		spend[d] = boosted[d] * budget
		totalSpend += spend[d]
	}

	// Proportional scale-down if planned spend somehow exceeds gold.
	if totalSpend > s.Treasury.Gold && totalSpend > 0 {
		scale := s.Treasury.Gold / totalSpend
		totalSpend = 0
		for _, d := range realm.Departments {
			spend[d] *= scale
			totalSpend += spend[d]
		}
	}

	s.Treasury = s.Treasury.Sub(realm.ResourcePool{Gold: totalSpend}).ClampGold()
	return spend, totalSpend
}

// updateDepartments drifts efficiency toward the investment ratio and
// records the spend. Crossing 2.0 efficiency upward emits the breakthrough
// ambient event.
func (s *State) updateDepartments(spend map[realm.Department]float64, totalSpend float64) {
	for _, d := range realm.Departments {
		ds := s.Departments[d]
		ratio := 0.0
		if totalSpend > 0 {
			ratio = spend[d] / totalSpend
		}
		before := ds.Efficiency
		ds.Efficiency = realm.ClampEfficiency(ds.Efficiency + ratio*0.08 + decree.PriorityBonus(s.Decree.Priority, d)*0.02 - 0.01)
		ds.Budget = spend[d]
		ds.CumulativeInvestment += spend[d]

		if before < 2.0 && ds.Efficiency >= 2.0 {
			s.ambient = append(s.ambient, QueuedTrigger{
				TemplateID: "efficiency_breakthrough",
				Origin:     events.Origin{Kind: events.OriginMetric, Name: string(d)},
			})
		}
	}
}

// updateRegions drifts wealth, infrastructure, and loyalty from the spend
// vector and tax policy. Crossing infrastructure 100 upward emits the
// milestone ambient event.
func (s *State) updateRegions(spend map[realm.Department]float64) {
	n := float64(len(s.Regions))
	infraGain := (spend[realm.DeptEconomy]*0.010 + spend[realm.DeptScience]*0.004) / n
	loyaltyGain := decree.LoyaltyDrift(s.Decree.Tax) + spend[realm.DeptInternal]*0.02/n - 0.2

	for _, r := range s.Regions {
		before := r.Infrastructure
		r.Infrastructure = realm.ClampInfrastructure(r.Infrastructure + infraGain - 0.3)
		r.Wealth += r.Wealth*0.01*(r.Infrastructure/120) + spend[realm.DeptEconomy]*0.05/n - r.Wealth*0.005
		if r.Wealth < 0 {
			r.Wealth = 0
		}
		r.Loyalty = realm.ClampLoyalty(r.Loyalty + loyaltyGain)

		if before < 100 && r.Infrastructure >= 100 {
			s.ambient = append(s.ambient, QueuedTrigger{
				TemplateID: "infrastructure_milestone",
				Origin:     events.Origin{Kind: events.OriginRegion, Name: r.Name},
			})
		}
	}
}

// updateEstates drifts satisfaction from favored-department spending share
// and tax policy, and influence toward satisfaction.
func (s *State) updateEstates(spend map[realm.Department]float64, totalSpend float64) {
	for _, est := range s.Estates {
		drift := decree.SatisfactionDrift(s.Decree.Tax)
		if totalSpend > 0 {
			share := spend[est.FavoredDepartment] / totalSpend
			switch {
			case share > 0.25:
				drift += 1.5
			case share < 0.10:
				drift -= 1.0
			}
		}
		est.Satisfaction = realm.ClampSatisfaction(est.Satisfaction + drift)
		est.Influence += (est.Satisfaction - 50) * 0.02
		if est.Influence < 0 {
			est.Influence = 0
		}
	}
}

// pollTriggers runs step 5: queued follow-ups from last quarter, ambient
// events from this quarter's entity updates, condition-based templates, and
// chronic-KPI escalation.
func (s *State) pollTriggers(cfg Config, catalog *events.Catalog) {
	// Cooldowns tick at the start of trigger polling.
	for id, left := range s.Cooldowns {
		if left <= 1 {
			delete(s.Cooldowns, id)
		} else {
			s.Cooldowns[id] = left - 1
		}
	}

	pending := append(append([]QueuedTrigger(nil), s.Queued...), s.ambient...)
	s.Queued = nil
	s.ambient = nil

	// Condition-based templates, in stable id order.
	for _, t := range catalog.ConditionTemplates() {
		if s.Cooldowns[t.ID] > 0 {
			continue
		}
		for _, origin := range s.matchTemplate(t) {
			pending = append(pending, QueuedTrigger{TemplateID: t.ID, Origin: origin})
		}
	}

	// Chronic critical KPIs escalate into a named security crisis.
	for _, name := range kpi.Names {
		if s.ChronicCritical[name] >= cfg.ChronicQuarters {
			pending = append(pending, QueuedTrigger{
				TemplateID: "security_crisis",
				Origin:     events.Origin{Kind: events.OriginMetric, Name: name},
			})
			s.ChronicCritical[name] = 0
		}
	}

	for _, trig := range pending {
		s.activateTrigger(catalog, trig)
	}
}

// matchTemplate evaluates a condition template against every entity in its
// scope and returns the origins that fired.
func (s *State) matchTemplate(t *events.Template) []events.Origin {
	last := s.triggerKPI()
	base := events.TriggerEnv{
		Quarter:       s.Quarter,
		TreasuryGold:  s.Treasury.Gold,
		Stability:     last.Stability.Value,
		SecurityIndex: last.SecurityIndex.Value,
		ActiveCrises:  int(last.ActiveCrises.Value),
	}

	var origins []events.Origin
	switch t.Scope {
	case events.ScopeRegion:
		for _, r := range s.Regions {
			env := base
			env.RegionName = r.Name
			env.RegionLoyalty = r.Loyalty
			env.RegionWealth = r.Wealth
			env.RegionInfrastructure = r.Infrastructure
			env.RegionPopulation = r.Population
			if t.Matches(env) {
				origins = append(origins, events.Origin{Kind: events.OriginRegion, Name: r.Name})
			}
		}
	case events.ScopeEstate:
		for _, est := range s.Estates {
			env := base
			env.EstateName = est.Name
			env.EstateSatisfaction = est.Satisfaction
			env.EstateInfluence = est.Influence
			if t.Matches(env) {
				origins = append(origins, events.Origin{Kind: events.OriginEstate, Name: est.Name})
			}
		}
	default:
		if t.Matches(base) {
			origins = append(origins, events.Origin{Kind: events.OriginMetric, Name: ""})
		}
	}
	return origins
}

// triggerKPI returns the previous quarter's indicators for condition
// evaluation. Before the first quarter completes there is nothing measured,
// so conditions see a healthy baseline rather than an all-zero report.
func (s *State) triggerKPI() kpi.Report {
	if s.PrevKPI != nil {
		return *s.PrevKPI
	}
	return kpi.Report{
		Stability:      kpi.Entry{Value: 50, ThreatLevel: kpi.ThreatLow},
		EconomicGrowth: kpi.Entry{Value: 100, ThreatLevel: kpi.ThreatLow},
		SecurityIndex:  kpi.Entry{Value: 100, ThreatLevel: kpi.ThreatLow},
	}
}

// activateTrigger instantiates a template and adds it to the active set,
// starting the template's cooldown. Duplicate instances are skipped.
func (s *State) activateTrigger(catalog *events.Catalog, trig QueuedTrigger) {
	ev, err := catalog.Instantiate(trig.TemplateID, trig.Origin)
	if err != nil {
		slog.Warn("trigger refers to unknown template, skipping", "template", trig.TemplateID, "error", err)
		return
	}
	if s.hasActive(ev.ID) {
		return
	}
	if t := catalog.Template(trig.TemplateID); t != nil && t.Cooldown > 0 {
		s.Cooldowns[trig.TemplateID] = t.Cooldown
	}
	s.Active = append(s.Active, &events.ActiveEvent{
		Event:         ev,
		RemainingTime: ev.Failure.Timeout,
		OriginQuarter: s.Quarter,
	})
	slog.Info("event triggered", "event", ev.ID, "severity", ev.Severity, "timeout", ev.Failure.Timeout)
}

// countdownAndEscalate runs step 7: events triggered in earlier quarters
// count down; those reaching zero are force-failed with their failure
// effects applied exactly once, and survivors may escalate into follow-ups
// queued for the next quarter.
func (s *State) countdownAndEscalate() []events.Outcome {
	var failed []events.Outcome
	var remaining []*events.ActiveEvent

	for _, ae := range s.Active {
		if ae.OriginQuarter == s.Quarter {
			// The countdown starts the quarter after triggering.
			remaining = append(remaining, ae)
			continue
		}
		ae.RemainingTime--
		if ae.RemainingTime <= 0 {
			events.ApplyAll(worldView{s}, ae.Event.Failure.Effects)
			outcome := events.Outcome{
				EventID:        ae.Event.ID,
				Title:          ae.Event.Title,
				Status:         events.OutcomeFailed,
				AppliedEffects: append([]events.Effect(nil), ae.Event.Failure.Effects...),
				Note:           ae.Event.Failure.Description,
			}
			s.logOutcome(&outcome, nil)
			failed = append(failed, outcome)
			slog.Info("event timed out", "event", ae.Event.ID)
			continue
		}
		// Each escalation clause is sampled independently; follow-ups queue
		// for the next quarter, not this one.
		for _, esc := range ae.Event.Escalations {
			if s.Rand.Float() < esc.Chance {
				s.Queued = append(s.Queued, QueuedTrigger{
					TemplateID: esc.EventID,
					Origin:     ae.Event.Origin,
				})
				slog.Info("event escalated", "event", ae.Event.ID, "follow_up", esc.EventID)
			}
		}
		remaining = append(remaining, ae)
	}
	s.Active = remaining
	return failed
}

// computeKPIs runs step 8 and updates the chronic-critical counters.
func (s *State) computeKPIs(incomeGold float64) kpi.Report {
	var report kpi.Report

	// Stability: mean estate satisfaction blended with mean region loyalty.
	satSum, loySum := 0.0, 0.0
	for _, est := range s.Estates {
		satSum += est.Satisfaction
	}
	for _, r := range s.Regions {
		loySum += r.Loyalty
	}
	stability := 0.0
	if len(s.Estates) > 0 && len(s.Regions) > 0 {
		stability = 0.6*(satSum/float64(len(s.Estates))) + 0.4*(loySum/float64(len(s.Regions)))
	}
	report.Stability = kpi.Entry{Value: stability, ThreatLevel: kpi.GradeHigherBetter(stability, 35, 55)}

	// Economic growth: income level, trend is the income delta.
	report.EconomicGrowth = kpi.Entry{Value: incomeGold, ThreatLevel: kpi.GradeHigherBetter(incomeGold, 80, 150)}

	// Security index: threat accumulation from active events against
	// military readiness.
	security := 100.0
	for _, ae := range s.Active {
		switch ae.Event.Severity {
		case events.SeverityMajor:
			security -= 12
		case events.SeverityModerate:
			security -= 6
		default:
			security -= 3
		}
	}
	security += (s.Departments[realm.DeptMilitary].Efficiency - 1.0) * 20
	security = realm.Clamp(security, 0, 100)
	report.SecurityIndex = kpi.Entry{Value: security, ThreatLevel: kpi.GradeHigherBetter(security, 40, 60)}

	crises := float64(len(s.Active))
	report.ActiveCrises = kpi.Entry{Value: crises, ThreatLevel: kpi.GradeLowerBetter(crises, 4, 2)}

	// Trends against the prior quarter.
	if s.PrevKPI != nil {
		report.Stability.Trend = report.Stability.Value - s.PrevKPI.Stability.Value
		report.EconomicGrowth.Trend = report.EconomicGrowth.Value - s.PrevKPI.EconomicGrowth.Value
		report.SecurityIndex.Trend = report.SecurityIndex.Value - s.PrevKPI.SecurityIndex.Value
		report.ActiveCrises.Trend = report.ActiveCrises.Value - s.PrevKPI.ActiveCrises.Value
	}

	for i, e := range report.Entries() {
		name := kpi.Names[i]
		if e.ThreatLevel == kpi.ThreatCritical {
			s.ChronicCritical[name]++
		} else {
			s.ChronicCritical[name] = 0
		}
	}

	prev := report
	s.PrevKPI = &prev
	s.PrevIncome = incomeGold
	return report
}
