package events

import "github.com/avolkov/imperium/internal/realm"

// DefaultTemplates returns the built-in event catalog. Hosts can extend or
// replace this list before building the Catalog; templates are immutable
// once loaded.
func DefaultTemplates() []*Template {
	return []*Template{
		{
			ID:          "regional_unrest",
			Category:    CategoryUnrest,
			Severity:    SeverityModerate,
			Title:       "Unrest in %s",
			Description: "Crowds gather in %s demanding relief. Local officials ask the capital for direction.",
			Scope:       ScopeRegion,
			Condition:   "DisloyalRegion(30.0)",
			Cooldown:    4,
			Options: []Option{
				{
					ID:          "send_troops",
					Description: "Garrison the region and disperse the crowds",
					Cost:        &realm.ResourcePool{Gold: 40},
					Effects: []Effect{
						{Kind: EffectRegionLoyalty, Amount: 8, Duration: 2},
						{Kind: EffectEstateSatisfaction, Target: "peasantry", Amount: -4},
					},
					FollowUps: []string{"crackdown_backlash"},
				},
				{
					ID:          "negotiate",
					Description: "Send envoys to hear the grievances",
					Cost:        &realm.ResourcePool{Gold: 15, Influence: 10},
					Effects: []Effect{
						{Kind: EffectRegionLoyalty, Amount: 12, Duration: 3},
						{Kind: EffectAdvisorTrust, Amount: 0.02},
					},
				},
				{
					ID:          "grant_relief",
					Description: "Suspend levies in the region for the quarter",
					Cost:        &realm.ResourcePool{Gold: 60},
					Effects: []Effect{
						{Kind: EffectRegionLoyalty, Amount: 16, Duration: 4},
						{Kind: EffectRegionWealth, Amount: 12},
					},
				},
			},
			Failure: FailureClause{
				Timeout:     2,
				Description: "The unrest festers and spreads",
				Effects: []Effect{
					{Kind: EffectRegionLoyalty, Amount: -12},
					{Kind: EffectRegionWealth, Amount: -15},
				},
			},
			Escalations: []EscalationClause{
				{Chance: 0.35, EventID: "open_revolt", Description: "the crowds arm themselves"},
			},
		},
		{
			ID:          "open_revolt",
			Category:    CategoryUnrest,
			Severity:    SeverityMajor,
			Title:       "Open revolt in %s",
			Description: "Rebels have seized the granaries of %s and declared against the crown.",
			Scope:       ScopeRegion,
			Options: []Option{
				{
					ID:          "crush_revolt",
					Description: "March on the rebels in force",
					Cost:        &realm.ResourcePool{Gold: 90, Labor: 20},
					Effects: []Effect{
						{Kind: EffectRegionLoyalty, Amount: 5, Duration: 2},
						{Kind: EffectRegionWealth, Amount: -20},
						{Kind: EffectEstateSatisfaction, Target: "peasantry", Amount: -8},
					},
				},
				{
					ID:          "amnesty",
					Description: "Offer pardon and a hearing of demands",
					Cost:        &realm.ResourcePool{Influence: 25},
					Effects: []Effect{
						{Kind: EffectRegionLoyalty, Amount: 14, Duration: 4},
						{Kind: EffectAdvisorTrust, Amount: -0.03},
					},
				},
			},
			Failure: FailureClause{
				Timeout:     2,
				Description: "The revolt burns itself out, taking the region's economy with it",
				Effects: []Effect{
					{Kind: EffectRegionWealth, Amount: -40},
					{Kind: EffectRegionInfra, Amount: -10},
					{Kind: EffectRegionLoyalty, Amount: -10},
				},
			},
		},
		{
			ID:          "crackdown_backlash",
			Category:    CategoryUnrest,
			Severity:    SeverityMinor,
			Title:       "Backlash after the crackdown in %s",
			Description: "Pamphlets condemning the garrison circulate in %s.",
			Scope:       ScopeRegion,
			Options: []Option{
				{
					ID:          "ignore",
					Description: "Let the pamphlets burn out on their own",
					Effects:     []Effect{{Kind: EffectRegionLoyalty, Amount: -3}},
				},
				{
					ID:          "counter_proclamation",
					Description: "Publish the crown's account of events",
					Cost:        &realm.ResourcePool{Influence: 8},
					Effects:     []Effect{{Kind: EffectRegionLoyalty, Amount: 4, Duration: 2}},
				},
			},
			Failure: FailureClause{
				Timeout:     2,
				Description: "The pamphlets become received truth",
				Effects:     []Effect{{Kind: EffectRegionLoyalty, Amount: -6}},
			},
		},
		{
			ID:          "estate_discontent",
			Category:    CategoryUnrest,
			Severity:    SeverityModerate,
			Title:       "The %s grow restless",
			Description: "Representatives of the %s petition against the crown's neglect of their interests.",
			Scope:       ScopeEstate,
			Condition:   "DiscontentEstate(25.0)",
			Cooldown:    4,
			Options: []Option{
				{
					ID:          "grant_privileges",
					Description: "Extend new privileges to the estate",
					Cost:        &realm.ResourcePool{Influence: 20},
					Effects: []Effect{
						{Kind: EffectEstateSatisfaction, Amount: 12, Duration: 3},
						{Kind: EffectEstateInfluence, Amount: 5},
					},
				},
				{
					ID:          "public_rebuke",
					Description: "Rebuke the petitioners before the court",
					Effects: []Effect{
						{Kind: EffectEstateSatisfaction, Amount: -6},
						{Kind: EffectAdvisorTrust, Amount: -0.02},
					},
				},
				{
					ID:          "purse_settlement",
					Description: "Settle the grievance from the treasury",
					Cost:        &realm.ResourcePool{Gold: 50},
					Effects: []Effect{
						{Kind: EffectEstateSatisfaction, Amount: 10, Duration: 2},
					},
				},
			},
			Failure: FailureClause{
				Timeout:     3,
				Description: "The estate withdraws its cooperation",
				Effects: []Effect{
					{Kind: EffectEstateSatisfaction, Amount: -8},
					{Kind: EffectEstateInfluence, Amount: -4},
				},
			},
			Escalations: []EscalationClause{
				{Chance: 0.25, EventID: "estate_conspiracy", Description: "private meetings turn conspiratorial"},
			},
		},
		{
			ID:          "estate_conspiracy",
			Category:    CategoryUnrest,
			Severity:    SeverityMajor,
			Title:       "Conspiracy among the %s",
			Description: "Informants report that leading members of the %s meet in secret against the government.",
			Scope:       ScopeEstate,
			Options: []Option{
				{
					ID:          "arrests",
					Description: "Arrest the ringleaders",
					Cost:        &realm.ResourcePool{Gold: 30, Influence: 15},
					Effects: []Effect{
						{Kind: EffectEstateInfluence, Amount: -10},
						{Kind: EffectEstateSatisfaction, Amount: -10},
					},
				},
				{
					ID:          "infiltrate",
					Description: "Plant agents and wait",
					Cost:        &realm.ResourcePool{Gold: 20},
					Effects: []Effect{
						{Kind: EffectEstateInfluence, Amount: -4},
						EffectDeptEfficiencyFor(realm.DeptInternal, 0.05),
					},
				},
			},
			Failure: FailureClause{
				Timeout:     2,
				Description: "The conspiracy moves first",
				Effects: []Effect{
					{Kind: EffectGold, Amount: -80},
					{Kind: EffectEstateInfluence, Amount: 8},
				},
			},
		},
		{
			ID:          "treasury_crisis",
			Category:    CategoryEconomic,
			Severity:    SeverityModerate,
			Title:       "Treasury shortfall",
			Description: "The exchequer reports the treasury can no longer cover standing obligations.",
			Scope:       ScopeGlobal,
			Condition:   "LowTreasury(60.0)",
			Cooldown:    3,
			Options: []Option{
				{
					ID:          "emergency_loan",
					Description: "Borrow from the merchant houses",
					Effects: []Effect{
						{Kind: EffectGold, Amount: 120},
						{Kind: EffectAdvisorTrust, Amount: -0.04},
						{Kind: EffectEstateInfluence, Target: "merchants", Amount: 6},
					},
				},
				{
					ID:          "austerity",
					Description: "Cut court expenditure across the board",
					Effects: []Effect{
						{Kind: EffectGold, Amount: 40},
						{Kind: EffectEstateSatisfaction, Target: "nobility", Amount: -6},
					},
				},
				{
					ID:          "sell_offices",
					Description: "Auction minor offices and titles",
					Effects: []Effect{
						{Kind: EffectGold, Amount: 80},
						EffectDeptEfficiencyFor(realm.DeptInternal, -0.08),
					},
				},
			},
			Failure: FailureClause{
				Timeout:     2,
				Description: "Salaries go unpaid and the administration grinds",
				Effects: []Effect{
					{Kind: EffectInfluence, Amount: -20},
					{Kind: EffectAdvisorTrust, Amount: -0.05},
				},
			},
		},
		{
			ID:          "border_incursion",
			Category:    CategorySecurity,
			Severity:    SeverityModerate,
			Title:       "Border incursion",
			Description: "Raiders have crossed the frontier and sacked two villages.",
			Scope:       ScopeGlobal,
			Condition:   "SecurityIndex < 35.0",
			Cooldown:    4,
			Options: []Option{
				{
					ID:          "punitive_expedition",
					Description: "Dispatch a punitive expedition",
					Cost:        &realm.ResourcePool{Gold: 70, Labor: 15},
					Effects: []Effect{
						EffectDeptEfficiencyFor(realm.DeptMilitary, 0.06),
						{Kind: EffectRegionLoyalty, Amount: 4, Duration: 2},
					},
				},
				{
					ID:          "fortify",
					Description: "Pay for watchtowers along the frontier",
					Cost:        &realm.ResourcePool{Gold: 50},
					Effects: []Effect{
						{Kind: EffectRegionInfra, Amount: 6},
					},
				},
				{
					ID:          "tribute",
					Description: "Buy the raiders off quietly",
					Cost:        &realm.ResourcePool{Gold: 45},
					Effects: []Effect{
						{Kind: EffectAdvisorTrust, Amount: -0.05},
					},
				},
			},
			Failure: FailureClause{
				Timeout:     2,
				Description: "The raids continue unanswered",
				Effects: []Effect{
					{Kind: EffectRegionWealth, Amount: -12},
					{Kind: EffectRegionLoyalty, Amount: -5},
				},
			},
			Escalations: []EscalationClause{
				{Chance: 0.3, EventID: "security_crisis", Description: "the raiders grow bold"},
			},
		},
		{
			ID:          "security_crisis",
			Category:    CategorySecurity,
			Severity:    SeverityMajor,
			Title:       "Security crisis: %s",
			Description: "Sustained deterioration of %s has become a crisis the council can no longer table.",
			Scope:       ScopeGlobal,
			Options: []Option{
				{
					ID:          "mobilize",
					Description: "Mobilize the army and requisition supply",
					Cost:        &realm.ResourcePool{Gold: 110, Labor: 30},
					Effects: []Effect{
						EffectDeptEfficiencyFor(realm.DeptMilitary, 0.1),
						{Kind: EffectEstateSatisfaction, Target: "peasantry", Amount: -6},
					},
				},
				{
					ID:          "emergency_council",
					Description: "Grant the council emergency powers for a quarter",
					Cost:        &realm.ResourcePool{Influence: 30},
					Effects: []Effect{
						EffectDeptEfficiencyFor(realm.DeptInternal, 0.08),
						{Kind: EffectAdvisorTrust, Amount: 0.04},
					},
				},
			},
			Failure: FailureClause{
				Timeout:     3,
				Description: "The crisis is left to run its course",
				Effects: []Effect{
					{Kind: EffectRegionLoyalty, Amount: -8},
					{Kind: EffectGold, Amount: -60},
				},
			},
		},
		{
			ID:          "infrastructure_milestone",
			Category:    CategoryEconomic,
			Severity:    SeverityMinor,
			Title:       "Great works completed in %s",
			Description: "The new works in %s are complete; the governor asks how to mark the occasion.",
			Scope:       ScopeRegion,
			Options: []Option{
				{
					ID:          "celebrate",
					Description: "Hold a public celebration",
					Cost:        &realm.ResourcePool{Gold: 20},
					Effects: []Effect{
						{Kind: EffectRegionLoyalty, Amount: 6, Duration: 2},
					},
				},
				{
					ID:          "levy_tolls",
					Description: "Open the works with a toll schedule",
					Effects: []Effect{
						{Kind: EffectGold, Amount: 35},
						{Kind: EffectRegionLoyalty, Amount: -2},
					},
				},
			},
			Failure: FailureClause{
				Timeout:     2,
				Description: "The moment passes unmarked",
				Effects:     nil,
			},
		},
		{
			ID:          "efficiency_breakthrough",
			Category:    CategoryScience,
			Severity:    SeverityMinor,
			Title:       "A method of note in the %s department",
			Description: "Clerks of the %s department propose a new method that could spread to the rest of the administration.",
			Scope:       ScopeGlobal,
			Options: []Option{
				{
					ID:          "adopt_widely",
					Description: "Fund adoption across departments",
					Cost:        &realm.ResourcePool{Gold: 30},
					Effects: []Effect{
						EffectDeptEfficiencyFor(realm.DeptEconomy, 0.03),
						EffectDeptEfficiencyFor(realm.DeptInternal, 0.03),
					},
				},
				{
					ID:          "archive",
					Description: "Note the method and move on",
					Effects:     nil,
				},
			},
			Failure: FailureClause{
				Timeout:     2,
				Description: "The proposal is lost in the files",
				Effects:     nil,
			},
		},
	}
}
