package scenario

import (
	"testing"

	"github.com/avolkov/imperium/internal/config"
	"github.com/avolkov/imperium/internal/engine"
	"github.com/avolkov/imperium/internal/events"
	"github.com/avolkov/imperium/internal/realm"
)

func campaignFixture() config.Campaign {
	c := config.Default()
	c.Seed = 99
	c.Quarters = 10
	c.Treasury = config.ResourceSpec{Gold: 300, Influence: 40}
	c.Regions = []config.RegionSpec{
		{Name: "east", Population: 1000, Wealth: 200, Loyalty: 50, Infrastructure: 50,
			Specialization: realm.SpecIndustry, Output: config.ResourceSpec{Gold: 12}},
		{Name: "west", Population: 700, Wealth: 140, Loyalty: 130, Infrastructure: -5,
			Specialization: realm.SpecTrade},
	}
	c.Estates = []config.EstateSpec{
		{Name: "clergy", Influence: 40, Satisfaction: 60, Favored: realm.DeptScience, Trust: 0.7},
	}
	c.Council = []config.CouncilSpec{
		{ID: "c1", Name: "Ines", Portfolio: realm.PortfolioEconomy, Competence: 0.9, Loyalty: 1.4},
	}
	c.Mandates = []config.MandateSpec{
		{ID: "m1", Goal: realm.GoalGrowTreasury, TargetKind: realm.TargetGlobal, Urgency: 0.6, Horizon: 8},
	}
	c.Normalize()
	return c
}

func TestBuildWithoutJitterKeepsDeclaredNumbers(t *testing.T) {
	st, err := Build(campaignFixture())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if st.Quarter != 0 || st.TotalQuarters != 10 {
		t.Fatalf("quarters = %d/%d", st.Quarter, st.TotalQuarters)
	}
	east := st.Regions[0]
	if east.Population != 1000 || east.Wealth != 200 {
		t.Fatalf("jitter disabled but east = pop %d wealth %v", east.Population, east.Wealth)
	}
	if st.Treasury.Gold != 300 || st.Treasury.Influence != 40 {
		t.Fatalf("treasury = %+v", st.Treasury)
	}
}

func TestBuildClampsOutOfRangeInputs(t *testing.T) {
	st, err := Build(campaignFixture())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	west := st.Regions[1]
	if west.Loyalty != 100 {
		t.Fatalf("loyalty = %v, want clamped to 100", west.Loyalty)
	}
	if west.Infrastructure != 0 {
		t.Fatalf("infrastructure = %v, want clamped to 0", west.Infrastructure)
	}
	if st.Council[0].Loyalty != 1.0 {
		t.Fatalf("council loyalty = %v, want clamped to 1", st.Council[0].Loyalty)
	}
}

func TestBuildInitializesDepartmentsAndTrust(t *testing.T) {
	st, err := Build(campaignFixture())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(st.Departments) != len(realm.Departments) {
		t.Fatalf("departments = %d", len(st.Departments))
	}
	for _, d := range realm.Departments {
		ds := st.Departments[d]
		if ds == nil || ds.Efficiency != 1.0 {
			t.Fatalf("department %s = %+v", d, ds)
		}
	}
	if st.Trust.Advisor != 0.5 || st.Trust.Estates["clergy"] != 0.7 {
		t.Fatalf("trust = %+v", st.Trust)
	}
	if st.Mandates[0].Status != realm.MandateNotStarted || st.Mandates[0].Confidence != 0.5 {
		t.Fatalf("mandate = %+v", st.Mandates[0])
	}
}

func TestBuildJitterIsDeterministicPerSeed(t *testing.T) {
	c := campaignFixture()
	c.Jitter = 0.1

	a, err := Build(c)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	b, err := Build(c)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if a.Regions[0].Wealth != b.Regions[0].Wealth || a.Regions[0].Population != b.Regions[0].Population {
		t.Fatal("same seed must produce the same jittered realm")
	}
	if a.Regions[0].Wealth < 180 || a.Regions[0].Wealth > 220 {
		t.Fatalf("wealth %v outside the 10%% jitter band", a.Regions[0].Wealth)
	}

	c.Seed = 100
	other, err := Build(c)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if other.Regions[0].Wealth == a.Regions[0].Wealth &&
		other.Regions[1].Wealth == a.Regions[1].Wealth {
		t.Fatal("different seeds should jitter differently")
	}
}

func TestBuildSeedsControlHistory(t *testing.T) {
	c := campaignFixture()
	c.ControlMode = "hybrid"
	c.Routing = map[string]string{"unrest": "player"}

	st, err := Build(c)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if st.Control.Mode != engine.ControlHybrid {
		t.Fatalf("mode = %s", st.Control.Mode)
	}
	if st.Control.Routing[events.CategoryUnrest] != engine.RouteToPlayer {
		t.Fatalf("routing = %v", st.Control.Routing)
	}
	if len(st.Control.History) != 1 {
		t.Fatalf("history = %+v", st.Control.History)
	}
	entry := st.Control.History[0]
	if entry.Mode != engine.ControlHybrid || entry.Quarter != 0 || entry.Source != "scenario" {
		t.Fatalf("entry = %+v", entry)
	}
}

func TestEngineConfigCarriesTuning(t *testing.T) {
	c := campaignFixture()
	c.BaseQuarterBudget = 275
	c.ChronicQuarters = 4
	c.Routing = map[string]string{"economic": "council"}

	cfg := EngineConfig(c)
	if cfg.BaseQuarterBudget != 275 || cfg.ChronicQuarters != 4 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Routing[events.CategoryEconomic] != engine.RouteToCouncil {
		t.Fatalf("routing = %v", cfg.Routing)
	}
}

func TestJitterMapping(t *testing.T) {
	if got := jitter(0.5, 0); got != 1 {
		t.Fatalf("amp 0 = %v", got)
	}
	if got := jitter(1, 0.2); got != 1.2 {
		t.Fatalf("sample 1 = %v", got)
	}
	if got := jitter(0, 0.2); got != 0.8 {
		t.Fatalf("sample 0 = %v", got)
	}
}
