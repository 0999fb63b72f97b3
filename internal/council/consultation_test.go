package council

import (
	"encoding/json"
	"testing"

	"github.com/avolkov/imperium/internal/events"
	"github.com/avolkov/imperium/internal/kpi"
	"github.com/avolkov/imperium/internal/realm"
)

func consultInput() ConsultInput {
	return ConsultInput{
		KPI: kpi.Report{
			Stability:      kpi.Entry{Value: 60, ThreatLevel: kpi.ThreatLow},
			EconomicGrowth: kpi.Entry{Value: 120, ThreatLevel: kpi.ThreatLow},
			SecurityIndex:  kpi.Entry{Value: 30, ThreatLevel: kpi.ThreatCritical},
			ActiveCrises:   kpi.Entry{Value: 1, ThreatLevel: kpi.ThreatLow},
		},
		Active: []*events.ActiveEvent{
			{
				Event: events.SimulationEvent{
					ID: "regional_unrest:north", Title: "Unrest in north",
					Category: events.CategoryUnrest, Severity: events.SeverityModerate,
					Failure: events.FailureClause{Description: "the unrest festers"},
				},
				RemainingTime: 2,
			},
			{
				Event: events.SimulationEvent{
					ID: "open_revolt:south", Title: "Open revolt in south",
					Category: events.CategoryUnrest, Severity: events.SeverityMajor,
					Failure: events.FailureClause{Description: "the revolt burns out"},
				},
				RemainingTime: 1,
			},
		},
		Departments: map[realm.Department]*realm.DepartmentState{
			realm.DeptEconomy:   {Department: realm.DeptEconomy, Efficiency: 1.2},
			realm.DeptDiplomacy: {Department: realm.DeptDiplomacy, Efficiency: 0.7},
			realm.DeptInternal:  {Department: realm.DeptInternal, Efficiency: 1.0},
			realm.DeptMilitary:  {Department: realm.DeptMilitary, Efficiency: 0.9},
			realm.DeptScience:   {Department: realm.DeptScience, Efficiency: 1.1},
		},
		Members: []*realm.CouncilMember{
			{ID: "m1", Name: "Aldric", Portfolio: realm.PortfolioMilitary, Competence: 0.8},
			{ID: "m2", Name: "Benra", Portfolio: realm.PortfolioEconomy, Competence: 0.9},
			{ID: "m3", Name: "Corin", Portfolio: realm.PortfolioDiplomacy, Competence: 0.6},
			{ID: "m4", Name: "Darek", Portfolio: realm.PortfolioIntelligence, Competence: 0.7},
			{ID: "m5", Name: "Elsin", Portfolio: realm.PortfolioInternal, Competence: 0.5},
		},
	}
}

func TestConsultationsProduceThreeThreads(t *testing.T) {
	threads := Consultations(consultInput())
	if len(threads) != 3 {
		t.Fatalf("threads = %d, want 3", len(threads))
	}
	if threads[0].Focus != FocusKPI || threads[1].Focus != FocusEvent || threads[2].Focus != FocusDepartment {
		t.Fatalf("thread focuses = %s/%s/%s", threads[0].Focus, threads[1].Focus, threads[2].Focus)
	}
}

func TestKPIThreadPicksWorstIndicator(t *testing.T) {
	threads := Consultations(consultInput())
	if threads[0].Topic != "security_index" {
		t.Fatalf("kpi thread topic = %q, want the critical indicator", threads[0].Topic)
	}
	for _, r := range threads[0].Remarks {
		if r.Stance != StanceEscalate {
			t.Fatalf("critical indicator should escalate, got %s from %s", r.Stance, r.MemberID)
		}
	}
}

func TestEventThreadPicksGravestEvent(t *testing.T) {
	threads := Consultations(consultInput())
	if threads[1].Topic != "open_revolt:south" {
		t.Fatalf("event thread topic = %q, want the major event", threads[1].Topic)
	}
}

func TestDepartmentThreadPicksLeastEfficient(t *testing.T) {
	threads := Consultations(consultInput())
	if threads[2].Topic != "diplomacy" {
		t.Fatalf("department thread topic = %q, want diplomacy (eff 0.7)", threads[2].Topic)
	}
}

func TestConsultationsAreIdempotent(t *testing.T) {
	a, _ := json.Marshal(Consultations(consultInput()))
	b, _ := json.Marshal(Consultations(consultInput()))
	if string(a) != string(b) {
		t.Fatal("consultations differ across identical inputs")
	}
}

func TestRelevantMembersPrefersSpecialists(t *testing.T) {
	in := consultInput()
	members := relevantMembers(in.Members, realm.DeptMilitary)
	// Military specialists: m1 (military) and m4 (intelligence spans it).
	if len(members) != 2 {
		t.Fatalf("specialists = %d, want 2", len(members))
	}
	if members[0].ID != "m1" || members[1].ID != "m4" {
		t.Fatalf("order = %s,%s, want competence descending", members[0].ID, members[1].ID)
	}
}

func TestRelevantMembersFallsBackAndCaps(t *testing.T) {
	members := []*realm.CouncilMember{
		{ID: "a", Portfolio: realm.PortfolioEconomy, Competence: 0.2},
		{ID: "b", Portfolio: realm.PortfolioEconomy, Competence: 0.9},
		{ID: "c", Portfolio: realm.PortfolioEconomy, Competence: 0.5},
		{ID: "d", Portfolio: realm.PortfolioEconomy, Competence: 0.7},
	}
	// Nobody covers science; the fallback pool is everyone, sorted and capped.
	got := relevantMembers(members, realm.DeptScience)
	if len(got) != 3 {
		t.Fatalf("capped pool = %d, want 3", len(got))
	}
	if got[0].ID != "b" || got[1].ID != "d" || got[2].ID != "c" {
		t.Fatalf("order = %s,%s,%s", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestNoMembersStillYieldsThreads(t *testing.T) {
	in := consultInput()
	in.Members = nil
	threads := Consultations(in)
	if len(threads) != 3 {
		t.Fatalf("threads = %d, want 3 even without members", len(threads))
	}
	for _, th := range threads {
		if len(th.Remarks) != 0 {
			t.Fatalf("thread %s has remarks with no members", th.Topic)
		}
	}
}
