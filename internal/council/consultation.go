package council

import (
	"fmt"
	"sort"

	"github.com/avolkov/imperium/internal/events"
	"github.com/avolkov/imperium/internal/kpi"
	"github.com/avolkov/imperium/internal/realm"
)

// ThreadFocus says what a consultation thread is about.
type ThreadFocus string

const (
	FocusKPI        ThreadFocus = "kpi"
	FocusEvent      ThreadFocus = "event"
	FocusDepartment ThreadFocus = "department"
)

// Stance is a council member's position on the focus.
type Stance string

const (
	StanceSupport  Stance = "support"
	StanceCaution  Stance = "caution"
	StanceEscalate Stance = "escalate"
)

// Remark is one member's contribution to a thread.
type Remark struct {
	MemberID   string `json:"member_id"`
	MemberName string `json:"member_name"`
	Stance     Stance `json:"stance"`
	Rationale  string `json:"rationale"`
}

// Thread is one advisory discussion derived from current state. Threads are
// read-only commentary; regenerating from the same snapshot yields the same
// threads.
type Thread struct {
	Focus   ThreadFocus `json:"focus"`
	Topic   string      `json:"topic"`
	Summary string      `json:"summary"`
	Remarks []Remark    `json:"remarks"`
}

// ConsultInput is the snapshot slice the generator reads.
type ConsultInput struct {
	KPI         kpi.Report
	Active      []*events.ActiveEvent
	Departments map[realm.Department]*realm.DepartmentState
	Members     []*realm.CouncilMember
}

// Consultations derives up to three independent threads: the worst KPI, the
// worst pending event, and the least-efficient department.
func Consultations(in ConsultInput) []Thread {
	var threads []Thread
	if t, ok := kpiThread(in); ok {
		threads = append(threads, t)
	}
	if t, ok := eventThread(in); ok {
		threads = append(threads, t)
	}
	if t, ok := departmentThread(in); ok {
		threads = append(threads, t)
	}
	return threads
}

func kpiThread(in ConsultInput) (Thread, bool) {
	entries := in.KPI.Entries()
	worst := -1
	for i, e := range entries {
		if worst < 0 || severityRank(e.ThreatLevel) > severityRank(entries[worst].ThreatLevel) ||
			(severityRank(e.ThreatLevel) == severityRank(entries[worst].ThreatLevel) && e.Trend < entries[worst].Trend) {
			worst = i
		}
	}
	if worst < 0 {
		return Thread{}, false
	}
	name := kpi.Names[worst]
	entry := entries[worst]
	dept := kpiDepartment(name)
	members := relevantMembers(in.Members, dept)
	t := Thread{
		Focus:   FocusKPI,
		Topic:   name,
		Summary: fmt.Sprintf("%s stands at %.1f (trend %+.1f, threat %s)", name, entry.Value, entry.Trend, entry.ThreatLevel),
	}
	for _, m := range members {
		stance := stanceFromThreat(entry.ThreatLevel)
		t.Remarks = append(t.Remarks, Remark{
			MemberID:   m.ID,
			MemberName: m.Name,
			Stance:     stance,
			Rationale:  fmt.Sprintf("%s reads %s at %.1f with a %+.1f trend and counsels %s", m.Name, name, entry.Value, entry.Trend, stance),
		})
	}
	return t, true
}

func eventThread(in ConsultInput) (Thread, bool) {
	if len(in.Active) == 0 {
		return Thread{}, false
	}
	// Highest severity, then least remaining time.
	worst := in.Active[0]
	for _, ae := range in.Active[1:] {
		if severityRank2(ae.Event.Severity) > severityRank2(worst.Event.Severity) ||
			(severityRank2(ae.Event.Severity) == severityRank2(worst.Event.Severity) && ae.RemainingTime < worst.RemainingTime) {
			worst = ae
		}
	}
	dept, _ := categoryDepartment(worst.Event.Category)
	members := relevantMembers(in.Members, dept)
	t := Thread{
		Focus:   FocusEvent,
		Topic:   worst.Event.ID,
		Summary: fmt.Sprintf("%s (%s) has %d quarters before %s", worst.Event.Title, worst.Event.Severity, worst.RemainingTime, worst.Event.Failure.Description),
	}
	for _, m := range members {
		stance := StanceCaution
		switch {
		case worst.RemainingTime <= 1 || worst.Event.Severity == events.SeverityMajor:
			stance = StanceEscalate
		case worst.Event.Severity == events.SeverityMinor:
			stance = StanceSupport
		}
		t.Remarks = append(t.Remarks, Remark{
			MemberID:   m.ID,
			MemberName: m.Name,
			Stance:     stance,
			Rationale:  fmt.Sprintf("%s weighs %q with %d quarters remaining and counsels %s", m.Name, worst.Event.Title, worst.RemainingTime, stance),
		})
	}
	return t, true
}

func departmentThread(in ConsultInput) (Thread, bool) {
	var worst *realm.DepartmentState
	for _, d := range realm.Departments {
		ds, ok := in.Departments[d]
		if !ok {
			continue
		}
		if worst == nil || ds.Efficiency < worst.Efficiency {
			worst = ds
		}
	}
	if worst == nil {
		return Thread{}, false
	}
	members := relevantMembers(in.Members, worst.Department)
	t := Thread{
		Focus:   FocusDepartment,
		Topic:   string(worst.Department),
		Summary: fmt.Sprintf("the %s department runs at %.2f efficiency on a budget of %.0f", worst.Department, worst.Efficiency, worst.Budget),
	}
	for _, m := range members {
		stance := StanceSupport
		switch {
		case worst.Efficiency < 0.8:
			stance = StanceEscalate
		case worst.Efficiency < 1.1:
			stance = StanceCaution
		}
		t.Remarks = append(t.Remarks, Remark{
			MemberID:   m.ID,
			MemberName: m.Name,
			Stance:     stance,
			Rationale:  fmt.Sprintf("%s finds %s efficiency of %.2f %s further funding", m.Name, worst.Department, worst.Efficiency, stanceVerb(stance)),
		})
	}
	return t, true
}

// relevantMembers picks up to three members whose portfolio covers the
// department, falling back to the highest-competence members when no
// specialist exists. Selection is deterministic: competence descending,
// then id.
func relevantMembers(members []*realm.CouncilMember, dept realm.Department) []*realm.CouncilMember {
	var specialists []*realm.CouncilMember
	for _, m := range members {
		if m.Portfolio.Covers(dept) {
			specialists = append(specialists, m)
		}
	}
	pool := specialists
	if len(pool) == 0 {
		pool = append(pool, members...)
	}
	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].Competence != pool[j].Competence {
			return pool[i].Competence > pool[j].Competence
		}
		return pool[i].ID < pool[j].ID
	})
	if len(pool) > 3 {
		pool = pool[:3]
	}
	return pool
}

func severityRank(t kpi.ThreatLevel) int {
	switch t {
	case kpi.ThreatCritical:
		return 2
	case kpi.ThreatModerate:
		return 1
	default:
		return 0
	}
}

func severityRank2(s events.Severity) int {
	switch s {
	case events.SeverityMajor:
		return 2
	case events.SeverityModerate:
		return 1
	default:
		return 0
	}
}

func stanceFromThreat(threat kpi.ThreatLevel) Stance {
	switch threat {
	case kpi.ThreatCritical:
		return StanceEscalate
	case kpi.ThreatModerate:
		return StanceCaution
	default:
		return StanceSupport
	}
}

func stanceVerb(s Stance) string {
	switch s {
	case StanceEscalate:
		return "demands"
	case StanceCaution:
		return "argues for"
	default:
		return "does not require"
	}
}

// kpiDepartment maps an indicator to the department whose specialists
// should speak to it.
func kpiDepartment(name string) realm.Department {
	switch name {
	case "security_index", "active_crises":
		return realm.DeptMilitary
	case "economic_growth":
		return realm.DeptEconomy
	default:
		return realm.DeptInternal
	}
}

// categoryDepartment maps an event category to a department for picking
// discussants.
func categoryDepartment(c events.Category) (realm.Department, bool) {
	switch c {
	case events.CategorySecurity:
		return realm.DeptMilitary, true
	case events.CategoryEconomic:
		return realm.DeptEconomy, true
	case events.CategoryDiplomatic:
		return realm.DeptDiplomacy, true
	case events.CategoryScience:
		return realm.DeptScience, true
	case events.CategoryUnrest:
		return realm.DeptInternal, true
	}
	return realm.DeptInternal, false
}
