package council

import (
	"fmt"

	"github.com/avolkov/imperium/internal/realm"
)

// MemberReport is a per-quarter snapshot of one council member.
type MemberReport struct {
	MemberID   string          `json:"member_id"`
	Name       string          `json:"name"`
	Portfolio  realm.Portfolio `json:"portfolio"`
	Competence float64         `json:"competence"`
	Stress     float64         `json:"stress"`
	Motivation float64         `json:"motivation"`
	Mandates   int             `json:"mandates"`
	Remark     string          `json:"remark"`
}

// MandateReport is a per-quarter snapshot of one strategic mandate.
type MandateReport struct {
	MandateID  string              `json:"mandate_id"`
	Goal       realm.MandateGoal   `json:"goal"`
	Target     string              `json:"target,omitempty"`
	Progress   float64             `json:"progress"`
	Status     realm.MandateStatus `json:"status"`
	Confidence float64             `json:"confidence"`
	Horizon    int                 `json:"horizon"`
}

// MemberReports snapshots every council member. Read-only.
func MemberReports(members []*realm.CouncilMember) []MemberReport {
	out := make([]MemberReport, 0, len(members))
	for _, m := range members {
		out = append(out, MemberReport{
			MemberID:   m.ID,
			Name:       m.Name,
			Portfolio:  m.Portfolio,
			Competence: m.Competence,
			Stress:     m.Stress,
			Motivation: m.Motivation,
			Mandates:   len(m.AssignedMandates),
			Remark:     memberRemark(m),
		})
	}
	return out
}

func memberRemark(m *realm.CouncilMember) string {
	switch {
	case m.Stress > 0.7:
		return fmt.Sprintf("%s is stretched thin across %d mandates", m.Name, len(m.AssignedMandates))
	case m.Motivation > 0.7:
		return fmt.Sprintf("%s works with evident energy", m.Name)
	case m.Motivation < 0.3:
		return fmt.Sprintf("%s goes through the motions", m.Name)
	default:
		return fmt.Sprintf("%s attends to the %s portfolio without incident", m.Name, m.Portfolio)
	}
}

// MandateReports snapshots every mandate. Read-only.
func MandateReports(mandates []*realm.Mandate) []MandateReport {
	out := make([]MandateReport, 0, len(mandates))
	for _, md := range mandates {
		out = append(out, MandateReport{
			MandateID:  md.ID,
			Goal:       md.Goal,
			Target:     md.Target,
			Progress:   md.Progress,
			Status:     md.Status,
			Confidence: md.Confidence,
			Horizon:    md.Horizon,
		})
	}
	return out
}
