package realm

// Portfolio is a council member's area of responsibility. Portfolios map
// many-to-one onto departments; the extra portfolios cover specialities that
// span or subdivide a department.
type Portfolio string

const (
	PortfolioEconomy      Portfolio = "economy"
	PortfolioDiplomacy    Portfolio = "diplomacy"
	PortfolioInternal     Portfolio = "internal"
	PortfolioMilitary     Portfolio = "military"
	PortfolioScience      Portfolio = "science"
	PortfolioNavy         Portfolio = "navy"
	PortfolioIntelligence Portfolio = "intelligence"
	PortfolioLogistics    Portfolio = "logistics"
)

// portfolioDepartments is the authoritative portfolio → departments mapping.
var portfolioDepartments = map[Portfolio][]Department{
	PortfolioEconomy:      {DeptEconomy},
	PortfolioDiplomacy:    {DeptDiplomacy},
	PortfolioInternal:     {DeptInternal},
	PortfolioMilitary:     {DeptMilitary},
	PortfolioScience:      {DeptScience},
	PortfolioNavy:         {DeptMilitary},
	PortfolioIntelligence: {DeptInternal, DeptMilitary},
	PortfolioLogistics:    {DeptEconomy, DeptMilitary},
}

// DepartmentsFor returns the departments a portfolio covers.
func (p Portfolio) DepartmentsFor() []Department {
	return portfolioDepartments[p]
}

// Covers reports whether the portfolio includes the given department.
func (p Portfolio) Covers(d Department) bool {
	for _, pd := range portfolioDepartments[p] {
		if pd == d {
			return true
		}
	}
	return false
}

// CouncilMember is the live state of one named advisor on the council.
type CouncilMember struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Portfolio        Portfolio `json:"portfolio"`
	Competence       float64   `json:"competence"` // 0–1
	Loyalty          float64   `json:"loyalty"`    // 0–1
	Stress           float64   `json:"stress"`     // 0–1
	Motivation       float64   `json:"motivation"` // 0–1
	AssignedMandates []string  `json:"assigned_mandates,omitempty"`
}

// Clone copies the member including its mandate list.
func (m *CouncilMember) Clone() *CouncilMember {
	c := *m
	c.AssignedMandates = append([]string(nil), m.AssignedMandates...)
	return &c
}
