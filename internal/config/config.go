// Package config loads campaign definitions from YAML. A campaign file
// names the starting realm (regions, estates, council, mandates), the seed,
// the advisor policy, and the engine tuning knobs.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/avolkov/imperium/internal/decree"
	"github.com/avolkov/imperium/internal/realm"
)

// RegionSpec declares one starting region.
type RegionSpec struct {
	Name           string               `yaml:"name"`
	Population     int                  `yaml:"population"`
	Wealth         float64              `yaml:"wealth"`
	Loyalty        float64              `yaml:"loyalty"`
	Infrastructure float64              `yaml:"infrastructure"`
	Specialization realm.Specialization `yaml:"specialization"`
	Output         ResourceSpec         `yaml:"output"`
}

// EstateSpec declares one starting estate.
type EstateSpec struct {
	Name         string           `yaml:"name"`
	Influence    float64          `yaml:"influence"`
	Satisfaction float64          `yaml:"satisfaction"`
	Favored      realm.Department `yaml:"favored_department"`
	Trust        float64          `yaml:"trust"`
}

// CouncilSpec declares one starting council member.
type CouncilSpec struct {
	ID         string          `yaml:"id"`
	Name       string          `yaml:"name"`
	Portfolio  realm.Portfolio `yaml:"portfolio"`
	Competence float64         `yaml:"competence"`
	Loyalty    float64         `yaml:"loyalty"`
	Motivation float64         `yaml:"motivation"`
	Mandates   []string        `yaml:"mandates,omitempty"`
}

// MandateSpec declares one starting strategic mandate.
type MandateSpec struct {
	ID         string                  `yaml:"id"`
	Goal       realm.MandateGoal       `yaml:"goal"`
	TargetKind realm.MandateTargetKind `yaml:"target_kind"`
	Target     string                  `yaml:"target,omitempty"`
	Urgency    float64                 `yaml:"urgency"`
	Horizon    int                     `yaml:"horizon"`
}

// ResourceSpec mirrors a resource pool in YAML.
type ResourceSpec struct {
	Gold      float64 `yaml:"gold"`
	Influence float64 `yaml:"influence"`
	Labor     float64 `yaml:"labor"`
}

// Pool converts the spec into a realm pool.
func (r ResourceSpec) Pool() realm.ResourcePool {
	return realm.ResourcePool{Gold: r.Gold, Influence: r.Influence, Labor: r.Labor}
}

// Campaign is the full parsed campaign definition.
type Campaign struct {
	Name     string `yaml:"name"`
	Seed     int64  `yaml:"seed"`
	Quarters int    `yaml:"quarters"`

	Advisor     string `yaml:"advisor"`
	ControlMode string `yaml:"control_mode"`

	BaseQuarterBudget float64 `yaml:"base_quarter_budget"`
	ChronicQuarters   int     `yaml:"chronic_quarters"`
	// Jitter is the amplitude of the noise applied to region wealth and
	// population at scenario build time. Zero disables it.
	Jitter float64 `yaml:"jitter"`

	Decree  decree.Decree     `yaml:"decree"`
	Routing map[string]string `yaml:"routing,omitempty"` // event category → player|council

	Treasury     ResourceSpec  `yaml:"treasury"`
	AdvisorTrust float64       `yaml:"advisor_trust"`
	Regions      []RegionSpec  `yaml:"regions"`
	Estates      []EstateSpec  `yaml:"estates"`
	Council      []CouncilSpec `yaml:"council"`
	Mandates     []MandateSpec `yaml:"mandates,omitempty"`
}

// Default returns a campaign with engine tuning defaults filled in. Entity
// lists stay empty; a runnable campaign always comes from a file.
func Default() Campaign {
	return Campaign{
		Name:              "campaign",
		Seed:              1,
		Quarters:          12,
		Advisor:           "equalizer",
		ControlMode:       "manual",
		BaseQuarterBudget: 200,
		ChronicQuarters:   3,
		AdvisorTrust:      0.5,
		Decree:            decree.Decree{Tax: decree.TaxModerate, Priority: decree.PriorityBalanced},
	}
}

// Load reads and validates a campaign file. Unknown YAML keys are rejected
// so a typo never silently drops a setting.
func Load(path string) (Campaign, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read campaign: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return c, fmt.Errorf("parse campaign %s: %w", path, err)
	}
	c.Normalize()
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("campaign %s: %w", path, err)
	}
	return c, nil
}

// Normalize fills defaults for zero-valued fields.
func (c *Campaign) Normalize() {
	if c.Quarters <= 0 {
		c.Quarters = 12
	}
	if c.Advisor == "" {
		c.Advisor = "equalizer"
	}
	if c.ControlMode == "" {
		c.ControlMode = "manual"
	}
	if c.BaseQuarterBudget <= 0 {
		c.BaseQuarterBudget = 200
	}
	if c.ChronicQuarters <= 0 {
		c.ChronicQuarters = 3
	}
	if c.AdvisorTrust <= 0 {
		c.AdvisorTrust = 0.5
	}
	if c.Decree.Tax == "" {
		c.Decree.Tax = decree.TaxModerate
	}
	if c.Decree.Priority == "" {
		c.Decree.Priority = decree.PriorityBalanced
	}
	for i := range c.Estates {
		if c.Estates[i].Trust <= 0 {
			c.Estates[i].Trust = 0.5
		}
	}
	for i := range c.Council {
		if c.Council[i].Motivation <= 0 {
			c.Council[i].Motivation = 0.6
		}
	}
}

// Validate rejects campaigns the engine refuses to start.
func (c *Campaign) Validate() error {
	if len(c.Regions) == 0 {
		return fmt.Errorf("at least one region required")
	}
	if len(c.Estates) == 0 {
		return fmt.Errorf("at least one estate required")
	}
	if !c.Decree.Valid() {
		return fmt.Errorf("invalid decree: tax=%q priority=%q", c.Decree.Tax, c.Decree.Priority)
	}
	switch c.ControlMode {
	case "manual", "advisor", "hybrid":
	default:
		return fmt.Errorf("unknown control mode %q", c.ControlMode)
	}
	seen := make(map[string]bool, len(c.Regions))
	for _, r := range c.Regions {
		if r.Name == "" {
			return fmt.Errorf("region with empty name")
		}
		if seen[r.Name] {
			return fmt.Errorf("duplicate region %q", r.Name)
		}
		seen[r.Name] = true
		switch r.Specialization {
		case realm.SpecTrade, realm.SpecAgriculture, realm.SpecIndustry:
		default:
			return fmt.Errorf("region %q: unknown specialization %q", r.Name, r.Specialization)
		}
	}
	seen = make(map[string]bool, len(c.Estates))
	for _, e := range c.Estates {
		if e.Name == "" {
			return fmt.Errorf("estate with empty name")
		}
		if seen[e.Name] {
			return fmt.Errorf("duplicate estate %q", e.Name)
		}
		seen[e.Name] = true
		if !validDepartment(e.Favored) {
			return fmt.Errorf("estate %q: unknown favored department %q", e.Name, e.Favored)
		}
	}
	for _, m := range c.Council {
		if m.ID == "" || m.Name == "" {
			return fmt.Errorf("council member needs id and name")
		}
		if len(m.Portfolio.DepartmentsFor()) == 0 {
			return fmt.Errorf("council member %q: unknown portfolio %q", m.ID, m.Portfolio)
		}
	}
	for _, m := range c.Mandates {
		if m.ID == "" {
			return fmt.Errorf("mandate with empty id")
		}
		if m.Horizon <= 0 {
			return fmt.Errorf("mandate %q: horizon must be positive", m.ID)
		}
		switch m.TargetKind {
		case realm.TargetGlobal:
		case realm.TargetRegion, realm.TargetEstate:
			if m.Target == "" {
				return fmt.Errorf("mandate %q: %s target required", m.ID, m.TargetKind)
			}
		default:
			return fmt.Errorf("mandate %q: unknown target kind %q", m.ID, m.TargetKind)
		}
	}
	for cat, dst := range c.Routing {
		if dst != "player" && dst != "council" {
			return fmt.Errorf("routing %q: destination must be player or council, got %q", cat, dst)
		}
	}
	return nil
}

func validDepartment(d realm.Department) bool {
	for _, known := range realm.Departments {
		if known == d {
			return true
		}
	}
	return false
}
