package events

import (
	"fmt"
	"sort"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// TriggerScope says what entities a template's condition is evaluated over.
type TriggerScope string

const (
	ScopeRegion TriggerScope = "region"
	ScopeEstate TriggerScope = "estate"
	ScopeGlobal TriggerScope = "global"
)

// Template is a parameterized event description. Templates are loaded once
// into a Catalog and never mutated; Instantiate stamps out fresh
// SimulationEvent values.
type Template struct {
	ID          string
	Category    Category
	Severity    Severity
	Title       string // fmt verb receives the origin name
	Description string // fmt verb receives the origin name
	Scope       TriggerScope
	Condition   string // expr source; empty means never condition-triggered
	Cooldown    int    // quarters after triggering before this template may fire again
	Options     []Option
	Failure     FailureClause
	Escalations []EscalationClause

	program *vm.Program
}

// Catalog is the immutable, loaded-once template registry. It is injected
// into the engine rather than referenced as a package global.
type Catalog struct {
	templates map[string]*Template
}

// NewCatalog compiles every template condition and builds the registry.
// Duplicate ids and invalid conditions are construction errors.
func NewCatalog(templates []*Template) (*Catalog, error) {
	m := make(map[string]*Template, len(templates))
	for _, t := range templates {
		if _, dup := m[t.ID]; dup {
			return nil, fmt.Errorf("duplicate event template %q", t.ID)
		}
		if t.Condition != "" {
			prog, err := expr.Compile(t.Condition, expr.Env(TriggerEnv{}), expr.AsBool())
			if err != nil {
				return nil, fmt.Errorf("compile condition for template %q: %w", t.ID, err)
			}
			t.program = prog
		}
		m[t.ID] = t
	}
	return &Catalog{templates: m}, nil
}

// Template returns the template with the given id, or nil.
func (c *Catalog) Template(id string) *Template {
	return c.templates[id]
}

// ConditionTemplates returns all condition-triggered templates in stable id
// order so trigger polling is deterministic.
func (c *Catalog) ConditionTemplates() []*Template {
	var out []*Template
	for _, t := range c.templates {
		if t.program != nil {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Matches evaluates the template's compiled condition against the env.
// Templates without a condition never match.
func (t *Template) Matches(env TriggerEnv) bool {
	if t.program == nil {
		return false
	}
	out, err := expr.Run(t.program, env)
	if err != nil {
		return false
	}
	ok, _ := out.(bool)
	return ok
}

// Instantiate stamps a concrete event from the template for the given
// origin. The instance id is stable across occurrences of the same trigger.
func (c *Catalog) Instantiate(templateID string, origin Origin) (SimulationEvent, error) {
	t, ok := c.templates[templateID]
	if !ok {
		return SimulationEvent{}, fmt.Errorf("unknown event template %q", templateID)
	}
	ev := SimulationEvent{
		ID:          fmt.Sprintf("%s:%s", t.ID, origin.Name),
		TemplateID:  t.ID,
		Category:    t.Category,
		Severity:    t.Severity,
		Title:       sprintfOrigin(t.Title, origin),
		Description: sprintfOrigin(t.Description, origin),
		Failure:     t.Failure,
		Origin:      origin,
	}
	// Copy slices so instances can never alias template storage.
	ev.Options = make([]Option, len(t.Options))
	copy(ev.Options, t.Options)
	for i := range ev.Options {
		ev.Options[i].Effects = append([]Effect(nil), t.Options[i].Effects...)
		ev.Options[i].FollowUps = append([]string(nil), t.Options[i].FollowUps...)
		if t.Options[i].Cost != nil {
			cost := *t.Options[i].Cost
			ev.Options[i].Cost = &cost
		}
	}
	ev.Failure.Effects = append([]Effect(nil), t.Failure.Effects...)
	ev.Escalations = append([]EscalationClause(nil), t.Escalations...)
	// Region-targeted template effects bind to the triggering region.
	if origin.Kind == OriginRegion || origin.Kind == OriginEstate {
		bindTargets(ev.Options, ev.Failure.Effects, origin)
	}
	return ev, nil
}

// bindTargets fills empty effect targets with the origin name for kinds that
// address the origin's entity type.
func bindTargets(opts []Option, failure []Effect, origin Origin) {
	bind := func(effects []Effect) {
		for i := range effects {
			if effects[i].Target != "" {
				continue
			}
			switch {
			case origin.Kind == OriginRegion && isRegionKind(effects[i].Kind):
				effects[i].Target = origin.Name
			case origin.Kind == OriginEstate && isEstateKind(effects[i].Kind):
				effects[i].Target = origin.Name
			}
		}
	}
	for i := range opts {
		bind(opts[i].Effects)
	}
	bind(failure)
}

func isRegionKind(k EffectKind) bool {
	return k == EffectRegionLoyalty || k == EffectRegionWealth || k == EffectRegionInfra
}

func isEstateKind(k EffectKind) bool {
	return k == EffectEstateSatisfaction || k == EffectEstateInfluence
}

func sprintfOrigin(format string, origin Origin) string {
	if origin.Name == "" || !strings.Contains(format, "%s") {
		return format
	}
	return fmt.Sprintf(format, origin.Name)
}
