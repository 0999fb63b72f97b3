// Package advisor provides the pluggable budget-allocation policies. Every
// policy is a pure function of its context; identical contexts must yield
// identical allocations so snapshot replay stays exact.
package advisor

import (
	"fmt"
	"math"
	"sort"

	"github.com/avolkov/imperium/internal/decree"
	"github.com/avolkov/imperium/internal/realm"
)

// Context is everything a policy may look at when splitting the budget.
type Context struct {
	Quarter     int
	Treasury    realm.ResourcePool
	Estates     []*realm.Estate
	Departments map[realm.Department]*realm.DepartmentState
	Decree      decree.Decree
	Trust       realm.TrustLevels
	Mandates    []*realm.Mandate
	Council     []*realm.CouncilMember
	BaseBudget  float64
}

// Policy allocates the quarterly budget across departments. The returned
// weights are unnormalized; the engine normalizes them. Weights should be
// non-negative; anything degenerate falls back to an equal split.
type Policy interface {
	Name() string
	AllocateBudget(ctx *Context) map[realm.Department]float64
}

// Registry holds the known policies by name.
type Registry struct {
	policies map[string]Policy
}

// NewRegistry builds a registry with the built-in policies.
func NewRegistry() *Registry {
	r := &Registry{policies: make(map[string]Policy)}
	for _, p := range []Policy{Equalizer{}, Hardliner{}, Mercantile{}} {
		r.policies[p.Name()] = p
	}
	return r
}

// Register adds or replaces a policy.
func (r *Registry) Register(p Policy) {
	r.policies[p.Name()] = p
}

// Get returns the named policy.
func (r *Registry) Get(name string) (Policy, error) {
	p, ok := r.policies[name]
	if !ok {
		return nil, fmt.Errorf("unknown advisor policy %q", name)
	}
	return p, nil
}

// Names returns registered policy names sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.policies))
	for n := range r.policies {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Normalize scales an allocation to sum to 1 across the fixed department
// set. NaN, negative, or zero-total allocations collapse to an equal split;
// a policy cannot break the engine.
func Normalize(alloc map[realm.Department]float64) map[realm.Department]float64 {
	out := make(map[realm.Department]float64, len(realm.Departments))
	total := 0.0
	for _, d := range realm.Departments {
		w := alloc[d]
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			w = 0
		}
		out[d] = w
		total += w
	}
	if total <= 0 {
		equal := 1.0 / float64(len(realm.Departments))
		for _, d := range realm.Departments {
			out[d] = equal
		}
		return out
	}
	for _, d := range realm.Departments {
		out[d] /= total
	}
	return out
}

// applyTrustPressure is the shared estate-trust adjustment: estates trusted
// below 0.4 pull weight toward their favored department in proportion to
// the deficit; estates above 0.75 give a smaller relief reduction.
func applyTrustPressure(alloc map[realm.Department]float64, ctx *Context) {
	for _, est := range ctx.Estates {
		trust, ok := ctx.Trust.Estates[est.Name]
		if !ok {
			continue
		}
		switch {
		case trust < 0.4:
			alloc[est.FavoredDepartment] += (0.4 - trust) * 1.5
		case trust > 0.75:
			relief := (trust - 0.75) * 0.5
			if alloc[est.FavoredDepartment] > relief {
				alloc[est.FavoredDepartment] -= relief
			}
		}
	}
}
