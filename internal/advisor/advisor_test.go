package advisor

import (
	"math"
	"testing"

	"github.com/avolkov/imperium/internal/decree"
	"github.com/avolkov/imperium/internal/realm"
)

func testContext() *Context {
	return &Context{
		Quarter:  3,
		Treasury: realm.ResourcePool{Gold: 500, Influence: 50, Labor: 100},
		Estates: []*realm.Estate{
			{Name: "clergy", Satisfaction: 50, FavoredDepartment: realm.DeptScience},
			{Name: "merchants", Satisfaction: 60, FavoredDepartment: realm.DeptEconomy},
		},
		Departments: map[realm.Department]*realm.DepartmentState{
			realm.DeptEconomy:   {Department: realm.DeptEconomy, Efficiency: 1.2},
			realm.DeptDiplomacy: {Department: realm.DeptDiplomacy, Efficiency: 0.9},
			realm.DeptInternal:  {Department: realm.DeptInternal, Efficiency: 1.0},
			realm.DeptMilitary:  {Department: realm.DeptMilitary, Efficiency: 0.8},
			realm.DeptScience:   {Department: realm.DeptScience, Efficiency: 1.5},
		},
		Decree:     decree.Decree{Tax: decree.TaxModerate, Priority: decree.PriorityBalanced},
		Trust:      realm.TrustLevels{Advisor: 0.5, Estates: map[string]float64{"clergy": 0.5, "merchants": 0.5}},
		BaseBudget: 200,
	}
}

func sumAlloc(alloc map[realm.Department]float64) float64 {
	total := 0.0
	for _, d := range realm.Departments {
		total += alloc[d]
	}
	return total
}

func TestNormalizeSumsToOne(t *testing.T) {
	alloc := Normalize(map[realm.Department]float64{
		realm.DeptEconomy:  3,
		realm.DeptMilitary: 1,
	})
	if got := sumAlloc(alloc); math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("normalized sum = %v, want 1", got)
	}
	if alloc[realm.DeptEconomy] != 0.75 || alloc[realm.DeptMilitary] != 0.25 {
		t.Fatalf("weights = %+v", alloc)
	}
}

func TestNormalizeDegenerateFallsBackToEqualSplit(t *testing.T) {
	cases := []struct {
		name  string
		alloc map[realm.Department]float64
	}{
		{"nil", nil},
		{"all zero", map[realm.Department]float64{}},
		{"negative", map[realm.Department]float64{realm.DeptEconomy: -5}},
		{"nan", map[realm.Department]float64{realm.DeptEconomy: math.NaN()}},
		{"inf", map[realm.Department]float64{realm.DeptEconomy: math.Inf(1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			alloc := Normalize(tc.alloc)
			want := 1.0 / float64(len(realm.Departments))
			for _, d := range realm.Departments {
				if math.Abs(alloc[d]-want) > 1e-9 {
					t.Fatalf("alloc[%s] = %v, want equal split %v", d, alloc[d], want)
				}
			}
		})
	}
}

func TestNormalizeDropsNegativeComponent(t *testing.T) {
	alloc := Normalize(map[realm.Department]float64{
		realm.DeptEconomy:  -3,
		realm.DeptMilitary: 1,
	})
	if alloc[realm.DeptEconomy] != 0 {
		t.Fatalf("negative weight should zero, got %v", alloc[realm.DeptEconomy])
	}
	if alloc[realm.DeptMilitary] != 1 {
		t.Fatalf("military = %v, want 1", alloc[realm.DeptMilitary])
	}
}

func TestPoliciesAreDeterministic(t *testing.T) {
	reg := NewRegistry()
	for _, name := range reg.Names() {
		p, err := reg.Get(name)
		if err != nil {
			t.Fatalf("Get(%s): %v", name, err)
		}
		a := Normalize(p.AllocateBudget(testContext()))
		b := Normalize(p.AllocateBudget(testContext()))
		for _, d := range realm.Departments {
			if a[d] != b[d] {
				t.Fatalf("policy %s not deterministic for %s: %v vs %v", name, d, a[d], b[d])
			}
		}
	}
}

func TestEqualizerFavorsWeakDepartments(t *testing.T) {
	ctx := testContext()
	alloc := Normalize(Equalizer{}.AllocateBudget(ctx))
	if alloc[realm.DeptMilitary] <= alloc[realm.DeptScience] {
		t.Fatalf("equalizer should favor military (eff 0.8) over science (eff 1.5): %v vs %v",
			alloc[realm.DeptMilitary], alloc[realm.DeptScience])
	}
}

func TestHardlinerSurgesWithTrust(t *testing.T) {
	low := testContext()
	low.Trust.Advisor = 0.1
	high := testContext()
	high.Trust.Advisor = 0.9

	lowAlloc := Normalize(Hardliner{}.AllocateBudget(low))
	highAlloc := Normalize(Hardliner{}.AllocateBudget(high))
	if highAlloc[realm.DeptMilitary] <= lowAlloc[realm.DeptMilitary] {
		t.Fatalf("trusted hardliner should allocate more to military: %v vs %v",
			highAlloc[realm.DeptMilitary], lowAlloc[realm.DeptMilitary])
	}
}

func TestMercantileReactsToTreasuryPressure(t *testing.T) {
	rich := testContext()
	rich.Treasury.Gold = 1000
	poor := testContext()
	poor.Treasury.Gold = 50

	richAlloc := Normalize(Mercantile{}.AllocateBudget(rich))
	poorAlloc := Normalize(Mercantile{}.AllocateBudget(poor))
	if poorAlloc[realm.DeptEconomy] <= richAlloc[realm.DeptEconomy] {
		t.Fatalf("pressured mercantile should weight economy more: %v vs %v",
			poorAlloc[realm.DeptEconomy], richAlloc[realm.DeptEconomy])
	}
}

func TestTrustPressurePullsTowardDistrustedEstates(t *testing.T) {
	neutral := testContext()
	distrusted := testContext()
	distrusted.Trust.Estates["clergy"] = 0.1 // clergy favor science

	a := Normalize(Equalizer{}.AllocateBudget(neutral))
	b := Normalize(Equalizer{}.AllocateBudget(distrusted))
	if b[realm.DeptScience] <= a[realm.DeptScience] {
		t.Fatalf("distrusted estate should pull weight to its favored department: %v vs %v",
			b[realm.DeptScience], a[realm.DeptScience])
	}
}

func TestRegistryUnknownPolicy(t *testing.T) {
	if _, err := NewRegistry().Get("astrologer"); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}

func TestRegistryNames(t *testing.T) {
	names := NewRegistry().Names()
	want := []string{"equalizer", "hardliner", "mercantile"}
	if len(names) != len(want) {
		t.Fatalf("names = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
}
