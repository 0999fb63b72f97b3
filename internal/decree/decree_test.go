package decree

import (
	"testing"

	"github.com/avolkov/imperium/internal/realm"
)

func TestIncomeModifier(t *testing.T) {
	cases := []struct {
		tax  TaxPolicy
		want float64
	}{
		{TaxLight, 0.85},
		{TaxModerate, 1.0},
		{TaxHeavy, 1.25},
		{TaxPolicy("tithe"), 1.0}, // unknown falls through to neutral
	}
	for _, tc := range cases {
		if got := IncomeModifier(tc.tax); got != tc.want {
			t.Errorf("IncomeModifier(%s) = %v, want %v", tc.tax, got, tc.want)
		}
	}
}

func TestHeavyTaxErodesLoyaltyAndSatisfaction(t *testing.T) {
	if LoyaltyDrift(TaxHeavy) >= 0 {
		t.Fatalf("heavy tax loyalty drift = %v, want negative", LoyaltyDrift(TaxHeavy))
	}
	if SatisfactionDrift(TaxHeavy) >= 0 {
		t.Fatalf("heavy tax satisfaction drift = %v, want negative", SatisfactionDrift(TaxHeavy))
	}
	if LoyaltyDrift(TaxLight) <= 0 {
		t.Fatalf("light tax loyalty drift = %v, want positive", LoyaltyDrift(TaxLight))
	}
}

func TestSpecializationMultiplier(t *testing.T) {
	if got := SpecializationMultiplier(PriorityCommerce, realm.SpecTrade); got != 1.3 {
		t.Fatalf("commerce/trade = %v, want 1.3", got)
	}
	if got := SpecializationMultiplier(PriorityBalanced, realm.SpecIndustry); got != 1.0 {
		t.Fatalf("balanced/industry = %v, want 1.0", got)
	}
	if got := SpecializationMultiplier(Priority("mystic"), realm.SpecTrade); got != 1.0 {
		t.Fatalf("unknown priority = %v, want neutral 1.0", got)
	}
}

func TestBudgetBoost(t *testing.T) {
	if got := BudgetBoost(PrioritySecurity, realm.DeptMilitary); got != 1.35 {
		t.Fatalf("security/military boost = %v, want 1.35", got)
	}
	if got := BudgetBoost(PrioritySecurity, realm.DeptScience); got != 1.0 {
		t.Fatalf("unboosted department = %v, want 1.0", got)
	}
	if got := BudgetBoost(PriorityBalanced, realm.DeptEconomy); got != 1.0 {
		t.Fatalf("balanced boosts nothing, got %v", got)
	}
}

func TestPriorityBonus(t *testing.T) {
	if PriorityBonus(PriorityEnlightenment, realm.DeptScience) != 1.0 {
		t.Fatal("boosted department should earn the efficiency bonus")
	}
	if PriorityBonus(PriorityEnlightenment, realm.DeptMilitary) != 0 {
		t.Fatal("unboosted department should not earn the efficiency bonus")
	}
}

func TestDecreeValid(t *testing.T) {
	if !(Decree{Tax: TaxModerate, Priority: PriorityBalanced}).Valid() {
		t.Fatal("moderate/balanced should be valid")
	}
	if (Decree{Tax: "tithe", Priority: PriorityBalanced}).Valid() {
		t.Fatal("unknown tax should be invalid")
	}
	if (Decree{Tax: TaxLight, Priority: "mystic"}).Valid() {
		t.Fatal("unknown priority should be invalid")
	}
}
