package events

// TriggerEnv is the metrics environment condition expressions evaluate
// against. Region and estate fields are zero for scopes that don't use them.
type TriggerEnv struct {
	Quarter       int
	TreasuryGold  float64
	Stability     float64
	SecurityIndex float64
	ActiveCrises  int

	RegionName           string
	RegionLoyalty        float64
	RegionWealth         float64
	RegionInfrastructure float64
	RegionPopulation     int

	EstateName         string
	EstateSatisfaction float64
	EstateInfluence    float64
}

// LowTreasury reports whether the treasury is below the given floor.
// Exposed as a helper so conditions read naturally.
func (e TriggerEnv) LowTreasury(floor float64) bool {
	return e.TreasuryGold < floor
}

// DisloyalRegion reports whether the in-scope region's loyalty is below the
// threshold.
func (e TriggerEnv) DisloyalRegion(threshold float64) bool {
	return e.RegionName != "" && e.RegionLoyalty < threshold
}

// DiscontentEstate reports whether the in-scope estate's satisfaction is
// below the threshold.
func (e TriggerEnv) DiscontentEstate(threshold float64) bool {
	return e.EstateName != "" && e.EstateSatisfaction < threshold
}
