package realm

// MandateGoal is what a strategic mandate is trying to achieve.
type MandateGoal string

const (
	GoalRaiseLoyalty      MandateGoal = "raise_loyalty"      // region target
	GoalAppeaseEstate     MandateGoal = "appease_estate"     // estate target
	GoalGrowTreasury      MandateGoal = "grow_treasury"      // global
	GoalRestoreStability  MandateGoal = "restore_stability"  // global
	GoalBuildInfra        MandateGoal = "build_infrastructure" // region target
)

// MandateTargetKind says what kind of entity a mandate tracks.
type MandateTargetKind string

const (
	TargetRegion MandateTargetKind = "region"
	TargetEstate MandateTargetKind = "estate"
	TargetGlobal MandateTargetKind = "global"
)

// MandateStatus is the six-state mandate lifecycle.
type MandateStatus string

const (
	MandateNotStarted MandateStatus = "not_started"
	MandateInProgress MandateStatus = "in_progress"
	MandateOnTrack    MandateStatus = "on_track"
	MandateAtRisk     MandateStatus = "at_risk"
	MandateCompleted  MandateStatus = "completed"
	MandateFailed     MandateStatus = "failed"
)

// Terminal reports whether the status admits no further transitions.
func (s MandateStatus) Terminal() bool {
	return s == MandateCompleted || s == MandateFailed
}

// Mandate is a tracked strategic goal with progress independent of events.
type Mandate struct {
	ID         string            `json:"id"`
	Goal       MandateGoal       `json:"goal"`
	TargetKind MandateTargetKind `json:"target_kind"`
	Target     string            `json:"target,omitempty"` // region or estate name
	Urgency    float64           `json:"urgency"`          // 0–1
	Horizon    int               `json:"horizon"`          // quarters until deadline
	Progress   float64           `json:"progress"`         // 0–1
	Status     MandateStatus     `json:"status"`
	Confidence float64           `json:"confidence"` // 0–1
}
