package engine

import (
	"errors"

	"github.com/avolkov/imperium/internal/events"
)

// Config is the engine's fixed per-campaign tuning. It never changes after
// construction; mutable campaign state lives in State.
type Config struct {
	BaseQuarterBudget float64
	// ChronicQuarters is how many consecutive critical quarters a KPI
	// sustains before escalating into a security crisis.
	ChronicQuarters int
	// Routing is the hybrid-mode category routing table (host-supplied).
	Routing map[events.Category]RouteTarget
}

// Normalize fills defaults for zero fields.
func (c *Config) Normalize() {
	if c.BaseQuarterBudget <= 0 {
		c.BaseQuarterBudget = 200
	}
	if c.ChronicQuarters <= 0 {
		c.ChronicQuarters = 3
	}
}

// ErrCampaignOver is returned when advancing past the quarter limit.
var ErrCampaignOver = errors.New("campaign has reached its quarter limit")

// ErrSnapshotSchema is returned when a snapshot fails validation or carries
// an incompatible version.
var ErrSnapshotSchema = errors.New("incompatible snapshot")
