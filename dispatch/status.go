package dispatch

import (
	"sync"
	"time"

	"aqusens.io/nora/asrslink/wire"
)

// IntervalStatus mirrors the sampler's interval sampling settings as last
// reported. The sampler owns the real state.
type IntervalStatus struct {
	Enabled bool      `json:"enabled"`
	Hours   int       `json:"hours"`
	Minutes int       `json:"minutes"`
	Updated time.Time `json:"updated"`
	// Known is false until a status reply has been parsed.
	Known bool `json:"known"`
	// Stale is set by every command that may have changed the settings.
	Stale bool `json:"stale"`
}

// StatusCache holds the last IntervalStatus. Only a status round trip
// refreshes it; any control command marks it stale.
type StatusCache struct {
	mu     sync.Mutex
	status IntervalStatus
}

func (c *StatusCache) Store(s wire.Status, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = IntervalStatus{
		Enabled: s.Enabled,
		Hours:   s.Hours,
		Minutes: s.Minutes,
		Updated: at,
		Known:   true,
	}
}

// Invalidate marks the cached status stale.
func (c *StatusCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status.Stale = true
}

func (c *StatusCache) Load() IntervalStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}
