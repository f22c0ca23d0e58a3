package gate

import (
	"sync"
	"time"
)

// DefaultCooldownWindow is the minimum time between two accepted
// detections.
const DefaultCooldownWindow = 5 * time.Second

// Cooldown suppresses repeated processing of a plate that lingers in
// frame across consecutive capture cycles. It is a single global slot:
// one vehicle is processed at a time, so the gate tracks only the most
// recently accepted detection rather than a per-plate table.
type Cooldown struct {
	window time.Duration

	mu   sync.Mutex
	last time.Time
}

// NewCooldown creates a cooldown gate with the given window.
func NewCooldown(window time.Duration) *Cooldown {
	if window <= 0 {
		window = DefaultCooldownWindow
	}
	return &Cooldown{window: window}
}

// ShouldProcess reports whether a detection at now may proceed. The
// plate code is accepted for contract compatibility but does not key
// the gate. On true, the caller must call RecordAccepted before the
// next frame is evaluated.
func (c *Cooldown) ShouldProcess(code string, now time.Time) bool {
	_ = code
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last.IsZero() || now.Sub(c.last) >= c.window
}

// RecordAccepted marks now as the most recent accepted detection.
func (c *Cooldown) RecordAccepted(now time.Time) {
	c.mu.Lock()
	c.last = now
	c.mu.Unlock()
}

// Window returns the configured cooldown window.
func (c *Cooldown) Window() time.Duration {
	return c.window
}
