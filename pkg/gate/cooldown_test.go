package gate

import (
	"testing"
	"time"
)

func TestCooldown_FirstDetectionProceeds(t *testing.T) {
	c := NewCooldown(5 * time.Second)
	if !c.ShouldProcess("ABC123", time.Now()) {
		t.Error("first detection must proceed")
	}
}

func TestCooldown_WithinWindowSuppressed(t *testing.T) {
	c := NewCooldown(5 * time.Second)
	t0 := time.Now()

	if !c.ShouldProcess("ABC123", t0) {
		t.Fatal("first detection must proceed")
	}
	c.RecordAccepted(t0)

	for _, dt := range []time.Duration{0, time.Second, 4999 * time.Millisecond} {
		if c.ShouldProcess("ABC123", t0.Add(dt)) {
			t.Errorf("detection at +%v must be suppressed", dt)
		}
	}
}

func TestCooldown_WindowBoundary(t *testing.T) {
	c := NewCooldown(5 * time.Second)
	t0 := time.Now()
	c.RecordAccepted(t0)

	// Exactly the window is enough: now - last >= window.
	if !c.ShouldProcess("ABC123", t0.Add(5*time.Second)) {
		t.Error("detection at exactly the window must proceed")
	}
	if !c.ShouldProcess("ABC123", t0.Add(6*time.Second)) {
		t.Error("detection past the window must proceed")
	}
}

func TestCooldown_GlobalSlot(t *testing.T) {
	// The gate is a single slot: a different plate inside the window is
	// suppressed too.
	c := NewCooldown(5 * time.Second)
	t0 := time.Now()
	c.RecordAccepted(t0)

	if c.ShouldProcess("XYZ999", t0.Add(time.Second)) {
		t.Error("different plate within window must be suppressed by the global gate")
	}
}

func TestCooldown_DefaultWindow(t *testing.T) {
	c := NewCooldown(0)
	if c.Window() != DefaultCooldownWindow {
		t.Errorf("window: got %v, want %v", c.Window(), DefaultCooldownWindow)
	}
}
