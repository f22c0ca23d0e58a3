// Package gate turns camera frames into access decisions: it drives
// localization, recognition, duplicate suppression, the registry
// lookup and the resulting notifications, one frame at a time.
package gate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gocv.io/x/gocv"

	"github.com/bwalyaChanda3/vehicle-access-system/internal/log"
	"github.com/bwalyaChanda3/vehicle-access-system/pkg/ocr"
	"github.com/bwalyaChanda3/vehicle-access-system/pkg/plate"
	"github.com/bwalyaChanda3/vehicle-access-system/pkg/registry"
)

// Localizer finds a plate-shaped region in a frame.
type Localizer interface {
	Locate(frame gocv.Mat) (plate.Region, bool)
}

// Registry is the remote service of record for vehicle approval.
type Registry interface {
	Lookup(ctx context.Context, code string) registry.Decision
	ReportAccess(ctx context.Context, code, status, details string) bool
	ReportRealtime(ctx context.Context, code, status string, vehicle *registry.VehicleInfo, confidence float64) bool
}

// Pipeline processes one frame end to end: localize, recognize,
// normalize, cooldown-check, registry lookup, notify. Per-cycle
// failures are absorbed into outcomes and never propagate.
type Pipeline struct {
	localizer  Localizer
	recognizer ocr.Recognizer
	registry   Registry
	cooldown   *Cooldown
	logger     *slog.Logger
}

// NewPipeline wires the detection stages together.
func NewPipeline(localizer Localizer, recognizer ocr.Recognizer, reg Registry, cooldown *Cooldown) *Pipeline {
	return &Pipeline{
		localizer:  localizer,
		recognizer: recognizer,
		registry:   reg,
		cooldown:   cooldown,
		logger:     log.With("component", "gate.pipeline"),
	}
}

// ProcessFrame runs one detection cycle and returns its outcome event.
// The caller retains ownership of the frame.
func (p *Pipeline) ProcessFrame(ctx context.Context, frame gocv.Mat, now time.Time) Event {
	region, found := p.localizer.Locate(frame)
	if !found {
		return newEvent(OutcomeNoDetection, now)
	}
	defer region.Close()

	crop, ok := region.Crop()
	if !ok {
		return newEvent(OutcomeNoDetection, now)
	}
	defer crop.Close()

	results, err := p.recognizer.Read(crop)
	if err != nil {
		// Recognition failure is a per-frame no-text cycle.
		p.logger.Warn("recognizer failed", "error", err)
		return newEvent(OutcomeNoText, now)
	}
	if len(results) == 0 {
		return newEvent(OutcomeNoText, now)
	}

	// Only the first (highest-priority) span is the candidate.
	candidate := results[0]
	code := plate.Normalize(candidate.Text)
	if code == "" {
		return newEvent(OutcomeNoText, now)
	}

	if !p.cooldown.ShouldProcess(code, now) {
		p.logger.Debug("duplicate suppressed", "plate", code)
		event := newEvent(OutcomeSuppressed, now)
		event.Plate = code
		event.Confidence = candidate.Confidence
		return event
	}
	p.cooldown.RecordAccepted(now)

	decision := p.registry.Lookup(ctx, code)

	status := registry.AccessDenied
	outcome := OutcomeDenied
	details := "Vehicle not registered or not approved"
	if decision.Approved {
		status = registry.AccessApproved
		outcome = OutcomeApproved
		details = fmt.Sprintf("Approved vehicle - %s (%s %s)",
			decision.Vehicle.FullName, decision.Vehicle.Make, decision.Vehicle.Model)
	} else if decision.Reason != registry.ReasonNotRegistered {
		details = decision.Reason
	}

	// Exactly one log call and one notification per decision. Both are
	// best-effort: a failed report must not alter the finalized decision.
	p.registry.ReportAccess(ctx, code, status, details)
	p.registry.ReportRealtime(ctx, code, status, decision.Vehicle, candidate.Confidence)

	p.logger.Info("access decision",
		"plate", code,
		"outcome", outcome,
		"confidence", candidate.Confidence,
		"reason", decision.Reason)

	event := newEvent(outcome, now)
	event.Plate = code
	event.Confidence = candidate.Confidence
	event.Vehicle = decision.Vehicle
	event.Reason = decision.Reason
	return event
}
