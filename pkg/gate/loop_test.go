package gate

import (
	"errors"
	"sync"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/bwalyaChanda3/vehicle-access-system/pkg/ocr"
	"github.com/bwalyaChanda3/vehicle-access-system/pkg/registry"
)

// fakeSource produces blank frames and records its lifecycle.
type fakeSource struct {
	mu     sync.Mutex
	reads  int
	closed bool
}

func (f *fakeSource) Read() (gocv.Mat, bool) {
	f.mu.Lock()
	f.reads++
	f.mu.Unlock()
	return gocv.Zeros(10, 10, gocv.MatTypeCV8UC3), true
}

func (f *fakeSource) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

func (f *fakeSource) stats() (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads, f.closed
}

func newTestLoop(source FrameSource) *Loop {
	pipeline := NewPipeline(&fakeLocalizer{found: false}, ocr.NewMock(), registry.NewMock(), NewCooldown(time.Second))
	return NewLoop(pipeline, func() (FrameSource, error) { return source, nil }, time.Millisecond)
}

func TestLoop_StartProcessStop(t *testing.T) {
	source := &fakeSource{}
	loop := newTestLoop(source)

	events := make(chan Event, 64)
	loop.OnEvent = func(e Event) {
		select {
		case events <- e:
		default:
		}
	}

	if err := loop.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !loop.Active() {
		t.Fatal("loop must report active after start")
	}

	// At least one cycle completes.
	select {
	case e := <-events:
		if e.Outcome != OutcomeNoDetection {
			t.Errorf("outcome: got %v, want no_detection", e.Outcome)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event within deadline")
	}

	loop.Stop()
	if loop.Active() {
		t.Error("loop must report inactive after stop")
	}

	reads, closed := source.stats()
	if reads == 0 {
		t.Error("source was never read")
	}
	if !closed {
		t.Error("stop must release the frame source")
	}
}

func TestLoop_DoubleStart(t *testing.T) {
	loop := newTestLoop(&fakeSource{})
	if err := loop.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer loop.Stop()

	if err := loop.Start(); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second start: got %v, want ErrAlreadyRunning", err)
	}
}

func TestLoop_Restart(t *testing.T) {
	loop := newTestLoop(&fakeSource{})
	if err := loop.Start(); err != nil {
		t.Fatalf("first start: %v", err)
	}
	loop.Stop()

	if err := loop.Start(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	loop.Stop()
}

func TestLoop_StartFailsWhenSourceUnavailable(t *testing.T) {
	pipeline := NewPipeline(&fakeLocalizer{found: false}, ocr.NewMock(), registry.NewMock(), NewCooldown(time.Second))
	loop := NewLoop(pipeline, func() (FrameSource, error) {
		return nil, errors.New("device busy")
	}, time.Millisecond)

	if err := loop.Start(); err == nil {
		t.Fatal("start must fail when the source cannot be opened")
	}
	if loop.Active() {
		t.Error("failed start must leave the loop inactive")
	}
}

func TestLoop_StartDuringStop(t *testing.T) {
	// A restart issued while Stop is still waiting for the worker must
	// serialize behind it: one worker at a time, old source released
	// before the new one is opened.
	pipeline := NewPipeline(&fakeLocalizer{found: false}, ocr.NewMock(), registry.NewMock(), NewCooldown(time.Second))

	var mu sync.Mutex
	var sources []*fakeSource
	loop := NewLoop(pipeline, func() (FrameSource, error) {
		mu.Lock()
		defer mu.Unlock()
		src := &fakeSource{}
		sources = append(sources, src)
		return src, nil
	}, 50*time.Millisecond)

	if err := loop.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	stopped := make(chan struct{})
	go func() {
		loop.Stop()
		close(stopped)
	}()

	// Wait for Stop to flip the flag; it now holds the lifecycle mutex
	// until the worker exits.
	deadline := time.After(2 * time.Second)
	for loop.Active() {
		select {
		case <-deadline:
			t.Fatal("stop did not flip the active flag")
		case <-time.After(time.Millisecond):
		}
	}

	if err := loop.Start(); err != nil {
		t.Fatalf("restart during stop: %v", err)
	}

	// Start only returns once the pending Stop has completed.
	select {
	case <-stopped:
	default:
		t.Fatal("start returned before the pending stop completed")
	}

	mu.Lock()
	opened := len(sources)
	first := sources[0]
	mu.Unlock()
	if opened != 2 {
		t.Fatalf("sources opened: got %d, want 2", opened)
	}
	if _, closed := first.stats(); !closed {
		t.Error("old worker must release its source before the restart")
	}
	if !loop.Active() {
		t.Error("loop must be active after the restart")
	}

	loop.Stop()
	mu.Lock()
	second := sources[1]
	mu.Unlock()
	if _, closed := second.stats(); !closed {
		t.Error("stop must release the second source")
	}
}

func TestLoop_StopIsIdempotent(t *testing.T) {
	loop := newTestLoop(&fakeSource{})
	loop.Stop() // Not running: no-op.

	if err := loop.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	loop.Stop()
	loop.Stop()
}

// readFailSource fails after a few frames, simulating a dead device.
type readFailSource struct {
	fakeSource
	maxReads int
}

func (r *readFailSource) Read() (gocv.Mat, bool) {
	r.mu.Lock()
	r.reads++
	fail := r.reads > r.maxReads
	r.mu.Unlock()
	if fail {
		return gocv.Mat{}, false
	}
	return gocv.Zeros(10, 10, gocv.MatTypeCV8UC3), true
}

func TestLoop_StopsOnReadFailure(t *testing.T) {
	source := &readFailSource{maxReads: 2}
	loop := newTestLoop(source)

	if err := loop.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for loop.Active() {
		select {
		case <-deadline:
			t.Fatal("loop did not stop after read failure")
		case <-time.After(5 * time.Millisecond):
		}
	}

	if _, closed := source.stats(); !closed {
		t.Error("source must be released after read failure")
	}
}
