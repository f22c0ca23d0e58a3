package ocr

import (
	"sync"

	"gocv.io/x/gocv"
)

// Mock implements Recognizer for testing.
type Mock struct {
	// ReadFunc is called when Read is invoked.
	ReadFunc func(region gocv.Mat) ([]Result, error)

	// CloseFunc is called when Close is invoked.
	CloseFunc func() error

	mu    sync.Mutex
	reads int
}

// NewMock creates a mock recognizer that returns the given results.
func NewMock(results ...Result) *Mock {
	return &Mock{
		ReadFunc: func(region gocv.Mat) ([]Result, error) {
			return results, nil
		},
	}
}

// Read calls ReadFunc and records the call.
func (m *Mock) Read(region gocv.Mat) ([]Result, error) {
	m.mu.Lock()
	m.reads++
	m.mu.Unlock()
	if m.ReadFunc != nil {
		return m.ReadFunc(region)
	}
	return nil, nil
}

// Close calls CloseFunc if set.
func (m *Mock) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Reads returns how many times Read was called.
func (m *Mock) Reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}
