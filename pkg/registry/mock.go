package registry

import (
	"context"
	"sync"
)

// AccessReport records one ReportAccess invocation.
type AccessReport struct {
	Plate   string
	Status  string
	Details string
}

// RealtimeReport records one ReportRealtime invocation.
type RealtimeReport struct {
	Plate      string
	Status     string
	Vehicle    *VehicleInfo
	Confidence float64
}

// Mock implements the registry operations for testing.
type Mock struct {
	// LookupFunc is called when Lookup is invoked.
	LookupFunc func(ctx context.Context, code string) Decision

	// ReportAccessFunc is called when ReportAccess is invoked.
	ReportAccessFunc func(ctx context.Context, code, status, details string) bool

	// ReportRealtimeFunc is called when ReportRealtime is invoked.
	ReportRealtimeFunc func(ctx context.Context, code, status string, vehicle *VehicleInfo, confidence float64) bool

	mu              sync.Mutex
	lookups         []string
	accessReports   []AccessReport
	realtimeReports []RealtimeReport
}

// NewMock creates a mock registry that denies everything.
func NewMock() *Mock {
	return &Mock{
		LookupFunc: func(ctx context.Context, code string) Decision {
			return Decision{Plate: code, Approved: false, Reason: ReasonNotRegistered}
		},
	}
}

// Lookup calls LookupFunc and records the call.
func (m *Mock) Lookup(ctx context.Context, code string) Decision {
	m.mu.Lock()
	m.lookups = append(m.lookups, code)
	m.mu.Unlock()
	if m.LookupFunc != nil {
		return m.LookupFunc(ctx, code)
	}
	return Decision{Plate: code, Approved: false, Reason: ReasonNotRegistered}
}

// ReportAccess records the call and returns true unless overridden.
func (m *Mock) ReportAccess(ctx context.Context, code, status, details string) bool {
	m.mu.Lock()
	m.accessReports = append(m.accessReports, AccessReport{Plate: code, Status: status, Details: details})
	m.mu.Unlock()
	if m.ReportAccessFunc != nil {
		return m.ReportAccessFunc(ctx, code, status, details)
	}
	return true
}

// ReportRealtime records the call and returns true unless overridden.
func (m *Mock) ReportRealtime(ctx context.Context, code, status string, vehicle *VehicleInfo, confidence float64) bool {
	m.mu.Lock()
	m.realtimeReports = append(m.realtimeReports, RealtimeReport{
		Plate: code, Status: status, Vehicle: vehicle, Confidence: confidence,
	})
	m.mu.Unlock()
	if m.ReportRealtimeFunc != nil {
		return m.ReportRealtimeFunc(ctx, code, status, vehicle, confidence)
	}
	return true
}

// Lookups returns the recorded lookup codes.
func (m *Mock) Lookups() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.lookups...)
}

// AccessReports returns the recorded access log calls.
func (m *Mock) AccessReports() []AccessReport {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]AccessReport(nil), m.accessReports...)
}

// RealtimeReports returns the recorded realtime notification calls.
func (m *Mock) RealtimeReports() []RealtimeReport {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RealtimeReport(nil), m.realtimeReports...)
}
