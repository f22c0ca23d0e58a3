package registry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func registrySnapshot() []Registration {
	return []Registration{
		{LicensePlateNumber: "ABC123", Status: "approved", FullName: "Jane Doe", Make: "Toyota", Model: "Corolla"},
		{LicensePlateNumber: "DEF456", Status: "pending", FullName: "John Roe", Make: "Honda", Model: "Civic"},
	}
}

func newTestServer(t *testing.T, registrations []Registration) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/registrations", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(registrations)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_BaseURL(t *testing.T) {
	c := NewClient(WithBaseURL("http://registry:3000/"))
	if got := c.BaseURL(); got != "http://registry:3000" {
		t.Errorf("BaseURL: got %q, want trailing slash trimmed", got)
	}
}

func TestClient_Lookup_Approved(t *testing.T) {
	srv := newTestServer(t, registrySnapshot())
	c := NewClient(WithBaseURL(srv.URL))

	decision := c.Lookup(context.Background(), "ABC123")
	if !decision.Approved {
		t.Fatalf("expected approval, got denial: %s", decision.Reason)
	}
	if decision.Vehicle == nil {
		t.Fatal("approved decision missing vehicle info")
	}
	if decision.Vehicle.FullName != "Jane Doe" || decision.Vehicle.Make != "Toyota" || decision.Vehicle.Model != "Corolla" {
		t.Errorf("vehicle fields not echoed: %+v", decision.Vehicle)
	}
}

func TestClient_Lookup_NormalizedMatch(t *testing.T) {
	// Registry entries with punctuation must match normalized codes.
	srv := newTestServer(t, []Registration{
		{LicensePlateNumber: "ab-c 123", Status: "approved", FullName: "Jane Doe"},
	})
	c := NewClient(WithBaseURL(srv.URL))

	if decision := c.Lookup(context.Background(), "ABC123"); !decision.Approved {
		t.Errorf("expected normalized match to approve, got: %s", decision.Reason)
	}
}

func TestClient_Lookup_NotRegistered(t *testing.T) {
	srv := newTestServer(t, registrySnapshot())
	c := NewClient(WithBaseURL(srv.URL))

	decision := c.Lookup(context.Background(), "XYZ999")
	if decision.Approved {
		t.Fatal("expected denial for unknown plate")
	}
	if decision.Reason != ReasonNotRegistered {
		t.Errorf("reason: got %q, want %q", decision.Reason, ReasonNotRegistered)
	}
}

func TestClient_Lookup_PendingStatusDenied(t *testing.T) {
	srv := newTestServer(t, registrySnapshot())
	c := NewClient(WithBaseURL(srv.URL))

	if decision := c.Lookup(context.Background(), "DEF456"); decision.Approved {
		t.Error("expected denial for pending registration")
	}
}

func TestClient_Lookup_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	c := NewClient(WithBaseURL(srv.URL))

	decision := c.Lookup(context.Background(), "ABC123")
	if decision.Approved {
		t.Fatal("expected denial on server error")
	}
	if decision.Reason != "server error: 500" {
		t.Errorf("reason: got %q, want %q", decision.Reason, "server error: 500")
	}
}

func TestClient_Lookup_ConnectionRefused(t *testing.T) {
	// A closed server port must yield a denial, not a propagated error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	c := NewClient(WithBaseURL(srv.URL), WithTimeout(time.Second))

	decision := c.Lookup(context.Background(), "ABC123")
	if decision.Approved {
		t.Fatal("expected denial when registry is unreachable")
	}
	if !strings.Contains(decision.Reason, "connection error") {
		t.Errorf("reason %q does not mention connection error", decision.Reason)
	}
}

func TestClient_ReportAccess(t *testing.T) {
	var got accessLog
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/access-logs" {
			t.Errorf("path: got %q, want /api/access-logs", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
	}))
	defer srv.Close()
	c := NewClient(WithBaseURL(srv.URL))

	if !c.ReportAccess(context.Background(), "ABC123", AccessDenied, "Vehicle not registered or not approved") {
		t.Fatal("expected report to succeed")
	}
	if got.LicensePlate != "ABC123" || got.Status != "denied" {
		t.Errorf("body: %+v", got)
	}
}

func TestClient_ReportAccess_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	c := NewClient(WithBaseURL(srv.URL), WithTimeout(time.Second))

	if c.ReportAccess(context.Background(), "ABC123", AccessDenied, "details") {
		t.Error("expected report to fail against closed server")
	}
}

func TestClient_ReportRealtime(t *testing.T) {
	var got realtimeAccess
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/realtime-access" {
			t.Errorf("path: got %q, want /api/realtime-access", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
	}))
	defer srv.Close()
	c := NewClient(WithBaseURL(srv.URL))

	vehicle := &VehicleInfo{FullName: "Jane Doe", Make: "Toyota", Model: "Corolla"}
	if !c.ReportRealtime(context.Background(), "ABC123", AccessApproved, vehicle, 0.81) {
		t.Fatal("expected realtime report to succeed")
	}
	if got.Confidence != 0.81 || got.VehicleInfo == nil || got.VehicleInfo.FullName != "Jane Doe" {
		t.Errorf("body: %+v", got)
	}
	if _, err := time.Parse(time.RFC3339, got.Timestamp); err != nil {
		t.Errorf("timestamp %q is not RFC3339: %v", got.Timestamp, err)
	}
}
