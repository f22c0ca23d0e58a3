package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bwalyaChanda3/vehicle-access-system/internal/httpc"
	"github.com/bwalyaChanda3/vehicle-access-system/pkg/plate"
)

// Client is the HTTP registry client. All calls are bounded by the
// configured timeout and never return transport failures as Go errors
// past the lookup boundary: a failed lookup is a Denied decision, a
// failed report is a false success flag.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a registry client.
func NewClient(opts ...Option) *Client {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	hc := cfg.HTTPClient
	if hc == nil {
		hc = httpc.NewClient(cfg.Timeout)
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		http:    hc,
		logger:  cfg.Logger.With("component", "registry.client"),
	}
}

// BaseURL returns the registry root this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Lookup queries the full registration list and matches the plate code
// locally: normalized-code equality plus status "approved", first match
// wins. Transport and server failures become Denied decisions with a
// descriptive reason; the lookup always completes.
func (c *Client) Lookup(ctx context.Context, code string) Decision {
	normalized := plate.Normalize(code)
	denied := func(reason string) Decision {
		return Decision{Plate: code, Approved: false, Reason: reason}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/registrations", nil)
	if err != nil {
		return denied("connection error: " + err.Error())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return denied("connection error: " + err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return denied(fmt.Sprintf("server error: %d", resp.StatusCode))
	}

	var registrations []Registration
	if err := json.NewDecoder(resp.Body).Decode(&registrations); err != nil {
		return denied("server error: invalid response")
	}

	for _, reg := range registrations {
		if plate.Normalize(reg.LicensePlateNumber) == normalized && reg.Status == StatusApproved {
			return Decision{
				Plate:    code,
				Approved: true,
				Vehicle: &VehicleInfo{
					FullName: reg.FullName,
					Make:     reg.Make,
					Model:    reg.Model,
				},
			}
		}
	}

	return denied(ReasonNotRegistered)
}

// accessLog is the POST /api/access-logs request body.
type accessLog struct {
	LicensePlate string `json:"licensePlate"`
	Status       string `json:"status"`
	Details      string `json:"details"`
}

// ReportAccess logs an access attempt. Best-effort: a failure is
// logged locally and reported via the return value, and must never
// alter the decision already made.
func (c *Client) ReportAccess(ctx context.Context, code, status, details string) bool {
	ok := c.post(ctx, "/api/access-logs", accessLog{
		LicensePlate: code,
		Status:       status,
		Details:      details,
	})
	if !ok {
		c.logger.Warn("access log not delivered", "plate", code, "status", status)
	}
	return ok
}

// realtimeAccess is the POST /api/realtime-access request body.
type realtimeAccess struct {
	LicensePlate string       `json:"licensePlate"`
	Status       string       `json:"status"`
	VehicleInfo  *VehicleInfo `json:"vehicleInfo"`
	Timestamp    string       `json:"timestamp"`
	Confidence   float64      `json:"confidence"`
}

// ReportRealtime pushes a live notification for the dashboard.
// Best-effort: delivery failure is logged, not surfaced.
func (c *Client) ReportRealtime(ctx context.Context, code, status string, vehicle *VehicleInfo, confidence float64) bool {
	ok := c.post(ctx, "/api/realtime-access", realtimeAccess{
		LicensePlate: code,
		Status:       status,
		VehicleInfo:  vehicle,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		Confidence:   confidence,
	})
	if !ok {
		c.logger.Warn("realtime notification not delivered", "plate", code, "status", status)
	}
	return ok
}

// post sends a JSON body and reports whether the server accepted it.
func (c *Client) post(ctx context.Context, path string, body any) bool {
	payload, err := json.Marshal(body)
	if err != nil {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("registry post failed", "path", path, "error", err)
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == http.StatusOK
}
