// Package registry talks to the remote vehicle registry: approval
// lookups plus best-effort access-log and dashboard notifications.
package registry

// StatusApproved is the registry status an entry must carry for the
// vehicle to be admitted.
const StatusApproved = "approved"

// Access statuses reported back to the registry.
const (
	AccessApproved = "approved"
	AccessDenied   = "denied"
)

// ReasonNotRegistered is the denial reason for plates with no approved
// registry entry.
const ReasonNotRegistered = "not registered or not approved"

// Registration is one entry of the remote registration list.
type Registration struct {
	LicensePlateNumber string `json:"licensePlateNumber"`
	Status             string `json:"status"`
	FullName           string `json:"fullName"`
	Make               string `json:"make"`
	Model              string `json:"model"`
}

// VehicleInfo is the owner/vehicle detail echoed on an approval.
type VehicleInfo struct {
	FullName string `json:"fullName"`
	Make     string `json:"make"`
	Model    string `json:"model"`
}

// Decision is the outcome of a registry lookup. It is immutable after
// creation; report failures never alter it.
type Decision struct {
	Plate    string       `json:"plate"`
	Approved bool         `json:"approved"`
	Vehicle  *VehicleInfo `json:"vehicle,omitempty"`
	Reason   string       `json:"reason,omitempty"`
}
