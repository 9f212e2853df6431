package vehicle

import "strings"

// VehicleStatus represents the operational state of a vehicle.
type VehicleStatus string

const (
	StatusAvailable   VehicleStatus = "available"
	StatusBooked      VehicleStatus = "booked"
	StatusInUse       VehicleStatus = "in_use"
	StatusMaintenance VehicleStatus = "maintenance"
)

// IsValid returns true if the status is a recognized vehicle status.
func (s VehicleStatus) IsValid() bool {
	switch s {
	case StatusAvailable, StatusBooked, StatusInUse, StatusMaintenance:
		return true
	}
	return false
}

// String returns the string representation of the status.
func (s VehicleStatus) String() string {
	return string(s)
}

// NormalizeStatus canonicalizes a raw status string for classification:
// lowercase, trimmed, underscores replaced with spaces. Unrecognized values
// are kept as-is; the classifier treats them as available.
func NormalizeStatus(raw string) string {
	return strings.ReplaceAll(strings.TrimSpace(strings.ToLower(raw)), "_", " ")
}

// MatchesFilter reports whether a vehicle with the given raw status passes the
// list filter. "all" matches everything, "available" matches only available
// vehicles, and "booked" also covers vehicles currently in use.
func MatchesFilter(rawStatus, filter string) bool {
	status := strings.TrimSpace(strings.ToLower(rawStatus))
	switch strings.TrimSpace(strings.ToLower(filter)) {
	case "", "all":
		return true
	case "available":
		return status == string(StatusAvailable)
	case "booked":
		return status == string(StatusBooked) || status == string(StatusInUse)
	default:
		return status == strings.TrimSpace(strings.ToLower(filter))
	}
}
