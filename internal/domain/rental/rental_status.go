package rental

import "fmt"

// RentalStatus represents the current state of a rental in its lifecycle.
type RentalStatus string

const (
	StatusPending   RentalStatus = "pending"
	StatusApproved  RentalStatus = "approved"
	StatusCompleted RentalStatus = "completed"
	StatusCancelled RentalStatus = "cancelled"
)

// validTransitions defines the state machine for rental status transitions.
var validTransitions = map[RentalStatus][]RentalStatus{
	StatusPending:   {StatusApproved, StatusCancelled},
	StatusApproved:  {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// IsValid returns true if the status is a recognized rental status.
func (s RentalStatus) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s RentalStatus) CanTransitionTo(target RentalStatus) bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s RentalStatus) IsTerminal() bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return true
	}
	return len(allowed) == 0
}

// CanBeCancelled returns true if the rental can be cancelled from this status.
func (s RentalStatus) CanBeCancelled() bool {
	return s.CanTransitionTo(StatusCancelled)
}

// String returns the string representation of the status.
func (s RentalStatus) String() string {
	return string(s)
}

// ParseRentalStatus converts a string to a RentalStatus, returning an error if invalid.
func ParseRentalStatus(s string) (RentalStatus, error) {
	status := RentalStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid rental status: %s", s)
	}
	return status, nil
}
