package rental

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/lqphu369/vehicle-rental-service/internal/apperr"
)

// CurrencyVND is the currency code for all rental prices.
const CurrencyVND = "VND"

const rentalNumberChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Rental is the aggregate root for the rental domain.
type Rental struct {
	id           uuid.UUID
	rentalNumber string
	renterID     uuid.UUID
	vehicleID    uuid.UUID
	status       RentalStatus
	pickupDate   time.Time
	returnDate   time.Time
	quote        Quote
	currency     string
	notes        string

	approvedAt  *time.Time
	completedAt *time.Time
	cancelledAt *time.Time
	cancelNote  string

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// generateRentalNumber creates a rental number in the format "RT-XXXXXX".
func generateRentalNumber() (string, error) {
	result := make([]byte, 6)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(rentalNumberChars))))
		if err != nil {
			return "", fmt.Errorf("failed to generate rental number: %w", err)
		}
		result[i] = rentalNumberChars[n.Int64()]
	}
	return "RT-" + string(result), nil
}

// NewRental creates a new Rental aggregate with status=pending.
func NewRental(
	renterID, vehicleID uuid.UUID,
	pickupDate, returnDate time.Time,
	quote Quote,
	notes string,
) (*Rental, error) {
	if renterID == uuid.Nil {
		return nil, apperr.NewValidationError("renter ID is required")
	}
	if vehicleID == uuid.Nil {
		return nil, apperr.NewValidationError("vehicle ID is required")
	}
	if returnDate.Before(pickupDate) {
		return nil, apperr.NewValidationError("return date must not be before pickup date")
	}
	if quote.Total <= 0 {
		return nil, apperr.NewValidationError("rental total must be positive")
	}

	rentalNumber, err := generateRentalNumber()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Rental{
		id:           uuid.New(),
		rentalNumber: rentalNumber,
		renterID:     renterID,
		vehicleID:    vehicleID,
		status:       StatusPending,
		pickupDate:   pickupDate,
		returnDate:   returnDate,
		quote:        quote,
		currency:     CurrencyVND,
		notes:        notes,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructRental rebuilds a Rental from persistence data (no validation).
func ReconstructRental(
	id uuid.UUID,
	rentalNumber string,
	renterID, vehicleID uuid.UUID,
	status RentalStatus,
	pickupDate, returnDate time.Time,
	quote Quote,
	currency, notes string,
	approvedAt, completedAt, cancelledAt *time.Time,
	cancelNote string,
	version int64,
	createdAt, updatedAt time.Time,
) *Rental {
	return &Rental{
		id:           id,
		rentalNumber: rentalNumber,
		renterID:     renterID,
		vehicleID:    vehicleID,
		status:       status,
		pickupDate:   pickupDate,
		returnDate:   returnDate,
		quote:        quote,
		currency:     currency,
		notes:        notes,
		approvedAt:   approvedAt,
		completedAt:  completedAt,
		cancelledAt:  cancelledAt,
		cancelNote:   cancelNote,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ID returns the rental's unique identifier.
func (r *Rental) ID() uuid.UUID { return r.id }

// RentalNumber returns the human-readable rental number.
func (r *Rental) RentalNumber() string { return r.rentalNumber }

// RenterID returns the renting user's ID.
func (r *Rental) RenterID() uuid.UUID { return r.renterID }

// VehicleID returns the rented vehicle's ID.
func (r *Rental) VehicleID() uuid.UUID { return r.vehicleID }

// Status returns the current rental status.
func (r *Rental) Status() RentalStatus { return r.status }

// PickupDate returns the start of the rental period.
func (r *Rental) PickupDate() time.Time { return r.pickupDate }

// ReturnDate returns the end of the rental period.
func (r *Rental) ReturnDate() time.Time { return r.returnDate }

// PriceQuote returns the price breakdown agreed at booking time.
func (r *Rental) PriceQuote() Quote { return r.quote }

// Currency returns the currency code.
func (r *Rental) Currency() string { return r.currency }

// Notes returns any additional notes for the rental.
func (r *Rental) Notes() string { return r.notes }

// ApprovedAt returns the approval time, or nil.
func (r *Rental) ApprovedAt() *time.Time { return r.approvedAt }

// CompletedAt returns the completion time, or nil.
func (r *Rental) CompletedAt() *time.Time { return r.completedAt }

// CancelledAt returns the cancellation time, or nil.
func (r *Rental) CancelledAt() *time.Time { return r.cancelledAt }

// CancelNote returns the cancellation reason.
func (r *Rental) CancelNote() string { return r.cancelNote }

// Version returns the entity version for optimistic locking.
func (r *Rental) Version() int64 { return r.version }

// CreatedAt returns the creation timestamp.
func (r *Rental) CreatedAt() time.Time { return r.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (r *Rental) UpdatedAt() time.Time { return r.updatedAt }

// Approve transitions the rental from pending to approved.
func (r *Rental) Approve() error {
	if !r.status.CanTransitionTo(StatusApproved) {
		return apperr.NewInvalidStateError(string(r.status), string(StatusApproved))
	}
	now := time.Now().UTC()
	r.status = StatusApproved
	r.approvedAt = &now
	r.updatedAt = now
	return nil
}

// Complete transitions the rental from approved to completed when the vehicle
// is returned.
func (r *Rental) Complete() error {
	if !r.status.CanTransitionTo(StatusCompleted) {
		return apperr.NewInvalidStateError(string(r.status), string(StatusCompleted))
	}
	now := time.Now().UTC()
	r.status = StatusCompleted
	r.completedAt = &now
	r.updatedAt = now
	return nil
}

// Cancel transitions the rental to cancelled if it is not in a terminal state.
func (r *Rental) Cancel(reason string) error {
	if !r.status.CanBeCancelled() {
		return apperr.NewInvalidStateError(string(r.status), string(StatusCancelled))
	}
	now := time.Now().UTC()
	r.status = StatusCancelled
	r.cancelNote = reason
	r.cancelledAt = &now
	r.updatedAt = now
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (r *Rental) IncrementVersion() {
	r.version++
	r.updatedAt = time.Now().UTC()
}
