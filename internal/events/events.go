package events

import (
	"time"

	"github.com/google/uuid"
)

// Kafka topics used by the service.
const (
	TopicRentalEvents  = "rental.events"
	TopicPaymentEvents = "payment.events"
)

// Rental event types published to TopicRentalEvents.
const (
	RentalRequested = "rental.requested"
	RentalApproved  = "rental.approved"
	RentalCompleted = "rental.completed"
	RentalCancelled = "rental.cancelled"
)

// Payment event types consumed from TopicPaymentEvents.
const (
	PaymentConfirmed = "payment.confirmed"
)

// RentalRequestedEvent is published when a renter creates a rental.
type RentalRequestedEvent struct {
	RentalID     uuid.UUID `json:"rental_id"`
	RentalNumber string    `json:"rental_number"`
	RenterID     uuid.UUID `json:"renter_id"`
	VehicleID    uuid.UUID `json:"vehicle_id"`
	VehicleName  string    `json:"vehicle_name"`
	PickupDate   time.Time `json:"pickup_date"`
	ReturnDate   time.Time `json:"return_date"`
	TotalPrice   int64     `json:"total_price"`
	Currency     string    `json:"currency"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// RentalApprovedEvent is published when an admin approves a rental.
type RentalApprovedEvent struct {
	RentalID     uuid.UUID `json:"rental_id"`
	RentalNumber string    `json:"rental_number"`
	RenterID     uuid.UUID `json:"renter_id"`
	VehicleID    uuid.UUID `json:"vehicle_id"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// RentalCompletedEvent is published when a vehicle is returned.
type RentalCompletedEvent struct {
	RentalID     uuid.UUID `json:"rental_id"`
	RentalNumber string    `json:"rental_number"`
	RenterID     uuid.UUID `json:"renter_id"`
	VehicleID    uuid.UUID `json:"vehicle_id"`
	TotalPrice   int64     `json:"total_price"`
	Currency     string    `json:"currency"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// RentalCancelledEvent is published when a rental is cancelled.
type RentalCancelledEvent struct {
	RentalID     uuid.UUID `json:"rental_id"`
	RentalNumber string    `json:"rental_number"`
	CancelledBy  uuid.UUID `json:"cancelled_by"`
	Reason       string    `json:"reason"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// PaymentConfirmedEvent is consumed from the payment service; a confirmed
// payment approves the rental.
type PaymentConfirmedEvent struct {
	PaymentID  uuid.UUID `json:"payment_id"`
	RentalID   uuid.UUID `json:"rental_id"`
	Amount     int64     `json:"amount"`
	Currency   string    `json:"currency"`
	OccurredAt time.Time `json:"occurred_at"`
}
