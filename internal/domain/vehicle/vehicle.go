package vehicle

import (
	"time"

	"github.com/google/uuid"

	"github.com/lqphu369/vehicle-rental-service/internal/apperr"
)

// VehicleType categorizes a rentable vehicle.
type VehicleType string

const (
	TypeBike VehicleType = "bike"
	TypeCar4 VehicleType = "car_4"
	TypeCar7 VehicleType = "car_7"
)

// IsValid returns true if the vehicle type is recognized.
func (t VehicleType) IsValid() bool {
	switch t {
	case TypeBike, TypeCar4, TypeCar7:
		return true
	}
	return false
}

// Position is a geographic coordinate pair.
type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Vehicle is the aggregate root for the vehicle fleet.
type Vehicle struct {
	id           uuid.UUID
	name         string
	licensePlate string
	ownerID      *uuid.UUID
	vehicleType  VehicleType
	pricePerDay  int64
	status       VehicleStatus
	position     *Position
	imageURL     string
	description  string
	rating       float64
	tripCount    int
	version      int64
	createdAt    time.Time
	updatedAt    time.Time
}

// NewVehicle creates a new Vehicle with status=available.
func NewVehicle(
	name, licensePlate string,
	ownerID *uuid.UUID,
	vehicleType VehicleType,
	pricePerDay int64,
	position *Position,
	imageURL, description string,
) (*Vehicle, error) {
	if name == "" {
		return nil, apperr.NewValidationError("vehicle name is required")
	}
	if licensePlate == "" {
		return nil, apperr.NewValidationError("license plate is required")
	}
	if !vehicleType.IsValid() {
		return nil, apperr.NewValidationError("invalid vehicle type: " + string(vehicleType))
	}
	if pricePerDay <= 0 {
		return nil, apperr.NewValidationError("price per day must be positive")
	}

	now := time.Now().UTC()
	return &Vehicle{
		id:           uuid.New(),
		name:         name,
		licensePlate: licensePlate,
		ownerID:      ownerID,
		vehicleType:  vehicleType,
		pricePerDay:  pricePerDay,
		status:       StatusAvailable,
		position:     position,
		imageURL:     imageURL,
		description:  description,
		rating:       5.0,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructVehicle rebuilds a Vehicle from persistence data (no validation).
func ReconstructVehicle(
	id uuid.UUID,
	name, licensePlate string,
	ownerID *uuid.UUID,
	vehicleType VehicleType,
	pricePerDay int64,
	status VehicleStatus,
	position *Position,
	imageURL, description string,
	rating float64,
	tripCount int,
	version int64,
	createdAt, updatedAt time.Time,
) *Vehicle {
	return &Vehicle{
		id:           id,
		name:         name,
		licensePlate: licensePlate,
		ownerID:      ownerID,
		vehicleType:  vehicleType,
		pricePerDay:  pricePerDay,
		status:       status,
		position:     position,
		imageURL:     imageURL,
		description:  description,
		rating:       rating,
		tripCount:    tripCount,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ID returns the vehicle's unique identifier.
func (v *Vehicle) ID() uuid.UUID { return v.id }

// Name returns the display name.
func (v *Vehicle) Name() string { return v.name }

// LicensePlate returns the registration plate.
func (v *Vehicle) LicensePlate() string { return v.licensePlate }

// OwnerID returns the owning user's ID, or nil for fleet vehicles.
func (v *Vehicle) OwnerID() *uuid.UUID { return v.ownerID }

// Type returns the vehicle type.
func (v *Vehicle) Type() VehicleType { return v.vehicleType }

// PricePerDay returns the daily rental price in whole currency units.
func (v *Vehicle) PricePerDay() int64 { return v.pricePerDay }

// Status returns the current vehicle status.
func (v *Vehicle) Status() VehicleStatus { return v.status }

// Position returns the vehicle's location, or nil when unknown.
func (v *Vehicle) Position() *Position { return v.position }

// ImageURL returns the primary image URL.
func (v *Vehicle) ImageURL() string { return v.imageURL }

// Description returns the free-text description.
func (v *Vehicle) Description() string { return v.description }

// Rating returns the average review rating.
func (v *Vehicle) Rating() float64 { return v.rating }

// TripCount returns the number of completed trips.
func (v *Vehicle) TripCount() int { return v.tripCount }

// Version returns the entity version for optimistic locking.
func (v *Vehicle) Version() int64 { return v.version }

// CreatedAt returns the creation timestamp.
func (v *Vehicle) CreatedAt() time.Time { return v.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (v *Vehicle) UpdatedAt() time.Time { return v.updatedAt }

// Seats derives the seat count from the vehicle type.
func (v *Vehicle) Seats() int {
	switch v.vehicleType {
	case TypeCar7:
		return 7
	case TypeCar4:
		return 4
	default:
		return 2
	}
}

// FuelDisplay returns the fuel label shown in vehicle listings.
func (v *Vehicle) FuelDisplay() string {
	if v.vehicleType == TypeBike {
		return "Điện/Xăng"
	}
	return "Xăng"
}

// SetStatus moves the vehicle to the given status.
func (v *Vehicle) SetStatus(status VehicleStatus) error {
	if !status.IsValid() {
		return apperr.NewValidationError("invalid vehicle status: " + string(status))
	}
	v.status = status
	v.updatedAt = time.Now().UTC()
	return nil
}

// Release marks the vehicle available again after a rental ends.
func (v *Vehicle) Release() {
	v.status = StatusAvailable
	v.updatedAt = time.Now().UTC()
}

// MoveTo updates the vehicle's location.
func (v *Vehicle) MoveTo(lat, lng float64) {
	v.position = &Position{Lat: lat, Lng: lng}
	v.updatedAt = time.Now().UTC()
}

// RecordTrip bumps the trip counter and folds a new rating into the average.
func (v *Vehicle) RecordTrip(rating float64) {
	total := v.rating*float64(v.tripCount) + rating
	v.tripCount++
	v.rating = total / float64(v.tripCount)
	v.updatedAt = time.Now().UTC()
}

// IncrementVersion bumps the version for optimistic locking.
func (v *Vehicle) IncrementVersion() {
	v.version++
	v.updatedAt = time.Now().UTC()
}
