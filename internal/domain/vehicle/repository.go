package vehicle

import (
	"context"

	"github.com/google/uuid"
)

// ListOptions control filtering and ordering of vehicle listings.
type ListOptions struct {
	// Filter is "all", "available" or "booked" (see MatchesFilter).
	Filter string
	// VehicleType restricts the listing to one type when non-empty.
	VehicleType VehicleType
	// Sort is "price_asc", "price_desc" or "" for newest-first.
	Sort string
}

// VehicleRepository defines the persistence contract for vehicles.
type VehicleRepository interface {
	// FindByID retrieves a vehicle by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Vehicle, error)

	// List retrieves vehicles matching the given options.
	List(ctx context.Context, opts ListOptions) ([]*Vehicle, error)

	// ListPositioned retrieves vehicles that have coordinates, for the map.
	ListPositioned(ctx context.Context) ([]*Vehicle, error)

	// Save persists a new vehicle.
	Save(ctx context.Context, v *Vehicle) error

	// Update persists changes to an existing vehicle with optimistic locking.
	Update(ctx context.Context, v *Vehicle) error

	// Delete removes a vehicle.
	Delete(ctx context.Context, id uuid.UUID) error
}
