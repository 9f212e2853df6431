package rental

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MonthlyRevenue is one month's completed-rental revenue for admin analytics.
type MonthlyRevenue struct {
	Month   int   `json:"month"`
	Revenue int64 `json:"revenue"`
}

// RentalRepository defines the persistence contract for rental aggregates.
type RentalRepository interface {
	// FindByID retrieves a rental by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Rental, error)

	// FindByRenterID retrieves rentals belonging to a renter with pagination.
	FindByRenterID(ctx context.Context, renterID uuid.UUID, page, limit int) ([]*Rental, int64, error)

	// ListAll retrieves all rentals with pagination (admin).
	ListAll(ctx context.Context, page, limit int) ([]*Rental, int64, error)

	// CountByStatus returns rental counts grouped by status (admin).
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// MonthlyRevenue returns per-month completed-rental revenue for a year (admin).
	MonthlyRevenue(ctx context.Context, year int) ([]MonthlyRevenue, error)

	// ActiveForVehicle reports whether the vehicle has a pending or approved
	// rental overlapping [pickup, returnDate).
	ActiveForVehicle(ctx context.Context, vehicleID uuid.UUID, pickup, returnDate time.Time) (bool, error)

	// Save persists a new rental.
	Save(ctx context.Context, r *Rental) error

	// Update persists changes to an existing rental with optimistic locking.
	Update(ctx context.Context, r *Rental) error
}
