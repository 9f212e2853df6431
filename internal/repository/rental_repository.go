package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lqphu369/vehicle-rental-service/internal/apperr"
	rentalDomain "github.com/lqphu369/vehicle-rental-service/internal/domain/rental"
)

// RentalModel is the GORM model for the rentals table.
type RentalModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RentalNumber string          `gorm:"uniqueIndex;not null;size:20"`
	RenterID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	VehicleID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	Status       string          `gorm:"not null;size:20;index"`
	PickupDate   time.Time       `gorm:"not null"`
	ReturnDate   time.Time       `gorm:"not null"`
	PriceQuote   json.RawMessage `gorm:"type:jsonb;not null"`
	TotalPrice   int64           `gorm:"not null"`
	Currency     string          `gorm:"not null;size:3;default:'VND'"`
	Notes        string          `gorm:"size:1000"`
	ApprovedAt   *time.Time      `gorm:""`
	CompletedAt  *time.Time      `gorm:""`
	CancelledAt  *time.Time      `gorm:""`
	CancelNote   string          `gorm:"size:500"`
	Version      int64           `gorm:"not null;default:1"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (RentalModel) TableName() string {
	return "rentals"
}

// GormRentalRepository is the GORM-based implementation of RentalRepository.
type GormRentalRepository struct {
	db *gorm.DB
}

// NewGormRentalRepository creates a new GormRentalRepository.
func NewGormRentalRepository(db *gorm.DB) *GormRentalRepository {
	return &GormRentalRepository{db: db}
}

// FindByID retrieves a rental by its unique identifier.
func (r *GormRentalRepository) FindByID(ctx context.Context, id uuid.UUID) (*rentalDomain.Rental, error) {
	var model RentalModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFoundError("Rental", id.String())
		}
		return nil, fmt.Errorf("failed to find rental by ID: %w", err)
	}
	return toDomainRental(&model)
}

// FindByRenterID retrieves rentals belonging to a renter with pagination.
func (r *GormRentalRepository) FindByRenterID(ctx context.Context, renterID uuid.UUID, page, limit int) ([]*rentalDomain.Rental, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&RentalModel{}).Where("renter_id = ?", renterID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count renter rentals: %w", err)
	}

	var models []RentalModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("renter_id = ?", renterID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find renter rentals: %w", err)
	}

	rentals := make([]*rentalDomain.Rental, len(models))
	for i, m := range models {
		rt, err := toDomainRental(&m)
		if err != nil {
			return nil, 0, err
		}
		rentals[i] = rt
	}
	return rentals, total, nil
}

// ListAll retrieves all rentals with pagination (admin).
func (r *GormRentalRepository) ListAll(ctx context.Context, page, limit int) ([]*rentalDomain.Rental, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&RentalModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count rentals: %w", err)
	}

	var models []RentalModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list rentals: %w", err)
	}

	rentals := make([]*rentalDomain.Rental, len(models))
	for i, m := range models {
		rt, err := toDomainRental(&m)
		if err != nil {
			return nil, 0, err
		}
		rentals[i] = rt
	}
	return rentals, total, nil
}

// CountByStatus returns rental counts grouped by status (admin).
func (r *GormRentalRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&RentalModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// MonthlyRevenue returns per-month completed-rental revenue for a year (admin).
func (r *GormRentalRepository) MonthlyRevenue(ctx context.Context, year int) ([]rentalDomain.MonthlyRevenue, error) {
	type monthRevenue struct {
		Month   int
		Revenue int64
	}
	var results []monthRevenue
	if err := r.db.WithContext(ctx).Model(&RentalModel{}).
		Select("EXTRACT(MONTH FROM completed_at)::int as month, COALESCE(SUM(total_price), 0) as revenue").
		Where("status = ? AND EXTRACT(YEAR FROM completed_at) = ?", string(rentalDomain.StatusCompleted), year).
		Group("month").
		Order("month ASC").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to compute monthly revenue: %w", err)
	}

	revenues := make([]rentalDomain.MonthlyRevenue, len(results))
	for i, mr := range results {
		revenues[i] = rentalDomain.MonthlyRevenue{Month: mr.Month, Revenue: mr.Revenue}
	}
	return revenues, nil
}

// ActiveForVehicle reports whether the vehicle has a pending or approved
// rental overlapping [pickup, returnDate).
func (r *GormRentalRepository) ActiveForVehicle(ctx context.Context, vehicleID uuid.UUID, pickup, returnDate time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&RentalModel{}).
		Where("vehicle_id = ? AND status IN ?", vehicleID, []string{
			string(rentalDomain.StatusPending),
			string(rentalDomain.StatusApproved),
		}).
		Where("pickup_date < ? AND return_date > ?", returnDate, pickup).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check active rentals: %w", err)
	}
	return count > 0, nil
}

// Save persists a new rental.
func (r *GormRentalRepository) Save(ctx context.Context, rt *rentalDomain.Rental) error {
	model, err := toRentalModel(rt)
	if err != nil {
		return fmt.Errorf("failed to convert rental to model: %w", err)
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save rental: %w", err)
	}
	return nil
}

// Update persists changes to an existing rental with optimistic locking.
func (r *GormRentalRepository) Update(ctx context.Context, rt *rentalDomain.Rental) error {
	model, err := toRentalModel(rt)
	if err != nil {
		return fmt.Errorf("failed to convert rental to model: %w", err)
	}

	// Optimistic locking: only update if the version matches (current version - 1 since IncrementVersion was called)
	expectedVersion := rt.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&RentalModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"status":       model.Status,
			"pickup_date":  model.PickupDate,
			"return_date":  model.ReturnDate,
			"price_quote":  model.PriceQuote,
			"total_price":  model.TotalPrice,
			"currency":     model.Currency,
			"notes":        model.Notes,
			"approved_at":  model.ApprovedAt,
			"completed_at": model.CompletedAt,
			"cancelled_at": model.CancelledAt,
			"cancel_note":  model.CancelNote,
			"version":      model.Version,
			"updated_at":   model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update rental: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NewConflictError("rental was modified by another transaction")
	}
	return nil
}

// --- Conversion Helpers ---

func toRentalModel(rt *rentalDomain.Rental) (*RentalModel, error) {
	quoteJSON, err := json.Marshal(rt.PriceQuote())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal price quote: %w", err)
	}

	return &RentalModel{
		ID:           rt.ID(),
		RentalNumber: rt.RentalNumber(),
		RenterID:     rt.RenterID(),
		VehicleID:    rt.VehicleID(),
		Status:       string(rt.Status()),
		PickupDate:   rt.PickupDate(),
		ReturnDate:   rt.ReturnDate(),
		PriceQuote:   quoteJSON,
		TotalPrice:   rt.PriceQuote().Total,
		Currency:     rt.Currency(),
		Notes:        rt.Notes(),
		ApprovedAt:   rt.ApprovedAt(),
		CompletedAt:  rt.CompletedAt(),
		CancelledAt:  rt.CancelledAt(),
		CancelNote:   rt.CancelNote(),
		Version:      rt.Version(),
		CreatedAt:    rt.CreatedAt(),
		UpdatedAt:    rt.UpdatedAt(),
	}, nil
}

func toDomainRental(m *RentalModel) (*rentalDomain.Rental, error) {
	var quote rentalDomain.Quote
	if err := json.Unmarshal(m.PriceQuote, &quote); err != nil {
		return nil, fmt.Errorf("failed to unmarshal price quote: %w", err)
	}

	status, err := rentalDomain.ParseRentalStatus(m.Status)
	if err != nil {
		return nil, err
	}

	return rentalDomain.ReconstructRental(
		m.ID,
		m.RentalNumber,
		m.RenterID,
		m.VehicleID,
		status,
		m.PickupDate,
		m.ReturnDate,
		quote,
		m.Currency,
		m.Notes,
		m.ApprovedAt,
		m.CompletedAt,
		m.CancelledAt,
		m.CancelNote,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}
