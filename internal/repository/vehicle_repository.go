package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lqphu369/vehicle-rental-service/internal/apperr"
	vehicleDomain "github.com/lqphu369/vehicle-rental-service/internal/domain/vehicle"
)

// VehicleModel is the GORM model for the vehicles table.
type VehicleModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name         string     `gorm:"type:varchar(200);not null"`
	LicensePlate string     `gorm:"uniqueIndex;not null;size:20"`
	OwnerID      *uuid.UUID `gorm:"type:uuid;index"`
	VehicleType  string     `gorm:"not null;size:20;index"`
	PricePerDay  int64      `gorm:"not null"`
	Status       string     `gorm:"not null;size:20;index;default:'available'"`
	Latitude     *float64   `gorm:"type:decimal(10,7)"`
	Longitude    *float64   `gorm:"type:decimal(10,7)"`
	ImageURL     string     `gorm:"type:text"`
	Description  string     `gorm:"type:text"`
	Rating       float64    `gorm:"type:decimal(3,2);not null;default:5.0"`
	TripCount    int        `gorm:"not null;default:0"`
	Version      int64      `gorm:"not null;default:1"`
	CreatedAt    time.Time  `gorm:"not null"`
	UpdatedAt    time.Time  `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (VehicleModel) TableName() string {
	return "vehicles"
}

// GormVehicleRepository is the GORM-based implementation of VehicleRepository.
type GormVehicleRepository struct {
	db *gorm.DB
}

// NewGormVehicleRepository creates a new GormVehicleRepository.
func NewGormVehicleRepository(db *gorm.DB) *GormVehicleRepository {
	return &GormVehicleRepository{db: db}
}

// FindByID retrieves a vehicle by its unique identifier.
func (r *GormVehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*vehicleDomain.Vehicle, error) {
	var model VehicleModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFoundError("Vehicle", id.String())
		}
		return nil, fmt.Errorf("failed to find vehicle by ID: %w", err)
	}
	return toDomainVehicle(&model), nil
}

// List retrieves vehicles matching the given options. Note the "booked" filter
// also covers vehicles that are in use.
func (r *GormVehicleRepository) List(ctx context.Context, opts vehicleDomain.ListOptions) ([]*vehicleDomain.Vehicle, error) {
	query := r.db.WithContext(ctx).Model(&VehicleModel{})

	switch opts.Filter {
	case "", "all":
	case "available":
		query = query.Where("status = ?", string(vehicleDomain.StatusAvailable))
	case "booked":
		query = query.Where("status IN ?", []string{
			string(vehicleDomain.StatusBooked),
			string(vehicleDomain.StatusInUse),
		})
	default:
		query = query.Where("status = ?", opts.Filter)
	}

	if opts.VehicleType != "" {
		query = query.Where("vehicle_type = ?", string(opts.VehicleType))
	}

	switch opts.Sort {
	case "price_asc":
		query = query.Order("price_per_day ASC")
	case "price_desc":
		query = query.Order("price_per_day DESC")
	default:
		query = query.Order("created_at DESC")
	}

	var models []VehicleModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}

	vehicles := make([]*vehicleDomain.Vehicle, len(models))
	for i, m := range models {
		vehicles[i] = toDomainVehicle(&m)
	}
	return vehicles, nil
}

// ListPositioned retrieves vehicles that have coordinates, for the map.
func (r *GormVehicleRepository) ListPositioned(ctx context.Context) ([]*vehicleDomain.Vehicle, error) {
	var models []VehicleModel
	if err := r.db.WithContext(ctx).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list positioned vehicles: %w", err)
	}

	vehicles := make([]*vehicleDomain.Vehicle, len(models))
	for i, m := range models {
		vehicles[i] = toDomainVehicle(&m)
	}
	return vehicles, nil
}

// Save persists a new vehicle.
func (r *GormVehicleRepository) Save(ctx context.Context, v *vehicleDomain.Vehicle) error {
	model := toVehicleModel(v)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save vehicle: %w", err)
	}
	return nil
}

// Update persists changes to an existing vehicle with optimistic locking.
func (r *GormVehicleRepository) Update(ctx context.Context, v *vehicleDomain.Vehicle) error {
	model := toVehicleModel(v)

	// Optimistic locking: only update if the version matches (current version - 1 since IncrementVersion was called)
	expectedVersion := v.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&VehicleModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"name":          model.Name,
			"license_plate": model.LicensePlate,
			"owner_id":      model.OwnerID,
			"vehicle_type":  model.VehicleType,
			"price_per_day": model.PricePerDay,
			"status":        model.Status,
			"latitude":      model.Latitude,
			"longitude":     model.Longitude,
			"image_url":     model.ImageURL,
			"description":   model.Description,
			"rating":        model.Rating,
			"trip_count":    model.TripCount,
			"version":       model.Version,
			"updated_at":    model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update vehicle: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NewConflictError("vehicle was modified by another transaction")
	}
	return nil
}

// Delete removes a vehicle.
func (r *GormVehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&VehicleModel{}).Error
}

// --- Conversion Helpers ---

func toVehicleModel(v *vehicleDomain.Vehicle) *VehicleModel {
	var lat, lng *float64
	if pos := v.Position(); pos != nil {
		latV, lngV := pos.Lat, pos.Lng
		lat, lng = &latV, &lngV
	}

	return &VehicleModel{
		ID:           v.ID(),
		Name:         v.Name(),
		LicensePlate: v.LicensePlate(),
		OwnerID:      v.OwnerID(),
		VehicleType:  string(v.Type()),
		PricePerDay:  v.PricePerDay(),
		Status:       string(v.Status()),
		Latitude:     lat,
		Longitude:    lng,
		ImageURL:     v.ImageURL(),
		Description:  v.Description(),
		Rating:       v.Rating(),
		TripCount:    v.TripCount(),
		Version:      v.Version(),
		CreatedAt:    v.CreatedAt(),
		UpdatedAt:    v.UpdatedAt(),
	}
}

func toDomainVehicle(m *VehicleModel) *vehicleDomain.Vehicle {
	var position *vehicleDomain.Position
	if m.Latitude != nil && m.Longitude != nil {
		position = &vehicleDomain.Position{Lat: *m.Latitude, Lng: *m.Longitude}
	}

	return vehicleDomain.ReconstructVehicle(
		m.ID,
		m.Name,
		m.LicensePlate,
		m.OwnerID,
		vehicleDomain.VehicleType(m.VehicleType),
		m.PricePerDay,
		vehicleDomain.VehicleStatus(m.Status),
		position,
		m.ImageURL,
		m.Description,
		m.Rating,
		m.TripCount,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
