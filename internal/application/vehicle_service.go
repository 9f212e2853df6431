package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	vehicleDomain "github.com/lqphu369/vehicle-rental-service/internal/domain/vehicle"
)

// CreateVehicleRequest holds the data needed to register a new vehicle.
type CreateVehicleRequest struct {
	Name         string     `json:"name" binding:"required"`
	LicensePlate string     `json:"license_plate" binding:"required"`
	OwnerID      *uuid.UUID `json:"owner_id"`
	VehicleType  string     `json:"vehicle_type" binding:"required"`
	PricePerDay  int64      `json:"price_per_day" binding:"required"`
	Lat          *float64   `json:"lat"`
	Lng          *float64   `json:"lng"`
	ImageURL     string     `json:"image_url"`
	Description  string     `json:"description"`
}

// VehicleDTO is the response representation of a vehicle.
type VehicleDTO struct {
	ID           uuid.UUID                  `json:"id"`
	Name         string                     `json:"name"`
	LicensePlate string                     `json:"license_plate"`
	OwnerID      *uuid.UUID                 `json:"owner_id,omitempty"`
	VehicleType  string                     `json:"vehicle_type"`
	Seats        int                        `json:"seats"`
	Fuel         string                     `json:"fuel"`
	PricePerDay  int64                      `json:"price_per_day"`
	Status       string                     `json:"status"`
	StatusConfig vehicleDomain.StatusConfig `json:"status_config"`
	Position     *vehicleDomain.Position    `json:"position,omitempty"`
	ImageURL     string                     `json:"image_url,omitempty"`
	Description  string                     `json:"description,omitempty"`
	Rating       float64                    `json:"rating"`
	TripCount    int                        `json:"trip_count"`
	Version      int64                      `json:"version"`
	CreatedAt    time.Time                  `json:"created_at"`
	UpdatedAt    time.Time                  `json:"updated_at"`
}

// VehicleService is the application service for the vehicle fleet.
type VehicleService struct {
	repo   vehicleDomain.VehicleRepository
	logger *zap.Logger
}

// NewVehicleService creates a new VehicleService.
func NewVehicleService(repo vehicleDomain.VehicleRepository, logger *zap.Logger) *VehicleService {
	return &VehicleService{repo: repo, logger: logger}
}

// ListVehicles returns vehicles matching the filter, type and sort options.
func (s *VehicleService) ListVehicles(ctx context.Context, opts vehicleDomain.ListOptions) ([]VehicleDTO, error) {
	vehicles, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}

	now := time.Now()
	dtos := make([]VehicleDTO, len(vehicles))
	for i, v := range vehicles {
		dtos[i] = toVehicleDTO(v, now)
	}
	return dtos, nil
}

// GetVehicle retrieves a single vehicle by ID.
func (s *VehicleService) GetVehicle(ctx context.Context, id uuid.UUID) (*VehicleDTO, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toVehicleDTO(v, time.Now())
	return &dto, nil
}

// CreateVehicle registers a new vehicle (admin).
func (s *VehicleService) CreateVehicle(ctx context.Context, req CreateVehicleRequest) (*VehicleDTO, error) {
	var position *vehicleDomain.Position
	if req.Lat != nil && req.Lng != nil {
		position = &vehicleDomain.Position{Lat: *req.Lat, Lng: *req.Lng}
	}

	v, err := vehicleDomain.NewVehicle(
		req.Name,
		req.LicensePlate,
		req.OwnerID,
		vehicleDomain.VehicleType(req.VehicleType),
		req.PricePerDay,
		position,
		req.ImageURL,
		req.Description,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to save vehicle: %w", err)
	}

	s.logger.Info("vehicle registered",
		zap.String("vehicle_id", v.ID().String()),
		zap.String("license_plate", v.LicensePlate()),
	)

	dto := toVehicleDTO(v, time.Now())
	return &dto, nil
}

// UpdateVehiclePosition moves a vehicle to a new location (admin).
func (s *VehicleService) UpdateVehiclePosition(ctx context.Context, id uuid.UUID, lat, lng float64) (*VehicleDTO, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	v.MoveTo(lat, lng)
	v.IncrementVersion()
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}

	dto := toVehicleDTO(v, time.Now())
	return &dto, nil
}

// SetVehicleStatus moves a vehicle to the given status (admin), for example
// into or out of maintenance.
func (s *VehicleService) SetVehicleStatus(ctx context.Context, id uuid.UUID, status string) (*VehicleDTO, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := v.SetStatus(vehicleDomain.VehicleStatus(status)); err != nil {
		return nil, err
	}

	v.IncrementVersion()
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}

	dto := toVehicleDTO(v, time.Now())
	return &dto, nil
}

// --- Helpers ---

func toVehicleDTO(v *vehicleDomain.Vehicle, now time.Time) VehicleDTO {
	return VehicleDTO{
		ID:           v.ID(),
		Name:         v.Name(),
		LicensePlate: v.LicensePlate(),
		OwnerID:      v.OwnerID(),
		VehicleType:  string(v.Type()),
		Seats:        v.Seats(),
		Fuel:         v.FuelDisplay(),
		PricePerDay:  v.PricePerDay(),
		Status:       string(v.Status()),
		StatusConfig: vehicleDomain.Classify(string(v.Status()), now),
		Position:     v.Position(),
		ImageURL:     v.ImageURL(),
		Description:  v.Description(),
		Rating:       v.Rating(),
		TripCount:    v.TripCount(),
		Version:      v.Version(),
		CreatedAt:    v.CreatedAt(),
		UpdatedAt:    v.UpdatedAt(),
	}
}
