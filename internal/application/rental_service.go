package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lqphu369/vehicle-rental-service/internal/apperr"
	"github.com/lqphu369/vehicle-rental-service/internal/auth"
	rentalDomain "github.com/lqphu369/vehicle-rental-service/internal/domain/rental"
	vehicleDomain "github.com/lqphu369/vehicle-rental-service/internal/domain/vehicle"
	"github.com/lqphu369/vehicle-rental-service/internal/events"
)

const eventSource = "vehicle-rental-service"

// CreateRentalRequest holds the data needed to create a new rental.
type CreateRentalRequest struct {
	VehicleID  uuid.UUID `json:"vehicle_id" binding:"required"`
	PickupDate time.Time `json:"pickup_date" binding:"required"`
	ReturnDate time.Time `json:"return_date" binding:"required"`
	Notes      string    `json:"notes"`
}

// QuoteRentalRequest is the price preview input.
type QuoteRentalRequest struct {
	VehicleID  uuid.UUID `json:"vehicle_id" binding:"required"`
	PickupDate time.Time `json:"pickup_date" binding:"required"`
	ReturnDate time.Time `json:"return_date" binding:"required"`
}

// RentalDTO is the response representation of a rental.
type RentalDTO struct {
	ID           uuid.UUID          `json:"id"`
	RentalNumber string             `json:"rental_number"`
	RenterID     uuid.UUID          `json:"renter_id"`
	VehicleID    uuid.UUID          `json:"vehicle_id"`
	Status       string             `json:"status"`
	PickupDate   time.Time          `json:"pickup_date"`
	ReturnDate   time.Time          `json:"return_date"`
	Quote        rentalDomain.Quote `json:"quote"`
	Currency     string             `json:"currency"`
	Notes        string             `json:"notes,omitempty"`
	ApprovedAt   *time.Time         `json:"approved_at,omitempty"`
	CompletedAt  *time.Time         `json:"completed_at,omitempty"`
	CancelledAt  *time.Time         `json:"cancelled_at,omitempty"`
	CancelNote   string             `json:"cancel_note,omitempty"`
	Version      int64              `json:"version"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// ReturnRentalRequest is the vehicle return input. Rating optionally scores
// the finished trip, folded into the vehicle's average.
type ReturnRentalRequest struct {
	Rating float64 `json:"rating"`
}

// RentalService is the application service orchestrating rental use cases.
type RentalService struct {
	rentals  rentalDomain.RentalRepository
	vehicles vehicleDomain.VehicleRepository
	pricing  rentalDomain.PricingStrategy
	producer *events.Producer
	logger   *zap.Logger
}

// NewRentalService creates a new RentalService.
func NewRentalService(
	rentals rentalDomain.RentalRepository,
	vehicles vehicleDomain.VehicleRepository,
	pricing rentalDomain.PricingStrategy,
	producer *events.Producer,
	logger *zap.Logger,
) *RentalService {
	return &RentalService{
		rentals:  rentals,
		vehicles: vehicles,
		pricing:  pricing,
		producer: producer,
		logger:   logger,
	}
}

// QuoteRental previews the price for renting a vehicle over a date range.
func (s *RentalService) QuoteRental(ctx context.Context, req QuoteRentalRequest) (*rentalDomain.Quote, error) {
	v, err := s.vehicles.FindByID(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}

	quote, err := s.pricing.Quote(v.PricePerDay(), req.PickupDate, req.ReturnDate)
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// CreateRental creates a pending rental for the given renter. The vehicle must
// be rentable and free of overlapping pending or approved rentals.
func (s *RentalService) CreateRental(ctx context.Context, renterID uuid.UUID, req CreateRentalRequest) (*RentalDTO, error) {
	v, err := s.vehicles.FindByID(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}

	if v.Status() == vehicleDomain.StatusMaintenance {
		return nil, apperr.NewValidationError("vehicle is under maintenance")
	}

	overlapping, err := s.rentals.ActiveForVehicle(ctx, req.VehicleID, req.PickupDate, req.ReturnDate)
	if err != nil {
		return nil, fmt.Errorf("failed to check vehicle availability: %w", err)
	}
	if overlapping {
		return nil, apperr.NewConflictError("vehicle is already rented for the requested dates")
	}

	quote, err := s.pricing.Quote(v.PricePerDay(), req.PickupDate, req.ReturnDate)
	if err != nil {
		return nil, err
	}

	rt, err := rentalDomain.NewRental(renterID, req.VehicleID, req.PickupDate, req.ReturnDate, quote, req.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.rentals.Save(ctx, rt); err != nil {
		return nil, fmt.Errorf("failed to save rental: %w", err)
	}

	evt := events.RentalRequestedEvent{
		RentalID:     rt.ID(),
		RentalNumber: rt.RentalNumber(),
		RenterID:     rt.RenterID(),
		VehicleID:    rt.VehicleID(),
		VehicleName:  v.Name(),
		PickupDate:   rt.PickupDate(),
		ReturnDate:   rt.ReturnDate(),
		TotalPrice:   quote.Total,
		Currency:     rt.Currency(),
		OccurredAt:   time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicRentalEvents, events.RentalRequested, evt)

	result := toRentalDTO(rt)
	return &result, nil
}

// ApproveRental transitions a pending rental to approved and books the
// vehicle. Called by admins and by the payment event consumer.
func (s *RentalService) ApproveRental(ctx context.Context, rentalID uuid.UUID) error {
	rt, err := s.rentals.FindByID(ctx, rentalID)
	if err != nil {
		return err
	}

	if err := rt.Approve(); err != nil {
		return err
	}

	rt.IncrementVersion()
	if err := s.rentals.Update(ctx, rt); err != nil {
		return err
	}

	// Booking the vehicle is best-effort: a stale vehicle row must not undo
	// the approval.
	if v, err := s.vehicles.FindByID(ctx, rt.VehicleID()); err == nil {
		if err := v.SetStatus(vehicleDomain.StatusBooked); err == nil {
			v.IncrementVersion()
			if err := s.vehicles.Update(ctx, v); err != nil {
				s.logger.Warn("failed to mark vehicle as booked",
					zap.String("vehicle_id", rt.VehicleID().String()),
					zap.Error(err),
				)
			}
		}
	}

	evt := events.RentalApprovedEvent{
		RentalID:     rt.ID(),
		RentalNumber: rt.RentalNumber(),
		RenterID:     rt.RenterID(),
		VehicleID:    rt.VehicleID(),
		OccurredAt:   time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicRentalEvents, events.RentalApproved, evt)

	return nil
}

// ReturnRental completes an approved rental when the renter returns the
// vehicle. The vehicle becomes available again and an optional rating is
// recorded against it.
func (s *RentalService) ReturnRental(ctx context.Context, rentalID, renterID uuid.UUID, req ReturnRentalRequest) (*RentalDTO, error) {
	rt, err := s.rentals.FindByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}

	if rt.RenterID() != renterID {
		return nil, apperr.NewForbiddenError("rental does not belong to this user")
	}

	if err := rt.Complete(); err != nil {
		return nil, err
	}

	rt.IncrementVersion()
	if err := s.rentals.Update(ctx, rt); err != nil {
		return nil, err
	}

	if v, err := s.vehicles.FindByID(ctx, rt.VehicleID()); err == nil {
		v.Release()
		if req.Rating > 0 {
			v.RecordTrip(req.Rating)
		}
		v.IncrementVersion()
		if err := s.vehicles.Update(ctx, v); err != nil {
			s.logger.Warn("failed to release vehicle after return",
				zap.String("vehicle_id", rt.VehicleID().String()),
				zap.Error(err),
			)
		}
	}

	evt := events.RentalCompletedEvent{
		RentalID:     rt.ID(),
		RentalNumber: rt.RentalNumber(),
		RenterID:     rt.RenterID(),
		VehicleID:    rt.VehicleID(),
		TotalPrice:   rt.PriceQuote().Total,
		Currency:     rt.Currency(),
		OccurredAt:   time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicRentalEvents, events.RentalCompleted, evt)

	result := toRentalDTO(rt)
	return &result, nil
}

// CancelRental cancels a rental that is not yet in a terminal state. Renters
// may cancel their own rentals; admins may cancel any.
func (s *RentalService) CancelRental(ctx context.Context, rentalID, cancelledBy uuid.UUID, role, reason string) (*RentalDTO, error) {
	rt, err := s.rentals.FindByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}

	if role != auth.RoleAdmin && rt.RenterID() != cancelledBy {
		return nil, apperr.NewForbiddenError("rental does not belong to this user")
	}

	wasApproved := rt.Status() == rentalDomain.StatusApproved

	if err := rt.Cancel(reason); err != nil {
		return nil, err
	}

	rt.IncrementVersion()
	if err := s.rentals.Update(ctx, rt); err != nil {
		return nil, err
	}

	// An approved rental holds the vehicle; release it on cancellation.
	if wasApproved {
		if v, err := s.vehicles.FindByID(ctx, rt.VehicleID()); err == nil {
			v.Release()
			v.IncrementVersion()
			if err := s.vehicles.Update(ctx, v); err != nil {
				s.logger.Warn("failed to release vehicle after cancellation",
					zap.String("vehicle_id", rt.VehicleID().String()),
					zap.Error(err),
				)
			}
		}
	}

	evt := events.RentalCancelledEvent{
		RentalID:     rt.ID(),
		RentalNumber: rt.RentalNumber(),
		CancelledBy:  cancelledBy,
		Reason:       reason,
		OccurredAt:   time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicRentalEvents, events.RentalCancelled, evt)

	result := toRentalDTO(rt)
	return &result, nil
}

// GetRental retrieves a single rental. Renters may only read their own.
func (s *RentalService) GetRental(ctx context.Context, rentalID, requesterID uuid.UUID, role string) (*RentalDTO, error) {
	rt, err := s.rentals.FindByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}

	if role != auth.RoleAdmin && rt.RenterID() != requesterID {
		return nil, apperr.NewForbiddenError("rental does not belong to this user")
	}

	result := toRentalDTO(rt)
	return &result, nil
}

// GetRenterRentals retrieves paginated rentals for a renter.
func (s *RentalService) GetRenterRentals(ctx context.Context, renterID uuid.UUID, page, limit int) (*apperr.PaginatedResult[RentalDTO], error) {
	rentals, total, err := s.rentals.FindByRenterID(ctx, renterID, page, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]RentalDTO, len(rentals))
	for i, rt := range rentals {
		dtos[i] = toRentalDTO(rt)
	}

	result := apperr.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// --- Admin methods ---

// RentalStatsDTO holds rental statistics for the admin dashboard.
type RentalStatsDTO struct {
	TotalRentals   int64                         `json:"total_rentals"`
	ByStatus       map[string]int64              `json:"by_status"`
	MonthlyRevenue []rentalDomain.MonthlyRevenue `json:"monthly_revenue"`
	TotalRevenue   int64                         `json:"total_revenue"`
	Year           int                           `json:"year"`
}

// ListAllRentals returns a paginated list of all rentals (admin).
func (s *RentalService) ListAllRentals(ctx context.Context, page, limit int) (*apperr.PaginatedResult[RentalDTO], error) {
	rentals, total, err := s.rentals.ListAll(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list rentals: %w", err)
	}

	dtos := make([]RentalDTO, len(rentals))
	for i, rt := range rentals {
		dtos[i] = toRentalDTO(rt)
	}

	result := apperr.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// GetRentalStats returns aggregate rental statistics for a year (admin).
func (s *RentalService) GetRentalStats(ctx context.Context, year int) (*RentalStatsDTO, error) {
	counts, err := s.rentals.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get rental stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}

	monthly, err := s.rentals.MonthlyRevenue(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly revenue: %w", err)
	}

	var revenue int64
	for _, m := range monthly {
		revenue += m.Revenue
	}

	return &RentalStatsDTO{
		TotalRentals:   total,
		ByStatus:       counts,
		MonthlyRevenue: monthly,
		TotalRevenue:   revenue,
		Year:           year,
	}, nil
}

// --- Helpers ---

func toRentalDTO(rt *rentalDomain.Rental) RentalDTO {
	return RentalDTO{
		ID:           rt.ID(),
		RentalNumber: rt.RentalNumber(),
		RenterID:     rt.RenterID(),
		VehicleID:    rt.VehicleID(),
		Status:       string(rt.Status()),
		PickupDate:   rt.PickupDate(),
		ReturnDate:   rt.ReturnDate(),
		Quote:        rt.PriceQuote(),
		Currency:     rt.Currency(),
		Notes:        rt.Notes(),
		ApprovedAt:   rt.ApprovedAt(),
		CompletedAt:  rt.CompletedAt(),
		CancelledAt:  rt.CancelledAt(),
		CancelNote:   rt.CancelNote(),
		Version:      rt.Version(),
		CreatedAt:    rt.CreatedAt(),
		UpdatedAt:    rt.UpdatedAt(),
	}
}

func (s *RentalService) publishEvent(ctx context.Context, topic, eventType string, data interface{}) {
	if s.producer == nil {
		return
	}

	cloudEvent, err := events.NewCloudEvent(eventSource, eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, topic, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
