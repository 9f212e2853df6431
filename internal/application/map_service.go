package application

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lqphu369/vehicle-rental-service/internal/config"
	vehicleDomain "github.com/lqphu369/vehicle-rental-service/internal/domain/vehicle"
)

// MapEntryDTO is one vehicle marker on the rental map, carrying everything the
// popup needs: display data, the classified status and the booking link.
type MapEntryDTO struct {
	ID           string                     `json:"id"`
	Name         string                     `json:"name"`
	Lat          float64                    `json:"lat"`
	Lng          float64                    `json:"lng"`
	Price        float64                    `json:"price"`
	Rating       float64                    `json:"rating"`
	Trips        int                        `json:"trips"`
	ImageURL     string                     `json:"image_url,omitempty"`
	DetailURL    string                     `json:"detail_url,omitempty"`
	Status       string                     `json:"status"`
	StatusConfig vehicleDomain.StatusConfig `json:"status_config"`
	BookingURL   string                     `json:"booking_url,omitempty"`
}

// MapPageDTO is the full map payload: viewport center plus vehicle entries.
type MapPageDTO struct {
	CenterLat float64       `json:"center_lat"`
	CenterLng float64       `json:"center_lng"`
	Entries   []MapEntryDTO `json:"entries"`
}

// MapService builds the vehicle map payload.
type MapService struct {
	repo   vehicleDomain.VehicleRepository
	cfg    config.MapConfig
	logger *zap.Logger
}

// NewMapService creates a new MapService.
func NewMapService(repo vehicleDomain.VehicleRepository, cfg config.MapConfig, logger *zap.Logger) *MapService {
	return &MapService{repo: repo, cfg: cfg, logger: logger}
}

// BookingLink builds the booking navigation URL for a vehicle, or "" when the
// action is not a booking action.
func BookingLink(basePath, vehicleID string, action vehicleDomain.BookingAction) string {
	if action == vehicleDomain.ActionNone {
		return ""
	}
	return fmt.Sprintf("%s/%s/?action=%s", basePath, vehicleID, action)
}

// ParseVehiclePayload decodes an externally-supplied vehicle list. A payload
// that fails to parse degrades to zero records with a logged diagnostic; the
// map renders empty rather than erroring.
func (s *MapService) ParseVehiclePayload(payload []byte) []vehicleDomain.Record {
	var records []vehicleDomain.Record
	if err := json.Unmarshal(payload, &records); err != nil {
		s.logger.Error("vehicle payload is not a valid list, rendering empty map",
			zap.Error(err),
		)
		return nil
	}
	return records
}

// BuildMapEntries converts raw vehicle records into classified map entries.
// Records without resolvable coordinates are skipped with a warning.
func (s *MapService) BuildMapEntries(records []vehicleDomain.Record, now time.Time) []MapEntryDTO {
	entries := make([]MapEntryDTO, 0, len(records))
	for _, rec := range records {
		lat, lng, ok := rec.Coordinates()
		if !ok {
			s.logger.Warn("skipping vehicle record without coordinates",
				zap.String("vehicle_id", rec.ID.String()),
				zap.String("name", rec.Name),
			)
			continue
		}

		status := rec.StatusOrDefault()
		cfg := vehicleDomain.Classify(status, now)

		entries = append(entries, MapEntryDTO{
			ID:           rec.ID.String(),
			Name:         rec.Name,
			Lat:          lat,
			Lng:          lng,
			Price:        rec.Price,
			Rating:       rec.RatingOrDefault(),
			Trips:        rec.TripsOrDefault(),
			ImageURL:     rec.ImageURL,
			DetailURL:    rec.DetailURL,
			Status:       status,
			StatusConfig: cfg,
			BookingURL:   BookingLink(s.cfg.BookingBasePath, rec.ID.String(), cfg.BookingAction),
		})
	}
	return entries
}

// MapVehicles returns the map payload for all positioned vehicles matching the
// status filter.
func (s *MapService) MapVehicles(ctx context.Context, filter string) (*MapPageDTO, error) {
	vehicles, err := s.repo.ListPositioned(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load map vehicles: %w", err)
	}

	now := time.Now()
	entries := make([]MapEntryDTO, 0, len(vehicles))
	for _, v := range vehicles {
		if !vehicleDomain.MatchesFilter(string(v.Status()), filter) {
			continue
		}
		pos := v.Position()
		if pos == nil {
			continue
		}

		cfg := vehicleDomain.Classify(string(v.Status()), now)
		entries = append(entries, MapEntryDTO{
			ID:           v.ID().String(),
			Name:         v.Name(),
			Lat:          pos.Lat,
			Lng:          pos.Lng,
			Price:        float64(v.PricePerDay()),
			Rating:       v.Rating(),
			Trips:        v.TripCount(),
			ImageURL:     v.ImageURL(),
			DetailURL:    fmt.Sprintf("%s/%s/", s.cfg.BookingBasePath, v.ID()),
			Status:       string(v.Status()),
			StatusConfig: cfg,
			BookingURL:   BookingLink(s.cfg.BookingBasePath, v.ID().String(), cfg.BookingAction),
		})
	}

	return &MapPageDTO{
		CenterLat: s.cfg.DefaultLat,
		CenterLng: s.cfg.DefaultLng,
		Entries:   entries,
	}, nil
}
