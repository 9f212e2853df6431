package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lqphu369/vehicle-rental-service/internal/domain/routing"
	"github.com/lqphu369/vehicle-rental-service/internal/geo"
)

// routeErrorNote is shown in the itinerary panel when routing fails.
const routeErrorNote = "Không thể tìm thấy tuyến đường. Vui lòng thử lại."

// GeocodeRequest is the address search input.
type GeocodeRequest struct {
	Query     string     `json:"query" binding:"required"`
	SessionID *uuid.UUID `json:"session_id"`
}

// GeocodeResultDTO carries the candidate places for an address search.
type GeocodeResultDTO struct {
	Query  string      `json:"query"`
	Places []geo.Place `json:"places"`
	Found  bool        `json:"found"`
}

// PlanRouteRequest is the route computation input.
type PlanRouteRequest struct {
	Origin      geo.Point `json:"origin" binding:"required"`
	Destination geo.Point `json:"destination" binding:"required"`
}

// RouteResultDTO is the translated itinerary for one route request. When the
// routing engine fails, ErrorNote is set and the summary and steps are empty;
// a result never mixes an error note with stale data.
type RouteResultDTO struct {
	SessionID uuid.UUID                `json:"session_id"`
	Summary   *routing.RouteSummary    `json:"summary,omitempty"`
	Steps     []routing.TranslatedStep `json:"steps,omitempty"`
	ErrorNote string                   `json:"error_note,omitempty"`
}

// RouteService orchestrates geocoding and route planning for map sessions.
type RouteService struct {
	geocoder   geo.Geocoder
	router     geo.RouteProvider
	translator *routing.Translator
	sessions   *SessionManager
	logger     *zap.Logger
}

// NewRouteService creates a new RouteService.
func NewRouteService(
	geocoder geo.Geocoder,
	router geo.RouteProvider,
	translator *routing.Translator,
	sessions *SessionManager,
	logger *zap.Logger,
) *RouteService {
	return &RouteService{
		geocoder:   geocoder,
		router:     router,
		translator: translator,
		sessions:   sessions,
		logger:     logger,
	}
}

// Geocode resolves an address query to candidate places. Zero results is a
// valid outcome, reported via Found=false. When the request names a session,
// the first match becomes that session's search marker.
func (s *RouteService) Geocode(ctx context.Context, req GeocodeRequest) (*GeocodeResultDTO, error) {
	places, err := s.geocoder.Search(ctx, req.Query)
	if err != nil {
		return nil, fmt.Errorf("geocoding failed: %w", err)
	}

	if len(places) > 0 && req.SessionID != nil {
		session := s.sessions.GetOrCreate(*req.SessionID)
		session.SetSearchMarker(places[0])
	}

	return &GeocodeResultDTO{
		Query:  req.Query,
		Places: places,
		Found:  len(places) > 0,
	}, nil
}

// PlanRoute computes and translates a route for the given session. The new
// route replaces the session's previous one. On routing failure the session's
// route is cleared and the result carries only an error note.
func (s *RouteService) PlanRoute(ctx context.Context, sessionID uuid.UUID, req PlanRouteRequest) (*RouteResultDTO, error) {
	session := s.sessions.GetOrCreate(sessionID)

	summary, steps, err := s.router.Route(ctx, req.Origin, req.Destination)
	if err != nil {
		session.ClearRoute()
		if errors.Is(err, geo.ErrNoRoute) {
			s.logger.Warn("no route found",
				zap.String("session_id", sessionID.String()),
				zap.Float64("origin_lat", req.Origin.Lat),
				zap.Float64("origin_lng", req.Origin.Lng),
				zap.Float64("dest_lat", req.Destination.Lat),
				zap.Float64("dest_lng", req.Destination.Lng),
			)
			return &RouteResultDTO{SessionID: sessionID, ErrorNote: routeErrorNote}, nil
		}
		return nil, fmt.Errorf("routing failed: %w", err)
	}

	routeSummary, translated := s.translator.Translate(summary, steps)

	session.SetRoute(&ActiveRoute{
		Origin:      req.Origin,
		Destination: req.Destination,
		Summary:     routeSummary,
		Steps:       translated,
		PlannedAt:   time.Now().UTC(),
	})

	return &RouteResultDTO{
		SessionID: sessionID,
		Summary:   &routeSummary,
		Steps:     translated,
	}, nil
}
