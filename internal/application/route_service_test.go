package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lqphu369/vehicle-rental-service/internal/domain/routing"
	"github.com/lqphu369/vehicle-rental-service/internal/geo"
)

type fakeGeocoder struct {
	places []geo.Place
	err    error
}

func (f *fakeGeocoder) Search(_ context.Context, _ string) ([]geo.Place, error) {
	return f.places, f.err
}

type fakeRouter struct {
	summary routing.Summary
	steps   []routing.RouteStep
	err     error
}

func (f *fakeRouter) Route(_ context.Context, _, _ geo.Point) (routing.Summary, []routing.RouteStep, error) {
	return f.summary, f.steps, f.err
}

func newTestRouteService(g geo.Geocoder, r geo.RouteProvider) (*RouteService, *SessionManager) {
	sessions := NewSessionManager()
	svc := NewRouteService(g, r, routing.NewTranslator(0), sessions, zap.NewNop())
	return svc, sessions
}

func TestGeocode_SetsSearchMarkerOnFirstMatch(t *testing.T) {
	geocoder := &fakeGeocoder{places: []geo.Place{
		{DisplayName: "Cho Ben Thanh", Point: geo.Point{Lat: 10.772, Lng: 106.698}},
		{DisplayName: "Ben Thanh Street", Point: geo.Point{Lat: 10.773, Lng: 106.699}},
	}}
	svc, sessions := newTestRouteService(geocoder, &fakeRouter{})

	sessionID := uuid.New()
	result, err := svc.Geocode(context.Background(), GeocodeRequest{
		Query:     "cho ben thanh",
		SessionID: &sessionID,
	})
	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.Len(t, result.Places, 2)

	session, err := sessions.Get(sessionID)
	require.NoError(t, err)
	marker := session.SearchMarker()
	require.NotNil(t, marker)
	assert.Equal(t, "Cho Ben Thanh", marker.DisplayName)
}

func TestGeocode_NoResultsIsNotAnError(t *testing.T) {
	svc, _ := newTestRouteService(&fakeGeocoder{}, &fakeRouter{})

	result, err := svc.Geocode(context.Background(), GeocodeRequest{Query: "xyzzy"})
	require.NoError(t, err)
	assert.False(t, result.Found)
	assert.Empty(t, result.Places)
}

func TestPlanRoute_TranslatesAndInstallsRoute(t *testing.T) {
	router := &fakeRouter{
		summary: routing.Summary{TotalDistanceMeters: 5000, TotalTimeSeconds: 600},
		steps: []routing.RouteStep{
			{Instruction: "Turn left onto Nguyen Hue", DistanceMeters: 200},
			{Instruction: "Arrive at your destination", DistanceMeters: 0},
		},
	}
	svc, sessions := newTestRouteService(&fakeGeocoder{}, router)

	sessionID := uuid.New()
	result, err := svc.PlanRoute(context.Background(), sessionID, PlanRouteRequest{
		Origin:      geo.Point{Lat: 10.76, Lng: 106.66},
		Destination: geo.Point{Lat: 10.78, Lng: 106.70},
	})
	require.NoError(t, err)
	require.NotNil(t, result.Summary)
	assert.Empty(t, result.ErrorNote)
	assert.Equal(t, 5.0, result.Summary.DistanceKm)
	assert.Equal(t, 10, result.Summary.DurationMinutes)
	assert.Equal(t, int64(150000), result.Summary.DeliveryFee)

	require.Len(t, result.Steps, 2)
	assert.Contains(t, result.Steps[0].Text, "Rẽ trái")

	session, err := sessions.Get(sessionID)
	require.NoError(t, err)
	require.NotNil(t, session.ActiveRoute())
	assert.Equal(t, result.Steps, session.ActiveRoute().Steps)
}

func TestPlanRoute_SecondRequestReplacesActiveRoute(t *testing.T) {
	router := &fakeRouter{
		summary: routing.Summary{TotalDistanceMeters: 1000, TotalTimeSeconds: 120},
		steps:   []routing.RouteStep{{Instruction: "Head north", DistanceMeters: 1000}},
	}
	svc, sessions := newTestRouteService(&fakeGeocoder{}, router)

	sessionID := uuid.New()
	_, err := svc.PlanRoute(context.Background(), sessionID, PlanRouteRequest{
		Origin:      geo.Point{Lat: 1, Lng: 1},
		Destination: geo.Point{Lat: 2, Lng: 2},
	})
	require.NoError(t, err)

	_, err = svc.PlanRoute(context.Background(), sessionID, PlanRouteRequest{
		Origin:      geo.Point{Lat: 3, Lng: 3},
		Destination: geo.Point{Lat: 4, Lng: 4},
	})
	require.NoError(t, err)

	session, err := sessions.Get(sessionID)
	require.NoError(t, err)
	active := session.ActiveRoute()
	require.NotNil(t, active)
	assert.Equal(t, 3.0, active.Origin.Lat)
}

func TestPlanRoute_NoRouteClearsSessionAndReturnsNote(t *testing.T) {
	okRouter := &fakeRouter{
		summary: routing.Summary{TotalDistanceMeters: 1000, TotalTimeSeconds: 120},
		steps:   []routing.RouteStep{{Instruction: "Head north", DistanceMeters: 1000}},
	}
	svc, sessions := newTestRouteService(&fakeGeocoder{}, okRouter)

	sessionID := uuid.New()
	_, err := svc.PlanRoute(context.Background(), sessionID, PlanRouteRequest{
		Origin:      geo.Point{Lat: 1, Lng: 1},
		Destination: geo.Point{Lat: 2, Lng: 2},
	})
	require.NoError(t, err)

	svc.router = &fakeRouter{err: geo.ErrNoRoute}
	result, err := svc.PlanRoute(context.Background(), sessionID, PlanRouteRequest{
		Origin:      geo.Point{Lat: 1, Lng: 1},
		Destination: geo.Point{Lat: 99, Lng: 99},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.ErrorNote)
	assert.Nil(t, result.Summary)
	assert.Empty(t, result.Steps)

	session, err := sessions.Get(sessionID)
	require.NoError(t, err)
	assert.Nil(t, session.ActiveRoute(), "failed routing must not leave a stale route")
}
