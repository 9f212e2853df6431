package application

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lqphu369/vehicle-rental-service/internal/apperr"
	"github.com/lqphu369/vehicle-rental-service/internal/geo"
)

func TestMapSession_PositionLastWriterWins(t *testing.T) {
	s := NewMapSession()
	assert.Nil(t, s.Position())

	s.SetPosition(geo.Point{Lat: 10.76, Lng: 106.66})
	s.SetPosition(geo.Point{Lat: 10.80, Lng: 106.70})

	pos := s.Position()
	require.NotNil(t, pos)
	assert.Equal(t, 10.80, pos.Lat)
	assert.Equal(t, 106.70, pos.Lng)
}

func TestMapSession_NewRouteReplacesPrevious(t *testing.T) {
	s := NewMapSession()

	first := &ActiveRoute{Origin: geo.Point{Lat: 1, Lng: 1}}
	second := &ActiveRoute{Origin: geo.Point{Lat: 2, Lng: 2}}

	s.SetRoute(first)
	s.SetRoute(second)

	active := s.ActiveRoute()
	require.NotNil(t, active)
	assert.Same(t, second, active)

	s.ClearRoute()
	assert.Nil(t, s.ActiveRoute())
}

func TestMapSession_SearchMarkerReplaced(t *testing.T) {
	s := NewMapSession()

	s.SetSearchMarker(geo.Place{DisplayName: "Cho Ben Thanh"})
	s.SetSearchMarker(geo.Place{DisplayName: "Nha Tho Duc Ba"})

	marker := s.SearchMarker()
	require.NotNil(t, marker)
	assert.Equal(t, "Nha Tho Duc Ba", marker.DisplayName)
}

func TestSessionManager(t *testing.T) {
	m := NewSessionManager()

	_, err := m.Get(uuid.New())
	var notFound *apperr.NotFoundError
	assert.ErrorAs(t, err, &notFound)

	s := m.Create()
	got, err := m.Get(s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)

	id := uuid.New()
	created := m.GetOrCreate(id)
	assert.Same(t, created, m.GetOrCreate(id))

	m.Remove(s.ID())
	_, err = m.Get(s.ID())
	assert.Error(t, err)
}
