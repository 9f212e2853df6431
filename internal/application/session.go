package application

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lqphu369/vehicle-rental-service/internal/apperr"
	"github.com/lqphu369/vehicle-rental-service/internal/domain/routing"
	"github.com/lqphu369/vehicle-rental-service/internal/geo"
)

// ActiveRoute is the route currently displayed for a map session.
type ActiveRoute struct {
	Origin      geo.Point                `json:"origin"`
	Destination geo.Point                `json:"destination"`
	Summary     routing.RouteSummary     `json:"summary"`
	Steps       []routing.TranslatedStep `json:"steps"`
	PlannedAt   time.Time                `json:"planned_at"`
}

// MapSession holds the per-visitor map state: the last reported position, at
// most one active route and at most one search marker. A new route or marker
// replaces the previous one; position updates are last-writer-wins.
type MapSession struct {
	mu sync.Mutex

	id           uuid.UUID
	position     *geo.Point
	activeRoute  *ActiveRoute
	searchMarker *geo.Place
	createdAt    time.Time
}

// NewMapSession creates an empty session.
func NewMapSession() *MapSession {
	return &MapSession{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
	}
}

// ID returns the session identifier.
func (s *MapSession) ID() uuid.UUID { return s.id }

// SetPosition records the visitor's latest position.
func (s *MapSession) SetPosition(p geo.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.position = &p
}

// Position returns the last reported position, or nil.
func (s *MapSession) Position() *geo.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

// SetRoute installs a new active route, disposing any previous one.
func (s *MapSession) SetRoute(r *ActiveRoute) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeRoute = r
}

// ClearRoute removes the active route, if any.
func (s *MapSession) ClearRoute() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeRoute = nil
}

// ActiveRoute returns the currently displayed route, or nil.
func (s *MapSession) ActiveRoute() *ActiveRoute {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeRoute
}

// SetSearchMarker replaces the search marker with the given place.
func (s *MapSession) SetSearchMarker(p geo.Place) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchMarker = &p
}

// SearchMarker returns the current search marker, or nil.
func (s *MapSession) SearchMarker() *geo.Place {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchMarker
}

// SessionManager tracks live map sessions by ID.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*MapSession
}

// NewSessionManager creates an empty SessionManager.
func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[uuid.UUID]*MapSession)}
}

// Create registers and returns a new session.
func (m *SessionManager) Create() *MapSession {
	s := NewMapSession()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.id] = s
	return s
}

// Get returns the session with the given ID.
func (m *SessionManager) Get(id uuid.UUID) (*MapSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, apperr.NewNotFoundError("Session", id.String())
	}
	return s, nil
}

// GetOrCreate returns the session with the given ID, creating it when absent.
// Callers that mint their own session IDs use this on first contact.
func (m *SessionManager) GetOrCreate(id uuid.UUID) *MapSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s
	}
	s := &MapSession{id: id, createdAt: time.Now().UTC()}
	m.sessions[id] = s
	return s
}

// Remove drops the session with the given ID.
func (m *SessionManager) Remove(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
