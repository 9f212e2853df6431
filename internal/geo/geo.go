// Package geo wraps the external geocoding and routing collaborators behind
// small interfaces. The service only consumes their inputs and outputs; map
// rendering, tile fetching and the actual pathfinding stay with the providers.
package geo

import (
	"context"
	"errors"

	"github.com/lqphu369/vehicle-rental-service/internal/domain/routing"
)

// ErrNoRoute is returned when the routing engine finds no route between the
// given waypoints.
var ErrNoRoute = errors.New("no route found")

// Point is a geographic waypoint.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place is one geocoding candidate match.
type Place struct {
	DisplayName string `json:"display_name"`
	Point       Point  `json:"point"`
}

// Geocoder resolves a free-text address to candidate places. An empty result
// list is a valid "not found" outcome, not an error.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]Place, error)
}

// RouteProvider computes a route between two waypoints, returning the totals
// and the ordered step descriptions, or ErrNoRoute.
type RouteProvider interface {
	Route(ctx context.Context, origin, dest Point) (routing.Summary, []routing.RouteStep, error)
}
