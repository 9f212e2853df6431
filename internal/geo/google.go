package geo

import (
	"context"
	"fmt"
	"strings"

	maps "googlemaps.github.io/maps"

	"github.com/lqphu369/vehicle-rental-service/internal/domain/routing"
)

// GoogleClient is a Geocoder and RouteProvider backed by the Google Maps
// Platform APIs.
type GoogleClient struct {
	client *maps.Client
}

// NewGoogleClient creates a GoogleClient with the given API key.
func NewGoogleClient(apiKey string) (*GoogleClient, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleClient{client: client}, nil
}

// Search geocodes a free-text address via the Geocoding API.
func (g *GoogleClient) Search(ctx context.Context, query string) ([]Place, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: query})
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}

	places := make([]Place, 0, len(results))
	for _, r := range results {
		places = append(places, Place{
			DisplayName: r.FormattedAddress,
			Point:       Point{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
		})
	}
	return places, nil
}

// Route computes a driving route via the Directions API.
func (g *GoogleClient) Route(ctx context.Context, origin, dest Point) (routing.Summary, []routing.RouteStep, error) {
	routes, _, err := g.client.Directions(ctx, &maps.DirectionsRequest{
		Origin:      fmt.Sprintf("%f,%f", origin.Lat, origin.Lng),
		Destination: fmt.Sprintf("%f,%f", dest.Lat, dest.Lng),
		Mode:        maps.TravelModeDriving,
	})
	if err != nil {
		return routing.Summary{}, nil, fmt.Errorf("directions request failed: %w", err)
	}
	if len(routes) == 0 {
		return routing.Summary{}, nil, ErrNoRoute
	}

	var summary routing.Summary
	var steps []routing.RouteStep
	for _, leg := range routes[0].Legs {
		summary.TotalDistanceMeters += float64(leg.Distance.Meters)
		summary.TotalTimeSeconds += leg.Duration.Seconds()
		for _, step := range leg.Steps {
			steps = append(steps, routing.RouteStep{
				Instruction:    stripHTML(step.HTMLInstructions),
				DistanceMeters: float64(step.Distance.Meters),
			})
		}
	}
	return summary, steps, nil
}

// stripHTML removes markup from Directions instructions, which arrive as HTML.
func stripHTML(s string) string {
	out := make([]rune, 0, len(s))
	inTag := false
	for _, r := range s {
		if r == '<' {
			inTag = true
			continue
		}
		if r == '>' {
			inTag = false
			continue
		}
		if !inTag {
			out = append(out, r)
		}
	}
	return strings.TrimSpace(string(out))
}
