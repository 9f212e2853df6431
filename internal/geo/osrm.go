package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/lqphu369/vehicle-rental-service/internal/domain/routing"
)

// OSRMClient is a RouteProvider backed by an OSRM HTTP server, the engine the
// original map frontend routed against.
type OSRMClient struct {
	baseURL string
	client  *http.Client
}

// NewOSRMClient creates an OSRMClient for the given base URL.
func NewOSRMClient(baseURL string) *OSRMClient {
	return &OSRMClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type osrmManeuver struct {
	Type     string `json:"type"`
	Modifier string `json:"modifier"`
	Exit     int    `json:"exit"`
	Bearing  int    `json:"bearing_after"`
}

type osrmStep struct {
	Distance float64      `json:"distance"`
	Name     string       `json:"name"`
	Maneuver osrmManeuver `json:"maneuver"`
}

type osrmLeg struct {
	Steps []osrmStep `json:"steps"`
}

type osrmRoute struct {
	Distance float64   `json:"distance"`
	Duration float64   `json:"duration"`
	Legs     []osrmLeg `json:"legs"`
}

type osrmResponse struct {
	Code   string      `json:"code"`
	Routes []osrmRoute `json:"routes"`
}

// Route computes a driving route between the two waypoints. OSRM expects
// lng,lat coordinate order.
func (c *OSRMClient) Route(ctx context.Context, origin, dest Point) (routing.Summary, []routing.RouteStep, error) {
	u := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=false&steps=true",
		c.baseURL, origin.Lng, origin.Lat, dest.Lng, dest.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return routing.Summary{}, nil, fmt.Errorf("failed to build route request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return routing.Summary{}, nil, fmt.Errorf("route request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return routing.Summary{}, nil, fmt.Errorf("route request returned status %d", resp.StatusCode)
	}

	var body osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return routing.Summary{}, nil, fmt.Errorf("failed to decode route response: %w", err)
	}

	if body.Code != "Ok" || len(body.Routes) == 0 {
		return routing.Summary{}, nil, ErrNoRoute
	}

	route := body.Routes[0]
	var steps []routing.RouteStep
	for _, leg := range route.Legs {
		for _, s := range leg.Steps {
			steps = append(steps, routing.RouteStep{
				Instruction:    formatOSRMInstruction(s),
				DistanceMeters: s.Distance,
			})
		}
	}

	summary := routing.Summary{
		TotalDistanceMeters: route.Distance,
		TotalTimeSeconds:    route.Duration,
	}
	return summary, steps, nil
}

// formatOSRMInstruction renders an OSRM maneuver as the English sentence the
// original frontend's routing widget produced, so the downstream translation
// rules apply unchanged.
func formatOSRMInstruction(s osrmStep) string {
	name := s.Name
	m := s.Maneuver

	switch m.Type {
	case "depart":
		text := "Head " + compassDirection(m.Bearing)
		if name != "" {
			text += " on " + name
		}
		return text
	case "arrive":
		if m.Modifier == "left" || m.Modifier == "right" {
			return "Arrive at your destination, on the " + m.Modifier
		}
		return "You have arrived at your destination"
	case "roundabout", "rotary":
		if m.Exit > 0 {
			text := fmt.Sprintf("Enter the traffic circle and take the %d%s exit", m.Exit, ordinalSuffix(m.Exit))
			if name != "" {
				text += " onto " + name
			}
			return text
		}
		return "Into the traffic circle"
	case "exit roundabout", "exit rotary":
		text := "Exit the traffic circle"
		if name != "" {
			text += " onto " + name
		}
		return text
	case "continue":
		if name != "" {
			return "Continue on " + name
		}
		return "Continue"
	case "merge":
		if name != "" {
			return "Merge onto " + name
		}
		return "Merge"
	case "on ramp", "off ramp":
		return "Take the ramp"
	case "fork":
		switch m.Modifier {
		case "left", "slight left":
			return "Keep left"
		case "right", "slight right":
			return "Keep right"
		}
		return "Go straight"
	}

	// Default: a turn-family maneuver.
	var text string
	switch m.Modifier {
	case "left":
		text = "Turn left"
	case "right":
		text = "Turn right"
	case "sharp left":
		text = "Make a sharp left"
	case "sharp right":
		text = "Make a sharp right"
	case "slight left":
		text = "Make a slight left"
	case "slight right":
		text = "Make a slight right"
	case "uturn":
		return "Make a U-turn"
	default:
		text = "Go straight"
	}
	if name != "" {
		text += " onto " + name
	}
	return text
}

// compassDirection converts a bearing in degrees to its compass word.
func compassDirection(bearing int) string {
	directions := []string{"north", "northeast", "east", "southeast", "south", "southwest", "west", "northwest"}
	idx := ((bearing + 22) % 360) / 45
	return directions[idx]
}

func ordinalSuffix(n int) string {
	switch n {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
