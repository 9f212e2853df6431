package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const osrmFixture = `{
	"code": "Ok",
	"routes": [{
		"distance": 5000,
		"duration": 600,
		"legs": [{
			"steps": [
				{"distance": 500, "name": "Nguyen Trai", "maneuver": {"type": "depart", "bearing_after": 45}},
				{"distance": 1200, "name": "Le Loi", "maneuver": {"type": "turn", "modifier": "left"}},
				{"distance": 800, "name": "", "maneuver": {"type": "roundabout", "exit": 2}},
				{"distance": 0, "name": "", "maneuver": {"type": "arrive", "modifier": "right"}}
			]
		}]
	}]
}`

func TestOSRMRoute_ParsesStepsAndSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/route/v1/driving/")
		assert.Equal(t, "true", r.URL.Query().Get("steps"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(osrmFixture))
	}))
	defer srv.Close()

	client := NewOSRMClient(srv.URL)
	summary, steps, err := client.Route(context.Background(),
		Point{Lat: 10.76, Lng: 106.66}, Point{Lat: 10.78, Lng: 106.70})
	require.NoError(t, err)

	assert.Equal(t, 5000.0, summary.TotalDistanceMeters)
	assert.Equal(t, 600.0, summary.TotalTimeSeconds)

	require.Len(t, steps, 4)
	assert.Equal(t, "Head northeast on Nguyen Trai", steps[0].Instruction)
	assert.Equal(t, "Turn left onto Le Loi", steps[1].Instruction)
	assert.Equal(t, "Enter the traffic circle and take the 2nd exit", steps[2].Instruction)
	assert.Equal(t, "Arrive at your destination, on the right", steps[3].Instruction)
	assert.Equal(t, 0.0, steps[3].DistanceMeters)
}

func TestOSRMRoute_NoRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code": "NoRoute", "routes": []}`))
	}))
	defer srv.Close()

	client := NewOSRMClient(srv.URL)
	_, _, err := client.Route(context.Background(), Point{}, Point{})
	assert.True(t, errors.Is(err, ErrNoRoute))
}

func TestFormatOSRMInstruction_Maneuvers(t *testing.T) {
	tests := []struct {
		step osrmStep
		want string
	}{
		{osrmStep{Name: "QL1A", Maneuver: osrmManeuver{Type: "merge"}}, "Merge onto QL1A"},
		{osrmStep{Maneuver: osrmManeuver{Type: "on ramp"}}, "Take the ramp"},
		{osrmStep{Maneuver: osrmManeuver{Type: "fork", Modifier: "slight right"}}, "Keep right"},
		{osrmStep{Maneuver: osrmManeuver{Type: "turn", Modifier: "uturn"}}, "Make a U-turn"},
		{osrmStep{Name: "Hai Ba Trung", Maneuver: osrmManeuver{Type: "turn", Modifier: "sharp right"}}, "Make a sharp right onto Hai Ba Trung"},
		{osrmStep{Maneuver: osrmManeuver{Type: "arrive"}}, "You have arrived at your destination"},
		{osrmStep{Name: "Vo Van Kiet", Maneuver: osrmManeuver{Type: "exit roundabout"}}, "Exit the traffic circle onto Vo Van Kiet"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatOSRMInstruction(tt.step))
	}
}
