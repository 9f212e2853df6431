package routing

// RouteStep is one maneuver description as produced by the routing engine.
type RouteStep struct {
	// Instruction is the engine's free-text English instruction.
	Instruction string `json:"instruction"`
	// DistanceMeters is the length of this step, >= 0.
	DistanceMeters float64 `json:"distance_meters"`
}

// Summary carries the routing engine's totals for a computed route.
type Summary struct {
	TotalDistanceMeters float64 `json:"total_distance_meters"`
	TotalTimeSeconds    float64 `json:"total_time_seconds"`
}

// Glyph is the symbolic icon category attached to a translated step.
type Glyph string

const (
	GlyphUp         Glyph = "up"
	GlyphLeft       Glyph = "left"
	GlyphRight      Glyph = "right"
	GlyphUTurn      Glyph = "u-turn"
	GlyphRoundabout Glyph = "roundabout"
	GlyphArrive     Glyph = "arrive"
)

// TranslatedStep is one localized, iconized itinerary line.
type TranslatedStep struct {
	Icon          Glyph  `json:"icon"`
	Text          string `json:"text"`
	DistanceLabel string `json:"distance_label"`
}

// RouteSummary is the user-facing digest of a route: distance, duration and
// the derived vehicle delivery fee.
type RouteSummary struct {
	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes int     `json:"duration_minutes"`
	DeliveryFee     int64   `json:"delivery_fee"`
}
