package vehicle

import "encoding/json"

// Record is the externally-owned shape of a vehicle in the map page payload.
// Coordinates may arrive under "latitude"/"longitude" or "lat"/"lng"; pointers
// distinguish absent fields from zero values.
type Record struct {
	ID        json.Number `json:"id"`
	Name      string      `json:"name"`
	Latitude  *float64    `json:"latitude"`
	Longitude *float64    `json:"longitude"`
	Lat       *float64    `json:"lat"`
	Lng       *float64    `json:"lng"`
	Price     float64     `json:"price"`
	Status    string      `json:"status"`
	Rating    *float64    `json:"rating"`
	Trips     *int        `json:"trips"`
	ImageURL  string      `json:"image_url"`
	DetailURL string      `json:"detail_url"`
}

// Coordinates resolves the record's position across both field spellings.
// ok is false when either coordinate is missing; such records are skipped.
func (r Record) Coordinates() (lat, lng float64, ok bool) {
	switch {
	case r.Latitude != nil:
		lat = *r.Latitude
	case r.Lat != nil:
		lat = *r.Lat
	default:
		return 0, 0, false
	}
	switch {
	case r.Longitude != nil:
		lng = *r.Longitude
	case r.Lng != nil:
		lng = *r.Lng
	default:
		return 0, 0, false
	}
	return lat, lng, true
}

// RatingOrDefault returns the rating, defaulting to 5.0 when absent.
func (r Record) RatingOrDefault() float64 {
	if r.Rating == nil {
		return 5.0
	}
	return *r.Rating
}

// TripsOrDefault returns the trip count, defaulting to 0 when absent.
func (r Record) TripsOrDefault() int {
	if r.Trips == nil {
		return 0
	}
	return *r.Trips
}

// StatusOrDefault returns the raw status, defaulting to available when empty.
func (r Record) StatusOrDefault() string {
	if r.Status == "" {
		return string(StatusAvailable)
	}
	return r.Status
}
