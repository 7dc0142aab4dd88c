package models

// Coordinates is a WGS84 point in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// SafePlace is a fixed evacuation reference point.
type SafePlace struct {
	Name     string      `json:"name"`
	Category string      `json:"category"`
	Location Coordinates `json:"location"`
}

// RankedSafePlace is a SafePlace annotated for one origin city.
// It is computed per request and never stored.
type RankedSafePlace struct {
	SafePlace
	DistanceKm float64 `json:"distance_km"`
	MapURL     string  `json:"map_url"`
	RouteURL   string  `json:"route_url"`
}
