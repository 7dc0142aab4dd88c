// Package safeplaces ranks fixed evacuation points by distance from a city.
package safeplaces

import (
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/rajasatyajit/FloodAlert/internal/cities"
	"github.com/rajasatyajit/FloodAlert/internal/models"
)

// DefaultTopN is used when Rank is called with a non-positive limit.
const DefaultTopN = 3

// EarthRadiusMeters is the mean Earth radius.
const EarthRadiusMeters = 6371000.0

const (
	mapSearchURL = "https://www.google.com/maps/search/?api=1&query="
	directionURL = "https://www.google.com/maps/dir/?api=1"
)

// Haversine returns the great-circle distance between a and b in meters.
func Haversine(a, b models.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * EarthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

func roundKm(meters float64) float64 {
	return math.Round(meters/10) / 100
}

func formatCoord(c models.Coordinates) string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}

// componentUnescaper undoes the query escaping of characters a URI component
// may carry literally, and spells spaces as %20.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func escapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// MapURL is a map search for the place name within Mumbai.
func MapURL(p models.SafePlace) string {
	return mapSearchURL + escapeComponent(p.Name+", Mumbai")
}

// RouteURL is a directions link from origin to the place.
func RouteURL(origin models.Coordinates, p models.SafePlace) string {
	return directionURL + "&origin=" + formatCoord(origin) + "&destination=" + formatCoord(p.Location)
}

// Ranker holds the place list and the city coordinates it ranks against.
type Ranker struct {
	places []models.SafePlace
	coords map[string]models.Coordinates
}

// NewRanker builds a ranker over custom data. Keys of coords must be
// canonical city keys.
func NewRanker(places []models.SafePlace, coords map[string]models.Coordinates) *Ranker {
	return &Ranker{places: places, coords: coords}
}

// Default returns the ranker over the built-in Mumbai data.
func Default() *Ranker {
	return NewRanker(mumbaiPlaces, mumbaiCities)
}

// Coordinates returns the location of city, if known.
func (r *Ranker) Coordinates(city string) (models.Coordinates, bool) {
	c, ok := r.coords[cities.Normalize(city)]
	return c, ok
}

// Places returns a copy of the place list.
func (r *Ranker) Places() []models.SafePlace {
	out := make([]models.SafePlace, len(r.places))
	copy(out, r.places)
	return out
}

// Rank returns the topN places nearest to city, nearest first. Equal
// distances keep list order. The result is nil when city has no
// coordinates, and empty (non-nil) when the place list is empty.
func (r *Ranker) Rank(city string, topN int) []models.RankedSafePlace {
	origin, ok := r.Coordinates(city)
	if !ok {
		return nil
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	ranked := make([]models.RankedSafePlace, 0, len(r.places))
	for _, p := range r.places {
		ranked = append(ranked, models.RankedSafePlace{
			SafePlace:  p,
			DistanceKm: roundKm(Haversine(origin, p.Location)),
			MapURL:     MapURL(p),
			RouteURL:   RouteURL(origin, p),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

func validCoord(c models.Coordinates) bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Validate checks the built-in data. It is called once at startup.
func Validate() error {
	return Default().validate()
}

func (r *Ranker) validate() error {
	seen := make(map[string]bool, len(r.places))
	for _, p := range r.places {
		if p.Name == "" || p.Category == "" {
			return fmt.Errorf("safeplaces: place %q missing name or category", p.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("safeplaces: duplicate place %q", p.Name)
		}
		seen[p.Name] = true
		if !validCoord(p.Location) {
			return fmt.Errorf("safeplaces: place %q has out of range coordinates", p.Name)
		}
	}
	for city, c := range r.coords {
		if cities.Normalize(city) != city {
			return fmt.Errorf("safeplaces: city key %q is not canonical", city)
		}
		if !validCoord(c) {
			return fmt.Errorf("safeplaces: city %q has out of range coordinates", city)
		}
	}
	return nil
}
