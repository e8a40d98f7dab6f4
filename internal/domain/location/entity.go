package location

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// DefaultArrivalTime is used when a location has no arrival time configured.
const DefaultArrivalTime = "10:00"

// Location is a destination the employee travels to, measured from home.
type Location struct {
	ID                 string
	CityName           string
	DistanceKm         float64 // one-way
	TravelTimeMinutes  int     // one-way, without traffic
	Address            string
	DefaultArrivalTime string // HH:MM
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NormalizeName returns the lookup key for a city name.
func NormalizeName(name string) string {
	// Casers keep state, so each call gets its own.
	return cases.Fold().String(strings.Join(strings.Fields(name), " "))
}

// Registry is an immutable snapshot of the locations, keyed by folded city name.
type Registry struct {
	byName map[string]Location
}

func NewRegistry(locations []Location) Registry {
	byName := make(map[string]Location, len(locations))
	for _, l := range locations {
		byName[NormalizeName(l.CityName)] = l
	}
	return Registry{byName: byName}
}

// Lookup finds a location by city name, ignoring case and surrounding spaces.
func (r Registry) Lookup(cityName string) (Location, bool) {
	l, ok := r.byName[NormalizeName(cityName)]
	return l, ok
}

// Names returns the canonical city names in alphabetical order.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for _, l := range r.byName {
		names = append(names, l.CityName)
	}
	sort.Strings(names)
	return names
}
