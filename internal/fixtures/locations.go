package fixtures

import "github.com/worktravel/worktravel-api/internal/domain/location"

// ==========================================
// DEFAULT LOCATIONS
// ==========================================

// DefaultLocations returns the stores seeded into an empty registry.
// Distances and travel times are one-way from home in Verona.
func DefaultLocations() []location.Location {
	return []location.Location{
		{
			CityName:           "Verona",
			DistanceKm:         0,
			TravelTimeMinutes:  0,
			Address:            "Via Mantovana 129, 37137 Verona",
			DefaultArrivalTime: location.DefaultArrivalTime,
		},
		{
			CityName:           "Modena",
			DistanceKm:         103,
			TravelTimeMinutes:  70,
			Address:            "MediaWorld Modena - Grandemilia",
			DefaultArrivalTime: location.DefaultArrivalTime,
		},
		{
			CityName:           "Reggio Emilia",
			DistanceKm:         95,
			TravelTimeMinutes:  80,
			Address:            "MediaWorld Reggio Emilia",
			DefaultArrivalTime: location.DefaultArrivalTime,
		},
		{
			CityName:           "Parma",
			DistanceKm:         125,
			TravelTimeMinutes:  90,
			Address:            "MediaWorld Parma",
			DefaultArrivalTime: location.DefaultArrivalTime,
		},
		{
			CityName:           "Mantova",
			DistanceKm:         55,
			TravelTimeMinutes:  45,
			Address:            "MediaWorld Mantova",
			DefaultArrivalTime: location.DefaultArrivalTime,
		},
		{
			CityName:           "Brescia",
			DistanceKm:         78,
			TravelTimeMinutes:  55,
			Address:            "MediaWorld Brescia",
			DefaultArrivalTime: location.DefaultArrivalTime,
		},
	}
}
