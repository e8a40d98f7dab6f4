package location

import (
	"github.com/worktravel/worktravel-api/internal/pkg/validator"
)

// LocationResponse represents the response structure for a location.
type LocationResponse struct {
	ID                 string  `json:"id"`
	CityName           string  `json:"city_name"`
	DistanceKm         float64 `json:"distance_km"`
	TravelTimeMinutes  int     `json:"travel_time_minutes"`
	Address            string  `json:"address,omitempty"`
	DefaultArrivalTime string  `json:"default_arrival_time"`
}

func NewLocationResponse(l Location) LocationResponse {
	return LocationResponse{
		ID:                 l.ID,
		CityName:           l.CityName,
		DistanceKm:         l.DistanceKm,
		TravelTimeMinutes:  l.TravelTimeMinutes,
		Address:            l.Address,
		DefaultArrivalTime: l.DefaultArrivalTime,
	}
}

// CreateLocationRequest represents the request structure for creating a location.
type CreateLocationRequest struct {
	CityName           string  `json:"city_name"`
	DistanceKm         float64 `json:"distance_km"`
	TravelTimeMinutes  int     `json:"travel_time_minutes"`
	Address            string  `json:"address,omitempty"`
	DefaultArrivalTime string  `json:"default_arrival_time,omitempty"`
}

func (r *CreateLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CityName) {
		errs = append(errs, validator.ValidationError{
			Field:   "city_name",
			Message: "city_name is required",
		})
	}
	if len(r.CityName) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "city_name",
			Message: "city_name must not exceed 100 characters",
		})
	}

	if r.DistanceKm < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "distance_km",
			Message: "distance_km must not be negative",
		})
	}

	if r.TravelTimeMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "travel_time_minutes",
			Message: "travel_time_minutes must not be negative",
		})
	}

	if r.DefaultArrivalTime == "" {
		r.DefaultArrivalTime = DefaultArrivalTime
	} else if !validator.IsValidClock(r.DefaultArrivalTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "default_arrival_time",
			Message: "default_arrival_time must be in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateLocationRequest represents the request structure for updating a location.
// The city name in the path identifies the record; NewCityName renames it.
type UpdateLocationRequest struct {
	CityName           string   `json:"-"`
	NewCityName        *string  `json:"city_name,omitempty"`
	DistanceKm         *float64 `json:"distance_km,omitempty"`
	TravelTimeMinutes  *int     `json:"travel_time_minutes,omitempty"`
	Address            *string  `json:"address,omitempty"`
	DefaultArrivalTime *string  `json:"default_arrival_time,omitempty"`
}

func (r *UpdateLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CityName) {
		errs = append(errs, validator.ValidationError{
			Field:   "city_name",
			Message: "city_name is required",
		})
	}

	if r.NewCityName != nil && validator.IsEmpty(*r.NewCityName) {
		errs = append(errs, validator.ValidationError{
			Field:   "city_name",
			Message: "city_name must not be empty",
		})
	}

	if r.DistanceKm != nil && *r.DistanceKm < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "distance_km",
			Message: "distance_km must not be negative",
		})
	}

	if r.TravelTimeMinutes != nil && *r.TravelTimeMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "travel_time_minutes",
			Message: "travel_time_minutes must not be negative",
		})
	}

	if r.DefaultArrivalTime != nil && !validator.IsValidClock(*r.DefaultArrivalTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "default_arrival_time",
			Message: "default_arrival_time must be in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
