package settings

import (
	"time"

	"github.com/shopspring/decimal"
)

type SettingsResponse struct {
	FuelPricePerLiter      decimal.Decimal `json:"fuel_price_per_liter"`
	CarConsumptionPer100Km float64         `json:"car_consumption_per_100km"`
	MonthlyAllowance       decimal.Decimal `json:"monthly_allowance"`
	ExtraToleranceMinutes  int             `json:"extra_tolerance_minutes"`
	CarModel               string          `json:"car_model"`
	GoogleMapsAPIKey       string          `json:"google_maps_api_key,omitempty"`
	UpdatedAt              *time.Time      `json:"updated_at,omitempty"`
}

func NewSettingsResponse(s Settings) SettingsResponse {
	resp := SettingsResponse{
		FuelPricePerLiter:      decimal.NewFromFloat(s.FuelPricePerLiter).Round(3),
		CarConsumptionPer100Km: s.CarConsumptionPer100Km,
		MonthlyAllowance:       decimal.NewFromFloat(s.MonthlyAllowance).Round(2),
		ExtraToleranceMinutes:  s.ExtraToleranceMinutes,
		CarModel:               s.CarModel,
		GoogleMapsAPIKey:       s.GoogleMapsAPIKey,
	}
	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}

// UpdateSettingsRequest is a partial update; nil fields keep their current value.
type UpdateSettingsRequest struct {
	FuelPricePerLiter      *float64 `json:"fuel_price_per_liter,omitempty"`
	CarConsumptionPer100Km *float64 `json:"car_consumption_per_100km,omitempty"`
	MonthlyAllowance       *float64 `json:"monthly_allowance,omitempty"`
	ExtraToleranceMinutes  *int     `json:"extra_tolerance_minutes,omitempty"`
	CarModel               *string  `json:"car_model,omitempty"`
	GoogleMapsAPIKey       *string  `json:"google_maps_api_key,omitempty"`
}

// Apply returns current with the request's fields overlaid. The result is not validated.
func (r UpdateSettingsRequest) Apply(current Settings) Settings {
	next := current
	if r.FuelPricePerLiter != nil {
		next.FuelPricePerLiter = *r.FuelPricePerLiter
	}
	if r.CarConsumptionPer100Km != nil {
		next.CarConsumptionPer100Km = *r.CarConsumptionPer100Km
	}
	if r.MonthlyAllowance != nil {
		next.MonthlyAllowance = *r.MonthlyAllowance
	}
	if r.ExtraToleranceMinutes != nil {
		next.ExtraToleranceMinutes = *r.ExtraToleranceMinutes
	}
	if r.CarModel != nil {
		next.CarModel = *r.CarModel
	}
	if r.GoogleMapsAPIKey != nil {
		next.GoogleMapsAPIKey = *r.GoogleMapsAPIKey
	}
	return next
}
