package settings

import (
	"fmt"
	"time"

	"github.com/worktravel/worktravel-api/internal/pkg/validator"
)

const (
	// MaxExtraToleranceMinutes caps the daily tolerance added to the store time.
	MaxExtraToleranceMinutes = 60

	DefaultFuelPricePerLiter      = 1.75
	DefaultCarConsumptionPer100Km = 4.5
	DefaultMonthlyAllowance       = 250.0
	DefaultExtraToleranceMinutes  = 15
	DefaultCarModel               = "Hyundai IONIQ 1.6 Hybrid 2017"
)

// Settings is the single set of parameters every calculation reads.
type Settings struct {
	FuelPricePerLiter      float64 // EUR
	CarConsumptionPer100Km float64 // liters per 100 km
	MonthlyAllowance       float64 // EUR, flat
	ExtraToleranceMinutes  int
	CarModel               string
	GoogleMapsAPIKey       string // stored for clients, never read by calculations
	UpdatedAt              time.Time
}

// Defaults returns the settings used before anything has been saved.
func Defaults() Settings {
	return Settings{
		FuelPricePerLiter:      DefaultFuelPricePerLiter,
		CarConsumptionPer100Km: DefaultCarConsumptionPer100Km,
		MonthlyAllowance:       DefaultMonthlyAllowance,
		ExtraToleranceMinutes:  DefaultExtraToleranceMinutes,
		CarModel:               DefaultCarModel,
	}
}

// Validate reports every out-of-range field. The returned error matches both
// ErrInvalidSettings and validator.ValidationErrors.
func (s Settings) Validate() error {
	var errs validator.ValidationErrors

	if !(s.FuelPricePerLiter > 0) {
		errs = append(errs, validator.ValidationError{
			Field:   "fuel_price_per_liter",
			Message: "fuel_price_per_liter must be greater than 0",
		})
	}

	if !(s.CarConsumptionPer100Km > 0) {
		errs = append(errs, validator.ValidationError{
			Field:   "car_consumption_per_100km",
			Message: "car_consumption_per_100km must be greater than 0",
		})
	}

	if !(s.MonthlyAllowance >= 0) {
		errs = append(errs, validator.ValidationError{
			Field:   "monthly_allowance",
			Message: "monthly_allowance must not be negative",
		})
	}

	if s.ExtraToleranceMinutes < 0 || s.ExtraToleranceMinutes > MaxExtraToleranceMinutes {
		errs = append(errs, validator.ValidationError{
			Field:   "extra_tolerance_minutes",
			Message: fmt.Sprintf("extra_tolerance_minutes must be between 0 and %d", MaxExtraToleranceMinutes),
		})
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, errs)
	}

	return nil
}
