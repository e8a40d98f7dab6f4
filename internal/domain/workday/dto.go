package workday

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/worktravel/worktravel-api/internal/pkg/validator"
)

// ========== REQUESTS ==========

// SaveWorkDayRequest is a manual entry. Exactly one of city_name,
// custom_city_name or status must be set.
type SaveWorkDayRequest struct {
	Date                 string   `json:"date"`
	CityName             *string  `json:"city_name,omitempty"`
	CustomCityName       *string  `json:"custom_city_name,omitempty"`
	CustomDistanceKm     *float64 `json:"custom_distance_km,omitempty"`
	CustomTravelMinutes  *int     `json:"custom_travel_minutes,omitempty"`
	Status               *string  `json:"status,omitempty"`
	ActualArrivalAtStore *string  `json:"actual_arrival_at_store,omitempty"`
	ActualExitFromStore  *string  `json:"actual_exit_from_store,omitempty"`
	ActualReturnHome     *string  `json:"actual_return_home,omitempty"`
}

// ToWorkDay validates the request and returns the day it describes.
func (r *SaveWorkDayRequest) ToWorkDay(userID string) (WorkDay, error) {
	day, errs := r.build(userID)
	if len(errs) > 0 {
		return WorkDay{}, errs
	}
	return day, nil
}

func (r *SaveWorkDayRequest) build(userID string) (WorkDay, validator.ValidationErrors) {
	var errs validator.ValidationErrors
	day := WorkDay{UserID: userID}

	// Date
	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if d, err := ParseDate(r.Date); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in DD/MM/YYYY or YYYY-MM-DD format",
		})
	} else {
		day.Date = d
	}

	hasStatus := present(r.Status)
	hasCity := present(r.CityName)
	hasCustom := present(r.CustomCityName) || r.CustomDistanceKm != nil || r.CustomTravelMinutes != nil
	hasTimes := present(r.ActualArrivalAtStore) || present(r.ActualExitFromStore) || present(r.ActualReturnHome)

	switch {
	case hasStatus && (hasCity || hasCustom || hasTimes):
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: ErrAmbiguousDay.Error(),
		})
	case hasStatus:
		st, err := ParseStatus(*r.Status)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: fmt.Sprintf("status must be one of %s", joinStatuses()),
			})
		}
		day.Variant = NonWork{Status: st}
	case hasCity && hasCustom:
		errs = append(errs, validator.ValidationError{
			Field:   "custom_city_name",
			Message: "use either city_name or custom_city_name",
		})
	case hasCity:
		work, timeErrs := r.work(StandardCity{Name: strings.TrimSpace(*r.CityName)})
		errs = append(errs, timeErrs...)
		day.Variant = work
	case hasCustom:
		city, customErrs := r.customCity()
		errs = append(errs, customErrs...)
		work, timeErrs := r.work(city)
		errs = append(errs, timeErrs...)
		day.Variant = work
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "city_name",
			Message: "city_name, custom_city_name or status is required",
		})
	}

	return day, errs
}

func (r *SaveWorkDayRequest) customCity() (CustomCity, validator.ValidationErrors) {
	var errs validator.ValidationErrors
	var city CustomCity

	if !present(r.CustomCityName) {
		errs = append(errs, validator.ValidationError{
			Field:   "custom_city_name",
			Message: "custom_city_name is required for a custom city",
		})
	} else {
		city.Name = strings.TrimSpace(*r.CustomCityName)
	}

	if r.CustomDistanceKm == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "custom_distance_km",
			Message: "custom_distance_km is required for a custom city",
		})
	} else if !(*r.CustomDistanceKm >= 0) {
		errs = append(errs, validator.ValidationError{
			Field:   "custom_distance_km",
			Message: "custom_distance_km must not be negative",
		})
	} else {
		city.DistanceKm = *r.CustomDistanceKm
	}

	if r.CustomTravelMinutes == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "custom_travel_minutes",
			Message: "custom_travel_minutes is required for a custom city",
		})
	} else if *r.CustomTravelMinutes < 0 || *r.CustomTravelMinutes > MaxTravelMinutes {
		errs = append(errs, validator.ValidationError{
			Field:   "custom_travel_minutes",
			Message: fmt.Sprintf("custom_travel_minutes must be between 0 and %d", MaxTravelMinutes),
		})
	} else {
		city.TravelMinutes = *r.CustomTravelMinutes
	}

	return city, errs
}

func (r *SaveWorkDayRequest) work(city CityRef) (Work, validator.ValidationErrors) {
	var errs validator.ValidationErrors
	w := Work{City: city}

	parse := func(field string, value *string) *ClockTime {
		if !present(value) {
			return nil
		}
		c, err := ParseClockTime(*value)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be in HH:MM or HH:MM:SS format",
			})
			return nil
		}
		return &c
	}

	w.ActualArrivalAtStore = parse("actual_arrival_at_store", r.ActualArrivalAtStore)
	w.ActualExitFromStore = parse("actual_exit_from_store", r.ActualExitFromStore)
	w.ActualReturnHome = parse("actual_return_home", r.ActualReturnHome)

	return w, errs
}

func present(s *string) bool {
	return s != nil && !validator.IsEmpty(*s)
}

func joinStatuses() string {
	names := make([]string, 0, len(Statuses()))
	for _, s := range Statuses() {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

type ListWorkDaysRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *ListWorkDaysRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if !validator.IsValidPeriod(1, r.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r ListWorkDaysRequest) Period() Period {
	return NewPeriod(r.Month, r.Year)
}

// ========== RESPONSES ==========

const (
	TypeWork    = "work"
	TypeNonWork = "non_work"
)

type WorkDayResponse struct {
	ID                   string              `json:"id,omitempty"`
	Date                 string              `json:"date"`
	Type                 string              `json:"type"`
	CityName             string              `json:"city_name,omitempty"`
	IsCustomCity         bool                `json:"is_custom_city"`
	CustomDistanceKm     *float64            `json:"custom_distance_km,omitempty"`
	CustomTravelMinutes  *int                `json:"custom_travel_minutes,omitempty"`
	Status               string              `json:"status,omitempty"`
	ActualArrivalAtStore *string             `json:"actual_arrival_at_store,omitempty"`
	ActualExitFromStore  *string             `json:"actual_exit_from_store,omitempty"`
	ActualReturnHome     *string             `json:"actual_return_home,omitempty"`
	Metrics              *DayMetricsResponse `json:"metrics,omitempty"`
	CalculationError     string              `json:"calculation_error,omitempty"`
}

type DayMetricsResponse struct {
	TotalKm                 float64          `json:"total_km"`
	OneWayTravelMinutes     int              `json:"one_way_travel_minutes"`
	RoundTripTravelMinutes  int              `json:"round_trip_travel_minutes"`
	PaidTravelMinutes       int              `json:"paid_travel_minutes"`
	TheoreticalStoreMinutes int              `json:"theoretical_store_minutes"`
	TheoreticalStoreTime    string           `json:"theoretical_store_time"`
	WorkMinutes             int              `json:"work_minutes"`
	FuelLiters              decimal.Decimal  `json:"fuel_liters"`
	FuelCost                decimal.Decimal  `json:"fuel_cost"`
	Schedule                ScheduleResponse `json:"schedule"`
}

type ScheduleResponse struct {
	DepartureFromHome string `json:"departure_from_home"`
	ArrivalAtStore    string `json:"arrival_at_store"`
	ExitFromStore     string `json:"exit_from_store"`
	ReturnHome        string `json:"return_home"`
}

// NewWorkDayResponse maps a day and its calculation result. A non-nil calcErr
// is reported in CalculationError instead of metrics.
func NewWorkDayResponse(day WorkDay, outcome Outcome, calcErr error) WorkDayResponse {
	resp := WorkDayResponse{
		ID:   day.ID,
		Date: day.DateKey(),
	}

	switch v := day.Variant.(type) {
	case Work:
		resp.Type = TypeWork
		if v.City != nil {
			resp.CityName = v.City.CityName()
		}
		if c, ok := v.City.(CustomCity); ok {
			resp.IsCustomCity = true
			km, minutes := c.DistanceKm, c.TravelMinutes
			resp.CustomDistanceKm = &km
			resp.CustomTravelMinutes = &minutes
		}
		resp.ActualArrivalAtStore = clockString(v.ActualArrivalAtStore)
		resp.ActualExitFromStore = clockString(v.ActualExitFromStore)
		resp.ActualReturnHome = clockString(v.ActualReturnHome)
	case NonWork:
		resp.Type = TypeNonWork
		resp.Status = string(v.Status)
	}

	if calcErr != nil {
		resp.CalculationError = calcErr.Error()
		return resp
	}
	if m, ok := outcome.(DayMetrics); ok {
		metrics := NewDayMetricsResponse(m)
		resp.Metrics = &metrics
	}
	return resp
}

func NewDayMetricsResponse(m DayMetrics) DayMetricsResponse {
	return DayMetricsResponse{
		TotalKm:                 m.TotalKm,
		OneWayTravelMinutes:     m.OneWayTravelMinutes,
		RoundTripTravelMinutes:  m.RoundTripTravelMinutes,
		PaidTravelMinutes:       m.PaidTravelMinutes,
		TheoreticalStoreMinutes: m.TheoreticalStoreMinutes,
		TheoreticalStoreTime:    FormatMinutes(m.TheoreticalStoreMinutes),
		WorkMinutes:             m.WorkMinutes,
		FuelLiters:              decimal.NewFromFloat(m.FuelLiters).Round(2),
		FuelCost:                m.FuelCostRounded(),
		Schedule: ScheduleResponse{
			DepartureFromHome: m.Schedule.DepartureFromHome.String(),
			ArrivalAtStore:    m.Schedule.ArrivalAtStore.String(),
			ExitFromStore:     m.Schedule.ExitFromStore.String(),
			ReturnHome:        m.Schedule.ReturnHome.String(),
		},
	}
}

// FormatMinutes renders a duration as "7h15m", keeping the sign.
func FormatMinutes(m int) string {
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}
	return fmt.Sprintf("%s%dh%02dm", sign, m/60, m%60)
}

func clockString(c *ClockTime) *string {
	if c == nil {
		return nil
	}
	s := c.String()
	return &s
}

