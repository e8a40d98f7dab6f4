package workday

import (
	"fmt"

	"github.com/worktravel/worktravel-api/internal/domain/location"
	"github.com/worktravel/worktravel-api/internal/domain/settings"
	"github.com/worktravel/worktravel-api/internal/domain/workday"
)

const (
	// UnpaidTravelMinutes is the part of each one-way trip that is not paid.
	UnpaidTravelMinutes = 30
	// NominalPresenceMinutes is 8h of work plus a 1h lunch break.
	NominalPresenceMinutes = 540
	LunchBreakMinutes      = 60
)

// ComputeDayMetrics derives the figures of a single day. Non-work days yield a
// RestDayMarker without looking at settings. It reads nothing but its arguments.
func ComputeDayMetrics(day workday.WorkDay, s settings.Settings, registry location.Registry) (workday.Outcome, error) {
	switch v := day.Variant.(type) {
	case workday.NonWork:
		return workday.RestDayMarker{Status: v.Status}, nil
	case workday.Work:
		return computeWork(v, s, registry)
	default:
		return nil, fmt.Errorf("day %s: %w", day.DateKey(), workday.ErrEmptyDay)
	}
}

func computeWork(w workday.Work, s settings.Settings, registry location.Registry) (workday.DayMetrics, error) {
	if err := s.Validate(); err != nil {
		return workday.DayMetrics{}, err
	}

	m := workday.DayMetrics{
		ActualArrivalAtStore: w.ActualArrivalAtStore,
		ActualExitFromStore:  w.ActualExitFromStore,
		ActualReturnHome:     w.ActualReturnHome,
	}
	arrival := location.DefaultArrivalTime

	switch c := w.City.(type) {
	case workday.StandardCity:
		loc, ok := registry.Lookup(c.Name)
		if !ok {
			return workday.DayMetrics{}, fmt.Errorf("%w: %q", workday.ErrUnknownCity, c.Name)
		}
		m.CityName = loc.CityName
		m.DistanceKm = loc.DistanceKm
		m.OneWayTravelMinutes = loc.TravelTimeMinutes
		if loc.DefaultArrivalTime != "" {
			arrival = loc.DefaultArrivalTime
		}
	case workday.CustomCity:
		if err := c.Validate(); err != nil {
			return workday.DayMetrics{}, err
		}
		m.CityName = c.Name
		m.IsCustomCity = true
		m.DistanceKm = c.DistanceKm
		m.OneWayTravelMinutes = c.TravelMinutes
	default:
		return workday.DayMetrics{}, fmt.Errorf("%w: work day without a city", workday.ErrUnknownCity)
	}

	m.TotalKm = m.DistanceKm * 2
	m.RoundTripTravelMinutes = m.OneWayTravelMinutes * 2
	m.PaidTravelMinutes = max(0, m.OneWayTravelMinutes-UnpaidTravelMinutes) * 2
	m.TheoreticalStoreMinutes = NominalPresenceMinutes - m.PaidTravelMinutes + s.ExtraToleranceMinutes
	m.WorkMinutes = m.TheoreticalStoreMinutes - LunchBreakMinutes

	m.FuelLiters = m.TotalKm * (s.CarConsumptionPer100Km / 100)
	m.FuelCost = m.FuelLiters * s.FuelPricePerLiter

	arriveAt, err := workday.ParseClockTime(arrival)
	if err != nil {
		arriveAt, _ = workday.ParseClockTime(location.DefaultArrivalTime)
	}
	exitAt := arriveAt.AddMinutes(m.TheoreticalStoreMinutes)
	m.Schedule = workday.Schedule{
		DepartureFromHome: arriveAt.AddMinutes(-m.OneWayTravelMinutes),
		ArrivalAtStore:    arriveAt,
		ExitFromStore:     exitAt,
		ReturnHome:        exitAt.AddMinutes(m.OneWayTravelMinutes),
	}

	return m, nil
}
