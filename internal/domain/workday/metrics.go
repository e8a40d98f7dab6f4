package workday

import "github.com/shopspring/decimal"

// Outcome is the result of calculating a day: DayMetrics or RestDayMarker.
type Outcome interface {
	isOutcome()
}

// Schedule is the theoretical day built around the arrival time at the store.
type Schedule struct {
	DepartureFromHome ClockTime
	ArrivalAtStore    ClockTime
	ExitFromStore     ClockTime
	ReturnHome        ClockTime
}

// DayMetrics are the derived figures of a work day. FuelCost keeps full precision.
type DayMetrics struct {
	CityName     string
	IsCustomCity bool

	DistanceKm             float64 // one-way
	TotalKm                float64
	OneWayTravelMinutes    int
	RoundTripTravelMinutes int
	PaidTravelMinutes      int

	// Presence at the store, lunch included. May be negative on long commutes.
	TheoreticalStoreMinutes int
	WorkMinutes             int

	FuelLiters float64
	FuelCost   float64

	Schedule Schedule

	ActualArrivalAtStore *ClockTime
	ActualExitFromStore  *ClockTime
	ActualReturnHome     *ClockTime
}

func (DayMetrics) isOutcome() {}

// FuelCostRounded is the fuel cost rounded to cents for display.
func (m DayMetrics) FuelCostRounded() decimal.Decimal {
	return decimal.NewFromFloat(m.FuelCost).Round(2)
}

// RestDayMarker stands in for metrics on a non-work day.
type RestDayMarker struct {
	Status Status
}

func (RestDayMarker) isOutcome() {}
