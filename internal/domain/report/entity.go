package report

import (
	"time"

	"github.com/worktravel/worktravel-api/internal/domain/workday"
)

// MonthlyStats summarizes one user's month. Money fields keep full precision.
type MonthlyStats struct {
	Period workday.Period

	WorkDays         int
	RestDays         int
	RestDaysByStatus map[workday.Status]int

	TotalKm                 float64
	TotalTravelTimeMinutes  int // round trip, without traffic
	TotalTimeAtStoreMinutes int
	TotalPaidTravelMinutes  int
	TotalFuelLiters         float64
	TotalFuelCost           float64
	KmAllowance             float64

	ByLocation []LocationBreakdown // sorted by city name
	Skipped    []SkippedDay

	// Italian business days in the month, and those without any record.
	BusinessDays           int
	UnrecordedBusinessDays int
}

// LocationBreakdown groups the work days spent in one city.
type LocationBreakdown struct {
	CityName     string
	IsCustomCity bool
	Days         int
	TotalKm      float64
	FuelCost     float64
}

// SkippedDay is a record left out of the totals.
type SkippedDay struct {
	Date   time.Time
	Reason string
}
