package workday

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worktravel/worktravel-api/internal/domain/location"
	"github.com/worktravel/worktravel-api/internal/domain/settings"
	"github.com/worktravel/worktravel-api/internal/domain/workday"
)

func testSettings() settings.Settings {
	return settings.Settings{
		FuelPricePerLiter:      1.75,
		CarConsumptionPer100Km: 4.5,
		MonthlyAllowance:       250,
		ExtraToleranceMinutes:  15,
	}
}

func testRegistry() location.Registry {
	return location.NewRegistry([]location.Location{
		{CityName: "Milano", DistanceKm: 150, TravelTimeMinutes: 90, DefaultArrivalTime: "10:00"},
		{CityName: "Modena", DistanceKm: 55, TravelTimeMinutes: 30, DefaultArrivalTime: "09:30"},
	})
}

func workOn(city workday.CityRef) workday.WorkDay {
	return workday.WorkDay{
		Date:    time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
		Variant: workday.Work{City: city},
	}
}

func metricsOf(t *testing.T, day workday.WorkDay) workday.DayMetrics {
	t.Helper()
	out, err := ComputeDayMetrics(day, testSettings(), testRegistry())
	require.NoError(t, err)
	m, ok := out.(workday.DayMetrics)
	require.True(t, ok, "expected DayMetrics, got %T", out)
	return m
}

func TestComputeDayMetrics_StandardCity(t *testing.T) {
	m := metricsOf(t, workOn(workday.StandardCity{Name: "milano"}))

	assert.Equal(t, "Milano", m.CityName)
	assert.False(t, m.IsCustomCity)
	assert.Equal(t, 300.0, m.TotalKm)
	assert.Equal(t, 90, m.OneWayTravelMinutes)
	assert.Equal(t, 180, m.RoundTripTravelMinutes)
	assert.Equal(t, 120, m.PaidTravelMinutes)
	assert.Equal(t, 435, m.TheoreticalStoreMinutes)
	assert.Equal(t, 375, m.WorkMinutes)
	assert.InDelta(t, 13.5, m.FuelLiters, 1e-9)
	assert.InDelta(t, 23.625, m.FuelCost, 1e-9)
	assert.Equal(t, "23.63", m.FuelCostRounded().StringFixed(2))

	assert.Equal(t, "08:30", m.Schedule.DepartureFromHome.String())
	assert.Equal(t, "10:00", m.Schedule.ArrivalAtStore.String())
	assert.Equal(t, "17:15", m.Schedule.ExitFromStore.String())
	assert.Equal(t, "18:45", m.Schedule.ReturnHome.String())
}

func TestComputeDayMetrics_CustomCity(t *testing.T) {
	m := metricsOf(t, workOn(workday.CustomCity{Name: "Cremona", DistanceKm: 45, TravelMinutes: 50}))

	assert.Equal(t, "Cremona", m.CityName)
	assert.True(t, m.IsCustomCity)
	assert.Equal(t, 90.0, m.TotalKm)
	assert.Equal(t, 40, m.PaidTravelMinutes)
	assert.Equal(t, 515, m.TheoreticalStoreMinutes)
	assert.InDelta(t, 7.0875, m.FuelCost, 1e-9)
	assert.Equal(t, "10:00", m.Schedule.ArrivalAtStore.String())
}

func TestComputeDayMetrics_UsesLocationArrivalTime(t *testing.T) {
	m := metricsOf(t, workOn(workday.StandardCity{Name: "Modena"}))
	assert.Equal(t, 0, m.PaidTravelMinutes)
	assert.Equal(t, 555, m.TheoreticalStoreMinutes)
	assert.Equal(t, "09:00", m.Schedule.DepartureFromHome.String())
	assert.Equal(t, "09:30", m.Schedule.ArrivalAtStore.String())
	assert.Equal(t, "18:45", m.Schedule.ExitFromStore.String())
	assert.Equal(t, "19:15", m.Schedule.ReturnHome.String())
}

func TestComputeDayMetrics_PaidTravelThreshold(t *testing.T) {
	for minutes := 0; minutes <= 180; minutes++ {
		m := metricsOf(t, workOn(workday.CustomCity{Name: "X", DistanceKm: 10, TravelMinutes: minutes}))
		if minutes <= 30 {
			assert.Equal(t, 0, m.PaidTravelMinutes, "one-way %d", minutes)
		} else {
			assert.Equal(t, (minutes-30)*2, m.PaidTravelMinutes, "one-way %d", minutes)
		}
	}
}

func TestComputeDayMetrics_TotalKmIsRoundTrip(t *testing.T) {
	for _, km := range []float64{0, 0.5, 12.3, 103, 999.99} {
		m := metricsOf(t, workOn(workday.CustomCity{Name: "X", DistanceKm: km, TravelMinutes: 20}))
		assert.Equal(t, km*2, m.TotalKm)
		assert.Equal(t, m.TotalKm*(4.5/100)*1.75, m.FuelCost)
	}
}

func TestComputeDayMetrics_LongCommuteIsNotClamped(t *testing.T) {
	m := metricsOf(t, workOn(workday.CustomCity{Name: "Roma", DistanceKm: 600, TravelMinutes: 330}))
	assert.Equal(t, 600, m.PaidTravelMinutes)
	assert.Equal(t, -45, m.TheoreticalStoreMinutes)
	assert.Equal(t, "09:15", m.Schedule.ExitFromStore.String())
}

func TestComputeDayMetrics_IsIdempotent(t *testing.T) {
	day := workOn(workday.StandardCity{Name: "Milano"})
	first, err := ComputeDayMetrics(day, testSettings(), testRegistry())
	require.NoError(t, err)
	second, err := ComputeDayMetrics(day, testSettings(), testRegistry())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestComputeDayMetrics_CarriesActualTimes(t *testing.T) {
	arrival, err := workday.ParseClockTime("10:20")
	require.NoError(t, err)
	day := workday.WorkDay{Variant: workday.Work{
		City:                 workday.StandardCity{Name: "Milano"},
		ActualArrivalAtStore: &arrival,
	}}

	m := metricsOf(t, day)
	require.NotNil(t, m.ActualArrivalAtStore)
	assert.Equal(t, "10:20", m.ActualArrivalAtStore.String())
	assert.Equal(t, 435, m.TheoreticalStoreMinutes)
}

func TestComputeDayMetrics_RestDay(t *testing.T) {
	day := workday.WorkDay{Variant: workday.NonWork{Status: workday.StatusFerie}}
	out, err := ComputeDayMetrics(day, testSettings(), testRegistry())
	require.NoError(t, err)
	assert.Equal(t, workday.RestDayMarker{Status: workday.StatusFerie}, out)
}

func TestComputeDayMetrics_RestDayIgnoresSettings(t *testing.T) {
	bad := testSettings()
	bad.FuelPricePerLiter = 0
	day := workday.WorkDay{Variant: workday.NonWork{Status: workday.StatusRiposo}}

	out, err := ComputeDayMetrics(day, bad, testRegistry())
	require.NoError(t, err)
	assert.Equal(t, workday.RestDayMarker{Status: workday.StatusRiposo}, out)
}

func TestComputeDayMetrics_Errors(t *testing.T) {
	_, err := ComputeDayMetrics(workOn(workday.StandardCity{Name: "Torino"}), testSettings(), testRegistry())
	assert.True(t, errors.Is(err, workday.ErrUnknownCity))

	_, err = ComputeDayMetrics(workOn(workday.CustomCity{Name: "X", DistanceKm: -1, TravelMinutes: 10}), testSettings(), testRegistry())
	assert.True(t, errors.Is(err, workday.ErrInvalidCustomCity))

	bad := testSettings()
	bad.FuelPricePerLiter = 0
	_, err = ComputeDayMetrics(workOn(workday.StandardCity{Name: "Milano"}), bad, testRegistry())
	assert.True(t, errors.Is(err, settings.ErrInvalidSettings))

	_, err = ComputeDayMetrics(workday.WorkDay{}, testSettings(), testRegistry())
	assert.True(t, errors.Is(err, workday.ErrEmptyDay))
}
