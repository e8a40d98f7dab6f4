package report

import (
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
		{CityName: "Milano", DistanceKm: 150, TravelTimeMinutes: 90},
	})
}

func date(month time.Month, day int) time.Time {
	return time.Date(2025, month, day, 0, 0, 0, 0, time.UTC)
}

func work(d time.Time, city workday.CityRef) workday.WorkDay {
	return workday.WorkDay{UserID: "u1", Date: d, Variant: workday.Work{City: city}}
}

func rest(d time.Time, status workday.Status) workday.WorkDay {
	return workday.WorkDay{UserID: "u1", Date: d, Variant: workday.NonWork{Status: status}}
}

func TestAggregateMonth(t *testing.T) {
	days := []workday.WorkDay{
		work(date(time.March, 3), workday.StandardCity{Name: "Milano"}),
		work(date(time.March, 4), workday.StandardCity{Name: "Milano"}),
		work(date(time.March, 5), workday.CustomCity{Name: "Cremona", DistanceKm: 45, TravelMinutes: 50}),
		rest(date(time.March, 6), workday.StatusFerie),
		work(date(time.March, 7), workday.StandardCity{Name: "Torino"}),
		rest(date(time.March, 8), workday.StatusRiposo),
		work(date(time.April, 1), workday.StandardCity{Name: "Milano"}),
	}

	stats := AggregateMonth(workday.NewPeriod(3, 2025), days, testSettings(), testRegistry())

	assert.Equal(t, 3, stats.WorkDays)
	assert.Equal(t, 2, stats.RestDays)
	assert.Equal(t, map[workday.Status]int{workday.StatusFerie: 1, workday.StatusRiposo: 1}, stats.RestDaysByStatus)
	assert.Equal(t, 690.0, stats.TotalKm)
	assert.Equal(t, 460, stats.TotalTravelTimeMinutes)
	assert.Equal(t, 1385, stats.TotalTimeAtStoreMinutes)
	assert.Equal(t, 280, stats.TotalPaidTravelMinutes)
	assert.InDelta(t, 54.3375, stats.TotalFuelCost, 1e-9)
	assert.Equal(t, 250.0, stats.KmAllowance)

	require.Len(t, stats.ByLocation, 2)
	assert.Equal(t, "Cremona", stats.ByLocation[0].CityName)
	assert.True(t, stats.ByLocation[0].IsCustomCity)
	assert.Equal(t, 1, stats.ByLocation[0].Days)
	assert.Equal(t, "Milano", stats.ByLocation[1].CityName)
	assert.Equal(t, 2, stats.ByLocation[1].Days)
	assert.Equal(t, 600.0, stats.ByLocation[1].TotalKm)

	require.Len(t, stats.Skipped, 2)
	assert.Equal(t, date(time.March, 7), stats.Skipped[0].Date)
	assert.Contains(t, stats.Skipped[0].Reason, "Torino")
	assert.Equal(t, date(time.April, 1), stats.Skipped[1].Date)
	assert.Equal(t, ReasonOutsidePeriod, stats.Skipped[1].Reason)

	assert.Equal(t, 21, stats.BusinessDays)
	assert.Equal(t, 16, stats.UnrecordedBusinessDays)
}

func TestAggregateMonth_ZeroWorkDaysKeepsAllowance(t *testing.T) {
	stats := AggregateMonth(workday.NewPeriod(4, 2025), nil, testSettings(), testRegistry())

	assert.Equal(t, 0, stats.WorkDays)
	assert.Equal(t, 0.0, stats.TotalKm)
	assert.Equal(t, 0, stats.TotalTravelTimeMinutes)
	assert.Equal(t, 250.0, stats.KmAllowance)
	assert.Empty(t, stats.ByLocation)
	assert.Empty(t, stats.Skipped)

	// Easter Monday and Liberation Day fall on weekdays in April 2025.
	assert.Equal(t, 20, stats.BusinessDays)
	assert.Equal(t, 20, stats.UnrecordedBusinessDays)
}

func TestAggregateMonth_InvalidSettingsSkipsWorkDaysOnly(t *testing.T) {
	bad := testSettings()
	bad.CarConsumptionPer100Km = 0

	days := []workday.WorkDay{
		work(date(time.March, 3), workday.StandardCity{Name: "Milano"}),
		rest(date(time.March, 4), workday.StatusFestivo),
	}
	stats := AggregateMonth(workday.NewPeriod(3, 2025), days, bad, testRegistry())

	assert.Equal(t, 0, stats.WorkDays)
	assert.Equal(t, 1, stats.RestDays)
	assert.Equal(t, 1, stats.RestDaysByStatus[workday.StatusFestivo])
	require.Len(t, stats.Skipped, 1)
	assert.Equal(t, date(time.March, 3), stats.Skipped[0].Date)
	assert.Equal(t, 250.0, stats.KmAllowance)
}
