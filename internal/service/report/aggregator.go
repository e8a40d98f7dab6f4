package report

import (
	"sort"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/it"
	"github.com/worktravel/worktravel-api/internal/domain/location"
	"github.com/worktravel/worktravel-api/internal/domain/report"
	"github.com/worktravel/worktravel-api/internal/domain/settings"
	"github.com/worktravel/worktravel-api/internal/domain/workday"
	workdayService "github.com/worktravel/worktravel-api/internal/service/workday"
)

// ReasonOutsidePeriod marks a record whose date is not in the aggregated month.
const ReasonOutsidePeriod = "date outside the reported month"

// AggregateMonth folds the days of one user into monthly totals. Days that
// cannot be calculated are listed in Skipped and left out of every count.
func AggregateMonth(period workday.Period, days []workday.WorkDay, s settings.Settings, registry location.Registry) report.MonthlyStats {
	stats := report.MonthlyStats{
		Period:           period,
		RestDaysByStatus: map[workday.Status]int{},
		KmAllowance:      s.MonthlyAllowance,
	}

	type breakdownKey struct {
		name   string
		custom bool
	}
	breakdown := map[breakdownKey]*report.LocationBreakdown{}
	recorded := map[time.Time]bool{}

	for _, day := range days {
		if !period.Contains(day.Date) {
			stats.Skipped = append(stats.Skipped, report.SkippedDay{Date: day.Date, Reason: ReasonOutsidePeriod})
			continue
		}
		recorded[workday.CivilDate(day.Date)] = true

		outcome, err := workdayService.ComputeDayMetrics(day, s, registry)
		if err != nil {
			stats.Skipped = append(stats.Skipped, report.SkippedDay{Date: day.Date, Reason: err.Error()})
			continue
		}

		switch o := outcome.(type) {
		case workday.RestDayMarker:
			stats.RestDays++
			stats.RestDaysByStatus[o.Status]++
		case workday.DayMetrics:
			stats.WorkDays++
			stats.TotalKm += o.TotalKm
			stats.TotalTravelTimeMinutes += o.RoundTripTravelMinutes
			stats.TotalTimeAtStoreMinutes += o.TheoreticalStoreMinutes
			stats.TotalPaidTravelMinutes += o.PaidTravelMinutes
			stats.TotalFuelLiters += o.FuelLiters
			stats.TotalFuelCost += o.FuelCost

			k := breakdownKey{name: o.CityName, custom: o.IsCustomCity}
			b, ok := breakdown[k]
			if !ok {
				b = &report.LocationBreakdown{CityName: o.CityName, IsCustomCity: o.IsCustomCity}
				breakdown[k] = b
			}
			b.Days++
			b.TotalKm += o.TotalKm
			b.FuelCost += o.FuelCost
		}
	}

	stats.ByLocation = make([]report.LocationBreakdown, 0, len(breakdown))
	for _, b := range breakdown {
		stats.ByLocation = append(stats.ByLocation, *b)
	}
	sort.Slice(stats.ByLocation, func(i, j int) bool {
		a, b := stats.ByLocation[i], stats.ByLocation[j]
		if a.CityName != b.CityName {
			return a.CityName < b.CityName
		}
		return !a.IsCustomCity && b.IsCustomCity
	})
	sort.SliceStable(stats.Skipped, func(i, j int) bool {
		return stats.Skipped[i].Date.Before(stats.Skipped[j].Date)
	})

	businessCalendar := newBusinessCalendar()
	for d := period.Start(); d.Before(period.End()); d = d.AddDate(0, 0, 1) {
		if !businessCalendar.IsWorkday(d) {
			continue
		}
		stats.BusinessDays++
		if !recorded[d] {
			stats.UnrecordedBusinessDays++
		}
	}

	return stats
}

// newBusinessCalendar is Monday to Friday minus the Italian national holidays.
func newBusinessCalendar() *cal.BusinessCalendar {
	c := cal.NewBusinessCalendar()
	c.Name = "Italy"
	c.AddHoliday(it.Holidays...)
	return c
}
