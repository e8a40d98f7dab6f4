package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/worktravel/worktravel-api/internal/domain/workday"
	"github.com/worktravel/worktravel-api/internal/pkg/validator"
)

// ========================================
// MONTHLY REPORT
// ========================================

type MonthlyReportRequest struct {
	Month  int    `json:"month"`
	Year   int    `json:"year"`
	UserID string `json:"user_id,omitempty"` // another user's report, admin roles only
}

func (r *MonthlyReportRequest) Validate() error {
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

func (r MonthlyReportRequest) Period() workday.Period {
	return workday.NewPeriod(r.Month, r.Year)
}

type MonthlyReportResponse struct {
	UserID      string `json:"user_id"`
	PeriodMonth int    `json:"period_month"`
	PeriodYear  int    `json:"period_year"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	GeneratedAt string `json:"generated_at"`

	Summary    MonthlySummary            `json:"summary"`
	ByLocation []LocationSummary         `json:"by_location"`
	Skipped    []SkippedDayResponse      `json:"skipped"`
	Days       []workday.WorkDayResponse `json:"days,omitempty"`
}

type MonthlySummary struct {
	WorkDays                int             `json:"work_days"`
	RestDays                int             `json:"rest_days"`
	RestDaysByStatus        map[string]int  `json:"rest_days_by_status"`
	TotalKm                 float64         `json:"total_km"`
	TotalTravelTimeMinutes  int             `json:"total_travel_time_minutes"`
	TotalTimeAtStoreMinutes int             `json:"total_time_at_store_minutes"`
	TotalTimeAtStore        string          `json:"total_time_at_store"`
	TotalPaidTravelMinutes  int             `json:"total_paid_travel_minutes"`
	TotalFuelLiters         decimal.Decimal `json:"total_fuel_liters"`
	TotalFuelCost           decimal.Decimal `json:"total_fuel_cost"`
	KmAllowance             decimal.Decimal `json:"km_allowance"`
	BusinessDays            int             `json:"business_days"`
	UnrecordedBusinessDays  int             `json:"unrecorded_business_days"`
}

type LocationSummary struct {
	CityName     string          `json:"city_name"`
	IsCustomCity bool            `json:"is_custom_city"`
	Days         int             `json:"days"`
	TotalKm      float64         `json:"total_km"`
	FuelCost     decimal.Decimal `json:"fuel_cost"`
}

type SkippedDayResponse struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// NewMonthlyReportResponse maps stats to the wire form, rounding money to cents.
func NewMonthlyReportResponse(userID string, stats MonthlyStats, days []workday.WorkDayResponse, generatedAt time.Time) MonthlyReportResponse {
	byStatus := make(map[string]int, len(stats.RestDaysByStatus))
	for st, n := range stats.RestDaysByStatus {
		byStatus[string(st)] = n
	}

	resp := MonthlyReportResponse{
		UserID:      userID,
		PeriodMonth: int(stats.Period.Month),
		PeriodYear:  stats.Period.Year,
		PeriodStart: stats.Period.Start().Format(workday.DateLayout),
		PeriodEnd:   stats.Period.End().AddDate(0, 0, -1).Format(workday.DateLayout),
		GeneratedAt: generatedAt.Format(time.RFC3339),
		Summary: MonthlySummary{
			WorkDays:                stats.WorkDays,
			RestDays:                stats.RestDays,
			RestDaysByStatus:        byStatus,
			TotalKm:                 stats.TotalKm,
			TotalTravelTimeMinutes:  stats.TotalTravelTimeMinutes,
			TotalTimeAtStoreMinutes: stats.TotalTimeAtStoreMinutes,
			TotalTimeAtStore:        workday.FormatMinutes(stats.TotalTimeAtStoreMinutes),
			TotalPaidTravelMinutes:  stats.TotalPaidTravelMinutes,
			TotalFuelLiters:         decimal.NewFromFloat(stats.TotalFuelLiters).Round(2),
			TotalFuelCost:           decimal.NewFromFloat(stats.TotalFuelCost).Round(2),
			KmAllowance:             decimal.NewFromFloat(stats.KmAllowance).Round(2),
			BusinessDays:            stats.BusinessDays,
			UnrecordedBusinessDays:  stats.UnrecordedBusinessDays,
		},
		ByLocation: make([]LocationSummary, 0, len(stats.ByLocation)),
		Skipped:    make([]SkippedDayResponse, 0, len(stats.Skipped)),
		Days:       days,
	}

	for _, l := range stats.ByLocation {
		resp.ByLocation = append(resp.ByLocation, LocationSummary{
			CityName:     l.CityName,
			IsCustomCity: l.IsCustomCity,
			Days:         l.Days,
			TotalKm:      l.TotalKm,
			FuelCost:     decimal.NewFromFloat(l.FuelCost).Round(2),
		})
	}
	for _, s := range stats.Skipped {
		resp.Skipped = append(resp.Skipped, SkippedDayResponse{
			Date:   s.Date.Format(workday.DateLayout),
			Reason: s.Reason,
		})
	}

	return resp
}

// ========================================
// TEAM MONTHLY REPORT
// ========================================

type TeamMonthlyReportResponse struct {
	PeriodMonth int    `json:"period_month"`
	PeriodYear  int    `json:"period_year"`
	GeneratedAt string `json:"generated_at"`

	TotalUsers    int             `json:"total_users"`
	TotalKm       float64         `json:"total_km"`
	TotalFuelCost decimal.Decimal `json:"total_fuel_cost"`
	TotalPayout   decimal.Decimal `json:"total_payout"` // allowances summed over users

	Rows []TeamReportRow `json:"rows"`
}

type TeamReportRow struct {
	UserID  string         `json:"user_id"`
	Summary MonthlySummary `json:"summary"`
}

// NewTeamMonthlyReportResponse builds the team view, rows ordered by user id.
func NewTeamMonthlyReportResponse(period workday.Period, stats map[string]MonthlyStats, generatedAt time.Time) TeamMonthlyReportResponse {
	resp := TeamMonthlyReportResponse{
		PeriodMonth: int(period.Month),
		PeriodYear:  period.Year,
		GeneratedAt: generatedAt.Format(time.RFC3339),
		TotalUsers:  len(stats),
		Rows:        make([]TeamReportRow, 0, len(stats)),
	}

	userIDs := make([]string, 0, len(stats))
	for id := range stats {
		userIDs = append(userIDs, id)
	}
	sort.Strings(userIDs)

	fuel := decimal.Zero
	payout := decimal.Zero
	for _, id := range userIDs {
		s := stats[id]
		summary := NewMonthlyReportResponse(id, s, nil, generatedAt).Summary
		resp.Rows = append(resp.Rows, TeamReportRow{UserID: id, Summary: summary})
		resp.TotalKm += s.TotalKm
		fuel = fuel.Add(decimal.NewFromFloat(s.TotalFuelCost))
		payout = payout.Add(decimal.NewFromFloat(s.KmAllowance))
	}
	resp.TotalFuelCost = fuel.Round(2)
	resp.TotalPayout = payout.Round(2)

	return resp
}
