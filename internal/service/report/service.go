package report

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/worktravel/worktravel-api/internal/domain/location"
	"github.com/worktravel/worktravel-api/internal/domain/report"
	"github.com/worktravel/worktravel-api/internal/domain/settings"
	"github.com/worktravel/worktravel-api/internal/domain/workday"
	workdayService "github.com/worktravel/worktravel-api/internal/service/workday"
	"golang.org/x/sync/errgroup"
)

// teamConcurrency bounds the per-user loads of a team report.
const teamConcurrency = 4

type ReportServiceImpl struct {
	workDayRepo workday.WorkDayRepository
	locations   workdayService.RegistryLoader
	settings    workdayService.SettingsLoader
	now         func() time.Time
}

func NewReportService(
	workDayRepo workday.WorkDayRepository,
	locations workdayService.RegistryLoader,
	settings workdayService.SettingsLoader,
) *ReportServiceImpl {
	return &ReportServiceImpl{
		workDayRepo: workDayRepo,
		locations:   locations,
		settings:    settings,
		now:         time.Now,
	}
}

var _ report.ReportService = (*ReportServiceImpl)(nil)

// Monthly loads settings, locations and days in parallel, then aggregates.
func (s *ReportServiceImpl) Monthly(ctx context.Context, userID string, req report.MonthlyReportRequest) (report.MonthlyReportResponse, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyReportResponse{}, err
	}
	period := req.Period()

	var (
		cfg      settings.Settings
		registry location.Registry
		days     []workday.WorkDay
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		cfg, err = s.settings.Get(gCtx)
		return err
	})

	g.Go(func() error {
		var err error
		registry, err = s.locations.Registry(gCtx)
		return err
	})

	g.Go(func() error {
		var err error
		days, err = s.workDayRepo.ListByPeriod(gCtx, userID, period.Start(), period.End())
		if err != nil {
			return fmt.Errorf("failed to list work days for %s: %w", period, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return report.MonthlyReportResponse{}, err
	}

	stats := AggregateMonth(period, days, cfg, registry)

	dayResponses := make([]workday.WorkDayResponse, 0, len(days))
	for _, day := range days {
		outcome, calcErr := workdayService.ComputeDayMetrics(day, cfg, registry)
		dayResponses = append(dayResponses, workday.NewWorkDayResponse(day, outcome, calcErr))
	}

	if len(stats.Skipped) > 0 {
		slog.Warn("Monthly report skipped days", "user_id", userID, "period", period.String(), "skipped", len(stats.Skipped))
	}

	return report.NewMonthlyReportResponse(userID, stats, dayResponses, s.now()), nil
}

// TeamMonthly aggregates every user with records in the month.
func (s *ReportServiceImpl) TeamMonthly(ctx context.Context, req report.MonthlyReportRequest) (report.TeamMonthlyReportResponse, error) {
	if err := req.Validate(); err != nil {
		return report.TeamMonthlyReportResponse{}, err
	}
	period := req.Period()

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return report.TeamMonthlyReportResponse{}, err
	}
	registry, err := s.locations.Registry(ctx)
	if err != nil {
		return report.TeamMonthlyReportResponse{}, err
	}

	userIDs, err := s.workDayRepo.ListUserIDsByPeriod(ctx, period.Start(), period.End())
	if err != nil {
		return report.TeamMonthlyReportResponse{}, fmt.Errorf("failed to list users for %s: %w", period, err)
	}

	var mu sync.Mutex
	stats := make(map[string]report.MonthlyStats, len(userIDs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(teamConcurrency)

	for _, userID := range userIDs {
		g.Go(func() error {
			days, err := s.workDayRepo.ListByPeriod(gCtx, userID, period.Start(), period.End())
			if err != nil {
				return fmt.Errorf("failed to list work days of user %s: %w", userID, err)
			}
			userStats := AggregateMonth(period, days, cfg, registry)

			mu.Lock()
			stats[userID] = userStats
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return report.TeamMonthlyReportResponse{}, err
	}

	slog.Info("Team monthly report generated", "period", period.String(), "users", len(stats))
	return report.NewTeamMonthlyReportResponse(period, stats, s.now()), nil
}
