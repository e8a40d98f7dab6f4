package workday

import (
	"context"
	"fmt"
	"strings"

	"github.com/worktravel/worktravel-api/internal/domain/location"
	"github.com/worktravel/worktravel-api/internal/domain/settings"
	"github.com/worktravel/worktravel-api/internal/domain/workday"
)

// RegistryLoader returns the current location snapshot.
type RegistryLoader interface {
	Registry(ctx context.Context) (location.Registry, error)
}

// SettingsLoader returns the current settings snapshot.
type SettingsLoader interface {
	Get(ctx context.Context) (settings.Settings, error)
}

type workDayServiceImpl struct {
	workDayRepo workday.WorkDayRepository
	locations   RegistryLoader
	settings    SettingsLoader
}

func NewWorkDayService(
	workDayRepo workday.WorkDayRepository,
	locations RegistryLoader,
	settings SettingsLoader,
) workday.WorkDayService {
	return &workDayServiceImpl{
		workDayRepo: workDayRepo,
		locations:   locations,
		settings:    settings,
	}
}

func (s *workDayServiceImpl) Save(ctx context.Context, userID string, req workday.SaveWorkDayRequest) (workday.WorkDayResponse, error) {
	day, err := req.ToWorkDay(userID)
	if err != nil {
		return workday.WorkDayResponse{}, err
	}

	cfg, registry, err := s.snapshot(ctx)
	if err != nil {
		return workday.WorkDayResponse{}, err
	}

	day, err = Canonicalize(day, registry)
	if err != nil {
		return workday.WorkDayResponse{}, err
	}

	saved, err := s.workDayRepo.Upsert(ctx, day)
	if err != nil {
		return workday.WorkDayResponse{}, fmt.Errorf("failed to save work day %s: %w", day.DateKey(), err)
	}

	outcome, calcErr := ComputeDayMetrics(saved, cfg, registry)
	return workday.NewWorkDayResponse(saved, outcome, calcErr), nil
}

func (s *workDayServiceImpl) Get(ctx context.Context, userID, date string) (workday.WorkDayResponse, error) {
	d, err := workday.ParseDate(date)
	if err != nil {
		return workday.WorkDayResponse{}, err
	}

	day, err := s.workDayRepo.GetByDate(ctx, userID, d)
	if err != nil {
		return workday.WorkDayResponse{}, err
	}

	cfg, registry, err := s.snapshot(ctx)
	if err != nil {
		return workday.WorkDayResponse{}, err
	}

	outcome, calcErr := ComputeDayMetrics(day, cfg, registry)
	return workday.NewWorkDayResponse(day, outcome, calcErr), nil
}

// List returns the days of the month. A day whose calculation fails is still
// listed, carrying its error instead of metrics.
func (s *workDayServiceImpl) List(ctx context.Context, userID string, req workday.ListWorkDaysRequest) ([]workday.WorkDayResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	period := req.Period()

	days, err := s.workDayRepo.ListByPeriod(ctx, userID, period.Start(), period.End())
	if err != nil {
		return nil, fmt.Errorf("failed to list work days for %s: %w", period, err)
	}

	cfg, registry, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]workday.WorkDayResponse, 0, len(days))
	for _, day := range days {
		outcome, calcErr := ComputeDayMetrics(day, cfg, registry)
		responses = append(responses, workday.NewWorkDayResponse(day, outcome, calcErr))
	}
	return responses, nil
}

func (s *workDayServiceImpl) Delete(ctx context.Context, userID, date string) error {
	d, err := workday.ParseDate(date)
	if err != nil {
		return err
	}
	return s.workDayRepo.Delete(ctx, userID, d)
}

// Preview fails fast: calculation errors are returned, not embedded.
func (s *workDayServiceImpl) Preview(ctx context.Context, req workday.SaveWorkDayRequest) (workday.WorkDayResponse, error) {
	day, err := req.ToWorkDay("")
	if err != nil {
		return workday.WorkDayResponse{}, err
	}

	cfg, registry, err := s.snapshot(ctx)
	if err != nil {
		return workday.WorkDayResponse{}, err
	}

	outcome, err := ComputeDayMetrics(day, cfg, registry)
	if err != nil {
		return workday.WorkDayResponse{}, err
	}
	return workday.NewWorkDayResponse(day, outcome, nil), nil
}

func (s *workDayServiceImpl) snapshot(ctx context.Context) (settings.Settings, location.Registry, error) {
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return settings.Settings{}, location.Registry{}, err
	}
	registry, err := s.locations.Registry(ctx)
	if err != nil {
		return settings.Settings{}, location.Registry{}, err
	}
	return cfg, registry, nil
}

// Canonicalize resolves a standard city against the registry and stores its
// canonical spelling. Custom cities are checked for completeness.
func Canonicalize(day workday.WorkDay, registry location.Registry) (workday.WorkDay, error) {
	w, ok := day.Variant.(workday.Work)
	if !ok {
		return day, nil
	}

	switch c := w.City.(type) {
	case workday.StandardCity:
		loc, found := registry.Lookup(c.Name)
		if !found {
			return day, fmt.Errorf("%w: %q (known cities: %s)", workday.ErrUnknownCity, c.Name, strings.Join(registry.Names(), ", "))
		}
		w.City = workday.StandardCity{Name: loc.CityName}
	case workday.CustomCity:
		if err := c.Validate(); err != nil {
			return day, err
		}
	}

	day.Variant = w
	return day, nil
}
