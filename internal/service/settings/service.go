package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/worktravel/worktravel-api/internal/domain/settings"
)

type settingsServiceImpl struct {
	settingsRepo settings.SettingsRepository
}

func NewSettingsService(settingsRepo settings.SettingsRepository) settings.SettingsService {
	return &settingsServiceImpl{settingsRepo: settingsRepo}
}

// Get reads the committed settings on every call, so updates are visible to
// the next calculation.
func (s *settingsServiceImpl) Get(ctx context.Context) (settings.Settings, error) {
	current, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settings.ErrSettingsNotFound) {
			return settings.Defaults(), nil
		}
		return settings.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return current, nil
}

func (s *settingsServiceImpl) Update(ctx context.Context, req settings.UpdateSettingsRequest) (settings.Settings, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return settings.Settings{}, err
	}

	next := req.Apply(current)
	if err := next.Validate(); err != nil {
		return settings.Settings{}, err
	}

	saved, err := s.settingsRepo.Upsert(ctx, next)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("failed to save settings: %w", err)
	}

	slog.Info("Settings updated",
		"fuel_price_per_liter", saved.FuelPricePerLiter,
		"car_consumption_per_100km", saved.CarConsumptionPer100Km,
		"monthly_allowance", saved.MonthlyAllowance,
		"extra_tolerance_minutes", saved.ExtraToleranceMinutes,
	)
	return saved, nil
}
