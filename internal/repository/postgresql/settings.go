package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/worktravel/worktravel-api/internal/domain/settings"
	"github.com/worktravel/worktravel-api/internal/pkg/database"
)

type settingsRepositoryImpl struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepositoryImpl{db: db}
}

// The settings table holds at most one row, pinned to id = 1.
const settingsColumns = `fuel_price_per_liter, car_consumption_per_100km, monthly_allowance, extra_tolerance_minutes, car_model, google_maps_api_key, updated_at`

func scanSettings(row pgx.Row) (settings.Settings, error) {
	var s settings.Settings
	err := row.Scan(
		&s.FuelPricePerLiter,
		&s.CarConsumptionPer100Km,
		&s.MonthlyAllowance,
		&s.ExtraToleranceMinutes,
		&s.CarModel,
		&s.GoogleMapsAPIKey,
		&s.UpdatedAt,
	)
	return s, err
}

// Get implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) Get(ctx context.Context) (settings.Settings, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanSettings(q.QueryRow(ctx, `SELECT `+settingsColumns+` FROM settings WHERE id = 1`))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.Settings{}, settings.ErrSettingsNotFound
		}
		return settings.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	return s, nil
}

// Upsert implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) Upsert(ctx context.Context, s settings.Settings) (settings.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO settings (id, fuel_price_per_liter, car_consumption_per_100km, monthly_allowance,
			extra_tolerance_minutes, car_model, google_maps_api_key, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (id) DO UPDATE SET
			fuel_price_per_liter = EXCLUDED.fuel_price_per_liter,
			car_consumption_per_100km = EXCLUDED.car_consumption_per_100km,
			monthly_allowance = EXCLUDED.monthly_allowance,
			extra_tolerance_minutes = EXCLUDED.extra_tolerance_minutes,
			car_model = EXCLUDED.car_model,
			google_maps_api_key = EXCLUDED.google_maps_api_key,
			updated_at = NOW()
		RETURNING ` + settingsColumns

	saved, err := scanSettings(q.QueryRow(ctx, query,
		s.FuelPricePerLiter,
		s.CarConsumptionPer100Km,
		s.MonthlyAllowance,
		s.ExtraToleranceMinutes,
		s.CarModel,
		s.GoogleMapsAPIKey,
	))
	if err != nil {
		return settings.Settings{}, fmt.Errorf("failed to save settings: %w", err)
	}

	return saved, nil
}
