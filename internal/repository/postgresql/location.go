package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/worktravel/worktravel-api/internal/domain/location"
	"github.com/worktravel/worktravel-api/internal/pkg/database"
)

type locationRepositoryImpl struct {
	db *database.DB
}

func NewLocationRepository(db *database.DB) location.LocationRepository {
	return &locationRepositoryImpl{db: db}
}

const locationColumns = `id, city_name, distance_km, travel_time_minutes, address, to_char(default_arrival_time, 'HH24:MI'), created_at, updated_at`

func scanLocation(row pgx.Row) (location.Location, error) {
	var l location.Location
	err := row.Scan(
		&l.ID,
		&l.CityName,
		&l.DistanceKm,
		&l.TravelTimeMinutes,
		&l.Address,
		&l.DefaultArrivalTime,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	return l, err
}

// Create implements location.LocationRepository.
func (r *locationRepositoryImpl) Create(ctx context.Context, l location.Location) (location.Location, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO locations (id, city_name, distance_km, travel_time_minutes, address, default_arrival_time, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5::text::time, NOW(), NOW())
		RETURNING ` + locationColumns

	created, err := scanLocation(q.QueryRow(ctx, query,
		strings.TrimSpace(l.CityName),
		l.DistanceKm,
		l.TravelTimeMinutes,
		l.Address,
		l.DefaultArrivalTime,
	))
	if err != nil {
		return location.Location{}, fmt.Errorf("failed to create location: %w", err)
	}

	return created, nil
}

// GetByCityName implements location.LocationRepository. Matching ignores case.
func (r *locationRepositoryImpl) GetByCityName(ctx context.Context, cityName string) (location.Location, error) {
	return r.getByCityName(ctx, cityName, "")
}

// GetByCityNameForUpdate implements location.LocationRepository. Work day
// upserts take FOR SHARE on the same row, so they wait for a rename or delete.
func (r *locationRepositoryImpl) GetByCityNameForUpdate(ctx context.Context, cityName string) (location.Location, error) {
	return r.getByCityName(ctx, cityName, " FOR UPDATE")
}

func (r *locationRepositoryImpl) getByCityName(ctx context.Context, cityName, lock string) (location.Location, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + locationColumns + ` FROM locations WHERE lower(city_name) = lower($1)` + lock

	l, err := scanLocation(q.QueryRow(ctx, query, strings.TrimSpace(cityName)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return location.Location{}, location.ErrLocationNotFound
		}
		return location.Location{}, fmt.Errorf("failed to get location: %w", err)
	}

	return l, nil
}

// List implements location.LocationRepository.
func (r *locationRepositoryImpl) List(ctx context.Context) ([]location.Location, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + locationColumns + ` FROM locations ORDER BY city_name ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	var locations []location.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, l)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return locations, nil
}

// Update implements location.LocationRepository.
func (r *locationRepositoryImpl) Update(ctx context.Context, req location.UpdateLocationRequest) (location.Location, error) {
	q := GetQuerier(ctx, r.db)

	// Build dynamic update query
	query := `UPDATE locations SET updated_at = NOW()`
	args := []interface{}{}
	argIdx := 1

	if req.NewCityName != nil {
		query += fmt.Sprintf(", city_name = $%d", argIdx)
		args = append(args, strings.TrimSpace(*req.NewCityName))
		argIdx++
	}

	if req.DistanceKm != nil {
		query += fmt.Sprintf(", distance_km = $%d", argIdx)
		args = append(args, *req.DistanceKm)
		argIdx++
	}

	if req.TravelTimeMinutes != nil {
		query += fmt.Sprintf(", travel_time_minutes = $%d", argIdx)
		args = append(args, *req.TravelTimeMinutes)
		argIdx++
	}

	if req.Address != nil {
		query += fmt.Sprintf(", address = $%d", argIdx)
		args = append(args, *req.Address)
		argIdx++
	}

	if req.DefaultArrivalTime != nil {
		query += fmt.Sprintf(", default_arrival_time = $%d::text::time", argIdx)
		args = append(args, *req.DefaultArrivalTime)
		argIdx++
	}

	query += fmt.Sprintf(" WHERE lower(city_name) = lower($%d) RETURNING %s", argIdx, locationColumns)
	args = append(args, strings.TrimSpace(req.CityName))

	l, err := scanLocation(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return location.Location{}, location.ErrLocationNotFound
		}
		return location.Location{}, fmt.Errorf("failed to update location: %w", err)
	}

	return l, nil
}

// Delete implements location.LocationRepository.
func (r *locationRepositoryImpl) Delete(ctx context.Context, cityName string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM locations WHERE lower(city_name) = lower($1)`, strings.TrimSpace(cityName))
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return location.ErrLocationNotFound
	}

	return nil
}
