package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/worktravel/worktravel-api/internal/domain/workday"
	"github.com/worktravel/worktravel-api/internal/pkg/database"
)

type workDayRepositoryImpl struct {
	db *database.DB
}

func NewWorkDayRepository(db *database.DB) workday.WorkDayRepository {
	return &workDayRepositoryImpl{db: db}
}

const workDayColumns = `id, user_id, date, status, city_name, is_custom_city, custom_distance_km, custom_travel_minutes,
	actual_arrival_at_store, actual_exit_from_store, actual_return_home, created_at, updated_at`

// workDayRow is the flat column layout of a work day. Exactly one of
// Status and CityName is set, enforced by a table constraint.
type workDayRow struct {
	Status              *string
	CityName            *string
	IsCustomCity        bool
	CustomDistanceKm    *float64
	CustomTravelMinutes *int32
	ActualArrival       pgtype.Time
	ActualExit          pgtype.Time
	ActualReturn        pgtype.Time
}

func toWorkDayRow(day workday.WorkDay) (workDayRow, error) {
	var row workDayRow
	switch v := day.Variant.(type) {
	case workday.NonWork:
		status := string(v.Status)
		row.Status = &status
	case workday.Work:
		name := v.City.CityName()
		row.CityName = &name
		if c, ok := v.City.(workday.CustomCity); ok {
			minutes := int32(c.TravelMinutes)
			row.IsCustomCity = true
			row.CustomDistanceKm = &c.DistanceKm
			row.CustomTravelMinutes = &minutes
		}
		row.ActualArrival = clockToPg(v.ActualArrivalAtStore)
		row.ActualExit = clockToPg(v.ActualExitFromStore)
		row.ActualReturn = clockToPg(v.ActualReturnHome)
	default:
		return workDayRow{}, workday.ErrEmptyDay
	}
	return row, nil
}

func (row workDayRow) variant() (workday.Variant, error) {
	if row.Status != nil {
		status, err := workday.ParseStatus(*row.Status)
		if err != nil {
			return nil, err
		}
		return workday.NonWork{Status: status}, nil
	}
	if row.CityName == nil {
		return nil, workday.ErrEmptyDay
	}

	w := workday.Work{
		City:                 workday.StandardCity{Name: *row.CityName},
		ActualArrivalAtStore: clockFromPg(row.ActualArrival),
		ActualExitFromStore:  clockFromPg(row.ActualExit),
		ActualReturnHome:     clockFromPg(row.ActualReturn),
	}
	if row.IsCustomCity {
		c := workday.CustomCity{Name: *row.CityName}
		if row.CustomDistanceKm != nil {
			c.DistanceKm = *row.CustomDistanceKm
		}
		if row.CustomTravelMinutes != nil {
			c.TravelMinutes = int(*row.CustomTravelMinutes)
		}
		w.City = c
	}
	return w, nil
}

func clockToPg(c *workday.ClockTime) pgtype.Time {
	if c == nil {
		return pgtype.Time{}
	}
	return pgtype.Time{Microseconds: int64(*c) * int64(time.Second/time.Microsecond), Valid: true}
}

func clockFromPg(t pgtype.Time) *workday.ClockTime {
	if !t.Valid {
		return nil
	}
	c := workday.ClockTime(t.Microseconds / int64(time.Second/time.Microsecond))
	return &c
}

func scanWorkDay(row pgx.Row) (workday.WorkDay, error) {
	var (
		day workday.WorkDay
		r   workDayRow
	)
	err := row.Scan(
		&day.ID,
		&day.UserID,
		&day.Date,
		&r.Status,
		&r.CityName,
		&r.IsCustomCity,
		&r.CustomDistanceKm,
		&r.CustomTravelMinutes,
		&r.ActualArrival,
		&r.ActualExit,
		&r.ActualReturn,
		&day.CreatedAt,
		&day.UpdatedAt,
	)
	if err != nil {
		return workday.WorkDay{}, err
	}

	day.Date = workday.CivilDate(day.Date)
	day.Variant, err = r.variant()
	if err != nil {
		return workday.WorkDay{}, fmt.Errorf("work day %s has invalid columns: %w", day.ID, err)
	}
	return day, nil
}

// Upsert implements workday.WorkDayRepository. The row for (user_id, date) is
// replaced as a whole, so switching between work and rest clears the other side.
// A standard city must exist in locations; its row is share-locked so a
// concurrent rename or delete of the city waits for this transaction.
func (r *workDayRepositoryImpl) Upsert(ctx context.Context, day workday.WorkDay) (workday.WorkDay, error) {
	q := GetQuerier(ctx, r.db)

	row, err := toWorkDayRow(day)
	if err != nil {
		return workday.WorkDay{}, err
	}

	query := `
		WITH city AS (
			SELECT id FROM locations
			WHERE NOT $5::boolean AND lower(city_name) = lower($4::text)
			FOR SHARE
		)
		INSERT INTO workdays (id, user_id, date, status, city_name, is_custom_city, custom_distance_km,
			custom_travel_minutes, actual_arrival_at_store, actual_exit_from_store, actual_return_home,
			created_at, updated_at)
		SELECT uuidv7(), $1::text, $2::date, $3::text, $4::text, $5::boolean, $6::double precision,
			$7::integer, $8::time, $9::time, $10::time, NOW(), NOW()
		WHERE $4::text IS NULL OR $5::boolean OR EXISTS (SELECT 1 FROM city)
		ON CONFLICT (user_id, date) DO UPDATE SET
			status = EXCLUDED.status,
			city_name = EXCLUDED.city_name,
			is_custom_city = EXCLUDED.is_custom_city,
			custom_distance_km = EXCLUDED.custom_distance_km,
			custom_travel_minutes = EXCLUDED.custom_travel_minutes,
			actual_arrival_at_store = EXCLUDED.actual_arrival_at_store,
			actual_exit_from_store = EXCLUDED.actual_exit_from_store,
			actual_return_home = EXCLUDED.actual_return_home,
			updated_at = NOW()
		RETURNING ` + workDayColumns

	saved, err := scanWorkDay(q.QueryRow(ctx, query,
		day.UserID,
		workday.CivilDate(day.Date),
		row.Status,
		row.CityName,
		row.IsCustomCity,
		row.CustomDistanceKm,
		row.CustomTravelMinutes,
		row.ActualArrival,
		row.ActualExit,
		row.ActualReturn,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return workday.WorkDay{}, fmt.Errorf("%w: %q", workday.ErrUnknownCity, *row.CityName)
		}
		return workday.WorkDay{}, fmt.Errorf("failed to save work day %s: %w", day.DateKey(), err)
	}

	return saved, nil
}

// GetByDate implements workday.WorkDayRepository.
func (r *workDayRepositoryImpl) GetByDate(ctx context.Context, userID string, date time.Time) (workday.WorkDay, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workDayColumns + ` FROM workdays WHERE user_id = $1 AND date = $2`

	day, err := scanWorkDay(q.QueryRow(ctx, query, userID, workday.CivilDate(date)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return workday.WorkDay{}, workday.ErrWorkDayNotFound
		}
		return workday.WorkDay{}, fmt.Errorf("failed to get work day: %w", err)
	}

	return day, nil
}

// ListByPeriod implements workday.WorkDayRepository.
func (r *workDayRepositoryImpl) ListByPeriod(ctx context.Context, userID string, from, to time.Time) ([]workday.WorkDay, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + workDayColumns + `
		FROM workdays
		WHERE user_id = $1 AND date >= $2 AND date < $3
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, userID, workday.CivilDate(from), workday.CivilDate(to))
	if err != nil {
		return nil, fmt.Errorf("failed to list work days: %w", err)
	}
	defer rows.Close()

	var days []workday.WorkDay
	for rows.Next() {
		day, err := scanWorkDay(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work day: %w", err)
		}
		days = append(days, day)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return days, nil
}

// Delete implements workday.WorkDayRepository.
func (r *workDayRepositoryImpl) Delete(ctx context.Context, userID string, date time.Time) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM workdays WHERE user_id = $1 AND date = $2`, userID, workday.CivilDate(date))
	if err != nil {
		return fmt.Errorf("failed to delete work day: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return workday.ErrWorkDayNotFound
	}

	return nil
}

// ListUserIDsByPeriod implements workday.WorkDayRepository.
func (r *workDayRepositoryImpl) ListUserIDsByPeriod(ctx context.Context, from, to time.Time) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT user_id
		FROM workdays
		WHERE date >= $1 AND date < $2
		ORDER BY user_id
	`

	rows, err := q.Query(ctx, query, workday.CivilDate(from), workday.CivilDate(to))
	if err != nil {
		return nil, fmt.Errorf("failed to list users with work days: %w", err)
	}

	userIDs, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan user ids: %w", err)
	}

	return userIDs, nil
}

// CountByCityName implements workday.WorkDayRepository. Custom cities are not counted.
func (r *workDayRepositoryImpl) CountByCityName(ctx context.Context, cityName string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM workdays WHERE is_custom_city = FALSE AND lower(city_name) = lower($1)`,
		cityName,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count work days for %s: %w", cityName, err)
	}

	return count, nil
}
