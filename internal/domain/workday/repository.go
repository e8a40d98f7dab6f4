package workday

import (
	"context"
	"time"
)

type WorkDayRepository interface {
	// Upsert creates the day or replaces the one already stored for (UserID, Date).
	Upsert(ctx context.Context, day WorkDay) (WorkDay, error)
	GetByDate(ctx context.Context, userID string, date time.Time) (WorkDay, error)
	// ListByPeriod returns days in [from, to) ordered by date.
	ListByPeriod(ctx context.Context, userID string, from, to time.Time) ([]WorkDay, error)
	Delete(ctx context.Context, userID string, date time.Time) error
	ListUserIDsByPeriod(ctx context.Context, from, to time.Time) ([]string, error)
	CountByCityName(ctx context.Context, cityName string) (int, error)
}
