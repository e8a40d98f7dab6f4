package csvimport

import (
	"context"
	"time"
)

type ImportLogRepository interface {
	Create(ctx context.Context, log ImportLog) (ImportLog, error)
	GetByID(ctx context.Context, id string) (ImportLog, error)
	ListByUser(ctx context.Context, userID string) ([]ImportLog, error)
	ListCreatedBefore(ctx context.Context, cutoff time.Time) ([]ImportLog, error)
	Delete(ctx context.Context, id string) error
}
