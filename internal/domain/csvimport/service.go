package csvimport

import (
	"context"
	"io"
	"time"
)

type ImportService interface {
	// Import parses r and upserts every valid row for userID in file order.
	Import(ctx context.Context, userID, fileName string, r io.Reader) (ImportResult, error)
	History(ctx context.Context, userID string) ([]ImportLogResponse, error)
	// OpenArchive returns the uploaded file of one of userID's imports.
	OpenArchive(ctx context.Context, userID, importID string) (io.ReadCloser, ImportLog, error)
	// PurgeExpired deletes logs and archives created before cutoff.
	PurgeExpired(ctx context.Context, cutoff time.Time) (int, error)
}
