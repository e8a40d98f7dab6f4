package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/worktravel/worktravel-api/internal/domain/csvimport"
	"github.com/worktravel/worktravel-api/internal/pkg/database"
)

type importLogRepositoryImpl struct {
	db *database.DB
}

func NewImportLogRepository(db *database.DB) csvimport.ImportLogRepository {
	return &importLogRepositoryImpl{db: db}
}

const importLogColumns = `id, user_id, file_name, archive_path, rows_read, rows_saved, skipped, error_count, created_at`

func scanImportLog(row pgx.Row) (csvimport.ImportLog, error) {
	var l csvimport.ImportLog
	err := row.Scan(
		&l.ID,
		&l.UserID,
		&l.FileName,
		&l.ArchivePath,
		&l.RowsRead,
		&l.RowsSaved,
		&l.Skipped,
		&l.ErrorCount,
		&l.CreatedAt,
	)
	return l, err
}

// Create implements csvimport.ImportLogRepository.
func (r *importLogRepositoryImpl) Create(ctx context.Context, l csvimport.ImportLog) (csvimport.ImportLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO import_logs (id, user_id, file_name, archive_path, rows_read, rows_saved, skipped, error_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING ` + importLogColumns

	created, err := scanImportLog(q.QueryRow(ctx, query,
		l.ID,
		l.UserID,
		l.FileName,
		l.ArchivePath,
		l.RowsRead,
		l.RowsSaved,
		l.Skipped,
		l.ErrorCount,
	))
	if err != nil {
		return csvimport.ImportLog{}, fmt.Errorf("failed to create import log: %w", err)
	}

	return created, nil
}

// GetByID implements csvimport.ImportLogRepository.
func (r *importLogRepositoryImpl) GetByID(ctx context.Context, id string) (csvimport.ImportLog, error) {
	q := GetQuerier(ctx, r.db)

	l, err := scanImportLog(q.QueryRow(ctx, `SELECT `+importLogColumns+` FROM import_logs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return csvimport.ImportLog{}, csvimport.ErrImportLogNotFound
		}
		return csvimport.ImportLog{}, fmt.Errorf("failed to get import log: %w", err)
	}

	return l, nil
}

// ListByUser implements csvimport.ImportLogRepository. Newest first.
func (r *importLogRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]csvimport.ImportLog, error) {
	return r.list(ctx, `SELECT `+importLogColumns+` FROM import_logs WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

// ListCreatedBefore implements csvimport.ImportLogRepository.
func (r *importLogRepositoryImpl) ListCreatedBefore(ctx context.Context, cutoff time.Time) ([]csvimport.ImportLog, error) {
	return r.list(ctx, `SELECT `+importLogColumns+` FROM import_logs WHERE created_at < $1 ORDER BY created_at ASC`, cutoff)
}

func (r *importLogRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]csvimport.ImportLog, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list import logs: %w", err)
	}
	defer rows.Close()

	var logs []csvimport.ImportLog
	for rows.Next() {
		l, err := scanImportLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan import log: %w", err)
		}
		logs = append(logs, l)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return logs, nil
}

// Delete implements csvimport.ImportLogRepository.
func (r *importLogRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM import_logs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete import log: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return csvimport.ErrImportLogNotFound
	}

	return nil
}
