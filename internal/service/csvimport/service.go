package csvimport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/worktravel/worktravel-api/internal/domain/csvimport"
	"github.com/worktravel/worktravel-api/internal/domain/workday"
	"github.com/worktravel/worktravel-api/internal/pkg/storage"
	workdayService "github.com/worktravel/worktravel-api/internal/service/workday"
)

// TxRunner opens a transaction, and savepoints inside it, carried by the context.
type TxRunner interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	WithinSavepoint(ctx context.Context, fn func(ctx context.Context) error) error
}

type importServiceImpl struct {
	importRepo     csvimport.ImportLogRepository
	workDayRepo    workday.WorkDayRepository
	locations      workdayService.RegistryLoader
	storage        storage.FileStorage
	tx             TxRunner
	maxUploadBytes int64
}

func NewImportService(
	importRepo csvimport.ImportLogRepository,
	workDayRepo workday.WorkDayRepository,
	locations workdayService.RegistryLoader,
	storage storage.FileStorage,
	tx TxRunner,
	maxUploadBytes int64,
) csvimport.ImportService {
	return &importServiceImpl{
		importRepo:     importRepo,
		workDayRepo:    workDayRepo,
		locations:      locations,
		storage:        storage,
		tx:             tx,
		maxUploadBytes: maxUploadBytes,
	}
}

// Import stores valid rows in file order inside one transaction. A row whose
// upsert fails is rolled back to its savepoint and reported like a parse error.
func (s *importServiceImpl) Import(ctx context.Context, userID, fileName string, r io.Reader) (csvimport.ImportResult, error) {
	if !strings.EqualFold(filepath.Ext(fileName), ".csv") {
		return csvimport.ImportResult{}, csvimport.ErrInvalidFileType
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxUploadBytes+1))
	if err != nil {
		return csvimport.ImportResult{}, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > s.maxUploadBytes {
		return csvimport.ImportResult{}, csvimport.ErrFileTooLarge
	}

	registry, err := s.locations.Registry(ctx)
	if err != nil {
		return csvimport.ImportResult{}, err
	}

	parsed, err := ParseRows(bytes.NewReader(data), registry)
	if err != nil {
		return csvimport.ImportResult{}, err
	}

	importID := uuid.New().String()
	archivePath := s.archive(ctx, userID, importID, data)

	rowErrors := append([]csvimport.RowError(nil), parsed.Errors...)
	saved := 0

	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		for _, row := range parsed.Rows {
			day := row.Day
			day.UserID = userID

			err := s.tx.WithinSavepoint(txCtx, func(spCtx context.Context) error {
				_, err := s.workDayRepo.Upsert(spCtx, day)
				return err
			})
			if err != nil {
				if txCtx.Err() != nil {
					return txCtx.Err()
				}
				rowErrors = append(rowErrors, csvimport.RowError{
					Row:    row.Row,
					Reason: fmt.Sprintf("failed to save %s: %v", day.DateKey(), err),
				})
				continue
			}
			saved++
		}

		_, err := s.importRepo.Create(txCtx, csvimport.ImportLog{
			ID:          importID,
			UserID:      userID,
			FileName:    fileName,
			ArchivePath: archivePath,
			RowsRead:    parsed.RowsRead,
			RowsSaved:   saved,
			Skipped:     parsed.RowsRead - saved,
			ErrorCount:  len(rowErrors),
		})
		return err
	})
	if err != nil {
		s.discard(ctx, archivePath)
		return csvimport.ImportResult{}, fmt.Errorf("failed to import %s: %w", fileName, err)
	}

	sort.SliceStable(rowErrors, func(i, j int) bool { return rowErrors[i].Row < rowErrors[j].Row })

	slog.Info("CSV import completed",
		"user_id", userID,
		"import_id", importID,
		"file", fileName,
		"rows_read", parsed.RowsRead,
		"rows_saved", saved,
		"errors", len(rowErrors),
	)

	return csvimport.ImportResult{
		ImportID:  importID,
		RowsRead:  parsed.RowsRead,
		RowsSaved: saved,
		Skipped:   parsed.RowsRead - saved,
		Errors:    csvimport.NewRowErrorResponses(rowErrors),
	}, nil
}

// archive keeps a copy of the upload. Failing to archive does not fail the import.
func (s *importServiceImpl) archive(ctx context.Context, userID, importID string, data []byte) string {
	key := path.Join("imports", userID, time.Now().UTC().Format("2006-01"), importID+".csv")
	stored, _, err := s.storage.Upload(ctx, bytes.NewReader(data), key)
	if err != nil {
		slog.Warn("Failed to archive CSV upload", "user_id", userID, "import_id", importID, "error", err)
		return ""
	}
	return stored
}

func (s *importServiceImpl) discard(ctx context.Context, archivePath string) {
	if archivePath == "" {
		return
	}
	if err := s.storage.Delete(ctx, archivePath); err != nil {
		slog.Warn("Failed to remove CSV archive", "path", archivePath, "error", err)
	}
}

func (s *importServiceImpl) History(ctx context.Context, userID string) ([]csvimport.ImportLogResponse, error) {
	logs, err := s.importRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list imports: %w", err)
	}

	responses := make([]csvimport.ImportLogResponse, 0, len(logs))
	for _, l := range logs {
		responses = append(responses, csvimport.NewImportLogResponse(l))
	}
	return responses, nil
}

func (s *importServiceImpl) OpenArchive(ctx context.Context, userID, importID string) (io.ReadCloser, csvimport.ImportLog, error) {
	log, err := s.importRepo.GetByID(ctx, importID)
	if err != nil {
		return nil, csvimport.ImportLog{}, err
	}
	// Other users' imports look the same as missing ones.
	if log.UserID != userID || log.ArchivePath == "" {
		return nil, csvimport.ImportLog{}, csvimport.ErrImportLogNotFound
	}

	rc, err := s.storage.Download(ctx, log.ArchivePath)
	if err != nil {
		return nil, csvimport.ImportLog{}, err
	}
	return rc, log, nil
}

// PurgeExpired removes archives first, so a failed delete leaves the log for the next run.
func (s *importServiceImpl) PurgeExpired(ctx context.Context, cutoff time.Time) (int, error) {
	logs, err := s.importRepo.ListCreatedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to list expired imports: %w", err)
	}

	purged := 0
	for _, l := range logs {
		if l.ArchivePath != "" {
			if err := s.storage.Delete(ctx, l.ArchivePath); err != nil {
				slog.Warn("Failed to delete expired CSV archive", "import_id", l.ID, "error", err)
				continue
			}
		}
		if err := s.importRepo.Delete(ctx, l.ID); err != nil {
			return purged, fmt.Errorf("failed to delete import log %s: %w", l.ID, err)
		}
		purged++
	}

	return purged, nil
}
