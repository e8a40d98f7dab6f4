package csvimport

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worktravel/worktravel-api/internal/domain/csvimport"
	"github.com/worktravel/worktravel-api/internal/domain/location"
	"github.com/worktravel/worktravel-api/internal/domain/workday"
	"github.com/worktravel/worktravel-api/internal/pkg/storage"
)

type memWorkDays struct {
	days   map[string]workday.WorkDay
	order  []string
	failOn string
}

func newMemWorkDays() *memWorkDays {
	return &memWorkDays{days: map[string]workday.WorkDay{}}
}

func (m *memWorkDays) Upsert(ctx context.Context, day workday.WorkDay) (workday.WorkDay, error) {
	if day.DateKey() == m.failOn {
		return workday.WorkDay{}, errors.New("check constraint violated")
	}
	k := day.UserID + "|" + day.DateKey()
	m.days[k] = day
	m.order = append(m.order, day.DateKey())
	return day, nil
}

func (m *memWorkDays) GetByDate(ctx context.Context, userID string, date time.Time) (workday.WorkDay, error) {
	d, ok := m.days[userID+"|"+date.Format(workday.DateLayout)]
	if !ok {
		return workday.WorkDay{}, workday.ErrWorkDayNotFound
	}
	return d, nil
}

func (m *memWorkDays) ListByPeriod(ctx context.Context, userID string, from, to time.Time) ([]workday.WorkDay, error) {
	return nil, nil
}

func (m *memWorkDays) Delete(ctx context.Context, userID string, date time.Time) error { return nil }

func (m *memWorkDays) ListUserIDsByPeriod(ctx context.Context, from, to time.Time) ([]string, error) {
	return nil, nil
}

func (m *memWorkDays) CountByCityName(ctx context.Context, cityName string) (int, error) { return 0, nil }

type memImportLogs struct {
	logs map[string]csvimport.ImportLog
}

func (m *memImportLogs) Create(ctx context.Context, l csvimport.ImportLog) (csvimport.ImportLog, error) {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	m.logs[l.ID] = l
	return l, nil
}

func (m *memImportLogs) GetByID(ctx context.Context, id string) (csvimport.ImportLog, error) {
	l, ok := m.logs[id]
	if !ok {
		return csvimport.ImportLog{}, csvimport.ErrImportLogNotFound
	}
	return l, nil
}

func (m *memImportLogs) ListByUser(ctx context.Context, userID string) ([]csvimport.ImportLog, error) {
	var out []csvimport.ImportLog
	for _, l := range m.logs {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memImportLogs) ListCreatedBefore(ctx context.Context, cutoff time.Time) ([]csvimport.ImportLog, error) {
	var out []csvimport.ImportLog
	for _, l := range m.logs {
		if l.CreatedAt.Before(cutoff) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memImportLogs) Delete(ctx context.Context, id string) error {
	delete(m.logs, id)
	return nil
}

type directTx struct{}

func (directTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (directTx) WithinSavepoint(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedRegistry struct{}

func (fixedRegistry) Registry(ctx context.Context) (location.Registry, error) {
	return testRegistry(), nil
}

type importFixture struct {
	svc   csvimport.ImportService
	days  *memWorkDays
	logs  *memImportLogs
	files *storage.LocalStorage
}

func newImportFixture(t *testing.T) importFixture {
	t.Helper()
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	f := importFixture{
		days:  newMemWorkDays(),
		logs:  &memImportLogs{logs: map[string]csvimport.ImportLog{}},
		files: files,
	}
	f.svc = NewImportService(f.logs, f.days, fixedRegistry{}, files, directTx{}, 1<<20)
	return f
}

func TestImport_OneValidOneBadDate(t *testing.T) {
	ctx := context.Background()
	f := newImportFixture(t)

	res, err := f.svc.Import(ctx, "u1", "marzo.csv", strings.NewReader("Giorno,Città\n03/03/2025,Milano\n3/3/25,Milano\n"))
	require.NoError(t, err)

	assert.Equal(t, 2, res.RowsRead)
	assert.Equal(t, 1, res.RowsSaved)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 2, res.Errors[0].Row)

	day, err := f.days.GetByDate(ctx, "u1", time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, workday.Work{City: workday.StandardCity{Name: "Milano"}}, day.Variant)

	history, err := f.svc.History(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, res.ImportID, history[0].ID)
	assert.True(t, history[0].Archived)
	assert.Equal(t, 1, history[0].ErrorCount)
}

func TestImport_UpsertsInFileOrderAndReportsSaveFailures(t *testing.T) {
	ctx := context.Background()
	f := newImportFixture(t)
	f.days.failOn = "2025-03-05"

	content := "Giorno;Città;Stato Giornata\n" +
		"04/03/2025;Milano;\n" +
		"05/03/2025;Milano;\n" +
		"04/03/2025;;Ferie\n"
	res, err := f.svc.Import(ctx, "u1", "marzo.CSV", strings.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, 3, res.RowsRead)
	assert.Equal(t, 2, res.RowsSaved)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 2, res.Errors[0].Row)
	assert.Contains(t, res.Errors[0].Reason, "2025-03-05")

	assert.Equal(t, []string{"2025-03-04", "2025-03-04"}, f.days.order)
	day, err := f.days.GetByDate(ctx, "u1", time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, workday.NonWork{Status: workday.StatusFerie}, day.Variant)
}

func TestImport_RejectsFile(t *testing.T) {
	ctx := context.Background()
	f := newImportFixture(t)

	_, err := f.svc.Import(ctx, "u1", "marzo.xlsx", strings.NewReader("Giorno,Città\n"))
	assert.ErrorIs(t, err, csvimport.ErrInvalidFileType)

	_, err = f.svc.Import(ctx, "u1", "marzo.csv", strings.NewReader("Note\nx\n"))
	assert.ErrorIs(t, err, csvimport.ErrMissingDayColumn)

	small := NewImportService(f.logs, f.days, fixedRegistry{}, f.files, directTx{}, 10)
	_, err = small.Import(ctx, "u1", "marzo.csv", strings.NewReader("Giorno,Città\n03/03/2025,Milano\n"))
	assert.ErrorIs(t, err, csvimport.ErrFileTooLarge)

	assert.Empty(t, f.logs.logs)
}

func TestOpenArchiveAndPurge(t *testing.T) {
	ctx := context.Background()
	f := newImportFixture(t)

	content := "Giorno,Città\n03/03/2025,Milano\n"
	res, err := f.svc.Import(ctx, "u1", "marzo.csv", strings.NewReader(content))
	require.NoError(t, err)

	rc, log, err := f.svc.OpenArchive(ctx, "u1", res.ImportID)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, content, string(body))
	assert.Equal(t, "marzo.csv", log.FileName)

	_, _, err = f.svc.OpenArchive(ctx, "u2", res.ImportID)
	assert.ErrorIs(t, err, csvimport.ErrImportLogNotFound)

	purged, err := f.svc.PurgeExpired(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0, purged)

	purged, err = f.svc.PurgeExpired(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, purged)
	assert.Empty(t, f.logs.logs)

	_, err = f.files.Download(ctx, log.ArchivePath)
	assert.ErrorIs(t, err, storage.ErrFileNotFound)
}
