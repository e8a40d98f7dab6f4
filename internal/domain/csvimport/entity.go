package csvimport

import "time"

// ImportLog records one uploaded file and its outcome.
type ImportLog struct {
	ID          string
	UserID      string
	FileName    string
	ArchivePath string // storage key of the archived upload, empty once purged
	RowsRead    int
	RowsSaved   int
	Skipped     int
	ErrorCount  int
	CreatedAt   time.Time
}

// RowError explains why a data row was not saved. Row is 1-based, header excluded.
type RowError struct {
	Row    int
	Reason string
}
