package csvimport

import "time"

type RowErrorResponse struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportResult is returned after every import, including partially failed ones.
type ImportResult struct {
	ImportID  string             `json:"import_id"`
	RowsRead  int                `json:"rows_read"`
	RowsSaved int                `json:"rows_saved"`
	Skipped   int                `json:"skipped"`
	Errors    []RowErrorResponse `json:"errors"`
}

func NewRowErrorResponses(errs []RowError) []RowErrorResponse {
	out := make([]RowErrorResponse, 0, len(errs))
	for _, e := range errs {
		out = append(out, RowErrorResponse{Row: e.Row, Reason: e.Reason})
	}
	return out
}

type ImportLogResponse struct {
	ID         string    `json:"id"`
	FileName   string    `json:"file_name"`
	RowsRead   int       `json:"rows_read"`
	RowsSaved  int       `json:"rows_saved"`
	Skipped    int       `json:"skipped"`
	ErrorCount int       `json:"error_count"`
	Archived   bool      `json:"archived"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewImportLogResponse(l ImportLog) ImportLogResponse {
	return ImportLogResponse{
		ID:         l.ID,
		FileName:   l.FileName,
		RowsRead:   l.RowsRead,
		RowsSaved:  l.RowsSaved,
		Skipped:    l.Skipped,
		ErrorCount: l.ErrorCount,
		Archived:   l.ArchivePath != "",
		CreatedAt:  l.CreatedAt,
	}
}
