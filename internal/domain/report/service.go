package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	// Monthly builds the report of one user for a calendar month.
	Monthly(ctx context.Context, userID string, req MonthlyReportRequest) (MonthlyReportResponse, error)

	// TeamMonthly builds one row per user with records in the month.
	TeamMonthly(ctx context.Context, req MonthlyReportRequest) (TeamMonthlyReportResponse, error)
}
