package http

import (
	"net/http"

	"github.com/worktravel/worktravel-api/internal/domain/report"
	"github.com/worktravel/worktravel-api/internal/domain/user"
	"github.com/worktravel/worktravel-api/internal/handler/http/response"
)

type ReportHandler interface {
	// Monthly report of the caller, or of user_id for admin roles
	GetMonthlyReport(w http.ResponseWriter, r *http.Request)

	// One row per user with records in the month
	GetTeamMonthlyReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// GetMonthlyReport handles GET /reports/monthly
func (h *reportHandlerImpl) GetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	month, year, ok := monthQuery(w, r)
	if !ok {
		return
	}

	req := report.MonthlyReportRequest{
		Month:  month,
		Year:   year,
		UserID: r.URL.Query().Get("user_id"),
	}

	target := p.UserID
	if req.UserID != "" && req.UserID != p.UserID {
		if !p.CanViewAll() {
			response.HandleError(w, user.ErrInsufficientPermissions)
			return
		}
		target = req.UserID
	}

	result, err := h.reportService.Monthly(r.Context(), target, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetTeamMonthlyReport handles GET /reports/monthly/team
func (h *reportHandlerImpl) GetTeamMonthlyReport(w http.ResponseWriter, r *http.Request) {
	month, year, ok := monthQuery(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.TeamMonthly(r.Context(), report.MonthlyReportRequest{Month: month, Year: year})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
