package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/worktravel/worktravel-api/internal/domain/auth"
	"github.com/worktravel/worktravel-api/internal/domain/user"
	"github.com/worktravel/worktravel-api/internal/domain/workday"
	"github.com/worktravel/worktravel-api/internal/handler/http/middleware"
	"github.com/worktravel/worktravel-api/internal/handler/http/response"
)

type WorkDayHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Preview(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type workDayHandlerImpl struct {
	workDayService workday.WorkDayService
}

func NewWorkDayHandler(workDayService workday.WorkDayService) WorkDayHandler {
	return &workDayHandlerImpl{
		workDayService: workDayService,
	}
}

// principal returns the caller, writing 401 when the auth middleware did not run.
func principal(w http.ResponseWriter, r *http.Request) (user.Principal, bool) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
	}
	return p, ok
}

// monthQuery reads the month and year query parameters.
func monthQuery(w http.ResponseWriter, r *http.Request) (month, year int, ok bool) {
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		response.BadRequest(w, "invalid month parameter", nil)
		return 0, 0, false
	}

	year, err = strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "invalid year parameter", nil)
		return 0, 0, false
	}

	return month, year, true
}

// List handles GET /workdays?month=&year=
func (h *workDayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	month, year, ok := monthQuery(w, r)
	if !ok {
		return
	}

	results, err := h.workDayService.List(r.Context(), p.UserID, workday.ListWorkDaysRequest{Month: month, Year: year})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Create handles POST /workdays. An existing day with the same date is replaced.
func (h *workDayHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req workday.SaveWorkDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.workDayService.Save(r.Context(), p.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Work day saved successfully", result)
}

func (h *workDayHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	var req workday.SaveWorkDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.workDayService.Preview(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *workDayHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	result, err := h.workDayService.Get(r.Context(), p.UserID, chi.URLParam(r, "date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update handles PUT /workdays/{date}; the path date wins over the body.
func (h *workDayHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req workday.SaveWorkDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Date = chi.URLParam(r, "date")

	result, err := h.workDayService.Save(r.Context(), p.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work day saved successfully", result)
}

func (h *workDayHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	if err := h.workDayService.Delete(r.Context(), p.UserID, chi.URLParam(r, "date")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Work day deleted successfully"})
}
