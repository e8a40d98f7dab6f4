package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/worktravel/worktravel-api/internal/domain/location"
	"github.com/worktravel/worktravel-api/internal/handler/http/response"
	"github.com/worktravel/worktravel-api/internal/service/master"
)

type MasterHandler interface {
	// Location handlers
	CreateLocation(w http.ResponseWriter, r *http.Request)
	GetLocation(w http.ResponseWriter, r *http.Request)
	ListLocations(w http.ResponseWriter, r *http.Request)
	UpdateLocation(w http.ResponseWriter, r *http.Request)
	DeleteLocation(w http.ResponseWriter, r *http.Request)
	SeedLocations(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	masterService master.MasterService
}

func NewMasterHandler(masterService master.MasterService) MasterHandler {
	return &masterHandlerImpl{
		masterService: masterService,
	}
}

// ==================== LOCATION HANDLERS ====================

func (h *masterHandlerImpl) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var req location.CreateLocationRequest

	// Decode request body
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.masterService.CreateLocation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Location created successfully", result)
}

func (h *masterHandlerImpl) GetLocation(w http.ResponseWriter, r *http.Request) {
	cityName := chi.URLParam(r, "cityName")

	result, err := h.masterService.GetLocation(r.Context(), cityName)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListLocations(w http.ResponseWriter, r *http.Request) {
	results, err := h.masterService.ListLocations(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *masterHandlerImpl) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	var req location.UpdateLocationRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CityName = chi.URLParam(r, "cityName")

	result, err := h.masterService.UpdateLocation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Location updated successfully", result)
}

func (h *masterHandlerImpl) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	cityName := chi.URLParam(r, "cityName")

	if err := h.masterService.DeleteLocation(r.Context(), cityName); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Location deleted successfully"})
}

func (h *masterHandlerImpl) SeedLocations(w http.ResponseWriter, r *http.Request) {
	results, err := h.masterService.SeedDefaults(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Default locations created", results)
}
