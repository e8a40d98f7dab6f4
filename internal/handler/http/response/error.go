package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/worktravel/worktravel-api/internal/domain/auth"
	"github.com/worktravel/worktravel-api/internal/domain/csvimport"
	"github.com/worktravel/worktravel-api/internal/domain/location"
	"github.com/worktravel/worktravel-api/internal/domain/settings"
	"github.com/worktravel/worktravel-api/internal/domain/user"
	"github.com/worktravel/worktravel-api/internal/domain/workday"
	"github.com/worktravel/worktravel-api/internal/pkg/errtrack"
	"github.com/worktravel/worktravel-api/internal/pkg/storage"
	"github.com/worktravel/worktravel-api/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingUserID),
		errors.Is(err, auth.ErrUnknownRole):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Location domain errors
	case errors.Is(err, location.ErrLocationNotFound):
		NotFound(w, "Location not found")
	case errors.Is(err, location.ErrCityNameExists):
		Conflict(w, "A location with this city name already exists")
	case errors.Is(err, location.ErrRegistryNotEmpty):
		Conflict(w, "Locations already exist; seeding only works on an empty registry")
	case errors.Is(err, location.ErrLocationInUse):
		Conflict(w, "Location is used by recorded work days")

	// Settings domain errors
	case errors.Is(err, settings.ErrInvalidSettings):
		BadRequest(w, err.Error(), nil)

	// Work day domain errors
	case errors.Is(err, workday.ErrWorkDayNotFound):
		NotFound(w, "Work day not found")
	case errors.Is(err, workday.ErrUnknownCity),
		errors.Is(err, workday.ErrInvalidCustomCity),
		errors.Is(err, workday.ErrInvalidDate),
		errors.Is(err, workday.ErrInvalidTime),
		errors.Is(err, workday.ErrInvalidStatus),
		errors.Is(err, workday.ErrAmbiguousDay),
		errors.Is(err, workday.ErrEmptyDay):
		BadRequest(w, err.Error(), nil)

	// Import domain errors
	case errors.Is(err, csvimport.ErrImportLogNotFound),
		errors.Is(err, storage.ErrFileNotFound):
		NotFound(w, "Import not found")
	case errors.Is(err, csvimport.ErrFileTooLarge):
		RequestEntityTooLarge(w, err.Error())
	case errors.Is(err, csvimport.ErrEmptyFile),
		errors.Is(err, csvimport.ErrMissingDayColumn),
		errors.Is(err, csvimport.ErrMissingCityColumn),
		errors.Is(err, csvimport.ErrInvalidFileType):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		errtrack.CaptureError(err, map[string]string{"layer": "http"})
		InternalServerError(w, "An unexpected error occurred")
	}
}
