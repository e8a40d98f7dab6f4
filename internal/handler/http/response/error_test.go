package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worktravel/worktravel-api/internal/domain/csvimport"
	"github.com/worktravel/worktravel-api/internal/domain/location"
	"github.com/worktravel/worktravel-api/internal/domain/settings"
	"github.com/worktravel/worktravel-api/internal/domain/workday"
	"github.com/worktravel/worktravel-api/internal/pkg/validator"
)

func TestHandleError_StatusCodes(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{validator.ValidationErrors{{Field: "date", Message: "date is required"}}, http.StatusUnprocessableEntity},
		{fmt.Errorf("%w: %w", settings.ErrInvalidSettings, validator.ValidationErrors{{Field: "fuel_price_per_liter", Message: "must be greater than 0"}}), http.StatusUnprocessableEntity},
		{location.ErrLocationNotFound, http.StatusNotFound},
		{location.ErrCityNameExists, http.StatusConflict},
		{location.ErrLocationInUse, http.StatusConflict},
		{fmt.Errorf("%w: %q", workday.ErrUnknownCity, "Torino"), http.StatusBadRequest},
		{workday.ErrWorkDayNotFound, http.StatusNotFound},
		{csvimport.ErrMissingDayColumn, http.StatusBadRequest},
		{csvimport.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		rec := httptest.NewRecorder()
		HandleError(rec, c.err)
		assert.Equal(t, c.code, rec.Code, c.err.Error())

		var body Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.False(t, body.Success)
		require.NotNil(t, body.Error)
	}
}

func TestHandleError_ValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, validator.ValidationErrors{{Field: "month", Message: "month must be between 1 and 12"}})

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "month must be between 1 and 12", body.Error.Details["month"])
}
