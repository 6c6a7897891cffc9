package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   ErrorResponse
	}{
		{
			name:       "validation error",
			err:        NewValidation("min_f1 must be a number"),
			wantStatus: http.StatusBadRequest,
			wantBody:   ErrorResponse{Error: "min_f1 must be a number", Title: "validation error"},
		},
		{
			name:       "wrapped validation error",
			err:        fmt.Errorf("load: %w", NewValidationWrap("bad config", errors.New("yaml: line 2"))),
			wantStatus: http.StatusBadRequest,
			wantBody:   ErrorResponse{Error: "bad config: yaml: line 2", Title: "validation error"},
		},
		{
			name:       "http error",
			err:        echo.NewHTTPError(http.StatusNotFound, "no record at index 4"),
			wantStatus: http.StatusNotFound,
			wantBody:   ErrorResponse{Error: "no record at index 4"},
		},
		{
			name:       "unknown error",
			err:        errors.New("connection reset by peer"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   ErrorResponse{Error: "internal server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/results", nil), rec)

			GlobalErrorHandler()(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestGlobalErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.String(http.StatusOK, "partial"))

	GlobalErrorHandler()(errors.New("late failure"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
}
