package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Title string `json:"title,omitempty"`
}

// GlobalErrorHandler renders validation errors as 400, echo HTTP errors with
// their own code and anything else as an opaque 500.
func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve *ValidationError
		if errors.As(err, &ve) {
			_ = c.JSON(http.StatusBadRequest, ErrorResponse{Error: ve.Error(), Title: "validation error"})
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			_ = c.JSON(he.Code, ErrorResponse{Error: fmt.Sprintf("%v", he.Message)})
			return
		}

		slog.Error("Unhandled error", "uri", c.Request().RequestURI, "error", err)
		_ = c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
