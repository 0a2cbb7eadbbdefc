package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"remindmail/internal/application/dto"
	appErrors "remindmail/internal/pkg/errors"
	"remindmail/internal/pkg/logger"
)

// respondError maps domain errors to the structured error body. Everything
// unclassified is logged and reported as a generic internal error.
func respondError(c echo.Context, log logger.Logger, err error) error {
	var nf *appErrors.NotFoundError
	if errors.As(err, &nf) {
		return c.JSON(http.StatusNotFound, dto.APIErrorResponse{
			ErrorCode: "REMINDER_NOT_FOUND",
			Message:   nf.Error(),
			Details:   map[string]any{"reminderId": nf.ReminderID},
		})
	}

	var ve *appErrors.ValidationError
	if errors.As(err, &ve) {
		details := make(map[string]any, len(ve.Fields))
		for field, messages := range ve.Fields {
			details[field] = messages
		}
		return c.JSON(http.StatusBadRequest, dto.APIErrorResponse{
			ErrorCode: "VALIDATION_ERROR",
			Message:   "Invalid input data",
			Details:   details,
		})
	}

	var pr *appErrors.InvalidPageRequestError
	if errors.As(err, &pr) {
		return c.JSON(http.StatusBadRequest, dto.APIErrorResponse{
			ErrorCode: "INVALID_PAGE_REQUEST",
			Message:   pr.Error(),
			Details:   map[string]any{"page": pr.Page, "size": pr.Size},
		})
	}

	var dr *appErrors.InvalidDateRangeError
	if errors.As(err, &dr) {
		return c.JSON(http.StatusBadRequest, dto.APIErrorResponse{
			ErrorCode: "INVALID_DATE_RANGE",
			Message:   dr.Error(),
			Details: map[string]any{
				"start": dr.Start.Format(time.RFC3339),
				"end":   dr.End.Format(time.RFC3339),
			},
		})
	}

	log.Error("Unexpected error handling request", err)
	return c.JSON(http.StatusInternalServerError, dto.APIErrorResponse{
		ErrorCode: "INTERNAL_SERVER_ERROR",
		Message:   "Unexpected error occurred",
	})
}
