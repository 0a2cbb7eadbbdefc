package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"remindmail/internal/application/dto"
	"remindmail/internal/application/service"
	"remindmail/internal/interfaces/api/middleware"
	appErrors "remindmail/internal/pkg/errors"
	"remindmail/internal/pkg/logger"
)

const (
	defaultPageSize = 20
	dateLayout      = "2006-01-02"
)

// ReminderHandler exposes the reminder lifecycle over HTTP.
type ReminderHandler struct {
	svc service.ReminderService
	log logger.Logger
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(svc service.ReminderService, log logger.Logger) *ReminderHandler {
	return &ReminderHandler{svc: svc, log: log}
}

func (h *ReminderHandler) identity(c echo.Context) (dto.Identity, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		// RequireIdentity guards every route; reaching here is a wiring bug.
		return dto.Identity{}, fmt.Errorf("%w: missing identity in request context", appErrors.ErrInternalServer)
	}
	return identity, nil
}

func reminderID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, appErrors.NewValidation("reminderId", "must be a positive integer")
	}
	return uint(id), nil
}

func pageRequest(c echo.Context) (dto.PageRequest, error) {
	page := dto.PageRequest{Page: 0, Size: defaultPageSize}
	rawPage := c.QueryParam("page")
	rawSize := c.QueryParam("size")

	if rawPage != "" {
		n, err := strconv.Atoi(rawPage)
		if err != nil {
			return page, &appErrors.InvalidPageRequestError{Page: rawPage, Size: rawSize}
		}
		page.Page = n
	}
	if rawSize != "" {
		n, err := strconv.Atoi(rawSize)
		if err != nil {
			return page, &appErrors.InvalidPageRequestError{Page: rawPage, Size: rawSize}
		}
		page.Size = n
	}
	page.Desc = strings.EqualFold(c.QueryParam("sort"), "desc")
	return page, nil
}

// Create handles POST /api/v1/reminder.
func (h *ReminderHandler) Create(c echo.Context) error {
	identity, err := h.identity(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	var req dto.CreateReminderRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, h.log, appErrors.NewValidation("body", "must be a valid reminder payload"))
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, h.log, err)
	}
	if !req.RemindAt.After(time.Now()) {
		return respondError(c, h.log, appErrors.NewValidation("remindAt", "must be in the future"))
	}

	res, err := h.svc.Create(c.Request().Context(), identity, req)
	if err != nil {
		return respondError(c, h.log, err)
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/v1/reminder/%d", res.ID))
	return c.JSON(http.StatusCreated, res)
}

// Update handles PATCH /api/v1/reminder/:id. Absent fields are left unchanged.
func (h *ReminderHandler) Update(c echo.Context) error {
	identity, err := h.identity(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	id, err := reminderID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	var req dto.UpdateReminderRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, h.log, appErrors.NewValidation("body", "must be a valid reminder payload"))
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, h.log, err)
	}
	if req.RemindAt != nil && !req.RemindAt.After(time.Now()) {
		return respondError(c, h.log, appErrors.NewValidation("remindAt", "must be in the future"))
	}

	res, err := h.svc.Update(c.Request().Context(), identity, id, req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Delete handles DELETE /api/v1/reminder/:id.
func (h *ReminderHandler) Delete(c echo.Context) error {
	identity, err := h.identity(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	id, err := reminderID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	if err := h.svc.Delete(c.Request().Context(), identity, id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetByID handles GET /api/v1/reminder/:id.
func (h *ReminderHandler) GetByID(c echo.Context) error {
	identity, err := h.identity(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	id, err := reminderID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	res, err := h.svc.GetByID(c.Request().Context(), identity, id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}

// FindAllSortedByTitle handles GET /api/v1/reminder/sort/title.
func (h *ReminderHandler) FindAllSortedByTitle(c echo.Context) error {
	identity, err := h.identity(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	page, err := pageRequest(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	res, err := h.svc.FindAllSortedByTitle(c.Request().Context(), identity, page)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}

// FindAllSortedByDate handles GET /api/v1/reminder/sort/date.
func (h *ReminderHandler) FindAllSortedByDate(c echo.Context) error {
	identity, err := h.identity(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	page, err := pageRequest(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	res, err := h.svc.FindAllSortedByDate(c.Request().Context(), identity, page)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}

// FindByTitle handles GET /api/v1/reminder?title=...
func (h *ReminderHandler) FindByTitle(c echo.Context) error {
	identity, err := h.identity(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	title := strings.TrimSpace(c.QueryParam("title"))
	if title == "" {
		return respondError(c, h.log, appErrors.NewValidation("title", "must not be empty"))
	}
	page, err := pageRequest(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	res, err := h.svc.FindByTitle(c.Request().Context(), identity, title, page)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}

// FindByDate handles GET /api/v1/reminder/search-by-date?date=YYYY-MM-DD by
// expanding the date to the whole UTC day.
func (h *ReminderHandler) FindByDate(c echo.Context) error {
	identity, err := h.identity(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	date, err := time.ParseInLocation(dateLayout, c.QueryParam("date"), time.UTC)
	if err != nil {
		return respondError(c, h.log, appErrors.NewValidation("date", "must be a date in YYYY-MM-DD format"))
	}
	page, err := pageRequest(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	// The range lookup is inclusive on both ends, so stop just short of the
	// next day's midnight.
	start := date
	end := date.AddDate(0, 0, 1).Add(-time.Nanosecond)
	res, err := h.svc.FindByDateRange(c.Request().Context(), identity, start, end, page)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}

// FindByDateRange handles GET /api/v1/reminder/filter/date?start=...&end=...
func (h *ReminderHandler) FindByDateRange(c echo.Context) error {
	identity, err := h.identity(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	start, err := time.Parse(time.RFC3339, c.QueryParam("start"))
	if err != nil {
		return respondError(c, h.log, appErrors.NewValidation("start", "must be an RFC 3339 timestamp"))
	}
	end, err := time.Parse(time.RFC3339, c.QueryParam("end"))
	if err != nil {
		return respondError(c, h.log, appErrors.NewValidation("end", "must be an RFC 3339 timestamp"))
	}
	page, err := pageRequest(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	res, err := h.svc.FindByDateRange(c.Request().Context(), identity, start, end, page)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}
