package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/khlegal/practice-api/internal/api/metrics"
	"github.com/khlegal/practice-api/internal/models"
	"github.com/khlegal/practice-api/internal/services"
)

// TimeEntryHandler handles the time ledger endpoints.
type TimeEntryHandler struct {
	entries *services.TimeEntryService
}

func NewTimeEntryHandler(entries *services.TimeEntryService) *TimeEntryHandler {
	return &TimeEntryHandler{entries: entries}
}

type createTimeEntryRequest struct {
	MatterID    uint    `json:"matter_id" validate:"required"`
	Date        string  `json:"date" validate:"required"`
	Hours       float64 `json:"hours" validate:"required,gt=0"`
	Description string  `json:"description" validate:"required"`
	Billable    *bool   `json:"billable"`
	Rate        float64 `json:"rate" validate:"omitempty,gte=0"`
}

type updateTimeEntryRequest struct {
	Date        *string  `json:"date"`
	Hours       *float64 `json:"hours" validate:"omitempty,gt=0"`
	Description *string  `json:"description"`
	Billable    *bool    `json:"billable"`
	Rate        *float64 `json:"rate" validate:"omitempty,gte=0"`
}

type timeEntryResponse struct {
	ID          uint    `json:"id"`
	MatterID    uint    `json:"matter_id"`
	Date        string  `json:"date"`
	Hours       float64 `json:"hours"`
	Description string  `json:"description"`
	Billable    bool    `json:"billable"`
	Rate        float64 `json:"rate"`
	Billed      bool    `json:"billed"`
	InvoiceID   *uint   `json:"invoice_id"`
	Amount      float64 `json:"amount"`
}

func toTimeEntryResponse(e *models.TimeEntry) timeEntryResponse {
	return timeEntryResponse{
		ID:          e.ID,
		MatterID:    e.MatterID,
		Date:        formatDate(e.Date),
		Hours:       e.Hours,
		Description: e.Description,
		Billable:    e.Billable,
		Rate:        e.Rate,
		Billed:      e.Billed,
		InvoiceID:   e.InvoiceID,
		Amount:      e.Amount(),
	}
}

// List handles GET /api/time-entries.
func (h *TimeEntryHandler) List(c echo.Context) error {
	limit, offset := pagination(c)
	filter := services.TimeEntryFilter{Limit: limit, Offset: offset}
	if v := c.QueryParam("matter_id"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			filter.MatterID = uint(id)
		}
	}
	entries, total, err := h.entries.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	items := make([]timeEntryResponse, 0, len(entries))
	for i := range entries {
		items = append(items, toTimeEntryResponse(&entries[i]))
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items, "total": total})
}

// Create handles POST /api/time-entries.
func (h *TimeEntryHandler) Create(c echo.Context) error {
	var req createTimeEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date")
	}
	billable := true
	if req.Billable != nil {
		billable = *req.Billable
	}
	entry, err := h.entries.Create(c.Request().Context(), services.TimeEntryInput{
		MatterID:    req.MatterID,
		Date:        date,
		Hours:       req.Hours,
		Description: req.Description,
		Billable:    billable,
		Rate:        req.Rate,
	})
	if err != nil {
		return err
	}
	metrics.TimeEntriesCreatedTotal.WithLabelValues(strconv.FormatBool(billable)).Inc()
	return c.JSON(http.StatusCreated, toTimeEntryResponse(entry))
}

// Update handles PATCH /api/time-entries/:id.
func (h *TimeEntryHandler) Update(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req updateTimeEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	patch := services.TimeEntryPatch{
		Hours:       req.Hours,
		Description: req.Description,
		Billable:    req.Billable,
		Rate:        req.Rate,
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid date")
		}
		patch.Date = &date
	}
	entry, err := h.entries.Update(c.Request().Context(), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTimeEntryResponse(entry))
}

// Delete handles DELETE /api/time-entries/:id.
func (h *TimeEntryHandler) Delete(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.entries.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "deleted"})
}
