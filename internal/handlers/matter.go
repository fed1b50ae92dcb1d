package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/khlegal/practice-api/internal/models"
	"github.com/khlegal/practice-api/internal/services"
)

// MatterHandler handles matter endpoints, including the per-matter totals
// that are recomputed on every read.
type MatterHandler struct {
	matters *services.MatterService
}

func NewMatterHandler(matters *services.MatterService) *MatterHandler {
	return &MatterHandler{matters: matters}
}

type createMatterRequest struct {
	Title          string  `json:"title" validate:"required"`
	Description    string  `json:"description"`
	ClientID       uint    `json:"client_id" validate:"required"`
	Status         string  `json:"status" validate:"omitempty,oneof=active pending completed archived"`
	MatterType     string  `json:"matter_type" validate:"omitempty,oneof=litigation corporate PIL IP employment other"`
	OpenedDate     string  `json:"opened_date"`
	EstimatedValue float64 `json:"estimated_value"`
	HourlyRate     float64 `json:"hourly_rate"`
}

type updateMatterRequest struct {
	Title          *string  `json:"title"`
	Description    *string  `json:"description"`
	Status         *string  `json:"status" validate:"omitempty,oneof=active pending completed archived"`
	MatterType     *string  `json:"matter_type" validate:"omitempty,oneof=litigation corporate PIL IP employment other"`
	EstimatedValue *float64 `json:"estimated_value"`
	HourlyRate     *float64 `json:"hourly_rate"`
	ClosedDate     *string  `json:"closed_date"`
}

type matterResponse struct {
	ID             uint           `json:"id"`
	Reference      string         `json:"reference"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	ClientID       uint           `json:"client_id"`
	Client         *models.Client `json:"client,omitempty"`
	Status         string         `json:"status"`
	MatterType     string         `json:"matter_type"`
	OpenedDate     string         `json:"opened_date"`
	ClosedDate     *string        `json:"closed_date"`
	EstimatedValue float64        `json:"estimated_value"`
	HourlyRate     float64        `json:"hourly_rate"`
	TotalHours     float64        `json:"total_hours"`
	TotalBillable  float64        `json:"total_billable"`
}

func toMatterResponse(m *models.Matter, totals services.MatterTotals) matterResponse {
	resp := matterResponse{
		ID:             m.ID,
		Reference:      m.Reference,
		Title:          m.Title,
		Description:    m.Description,
		ClientID:       m.ClientID,
		Client:         m.Client,
		Status:         string(m.Status),
		MatterType:     string(m.MatterType),
		OpenedDate:     formatDate(m.OpenedDate),
		EstimatedValue: m.EstimatedValue,
		HourlyRate:     m.HourlyRate,
		TotalHours:     totals.TotalHours,
		TotalBillable:  totals.TotalBillable,
	}
	if m.ClosedDate != nil {
		closed := formatDate(*m.ClosedDate)
		resp.ClosedDate = &closed
	}
	return resp
}

// List handles GET /api/matters.
func (h *MatterHandler) List(c echo.Context) error {
	limit, offset := pagination(c)
	filter := services.MatterFilter{Limit: limit, Offset: offset}
	if v := c.QueryParam("status"); v != "" {
		filter.Status = models.MatterStatus(v)
	}
	if v := c.QueryParam("client_id"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			filter.ClientID = uint(id)
		}
	}
	matters, total, err := h.matters.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	items := make([]matterResponse, 0, len(matters))
	for i := range matters {
		totals, err := h.matters.Totals(c.Request().Context(), matters[i].ID)
		if err != nil {
			return err
		}
		items = append(items, toMatterResponse(&matters[i], totals))
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items, "total": total})
}

// Create handles POST /api/matters.
func (h *MatterHandler) Create(c echo.Context) error {
	var req createMatterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	in := services.MatterInput{
		Title:          req.Title,
		Description:    req.Description,
		ClientID:       req.ClientID,
		Status:         models.MatterStatus(req.Status),
		MatterType:     models.MatterType(req.MatterType),
		EstimatedValue: req.EstimatedValue,
		HourlyRate:     req.HourlyRate,
	}
	if in.HourlyRate == 0 {
		in.HourlyRate = 250
	}
	if req.OpenedDate != "" {
		opened, err := parseDate(req.OpenedDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid opened_date")
		}
		in.OpenedDate = &opened
	}
	matter, err := h.matters.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toMatterResponse(matter, services.MatterTotals{}))
}

// Get handles GET /api/matters/:id.
func (h *MatterHandler) Get(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	matter, err := h.matters.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	totals, err := h.matters.Totals(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMatterResponse(matter, totals))
}

// Update handles PATCH /api/matters/:id.
func (h *MatterHandler) Update(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req updateMatterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	patch := services.MatterPatch{
		Title:          req.Title,
		Description:    req.Description,
		EstimatedValue: req.EstimatedValue,
		HourlyRate:     req.HourlyRate,
	}
	if req.Status != nil {
		status := models.MatterStatus(*req.Status)
		patch.Status = &status
	}
	if req.MatterType != nil {
		matterType := models.MatterType(*req.MatterType)
		patch.MatterType = &matterType
	}
	if req.ClosedDate != nil {
		closed, err := parseDate(*req.ClosedDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid closed_date")
		}
		patch.ClosedDate = &closed
	}
	matter, err := h.matters.Update(c.Request().Context(), id, patch)
	if err != nil {
		return err
	}
	totals, err := h.matters.Totals(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMatterResponse(matter, totals))
}
