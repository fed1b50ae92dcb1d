package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/khlegal/practice-api/internal/services"
)

// ClientHandler handles the client registry endpoints.
type ClientHandler struct {
	clients *services.ClientService
}

func NewClientHandler(clients *services.ClientService) *ClientHandler {
	return &ClientHandler{clients: clients}
}

type createClientRequest struct {
	Name          string `json:"name" validate:"required"`
	BusinessID    string `json:"business_id"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	ContactPerson string `json:"contact_person"`
	Notes         string `json:"notes"`
}

type updateClientRequest struct {
	Name          *string `json:"name"`
	BusinessID    *string `json:"business_id"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	ContactPerson *string `json:"contact_person"`
	Notes         *string `json:"notes"`
}

// List handles GET /api/clients.
func (h *ClientHandler) List(c echo.Context) error {
	limit, offset := pagination(c)
	clients, total, err := h.clients.List(c.Request().Context(), c.QueryParam("search"), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"items": clients, "total": total})
}

// Create handles POST /api/clients.
func (h *ClientHandler) Create(c echo.Context) error {
	var req createClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	client, err := h.clients.Create(c.Request().Context(), services.ClientInput{
		Name:          req.Name,
		BusinessID:    req.BusinessID,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		ContactPerson: req.ContactPerson,
		Notes:         req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, client)
}

// Get handles GET /api/clients/:id.
func (h *ClientHandler) Get(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	client, err := h.clients.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// Update handles PATCH /api/clients/:id.
func (h *ClientHandler) Update(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req updateClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	client, err := h.clients.Update(c.Request().Context(), id, services.ClientPatch{
		Name:          req.Name,
		BusinessID:    req.BusinessID,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		ContactPerson: req.ContactPerson,
		Notes:         req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}
