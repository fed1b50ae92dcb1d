package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/khlegal/practice-api/internal/api/metrics"
	"github.com/khlegal/practice-api/internal/models"
	"github.com/khlegal/practice-api/internal/pdf"
	"github.com/khlegal/practice-api/internal/services"
)

// InvoiceHandler handles invoice endpoints and invoice PDF rendering.
type InvoiceHandler struct {
	invoices *services.InvoiceService
}

func NewInvoiceHandler(invoices *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

type createInvoiceRequest struct {
	MatterID     uint    `json:"matter_id" validate:"required"`
	TimeEntryIDs []uint  `json:"time_entry_ids" validate:"required,min=1"`
	DueDays      int     `json:"due_days" validate:"omitempty,gt=0"`
	VATRate      float64 `json:"vat_rate" validate:"omitempty,gte=0,lt=1"`
	Notes        string  `json:"notes"`
}

type updateInvoiceStatusRequest struct {
	Status   string `json:"status" validate:"required,oneof=draft sent paid overdue"`
	PaidDate string `json:"paid_date"`
}

type invoiceResponse struct {
	ID            uint                `json:"id"`
	InvoiceNumber string              `json:"invoice_number"`
	MatterID      uint                `json:"matter_id"`
	IssueDate     string              `json:"issue_date"`
	DueDate       string              `json:"due_date"`
	Subtotal      float64             `json:"subtotal"`
	VATRate       float64             `json:"vat_rate"`
	VATAmount     float64             `json:"vat_amount"`
	Total         float64             `json:"total"`
	Status        string              `json:"status"`
	PaidDate      *string             `json:"paid_date"`
	Notes         string              `json:"notes"`
	TimeEntries   []timeEntryResponse `json:"time_entries,omitempty"`
}

func toInvoiceResponse(inv *models.Invoice, withEntries bool) invoiceResponse {
	resp := invoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		MatterID:      inv.MatterID,
		IssueDate:     formatDate(inv.IssueDate),
		DueDate:       formatDate(inv.DueDate),
		Subtotal:      inv.Subtotal,
		VATRate:       inv.VATRate,
		VATAmount:     inv.VATAmount,
		Total:         inv.Total,
		Status:        string(inv.Status),
		Notes:         inv.Notes,
	}
	if inv.PaidDate != nil {
		paid := formatDate(*inv.PaidDate)
		resp.PaidDate = &paid
	}
	if withEntries {
		resp.TimeEntries = make([]timeEntryResponse, 0, len(inv.TimeEntries))
		for i := range inv.TimeEntries {
			resp.TimeEntries = append(resp.TimeEntries, toTimeEntryResponse(&inv.TimeEntries[i]))
		}
	}
	return resp
}

// List handles GET /api/invoices.
func (h *InvoiceHandler) List(c echo.Context) error {
	limit, offset := pagination(c)
	invoices, total, err := h.invoices.List(c.Request().Context(), limit, offset)
	if err != nil {
		return err
	}
	items := make([]invoiceResponse, 0, len(invoices))
	for i := range invoices {
		items = append(items, toInvoiceResponse(&invoices[i], false))
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items, "total": total})
}

// Create handles POST /api/invoices. Over-selected entries that are not
// billable, already billed, or belong to another matter are skipped; only an
// empty qualifying set is an error.
func (h *InvoiceHandler) Create(c echo.Context) error {
	var req createInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	invoice, err := h.invoices.Create(c.Request().Context(), services.CreateInvoiceInput{
		MatterID:     req.MatterID,
		TimeEntryIDs: req.TimeEntryIDs,
		DueDays:      req.DueDays,
		VATRate:      req.VATRate,
		Notes:        req.Notes,
	})
	if err != nil {
		return err
	}
	metrics.InvoicesIssuedTotal.Inc()
	return c.JSON(http.StatusCreated, toInvoiceResponse(invoice, true))
}

// Get handles GET /api/invoices/:id.
func (h *InvoiceHandler) Get(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	invoice, err := h.invoices.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toInvoiceResponse(invoice, true))
}

// UpdateStatus handles PATCH /api/invoices/:id/status.
func (h *InvoiceHandler) UpdateStatus(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req updateInvoiceStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	var paidDate *time.Time
	if req.PaidDate != "" {
		d, err := parseDate(req.PaidDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid paid_date")
		}
		paidDate = &d
	}
	invoice, err := h.invoices.UpdateStatus(c.Request().Context(), id, models.InvoiceStatus(req.Status), paidDate)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toInvoiceResponse(invoice, false))
}

// PDF handles GET /api/invoices/:id/pdf.
func (h *InvoiceHandler) PDF(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	invoice, err := h.invoices.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	data := pdf.InvoiceData{
		InvoiceNumber: invoice.InvoiceNumber,
		IssueDate:     invoice.IssueDate,
		DueDate:       invoice.DueDate,
		Subtotal:      invoice.Subtotal,
		VATRate:       invoice.VATRate,
		VATAmount:     invoice.VATAmount,
		Total:         invoice.Total,
		Notes:         invoice.Notes,
	}
	if invoice.Matter != nil {
		data.MatterReference = invoice.Matter.Reference
		data.MatterTitle = invoice.Matter.Title
		if invoice.Matter.Client != nil {
			data.ClientName = invoice.Matter.Client.Name
			data.ClientAddress = invoice.Matter.Client.Address
			data.ClientBusinessID = invoice.Matter.Client.BusinessID
		}
	}
	for _, e := range invoice.TimeEntries {
		data.LineItems = append(data.LineItems, pdf.LineItem{
			Date:        e.Date,
			Description: e.Description,
			Hours:       e.Hours,
			Rate:        e.Rate,
			Amount:      e.Hours * e.Rate,
		})
	}

	blob, err := pdf.Invoice(data)
	if err != nil {
		return err
	}
	metrics.PDFRendersTotal.WithLabelValues("invoice").Inc()
	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="lasku_`+invoice.InvoiceNumber+`.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", blob)
}
