package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/khlegal/practice-api/internal/api/metrics"
	"github.com/khlegal/practice-api/internal/pdf"
	"github.com/khlegal/practice-api/internal/services"
)

// ReportHandler handles the dashboard, monthly report, and client statement
// endpoints, each report in JSON and PDF form.
type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Dashboard handles GET /api/reports/dashboard.
func (h *ReportHandler) Dashboard(c echo.Context) error {
	d, err := h.reports.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

func monthlyParams(c echo.Context) (year, month int, err error) {
	now := time.Now()
	year, month = now.Year(), int(now.Month())
	if v := c.QueryParam("year"); v != "" {
		year, err = strconv.Atoi(v)
		if err != nil || year < 2000 || year > 2100 {
			return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "invalid year")
		}
	}
	if v := c.QueryParam("month"); v != "" {
		month, err = strconv.Atoi(v)
		if err != nil || month < 1 || month > 12 {
			return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "invalid month")
		}
	}
	return year, month, nil
}

// Monthly handles GET /api/reports/monthly.
func (h *ReportHandler) Monthly(c echo.Context) error {
	year, month, err := monthlyParams(c)
	if err != nil {
		return err
	}
	report, err := h.reports.Monthly(c.Request().Context(), year, month)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// MonthlyPDF handles GET /api/reports/monthly/pdf.
func (h *ReportHandler) MonthlyPDF(c echo.Context) error {
	year, month, err := monthlyParams(c)
	if err != nil {
		return err
	}
	report, err := h.reports.Monthly(c.Request().Context(), year, month)
	if err != nil {
		return err
	}

	data := pdf.MonthlyReportData{
		Year:          report.Year,
		Month:         report.Month,
		TotalHours:    report.TotalHours,
		BillableHours: report.BillableHours,
		TotalAmount:   report.TotalAmount,
	}
	for _, r := range report.Matters {
		data.Matters = append(data.Matters, pdf.ReportRow{
			Reference:     r.Reference,
			Title:         r.Title,
			ClientName:    r.ClientName,
			Hours:         r.Hours,
			BillableHours: r.BillableHours,
			Amount:        r.Amount,
		})
	}
	blob, err := pdf.MonthlyReport(data)
	if err != nil {
		return err
	}
	metrics.PDFRendersTotal.WithLabelValues("monthly_report").Inc()
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="raportti_%d_%02d.pdf"`, year, month))
	return c.Blob(http.StatusOK, "application/pdf", blob)
}

func statementParams(c echo.Context) (clientID uint, from, to time.Time, err error) {
	clientID, err = idParam(c, "id")
	if err != nil {
		return 0, time.Time{}, time.Time{}, err
	}
	now := time.Now()
	from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to = from.AddDate(0, 1, 0)
	if v := c.QueryParam("from"); v != "" {
		from, err = parseDate(v)
		if err != nil {
			return 0, time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "invalid from")
		}
	}
	if v := c.QueryParam("to"); v != "" {
		to, err = parseDate(v)
		if err != nil {
			return 0, time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "invalid to")
		}
		// Treat "to" as inclusive on the wire.
		to = to.AddDate(0, 0, 1)
	}
	if !to.After(from) {
		return 0, time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "empty period")
	}
	return clientID, from, to, nil
}

// ClientStatement handles GET /api/clients/:id/statement.
func (h *ReportHandler) ClientStatement(c echo.Context) error {
	clientID, from, to, err := statementParams(c)
	if err != nil {
		return err
	}
	stmt, err := h.reports.ClientStatement(c.Request().Context(), clientID, from, to)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"client":             stmt.Client,
		"period_start":       formatDate(stmt.PeriodStart),
		"period_end":         formatDate(stmt.PeriodEnd.AddDate(0, 0, -1)),
		"matters":            stmt.Matters,
		"total_hours":        stmt.TotalHours,
		"total_amount":       stmt.TotalAmount,
		"invoiced_amount":    stmt.InvoicedAmount,
		"outstanding_amount": stmt.OutstandingAmount,
	})
}

// ClientStatementPDF handles GET /api/clients/:id/statement/pdf.
func (h *ReportHandler) ClientStatementPDF(c echo.Context) error {
	clientID, from, to, err := statementParams(c)
	if err != nil {
		return err
	}
	stmt, err := h.reports.ClientStatement(c.Request().Context(), clientID, from, to)
	if err != nil {
		return err
	}

	data := pdf.StatementData{
		ClientName:        stmt.Client.Name,
		ClientBusinessID:  stmt.Client.BusinessID,
		PeriodStart:       stmt.PeriodStart,
		PeriodEnd:         stmt.PeriodEnd.AddDate(0, 0, -1),
		TotalHours:        stmt.TotalHours,
		TotalAmount:       stmt.TotalAmount,
		InvoicedAmount:    stmt.InvoicedAmount,
		OutstandingAmount: stmt.OutstandingAmount,
	}
	for _, r := range stmt.Matters {
		data.Matters = append(data.Matters, pdf.ReportRow{
			Reference:     r.Reference,
			Title:         r.Title,
			ClientName:    r.ClientName,
			Hours:         r.Hours,
			BillableHours: r.BillableHours,
			Amount:        r.Amount,
		})
	}
	blob, err := pdf.ClientStatement(data)
	if err != nil {
		return err
	}
	metrics.PDFRendersTotal.WithLabelValues("client_statement").Inc()
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="asiakasraportti_%d.pdf"`, clientID))
	return c.Blob(http.StatusOK, "application/pdf", blob)
}
