package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/khlegal/practice-api/internal/config"
	"github.com/khlegal/practice-api/internal/db"
	"github.com/khlegal/practice-api/pkg/logger"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	logger.Init(logger.Options{Level: "error"})

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(conn))

	cfg := &config.Config{
		Port:      "0",
		Env:       "test",
		JWTSecret: "test-secret",
		UploadDir: t.TempDir(),
		VATRate:   0.24,
		DueDays:   14,
	}
	return New(cfg, conn)
}

func doJSON(e *echo.Echo, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func login(t *testing.T, e *echo.Echo) string {
	t.Helper()
	rec := doJSON(e, http.MethodPost, "/auth/register", "", map[string]any{
		"email": "lawyer@example.com", "password": "password123", "full_name": "Test Lawyer",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(e, http.MethodPost, "/auth/login", "", map[string]any{
		"email": "lawyer@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token, _ := decode(t, rec)["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealth(t *testing.T) {
	e := newTestServer(t)
	rec := doJSON(e, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", decode(t, rec)["status"])
}

func TestAPIRequiresToken(t *testing.T) {
	e := newTestServer(t)
	rec := doJSON(e, http.MethodGet, "/api/clients", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/clients", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	e := newTestServer(t)
	login(t, e)
	rec := doJSON(e, http.MethodPost, "/auth/login", "", map[string]any{
		"email": "lawyer@example.com", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBillingFlow(t *testing.T) {
	e := newTestServer(t)
	token := login(t, e)

	// Client
	rec := doJSON(e, http.MethodPost, "/api/clients", token, map[string]any{
		"name": "Acme Oy", "business_id": "1234567-8", "email": "billing@acme.fi",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	clientID := decode(t, rec)["id"].(float64)

	// Matter gets a sequential reference.
	rec = doJSON(e, http.MethodPost, "/api/matters", token, map[string]any{
		"title": "Share purchase", "client_id": clientID, "matter_type": "corporate",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	matter := decode(t, rec)
	matterID := matter["id"].(float64)
	require.Equal(t, fmt.Sprintf("KH-%d-001", time.Now().Year()), matter["reference"])
	require.EqualValues(t, 250, matter["hourly_rate"])

	// Time entries: one billable at the default rate, one non-billable.
	rec = doJSON(e, http.MethodPost, "/api/time-entries", token, map[string]any{
		"matter_id": matterID, "date": "2024-03-04", "hours": 2, "description": "drafting",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	billableEntry := decode(t, rec)
	require.EqualValues(t, 250, billableEntry["rate"])
	require.EqualValues(t, 500, billableEntry["amount"])

	rec = doJSON(e, http.MethodPost, "/api/time-entries", token, map[string]any{
		"matter_id": matterID, "date": "2024-03-05", "hours": 1, "description": "filing",
		"billable": false,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	adminEntry := decode(t, rec)
	require.EqualValues(t, 0, adminEntry["rate"])

	// Matter totals reflect both entries.
	rec = doJSON(e, http.MethodGet, fmt.Sprintf("/api/matters/%.0f", matterID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	totals := decode(t, rec)
	require.EqualValues(t, 3, totals["total_hours"])
	require.EqualValues(t, 500, totals["total_billable"])

	// Invoice over both entries: the non-billable one is skipped.
	rec = doJSON(e, http.MethodPost, "/api/invoices", token, map[string]any{
		"matter_id":      matterID,
		"time_entry_ids": []any{billableEntry["id"], adminEntry["id"]},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	invoice := decode(t, rec)
	invoiceID := invoice["id"].(float64)
	require.Equal(t, fmt.Sprintf("INV-%d-0001", time.Now().Year()), invoice["invoice_number"])
	require.EqualValues(t, 500, invoice["subtotal"])
	require.InDelta(t, 120, invoice["vat_amount"].(float64), 1e-9)
	require.InDelta(t, 620, invoice["total"].(float64), 1e-9)
	require.Equal(t, "draft", invoice["status"])

	// The billed entry is frozen now.
	rec = doJSON(e, http.MethodDelete, fmt.Sprintf("/api/time-entries/%.0f", billableEntry["id"].(float64)), token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Re-billing the same entry finds nothing billable.
	rec = doJSON(e, http.MethodPost, "/api/invoices", token, map[string]any{
		"matter_id":      matterID,
		"time_entry_ids": []any{billableEntry["id"]},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Status lifecycle: draft cannot jump to paid, draft -> sent -> paid works.
	rec = doJSON(e, http.MethodPatch, fmt.Sprintf("/api/invoices/%.0f/status", invoiceID), token,
		map[string]any{"status": "paid"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(e, http.MethodPatch, fmt.Sprintf("/api/invoices/%.0f/status", invoiceID), token,
		map[string]any{"status": "sent"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodPatch, fmt.Sprintf("/api/invoices/%.0f/status", invoiceID), token,
		map[string]any{"status": "paid", "paid_date": "2024-04-01"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "2024-04-01", decode(t, rec)["paid_date"])

	// Invoice PDF.
	rec = doJSON(e, http.MethodGet, fmt.Sprintf("/api/invoices/%.0f/pdf", invoiceID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
	require.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))

	// Monthly report for the entry month.
	rec = doJSON(e, http.MethodGet, "/api/reports/monthly?year=2024&month=3", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	report := decode(t, rec)
	require.EqualValues(t, 3, report["total_hours"])
	require.EqualValues(t, 2, report["billable_hours"])
	require.EqualValues(t, 500, report["total_amount"])

	rec = doJSON(e, http.MethodGet, "/api/reports/monthly/pdf?year=2024&month=3", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))

	// Client statement over the period.
	rec = doJSON(e, http.MethodGet,
		fmt.Sprintf("/api/clients/%.0f/statement?from=2024-03-01&to=2024-03-31", clientID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stmt := decode(t, rec)
	require.EqualValues(t, 3, stmt["total_hours"])
	require.EqualValues(t, 500, stmt["total_amount"])

	// Dashboard responds even with no recent entries.
	rec = doJSON(e, http.MethodGet, "/api/reports/dashboard", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestDocumentUploadAndDownload(t *testing.T) {
	e := newTestServer(t)
	token := login(t, e)

	rec := doJSON(e, http.MethodPost, "/api/clients", token, map[string]any{"name": "Acme Oy"})
	require.Equal(t, http.StatusCreated, rec.Code)
	clientID := decode(t, rec)["id"].(float64)

	rec = doJSON(e, http.MethodPost, "/api/matters", token, map[string]any{
		"title": "Dispute", "client_id": clientID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	matterID := decode(t, rec)["id"].(float64)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "contract.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("terms and conditions"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("document_type", "contract"))
	require.NoError(t, mw.WriteField("description", "signed copy"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/matters/%.0f/documents", matterID), &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	upload := httptest.NewRecorder()
	e.ServeHTTP(upload, req)
	require.Equal(t, http.StatusCreated, upload.Code, upload.Body.String())
	doc := decode(t, upload)
	require.Equal(t, "contract.txt", doc["original_filename"])
	require.EqualValues(t, len("terms and conditions"), doc["file_size"])

	rec = doJSON(e, http.MethodGet, fmt.Sprintf("/api/matters/%.0f/documents", matterID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 1, decode(t, rec)["total"])

	rec = doJSON(e, http.MethodGet, fmt.Sprintf("/api/documents/%.0f/download", doc["id"].(float64)), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "terms and conditions", rec.Body.String())

	rec = doJSON(e, http.MethodGet, "/api/documents/999/download", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
