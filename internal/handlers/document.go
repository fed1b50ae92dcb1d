package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/khlegal/practice-api/internal/models"
	"github.com/khlegal/practice-api/internal/services"
)

// DocumentHandler handles document upload, listing, and download.
type DocumentHandler struct {
	documents *services.DocumentService
}

func NewDocumentHandler(documents *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

// Upload handles POST /api/matters/:id/documents with a multipart "file"
// field plus optional document_type and description fields.
func (h *DocumentHandler) Upload(c echo.Context) error {
	matterID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read file")
	}
	defer src.Close()

	doc, err := h.documents.Store(c.Request().Context(), services.StoreDocumentInput{
		MatterID:         matterID,
		OriginalFilename: fileHeader.Filename,
		MimeType:         fileHeader.Header.Get("Content-Type"),
		DocumentType:     models.DocumentType(c.FormValue("document_type")),
		Description:      c.FormValue("description"),
		Content:          src,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, doc)
}

// List handles GET /api/matters/:id/documents.
func (h *DocumentHandler) List(c echo.Context) error {
	matterID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	docs, err := h.documents.ListByMatter(c.Request().Context(), matterID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"items": docs, "total": len(docs)})
}

// Download handles GET /api/documents/:id/download, streaming the stored
// file under its original name.
func (h *DocumentHandler) Download(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	doc, err := h.documents.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentLength, strconv.FormatInt(doc.FileSize, 10))
	c.Response().Header().Set(echo.HeaderContentType, doc.MimeType)
	return c.Attachment(doc.FilePath, doc.OriginalFilename)
}
