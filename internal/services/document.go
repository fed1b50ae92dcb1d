package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/khlegal/practice-api/internal/models"
)

// DocumentService stores uploaded files under a per-matter directory and
// keeps their metadata in the documents table.
type DocumentService struct {
	db        *gorm.DB
	uploadDir string
}

func NewDocumentService(db *gorm.DB, uploadDir string) *DocumentService {
	return &DocumentService{db: db, uploadDir: uploadDir}
}

type StoreDocumentInput struct {
	MatterID         uint
	OriginalFilename string
	MimeType         string
	DocumentType     models.DocumentType
	Description      string
	Content          io.Reader
}

// Store writes the file to disk with a generated name and records the
// metadata. The file is removed again if the insert fails.
func (s *DocumentService) Store(ctx context.Context, in StoreDocumentInput) (*models.Document, error) {
	var matter models.Matter
	if err := s.db.WithContext(ctx).First(&matter, in.MatterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatterNotFound
		}
		return nil, err
	}

	docType := in.DocumentType
	if docType == "" {
		docType = models.DocOther
	}

	filename := uuid.NewString() + filepath.Ext(in.OriginalFilename)
	dir := filepath.Join(s.uploadDir, fmt.Sprint(in.MatterID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	size, err := io.Copy(f, in.Content)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("write file: %w", err)
	}

	mime := in.MimeType
	if mime == "" {
		mime = "application/octet-stream"
	}
	doc := models.Document{
		MatterID:         in.MatterID,
		Filename:         filename,
		OriginalFilename: in.OriginalFilename,
		FilePath:         path,
		FileSize:         size,
		MimeType:         mime,
		DocumentType:     docType,
		Description:      in.Description,
	}
	if err := s.db.WithContext(ctx).Create(&doc).Error; err != nil {
		_ = os.Remove(path)
		return nil, err
	}
	return &doc, nil
}

func (s *DocumentService) ListByMatter(ctx context.Context, matterID uint) ([]models.Document, error) {
	var docs []models.Document
	err := s.db.WithContext(ctx).
		Where("matter_id = ?", matterID).
		Order("uploaded_at desc").Find(&docs).Error
	return docs, err
}

// Get returns document metadata; the file itself may be streamed from
// doc.FilePath. Missing files on disk surface as ErrDocumentNotFound so the
// caller can treat a half-deleted document uniformly.
func (s *DocumentService) Get(ctx context.Context, id uint) (*models.Document, error) {
	var doc models.Document
	if err := s.db.WithContext(ctx).First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	if _, err := os.Stat(doc.FilePath); err != nil {
		return nil, ErrDocumentNotFound
	}
	return &doc, nil
}
