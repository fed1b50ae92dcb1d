package models

import "time"

// DocumentType classifies an uploaded file.
type DocumentType string

const (
	DocContract       DocumentType = "contract"
	DocCorrespondence DocumentType = "correspondence"
	DocCourtFiling    DocumentType = "court_filing"
	DocEvidence       DocumentType = "evidence"
	DocMemo           DocumentType = "memo"
	DocInvoice        DocumentType = "invoice"
	DocOther          DocumentType = "other"
)

func (t DocumentType) Valid() bool {
	switch t {
	case DocContract, DocCorrespondence, DocCourtFiling, DocEvidence, DocMemo, DocInvoice, DocOther:
		return true
	}
	return false
}

// Document is file metadata attached to a matter; the bytes live on disk
// under the configured upload directory.
type Document struct {
	ID               uint         `gorm:"primaryKey" json:"id"`
	MatterID         uint         `gorm:"not null;index" json:"matter_id"`
	Filename         string       `gorm:"size:255;not null" json:"filename"`
	OriginalFilename string       `gorm:"size:255;not null" json:"original_filename"`
	FilePath         string       `gorm:"size:500;not null" json:"-"`
	FileSize         int64        `gorm:"not null" json:"file_size"`
	MimeType         string       `gorm:"size:100;not null" json:"mime_type"`
	DocumentType     DocumentType `gorm:"size:30;not null;default:'other'" json:"document_type"`
	Description      string       `json:"description"`
	UploadedAt       time.Time    `gorm:"autoCreateTime" json:"uploaded_at"`
}
