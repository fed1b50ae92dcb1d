package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/khlegal/practice-api/internal/models"
)

func TestDocumentStoreAndGet(t *testing.T) {
	conn := newTestDB(t)
	docs := NewDocumentService(conn, t.TempDir())
	client := seedClient(t, conn)
	matter := seedMatter(t, conn, client.ID, 100)

	doc, err := docs.Store(testCtx(), StoreDocumentInput{
		MatterID:         matter.ID,
		OriginalFilename: "contract.pdf",
		MimeType:         "application/pdf",
		DocumentType:     models.DocContract,
		Description:      "signed copy",
		Content:          strings.NewReader("not really a pdf"),
	})
	require.NoError(t, err)
	require.Equal(t, "contract.pdf", doc.OriginalFilename)
	require.NotEqual(t, "contract.pdf", doc.Filename)
	require.True(t, strings.HasSuffix(doc.Filename, ".pdf"))
	require.Equal(t, int64(len("not really a pdf")), doc.FileSize)

	got, err := docs.Get(testCtx(), doc.ID)
	require.NoError(t, err)
	require.Equal(t, doc.FilePath, got.FilePath)

	list, err := docs.ListByMatter(testCtx(), matter.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestDocumentStoreUnknownMatter(t *testing.T) {
	conn := newTestDB(t)
	docs := NewDocumentService(conn, t.TempDir())

	_, err := docs.Store(testCtx(), StoreDocumentInput{
		MatterID:         55,
		OriginalFilename: "x.txt",
		Content:          strings.NewReader("x"),
	})
	require.ErrorIs(t, err, ErrMatterNotFound)
}

func TestDocumentGetMissing(t *testing.T) {
	conn := newTestDB(t)
	docs := NewDocumentService(conn, t.TempDir())

	_, err := docs.Get(testCtx(), 999)
	require.ErrorIs(t, err, ErrDocumentNotFound)
}
