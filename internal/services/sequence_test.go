package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/khlegal/practice-api/internal/models"
)

func TestSequenceFormatAndMonotonic(t *testing.T) {
	conn := newTestDB(t)
	seq := NewSequenceService(conn)
	year := time.Now().Year()

	first, err := seq.Allocate(testCtx(), SequenceMatter)
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("KH-%d-001", year), first)

	second, err := seq.Allocate(testCtx(), SequenceMatter)
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("KH-%d-002", year), second)
}

func TestSequenceInvoiceWidth(t *testing.T) {
	conn := newTestDB(t)
	seq := NewSequenceService(conn)
	year := time.Now().Year()

	number, err := seq.Allocate(testCtx(), SequenceInvoice)
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("INV-%d-0001", year), number)
}

func TestSequenceIndependentNamespaces(t *testing.T) {
	conn := newTestDB(t)
	seq := NewSequenceService(conn)

	for i := 0; i < 3; i++ {
		_, err := seq.Allocate(testCtx(), SequenceMatter)
		require.NoError(t, err)
	}
	number, err := seq.Allocate(testCtx(), SequenceInvoice)
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("INV-%d-0001", time.Now().Year()), number)
}

func TestSequenceSeedsFromExistingIdentifiers(t *testing.T) {
	conn := newTestDB(t)
	year := time.Now().Year()

	// Rows created before the counter table was in use.
	client := seedClient(t, conn)
	for _, n := range []int{1, 2, 7} {
		matter := models.Matter{
			Reference:  fmt.Sprintf("KH-%d-%03d", year, n),
			Title:      "legacy",
			ClientID:   client.ID,
			Status:     models.MatterActive,
			MatterType: models.MatterOther,
			OpenedDate: time.Now(),
		}
		require.NoError(t, conn.Create(&matter).Error)
	}

	seq := NewSequenceService(conn)
	number, err := seq.Allocate(testCtx(), SequenceMatter)
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("KH-%d-008", year), number)
}

func TestSequenceNoGapOnRollback(t *testing.T) {
	conn := newTestDB(t)
	seq := NewSequenceService(conn)
	year := time.Now().Year()

	err := conn.Transaction(func(tx *gorm.DB) error {
		if _, err := seq.NextInTx(tx, SequenceMatter, year); err != nil {
			return err
		}
		return fmt.Errorf("boom")
	})
	require.Error(t, err)

	number, err := seq.Allocate(testCtx(), SequenceMatter)
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("KH-%d-001", year), number)
}
