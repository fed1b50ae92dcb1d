package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/khlegal/practice-api/internal/models"
)

func TestMatterCreateAllocatesReference(t *testing.T) {
	conn := newTestDB(t)
	matters := NewMatterService(conn, NewSequenceService(conn))
	client := seedClient(t, conn)

	first, err := matters.Create(testCtx(), MatterInput{
		Title: "Share purchase", ClientID: client.ID, HourlyRate: 250,
	})
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("KH-%d-001", time.Now().Year()), first.Reference)
	require.Equal(t, models.MatterActive, first.Status)
	require.Equal(t, models.MatterOther, first.MatterType)

	second, err := matters.Create(testCtx(), MatterInput{
		Title: "Dispute", ClientID: client.ID, MatterType: models.MatterLitigation, HourlyRate: 250,
	})
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("KH-%d-002", time.Now().Year()), second.Reference)
}

func TestMatterCreateUnknownClient(t *testing.T) {
	conn := newTestDB(t)
	matters := NewMatterService(conn, NewSequenceService(conn))

	_, err := matters.Create(testCtx(), MatterInput{Title: "x", ClientID: 77})
	require.ErrorIs(t, err, ErrClientNotFound)
}

func TestMatterTotalsRecomputed(t *testing.T) {
	conn := newTestDB(t)
	matters := NewMatterService(conn, NewSequenceService(conn))
	client := seedClient(t, conn)
	matter := seedMatter(t, conn, client.ID, 100)

	totals, err := matters.Totals(testCtx(), matter.ID)
	require.NoError(t, err)
	require.Zero(t, totals.TotalHours)
	require.Zero(t, totals.TotalBillable)

	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	seedEntry(t, conn, matter.ID, day, 2, 100, true)
	seedEntry(t, conn, matter.ID, day, 1, 100, false)

	totals, err = matters.Totals(testCtx(), matter.ID)
	require.NoError(t, err)
	require.InDelta(t, 3.0, totals.TotalHours, 1e-9)
	require.InDelta(t, 200.0, totals.TotalBillable, 1e-9)
}

func TestMatterListFilters(t *testing.T) {
	conn := newTestDB(t)
	matters := NewMatterService(conn, NewSequenceService(conn))
	client := seedClient(t, conn)
	other := seedClient(t, conn)

	a, err := matters.Create(testCtx(), MatterInput{Title: "a", ClientID: client.ID})
	require.NoError(t, err)
	_, err = matters.Create(testCtx(), MatterInput{Title: "b", ClientID: other.ID})
	require.NoError(t, err)

	archived := models.MatterArchived
	_, err = matters.Update(testCtx(), a.ID, MatterPatch{Status: &archived})
	require.NoError(t, err)

	got, total, err := matters.List(testCtx(), MatterFilter{Status: models.MatterArchived, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, got, 1)
	require.Equal(t, a.ID, got[0].ID)

	got, total, err = matters.List(testCtx(), MatterFilter{ClientID: other.ID, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, other.ID, got[0].ClientID)
}

func TestMatterUpdateKeepsReference(t *testing.T) {
	conn := newTestDB(t)
	matters := NewMatterService(conn, NewSequenceService(conn))
	client := seedClient(t, conn)

	matter, err := matters.Create(testCtx(), MatterInput{Title: "before", ClientID: client.ID})
	require.NoError(t, err)

	title := "after"
	closed := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	updated, err := matters.Update(testCtx(), matter.ID, MatterPatch{Title: &title, ClosedDate: &closed})
	require.NoError(t, err)
	require.Equal(t, "after", updated.Title)
	require.Equal(t, matter.Reference, updated.Reference)
	require.NotNil(t, updated.ClosedDate)
}
