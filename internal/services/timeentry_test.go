package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimeEntryRateDefaults(t *testing.T) {
	conn := newTestDB(t)
	entries := NewTimeEntryService(conn)
	client := seedClient(t, conn)
	matter := seedMatter(t, conn, client.ID, 180)
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	// No explicit rate: the matter's default applies.
	entry, err := entries.Create(testCtx(), TimeEntryInput{
		MatterID: matter.ID, Date: day, Hours: 1.5, Description: "drafting", Billable: true,
	})
	require.NoError(t, err)
	require.InDelta(t, 180.0, entry.Rate, 1e-9)
	require.InDelta(t, 270.0, entry.Amount(), 1e-9)

	// Explicit rate wins.
	entry, err = entries.Create(testCtx(), TimeEntryInput{
		MatterID: matter.ID, Date: day, Hours: 1, Description: "call", Billable: true, Rate: 90,
	})
	require.NoError(t, err)
	require.InDelta(t, 90.0, entry.Rate, 1e-9)

	// Non-billable entries always carry rate zero.
	entry, err = entries.Create(testCtx(), TimeEntryInput{
		MatterID: matter.ID, Date: day, Hours: 1, Description: "admin", Billable: false, Rate: 90,
	})
	require.NoError(t, err)
	require.Zero(t, entry.Rate)
	require.Zero(t, entry.Amount())
}

func TestTimeEntryCreateUnknownMatter(t *testing.T) {
	conn := newTestDB(t)
	entries := NewTimeEntryService(conn)

	_, err := entries.Create(testCtx(), TimeEntryInput{
		MatterID: 123, Date: time.Now(), Hours: 1, Description: "x", Billable: true,
	})
	require.ErrorIs(t, err, ErrMatterNotFound)
}

func TestTimeEntryBilledIsFrozen(t *testing.T) {
	conn := newTestDB(t)
	entries := NewTimeEntryService(conn)
	invoices := NewInvoiceService(conn, NewSequenceService(conn), 0.24, 14)

	client := seedClient(t, conn)
	matter := seedMatter(t, conn, client.ID, 100)
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	entry := seedEntry(t, conn, matter.ID, day, 1, 100, true)

	_, err := invoices.Create(testCtx(), CreateInvoiceInput{
		MatterID: matter.ID, TimeEntryIDs: []uint{entry.ID},
	})
	require.NoError(t, err)

	hours := 5.0
	_, err = entries.Update(testCtx(), entry.ID, TimeEntryPatch{Hours: &hours})
	require.ErrorIs(t, err, ErrEntryBilled)

	err = entries.Delete(testCtx(), entry.ID)
	require.ErrorIs(t, err, ErrEntryBilled)
}

func TestTimeEntryUpdateClearsRateWhenNonBillable(t *testing.T) {
	conn := newTestDB(t)
	entries := NewTimeEntryService(conn)
	client := seedClient(t, conn)
	matter := seedMatter(t, conn, client.ID, 100)
	entry := seedEntry(t, conn, matter.ID, time.Now(), 1, 100, true)

	billable := false
	updated, err := entries.Update(testCtx(), entry.ID, TimeEntryPatch{Billable: &billable})
	require.NoError(t, err)
	require.False(t, updated.Billable)
	require.Zero(t, updated.Rate)
}

func TestTimeEntryDelete(t *testing.T) {
	conn := newTestDB(t)
	entries := NewTimeEntryService(conn)
	client := seedClient(t, conn)
	matter := seedMatter(t, conn, client.ID, 100)
	entry := seedEntry(t, conn, matter.ID, time.Now(), 1, 100, true)

	require.NoError(t, entries.Delete(testCtx(), entry.ID))
	_, err := entries.Get(testCtx(), entry.ID)
	require.ErrorIs(t, err, ErrEntryNotFound)
}
