package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMonthlyReportAggregation(t *testing.T) {
	conn := newTestDB(t)
	reports := NewReportService(conn)

	client := seedClient(t, conn)
	matter := seedMatter(t, conn, client.ID, 100)

	inMonth := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	seedEntry(t, conn, matter.ID, inMonth, 2, 100, true)
	seedEntry(t, conn, matter.ID, inMonth.AddDate(0, 0, 5), 1, 100, false)
	// Outside the month on both sides.
	seedEntry(t, conn, matter.ID, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), 4, 100, true)
	seedEntry(t, conn, matter.ID, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), 4, 100, true)

	report, err := reports.Monthly(testCtx(), 2024, 3)
	require.NoError(t, err)
	require.Equal(t, 2024, report.Year)
	require.Equal(t, 3, report.Month)
	require.InDelta(t, 3.0, report.TotalHours, 1e-9)
	require.InDelta(t, 2.0, report.BillableHours, 1e-9)
	require.InDelta(t, 200.0, report.TotalAmount, 1e-9)

	require.Len(t, report.Matters, 1)
	row := report.Matters[0]
	require.Equal(t, matter.Reference, row.Reference)
	require.Equal(t, client.Name, row.ClientName)
	require.InDelta(t, 3.0, row.Hours, 1e-9)
	require.InDelta(t, 200.0, row.Amount, 1e-9)
}

func TestMonthlyReportEmptyMonth(t *testing.T) {
	conn := newTestDB(t)
	reports := NewReportService(conn)

	report, err := reports.Monthly(testCtx(), 2024, 7)
	require.NoError(t, err)
	require.Zero(t, report.TotalHours)
	require.Empty(t, report.Matters)
}

func TestClientStatement(t *testing.T) {
	conn := newTestDB(t)
	reports := NewReportService(conn)
	seq := NewSequenceService(conn)
	invoices := NewInvoiceService(conn, seq, 0.24, 14)

	client := seedClient(t, conn)
	other := seedClient(t, conn)
	matter := seedMatter(t, conn, client.ID, 100)
	otherMatter := seedMatter(t, conn, other.ID, 100)

	day := time.Now().AddDate(0, 0, -1)
	entry := seedEntry(t, conn, matter.ID, day, 2, 100, true)
	seedEntry(t, conn, otherMatter.ID, day, 9, 100, true)

	invoice, err := invoices.Create(testCtx(), CreateInvoiceInput{
		MatterID:     matter.ID,
		TimeEntryIDs: []uint{entry.ID},
	})
	require.NoError(t, err)

	from := time.Now().AddDate(0, -1, 0)
	to := time.Now().AddDate(0, 0, 1)
	stmt, err := reports.ClientStatement(testCtx(), client.ID, from, to)
	require.NoError(t, err)

	require.Equal(t, client.ID, stmt.Client.ID)
	require.Len(t, stmt.Matters, 1)
	require.InDelta(t, 2.0, stmt.TotalHours, 1e-9)
	require.InDelta(t, 200.0, stmt.TotalAmount, 1e-9)
	require.InDelta(t, invoice.Total, stmt.InvoicedAmount, 1e-9)
	// Draft invoice is unpaid, so the full total is outstanding.
	require.InDelta(t, invoice.Total, stmt.OutstandingAmount, 1e-9)
}

func TestClientStatementUnknownClient(t *testing.T) {
	conn := newTestDB(t)
	reports := NewReportService(conn)

	_, err := reports.ClientStatement(testCtx(), 42, time.Now().AddDate(0, -1, 0), time.Now())
	require.ErrorIs(t, err, ErrClientNotFound)
}

func TestDashboard(t *testing.T) {
	conn := newTestDB(t)
	reports := NewReportService(conn)

	client := seedClient(t, conn)
	matter := seedMatter(t, conn, client.ID, 100)

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, time.UTC)
	seedEntry(t, conn, matter.ID, today, 2, 100, true)
	seedEntry(t, conn, matter.ID, today.AddDate(0, 0, -3), 1, 100, true)

	d, err := reports.Dashboard(testCtx())
	require.NoError(t, err)
	require.InDelta(t, 2.0, d.TodayHours, 1e-9)
	require.InDelta(t, 3.0, d.WeekHours, 1e-9)
	require.Equal(t, int64(1), d.ActiveMatters)
}
