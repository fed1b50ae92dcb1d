package services

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/khlegal/practice-api/internal/models"
)

// ReportService builds read-only aggregations over the time ledger and the
// invoice set. No method here mutates state.
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// MatterReportRow is one per-matter line in a monthly report or statement.
type MatterReportRow struct {
	MatterID      uint    `json:"matter_id"`
	Reference     string  `json:"reference"`
	Title         string  `json:"title"`
	ClientName    string  `json:"client_name"`
	Hours         float64 `json:"hours"`
	BillableHours float64 `json:"billable_hours"`
	Amount        float64 `json:"amount"`
}

type MonthlyReport struct {
	Year          int               `json:"year"`
	Month         int               `json:"month"`
	TotalHours    float64           `json:"total_hours"`
	BillableHours float64           `json:"billable_hours"`
	TotalAmount   float64           `json:"total_amount"`
	Matters       []MatterReportRow `json:"matters"`
}

type Dashboard struct {
	TodayHours    float64 `json:"today_hours"`
	WeekHours     float64 `json:"week_hours"`
	MonthBillable float64 `json:"month_billable"`
	ActiveMatters int64   `json:"active_matters"`
}

type ClientStatement struct {
	Client            *models.Client    `json:"client"`
	PeriodStart       time.Time         `json:"-"`
	PeriodEnd         time.Time         `json:"-"`
	Matters           []MatterReportRow `json:"matters"`
	TotalHours        float64           `json:"total_hours"`
	TotalAmount       float64           `json:"total_amount"`
	InvoicedAmount    float64           `json:"invoiced_amount"`
	OutstandingAmount float64           `json:"outstanding_amount"`
}

// Monthly groups the month's time entries by matter and sums hours, billable
// hours, and billable amount per matter and in total.
func (s *ReportService) Monthly(ctx context.Context, year, month int) (*MonthlyReport, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var entries []models.TimeEntry
	if err := s.db.WithContext(ctx).
		Where("date >= ? AND date < ?", start, end).
		Find(&entries).Error; err != nil {
		return nil, err
	}

	report := &MonthlyReport{Year: year, Month: month, Matters: []MatterReportRow{}}
	rows, err := s.groupByMatter(ctx, entries)
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		report.TotalHours += r.Hours
		report.BillableHours += r.BillableHours
		report.TotalAmount += r.Amount
	}
	report.Matters = rows
	return report, nil
}

// Dashboard summarizes recent activity: hours logged today, over the
// trailing 7 days, month-to-date billable value, and open matter count.
func (s *ReportService) Dashboard(ctx context.Context) (*Dashboard, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekAgo := today.AddDate(0, 0, -7)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	d := &Dashboard{}

	var entries []models.TimeEntry
	if err := s.db.WithContext(ctx).
		Where("date >= ?", weekAgo).Find(&entries).Error; err != nil {
		return nil, err
	}
	for _, e := range entries {
		d.WeekHours += e.Hours
		if !e.Date.Before(today) {
			d.TodayHours += e.Hours
		}
	}

	var monthEntries []models.TimeEntry
	if err := s.db.WithContext(ctx).
		Where("date >= ? AND billable = ?", monthStart, true).
		Find(&monthEntries).Error; err != nil {
		return nil, err
	}
	for _, e := range monthEntries {
		d.MonthBillable += e.Hours * e.Rate
	}

	if err := s.db.WithContext(ctx).Model(&models.Matter{}).
		Where("status = ?", models.MatterActive).
		Count(&d.ActiveMatters).Error; err != nil {
		return nil, err
	}
	return d, nil
}

// ClientStatement aggregates one client's matters over a period, with the
// invoiced and outstanding amounts from invoices issued in that period.
func (s *ReportService) ClientStatement(ctx context.Context, clientID uint, from, to time.Time) (*ClientStatement, error) {
	var client models.Client
	if err := s.db.WithContext(ctx).First(&client, clientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	var matterIDs []uint
	if err := s.db.WithContext(ctx).Model(&models.Matter{}).
		Where("client_id = ?", clientID).
		Pluck("id", &matterIDs).Error; err != nil {
		return nil, err
	}

	stmt := &ClientStatement{
		Client:      &client,
		PeriodStart: from,
		PeriodEnd:   to,
		Matters:     []MatterReportRow{},
	}
	if len(matterIDs) == 0 {
		return stmt, nil
	}

	var entries []models.TimeEntry
	if err := s.db.WithContext(ctx).
		Where("matter_id IN ? AND date >= ? AND date < ?", matterIDs, from, to).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	rows, err := s.groupByMatter(ctx, entries)
	if err != nil {
		return nil, err
	}
	stmt.Matters = rows
	for _, r := range rows {
		stmt.TotalHours += r.Hours
		stmt.TotalAmount += r.Amount
	}

	var invoices []models.Invoice
	if err := s.db.WithContext(ctx).
		Where("matter_id IN ? AND issue_date >= ? AND issue_date < ?", matterIDs, from, to).
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	for _, inv := range invoices {
		stmt.InvoicedAmount += inv.Total
		if inv.Status != models.InvoicePaid {
			stmt.OutstandingAmount += inv.Total
		}
	}
	return stmt, nil
}

// groupByMatter folds entries into per-matter rows, resolving reference,
// title, and client name for each matter touched.
func (s *ReportService) groupByMatter(ctx context.Context, entries []models.TimeEntry) ([]MatterReportRow, error) {
	byMatter := map[uint]*MatterReportRow{}
	for _, e := range entries {
		row, ok := byMatter[e.MatterID]
		if !ok {
			var matter models.Matter
			if err := s.db.WithContext(ctx).Preload("Client").
				First(&matter, e.MatterID).Error; err != nil {
				return nil, err
			}
			row = &MatterReportRow{
				MatterID:  matter.ID,
				Reference: matter.Reference,
				Title:     matter.Title,
			}
			if matter.Client != nil {
				row.ClientName = matter.Client.Name
			}
			byMatter[e.MatterID] = row
		}
		row.Hours += e.Hours
		if e.Billable {
			row.BillableHours += e.Hours
			row.Amount += e.Hours * e.Rate
		}
	}

	rows := make([]MatterReportRow, 0, len(byMatter))
	for _, r := range byMatter {
		rows = append(rows, *r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Reference < rows[j].Reference })
	return rows, nil
}
