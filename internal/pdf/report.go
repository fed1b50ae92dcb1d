package pdf

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// ReportRow is one matter's line in a monthly report or client statement.
type ReportRow struct {
	Reference     string
	Title         string
	ClientName    string
	Hours         float64
	BillableHours float64
	Amount        float64
}

// MonthlyReportData carries the numbers for the monthly report layout.
type MonthlyReportData struct {
	Year          int
	Month         int
	Matters       []ReportRow
	TotalHours    float64
	BillableHours float64
	TotalAmount   float64
}

// MonthlyReport renders the monthly summary as PDF bytes.
func MonthlyReport(data MonthlyReportData) ([]byte, error) {
	m := newDocument()

	month := ""
	if data.Month >= 1 && data.Month <= 12 {
		month = monthNames[data.Month]
	}
	m.AddRow(8, text.NewCol(12, firmName, props.Text{Size: 16, Style: fontstyle.Bold}))
	m.AddRow(8, text.NewCol(12, fmt.Sprintf("Kuukausiraportti - %s %d", month, data.Year), props.Text{Size: 13}))
	m.AddRow(6)

	summary := [][2]string{
		{"Tunnit yhteensä:", hours(data.TotalHours)},
		{"Laskutettavat tunnit:", hours(data.BillableHours)},
		{"Laskutettava summa:", money(data.TotalAmount)},
	}
	for _, s := range summary {
		m.AddRow(6,
			text.NewCol(4, s[0], props.Text{Size: 11, Style: fontstyle.Bold}),
			text.NewCol(3, s[1], props.Text{Size: 11, Align: align.Right}),
		)
	}
	m.AddRow(6)

	m.AddRow(7, text.NewCol(12, "Toimeksiannot", props.Text{Size: 12, Style: fontstyle.Bold}))
	m.AddRow(6,
		text.NewCol(2, "Viite", props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(3, "Asia", props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(3, "Asiakas", props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(1, "Tunnit", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(1, "Lask. h", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Summa", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
	)
	m.AddRows(line.NewRow(2))
	for _, r := range data.Matters {
		m.AddRow(5,
			text.NewCol(2, r.Reference, props.Text{Size: 9}),
			text.NewCol(3, clip(r.Title, 25), props.Text{Size: 9}),
			text.NewCol(3, clip(r.ClientName, 20), props.Text{Size: 9}),
			text.NewCol(1, fmt.Sprintf("%.1f", r.Hours), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(1, fmt.Sprintf("%.1f", r.BillableHours), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money(r.Amount), props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(10)
	m.AddRow(5, text.NewCol(12, "Raportti luotu: "+day(time.Now()), props.Text{Size: 8, Style: fontstyle.Italic}))

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

// StatementData carries the numbers for the client statement layout.
type StatementData struct {
	ClientName        string
	ClientBusinessID  string
	PeriodStart       time.Time
	PeriodEnd         time.Time
	Matters           []ReportRow
	TotalHours        float64
	TotalAmount       float64
	InvoicedAmount    float64
	OutstandingAmount float64
}

// ClientStatement renders the client statement as PDF bytes.
func ClientStatement(data StatementData) ([]byte, error) {
	m := newDocument()

	m.AddRow(8, text.NewCol(12, firmName, props.Text{Size: 16, Style: fontstyle.Bold}))
	m.AddRow(8, text.NewCol(12, "Asiakasraportti", props.Text{Size: 13}))
	m.AddRow(4)

	m.AddRow(6, text.NewCol(12, data.ClientName, props.Text{Size: 11, Style: fontstyle.Bold}))
	if data.ClientBusinessID != "" {
		m.AddRow(5, text.NewCol(12, "Y-tunnus: "+data.ClientBusinessID, props.Text{Size: 10}))
	}
	m.AddRow(5, text.NewCol(12,
		fmt.Sprintf("Ajanjakso: %s – %s", day(data.PeriodStart), day(data.PeriodEnd)),
		props.Text{Size: 10}))
	m.AddRow(6)

	m.AddRow(7, text.NewCol(12, "Yhteenveto", props.Text{Size: 12, Style: fontstyle.Bold}))
	summary := [][2]string{
		{"Työtunnit yhteensä:", hours(data.TotalHours)},
		{"Palkkiot yhteensä:", money(data.TotalAmount)},
		{"Laskutettu:", money(data.InvoicedAmount)},
		{"Avoin saldo:", money(data.OutstandingAmount)},
	}
	for _, s := range summary {
		m.AddRow(6,
			text.NewCol(4, s[0], props.Text{Size: 10}),
			text.NewCol(3, s[1], props.Text{Size: 10, Align: align.Right}),
		)
	}

	if len(data.Matters) > 0 {
		m.AddRow(6)
		m.AddRow(7, text.NewCol(12, "Toimeksiannot", props.Text{Size: 12, Style: fontstyle.Bold}))
		m.AddRow(6,
			text.NewCol(2, "Viite", props.Text{Size: 9, Style: fontstyle.Bold}),
			text.NewCol(6, "Asia", props.Text{Size: 9, Style: fontstyle.Bold}),
			text.NewCol(2, "Tunnit", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
			text.NewCol(2, "Summa", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		)
		m.AddRows(line.NewRow(2))
		for _, r := range data.Matters {
			m.AddRow(5,
				text.NewCol(2, r.Reference, props.Text{Size: 9}),
				text.NewCol(6, clip(r.Title, 40), props.Text{Size: 9}),
				text.NewCol(2, hours(r.Hours), props.Text{Size: 9, Align: align.Right}),
				text.NewCol(2, money(r.Amount), props.Text{Size: 9, Align: align.Right}),
			)
		}
	}

	m.AddRow(10)
	m.AddRow(5, text.NewCol(12, "Raportti luotu: "+day(time.Now()), props.Text{Size: 8, Style: fontstyle.Italic}))

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}
