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

// LineItem is one billed time entry on an invoice.
type LineItem struct {
	Date        time.Time
	Description string
	Hours       float64
	Rate        float64
	Amount      float64
}

// InvoiceData carries everything the invoice layout needs.
type InvoiceData struct {
	InvoiceNumber    string
	IssueDate        time.Time
	DueDate          time.Time
	ClientName       string
	ClientAddress    string
	ClientBusinessID string
	MatterReference  string
	MatterTitle      string
	LineItems        []LineItem
	Subtotal         float64
	VATRate          float64
	VATAmount        float64
	Total            float64
	Notes            string
}

// Invoice renders the invoice as PDF bytes.
func Invoice(data InvoiceData) ([]byte, error) {
	m := newDocument()

	m.AddRow(10,
		text.NewCol(6, firmName, props.Text{Size: 18, Style: fontstyle.Bold}),
		text.NewCol(6, "LASKU", props.Text{Size: 24, Style: fontstyle.Bold, Align: align.Right}),
	)
	m.AddRow(14, text.NewCol(6, firmAddress+"\n"+firmBusinessID, props.Text{Size: 9}))
	m.AddRow(6)

	details := [][2]string{
		{"Laskunumero:", data.InvoiceNumber},
		{"Laskun päivä:", day(data.IssueDate)},
		{"Eräpäivä:", day(data.DueDate)},
		{"Viite:", data.MatterReference},
	}
	for _, d := range details {
		m.AddRow(5,
			text.NewCol(3, d[0], props.Text{Size: 10, Style: fontstyle.Bold}),
			text.NewCol(9, d[1], props.Text{Size: 10}),
		)
	}
	m.AddRow(4)

	m.AddRow(6, text.NewCol(12, data.ClientName, props.Text{Size: 12, Style: fontstyle.Bold}))
	if data.ClientAddress != "" {
		m.AddRow(8, text.NewCol(12, data.ClientAddress, props.Text{Size: 10}))
	}
	if data.ClientBusinessID != "" {
		m.AddRow(5, text.NewCol(12, "Y-tunnus: "+data.ClientBusinessID, props.Text{Size: 10}))
	}
	m.AddRow(4)
	m.AddRow(6, text.NewCol(12, data.MatterTitle, props.Text{Size: 10, Style: fontstyle.Italic}))
	m.AddRow(4)

	m.AddRow(7,
		text.NewCol(2, "Päivä", props.Text{Size: 10, Style: fontstyle.Bold}),
		text.NewCol(5, "Kuvaus", props.Text{Size: 10, Style: fontstyle.Bold}),
		text.NewCol(1, "Tunnit", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Tuntihinta", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Summa", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
	)
	m.AddRows(line.NewRow(2))
	for _, item := range data.LineItems {
		m.AddRow(6,
			text.NewCol(2, day(item.Date), props.Text{Size: 9}),
			text.NewCol(5, clip(item.Description, 60), props.Text{Size: 9}),
			text.NewCol(1, fmt.Sprintf("%.1f", item.Hours), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money(item.Rate), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money(item.Amount), props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRows(line.NewRow(2))

	m.AddRow(6,
		text.NewCol(8, "", props.Text{}),
		text.NewCol(2, "Yhteensä:", props.Text{Size: 10, Align: align.Right}),
		text.NewCol(2, money(data.Subtotal), props.Text{Size: 10, Align: align.Right}),
	)
	m.AddRow(6,
		text.NewCol(8, "", props.Text{}),
		text.NewCol(2, fmt.Sprintf("ALV %.0f %%:", data.VATRate*100), props.Text{Size: 10, Align: align.Right}),
		text.NewCol(2, money(data.VATAmount), props.Text{Size: 10, Align: align.Right}),
	)
	m.AddRow(8,
		text.NewCol(8, "", props.Text{}),
		text.NewCol(2, "Maksettava:", props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, money(data.Total), props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Right}),
	)

	if data.Notes != "" {
		m.AddRow(6)
		m.AddRow(10, text.NewCol(12, data.Notes, props.Text{Size: 9, Style: fontstyle.Italic}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}
