// Package pdf renders billing artifacts with maroto. Callers hand in
// already-computed numbers; nothing here reads the store.
package pdf

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
)

// Firm identity printed on every document.
const (
	firmName       = "KH Legal Oy"
	firmAddress    = "Esimerkkikatu 1\n00100 Helsinki"
	firmBusinessID = "Y-tunnus: 1234567-8"
)

var monthNames = [...]string{
	"", "Tammikuu", "Helmikuu", "Maaliskuu", "Huhtikuu", "Toukokuu",
	"Kesäkuu", "Heinäkuu", "Elokuu", "Syyskuu", "Lokakuu", "Marraskuu",
	"Joulukuu",
}

func newDocument() core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(20).
		WithTopMargin(20).
		WithRightMargin(20).
		Build()
	return maroto.New(cfg)
}

// money renders a value with exactly 2 decimals and the euro sign.
func money(v float64) string {
	return fmt.Sprintf("%.2f €", v)
}

// day renders a date as DD.MM.YYYY.
func day(t time.Time) string {
	return t.Format("02.01.2006")
}

// hours renders an hour count with one decimal.
func hours(v float64) string {
	return fmt.Sprintf("%.1f h", v)
}

// clip shortens long text for narrow table cells.
func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
