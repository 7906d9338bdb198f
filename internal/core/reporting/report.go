package reporting

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/unionbooks/chapter_ledger/internal/core/domain"
)

const dateLayout = "2006-01-02"

// Report is the single computed artifact every render sink consumes. The
// JSON table, the CSV serializer and the PDF writer all derive from the
// same headers, pre-formatted rows and totals, so their numeric content
// agrees to the cent by construction.
type Report struct {
	Filter       domain.StatementFilter `json:"filter"`
	Options      domain.DisplayOptions  `json:"options"`
	Columns      []Column               `json:"-"`
	Headers      []string               `json:"headers"`
	Rows         [][]string             `json:"rows"`
	Totals       Totals                 `json:"totals"`
	ColumnWidths []float64              `json:"columnWidths"`
	Landscape    bool                   `json:"landscape"`
	DataWarnings int                    `json:"dataWarnings"`
	GeneratedAt  time.Time              `json:"generatedAt"`
}

// BuildReport runs the full pipeline over an already store-filtered
// transaction set: materialize, align, total, lay out. It is a pure
// function of its inputs; the caller owns filter state and store access.
func BuildReport(txns []domain.Transaction, refs ReferenceSet, filter domain.StatementFilter, opts domain.DisplayOptions, now time.Time) *Report {
	filter = filter.Normalize()

	mat := Materialize(txns, refs)
	totals := ComputeTotals(mat.Entries)
	aligned := Align(mat.Entries, opts)

	cols := BuildSchema(opts)
	landscape := NeedsLandscape(cols)
	usable := float64(PortraitUsableWidth)
	if landscape {
		usable = LandscapeUsableWidth
	}

	rows := make([][]string, 0, len(aligned))
	for _, r := range aligned {
		rows = append(rows, cellsFor(r, cols, opts))
	}

	return &Report{
		Filter:       filter,
		Options:      opts,
		Columns:      cols,
		Headers:      Headers(cols),
		Rows:         rows,
		Totals:       totals,
		ColumnWidths: NegotiateWidths(cols, usable),
		Landscape:    landscape,
		DataWarnings: mat.DataWarnings,
		GeneratedAt:  now,
	}
}

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// cellsFor renders one aligned row into per-column cell strings. A missing
// side in two-sided mode renders the placeholder glyph in every one of its
// cells, signalling "no corresponding entry" as distinct from a zero value.
func cellsFor(row PairedRow, cols []Column, opts domain.DisplayOptions) []string {
	cells := make([]string, len(cols))
	for i, c := range cols {
		switch c.Key {
		case ColPartition:
			cells[i] = ""
		case ColBalance:
			cells[i] = formatAmount(row.Balance)
		case ColDate:
			cells[i] = row.Left.Date.Format(dateLayout)
		case ColKind:
			cells[i] = string(row.Left.Kind)
		case ColDivision:
			cells[i] = row.Left.DivisionName
		case ColArea:
			cells[i] = row.Left.AreaName
		case ColTaggedTo:
			cells[i] = row.Left.TaggedTo
		case ColCategory:
			cells[i] = row.Left.CategoryName
		case ColIncoming:
			cells[i] = formatAmount(row.Left.Incoming)
		case ColExpense:
			cells[i] = formatAmount(row.Left.Expense)
		case ColNotes:
			cells[i] = row.Left.Notes
		case ColLeftDate:
			cells[i] = sideCell(row.Left, func(e *Entry) string { return e.Date.Format(dateLayout) })
		case ColLeftDivision:
			cells[i] = sideCell(row.Left, func(e *Entry) string { return e.DivisionName })
		case ColLeftCategory:
			cells[i] = sideCell(row.Left, func(e *Entry) string { return e.CategoryName })
		case ColLeftIncoming:
			cells[i] = sideCell(row.Left, func(e *Entry) string { return formatAmount(e.Incoming) })
		case ColRightDate:
			cells[i] = sideCell(row.Right, func(e *Entry) string { return e.Date.Format(dateLayout) })
		case ColRightDivision:
			cells[i] = sideCell(row.Right, func(e *Entry) string { return e.DivisionName })
		case ColRightCategory:
			cells[i] = sideCell(row.Right, func(e *Entry) string { return e.CategoryName })
		case ColRightExpense:
			cells[i] = sideCell(row.Right, func(e *Entry) string { return formatAmount(e.Expense) })
		}
	}
	return cells
}

func sideCell(e *Entry, f func(*Entry) string) string {
	if e == nil {
		return Placeholder
	}
	return f(e)
}
