package reporting

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// DocumentMeta carries the presentational extras the PDF sink draws around
// the table. Logo is optional: a failed branding fetch leaves it nil and
// layout proceeds without it.
type DocumentMeta struct {
	ChapterName string
	FilterChips []string
	Logo        []byte
	LogoFormat  string
	GeneratedAt time.Time
}

const (
	pdfMargin     = 10.0
	lineHeight    = 5.0
	cellPadding   = 1.5
	maxNoteLines  = 3
	footerReserve = 18.0
)

// GeneratePDF renders the report as a paginated A4 document. Orientation
// follows the layout engine's feasibility decision; every page repeats the
// table header, and the footer carries the page number and generation
// timestamp. Numeric content is taken verbatim from the report cells so it
// matches the CSV and JSON sinks exactly.
func GeneratePDF(rep *Report, meta DocumentMeta) ([]byte, error) {
	orientation := "P"
	if rep.Landscape {
		orientation = "L"
	}
	pdf := gofpdf.New(orientation, "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, footerReserve)
	pdf.AliasNbPages("")

	generated := meta.GeneratedAt
	if generated.IsZero() {
		generated = rep.GeneratedAt
	}
	pdf.SetFooterFunc(func() {
		_, pageH := pdf.GetPageSize()
		pdf.SetDrawColor(120, 120, 120)
		pdf.Line(pdfMargin, pageH-14, pageWidth(pdf)-pdfMargin, pageH-14)
		pdf.SetFont("Helvetica", "", 7)
		pdf.SetTextColor(100, 100, 100)
		pdf.Text(pdfMargin, pageH-10, "Generated "+generated.Format("2006-01-02 15:04"))
		pageLabel := fmt.Sprintf("Page %d of {nb}", pdf.PageNo())
		pdf.Text(pageWidth(pdf)-pdfMargin-pdf.GetStringWidth(pageLabel), pageH-10, pageLabel)
		pdf.SetTextColor(0, 0, 0)
	})

	pdf.AddPage()
	drawHeaderBand(pdf, rep, meta)
	drawFilterChips(pdf, meta.FilterChips)
	drawSummaryCards(pdf, rep)
	drawTable(pdf, rep)
	drawClosing(pdf, rep)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("generating statement pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func pageWidth(pdf *gofpdf.Fpdf) float64 {
	w, _ := pdf.GetPageSize()
	return w
}

func usableWidth(pdf *gofpdf.Fpdf) float64 {
	return pageWidth(pdf) - 2*pdfMargin
}

func drawHeaderBand(pdf *gofpdf.Fpdf, rep *Report, meta DocumentMeta) {
	if len(meta.Logo) > 0 {
		format := meta.LogoFormat
		if format == "" {
			format = "png"
		}
		opts := gofpdf.ImageOptions{ImageType: format}
		pdf.RegisterImageOptionsReader("statement-logo", opts, bytes.NewReader(meta.Logo))
		pdf.ImageOptions("statement-logo", pageWidth(pdf)-pdfMargin-22, pdfMargin, 22, 0, false, opts, 0, "")
	}

	name := meta.ChapterName
	if name == "" {
		name = "Union Chapter Ledger"
	}
	pdf.SetFont("Helvetica", "B", 15)
	pdf.Text(pdfMargin, pdfMargin+6, name)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(pdfMargin, pdfMargin+12, "Statement of Accounts")
	pdf.SetFont("Helvetica", "", 9)
	period := fmt.Sprintf("%s to %s", rep.Filter.DateFrom.Format(dateLayout), rep.Filter.DateTo.Format(dateLayout))
	pdf.Text(pdfMargin, pdfMargin+17, period)

	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.4)
	pdf.Line(pdfMargin, pdfMargin+20, pageWidth(pdf)-pdfMargin, pdfMargin+20)
	pdf.SetY(pdfMargin + 23)
}

func drawFilterChips(pdf *gofpdf.Fpdf, chips []string) {
	if len(chips) == 0 {
		return
	}
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(80, 80, 80)
	line := strings.Join(chips, "  |  ")
	measure := pdf.GetStringWidth
	for _, l := range WrapToWidth(measure, line, usableWidth(pdf), 2) {
		pdf.Text(pdfMargin, pdf.GetY()+3, l)
		pdf.SetY(pdf.GetY() + 4)
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(pdf.GetY() + 2)
}

func drawSummaryCards(pdf *gofpdf.Fpdf, rep *Report) {
	const gap = 4.0
	cardW := (usableWidth(pdf) - 2*gap) / 3
	cardH := 16.0
	y := pdf.GetY()

	cards := []struct {
		label string
		value string
	}{
		{"Total Income", formatAmount(rep.Totals.Income)},
		{"Total Expense", formatAmount(rep.Totals.Expense)},
		{"Net", formatAmount(rep.Totals.Net)},
	}
	for i, card := range cards {
		x := pdfMargin + float64(i)*(cardW+gap)
		pdf.SetDrawColor(150, 150, 150)
		pdf.SetFillColor(245, 245, 245)
		pdf.Rect(x, y, cardW, cardH, "FD")
		pdf.SetFont("Helvetica", "", 8)
		pdf.Text(x+3, y+6, card.label)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Text(x+3, y+12.5, card.value)
	}
	pdf.SetY(y + cardH + 5)
}

func drawTableHeader(pdf *gofpdf.Fpdf, rep *Report) {
	y := pdf.GetY()
	x := pdfMargin
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetDrawColor(120, 120, 120)
	for i, col := range rep.Columns {
		w := rep.ColumnWidths[i]
		pdf.Rect(x, y, w, lineHeight+2, "FD")
		if !col.Partition {
			title := TruncateToWidth(pdf.GetStringWidth, col.Title, w-2*cellPadding)
			tx := x + cellPadding
			if col.Numeric {
				tx = x + w - cellPadding - pdf.GetStringWidth(title)
			}
			pdf.Text(tx, y+lineHeight-0.3, title)
		}
		x += w
	}
	pdf.SetY(y + lineHeight + 2)
}

func drawTable(pdf *gofpdf.Fpdf, rep *Report) {
	drawTableHeader(pdf, rep)
	_, pageH := pdf.GetPageSize()
	pdf.SetFont("Helvetica", "", 8)
	measure := pdf.GetStringWidth

	for _, row := range rep.Rows {
		// Wrap/truncate each cell up front so the row height is known
		// before any ink is committed.
		cellLines := make([][]string, len(row))
		lines := 1
		for i, cell := range row {
			col := rep.Columns[i]
			w := rep.ColumnWidths[i] - 2*cellPadding
			if col.Partition {
				continue
			}
			if col.Wrap {
				cellLines[i] = WrapToWidth(measure, cell, w, maxNoteLines)
			} else if cell != "" {
				cellLines[i] = []string{TruncateToWidth(measure, cell, w)}
			}
			if len(cellLines[i]) > lines {
				lines = len(cellLines[i])
			}
		}
		rowH := float64(lines)*lineHeight + 1

		if pdf.GetY()+rowH > pageH-footerReserve {
			pdf.AddPage()
			drawTableHeader(pdf, rep)
			pdf.SetFont("Helvetica", "", 8)
		}

		y := pdf.GetY()
		x := pdfMargin
		for i, col := range rep.Columns {
			w := rep.ColumnWidths[i]
			pdf.Rect(x, y, w, rowH, "D")
			for li, l := range cellLines[i] {
				tx := x + cellPadding
				if col.Numeric {
					tx = x + w - cellPadding - measure(l)
				}
				pdf.Text(tx, y+lineHeight-0.8+float64(li)*lineHeight, l)
			}
			x += w
		}
		pdf.SetY(y + rowH)
	}

	drawTotalsRow(pdf, rep)
}

// drawTotalsRow mirrors the CSV grand-total mapping: sums under their
// columns, net under the balance column when visible.
func drawTotalsRow(pdf *gofpdf.Fpdf, rep *Report) {
	_, pageH := pdf.GetPageSize()
	rowH := lineHeight + 2
	if pdf.GetY()+rowH > pageH-footerReserve {
		pdf.AddPage()
		drawTableHeader(pdf, rep)
	}
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(240, 240, 240)
	y := pdf.GetY()
	x := pdfMargin
	for i, col := range rep.Columns {
		w := rep.ColumnWidths[i]
		pdf.Rect(x, y, w, rowH, "FD")
		var cell string
		switch {
		case i == 0:
			cell = "Total"
		case col.Key == ColIncoming, col.Key == ColLeftIncoming:
			cell = formatAmount(rep.Totals.Income)
		case col.Key == ColExpense, col.Key == ColRightExpense:
			cell = formatAmount(rep.Totals.Expense)
		case col.Key == ColBalance:
			cell = formatAmount(rep.Totals.Net)
		}
		if cell != "" {
			tx := x + cellPadding
			if col.Numeric {
				tx = x + w - cellPadding - pdf.GetStringWidth(cell)
			}
			pdf.Text(tx, y+lineHeight, cell)
		}
		x += w
	}
	pdf.SetY(y + rowH)
}

func drawClosing(pdf *gofpdf.Fpdf, rep *Report) {
	_, pageH := pdf.GetPageSize()
	if pdf.GetY()+34 > pageH-footerReserve {
		pdf.AddPage()
	}

	y := pdf.GetY() + 7
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(pdfMargin, y, "Closing balance: "+formatAmount(rep.Totals.Net))
	if rep.DataWarnings > 0 {
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(160, 80, 0)
		pdf.Text(pdfMargin, y+5, fmt.Sprintf("%d entries had unreadable amounts and were counted as 0.00", rep.DataWarnings))
		pdf.SetTextColor(0, 0, 0)
	}

	sigY := y + 18
	sigW := 55.0
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetDrawColor(60, 60, 60)
	pdf.Line(pdfMargin, sigY, pdfMargin+sigW, sigY)
	pdf.Text(pdfMargin, sigY+4, "Prepared by")
	rightX := pageWidth(pdf) - pdfMargin - sigW
	pdf.Line(rightX, sigY, rightX+sigW, sigY)
	pdf.Text(rightX, sigY+4, "Approved by")
	pdf.SetY(sigY + 8)
}
