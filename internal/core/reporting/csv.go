package reporting

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV serializes the report. Partition pseudo-columns are visual only
// and are excluded; numeric cells are already fixed 2-decimal strings so the
// output stays machine-parseable. A grand-total row closes the file and must
// equal the engine totals to the cent.
func WriteCSV(w io.Writer, rep *Report) error {
	cw := csv.NewWriter(w)

	visible := make([]int, 0, len(rep.Columns))
	for i, c := range rep.Columns {
		if !c.Partition {
			visible = append(visible, i)
		}
	}

	header := make([]string, len(visible))
	for i, idx := range visible {
		header[i] = rep.Columns[idx].Title
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	record := make([]string, len(visible))
	for _, row := range rep.Rows {
		for i, idx := range visible {
			record[i] = row[idx]
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	if err := cw.Write(totalsRecord(rep, visible)); err != nil {
		return fmt.Errorf("writing csv totals: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

// totalsRecord places the income/expense sums under their columns, the net
// under the balance column when present, and labels the first cell.
func totalsRecord(rep *Report, visible []int) []string {
	record := make([]string, len(visible))
	record[0] = "Total"
	for i, idx := range visible {
		if i == 0 {
			continue
		}
		switch rep.Columns[idx].Key {
		case ColIncoming, ColLeftIncoming:
			record[i] = formatAmount(rep.Totals.Income)
		case ColExpense, ColRightExpense:
			record[i] = formatAmount(rep.Totals.Expense)
		case ColBalance:
			record[i] = formatAmount(rep.Totals.Net)
		}
	}
	return record
}
