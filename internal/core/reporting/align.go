package reporting

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/unionbooks/chapter_ledger/internal/core/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Totals are computed once over the unordered filtered entry set and are
// invariant to alignment mode and presentation re-sorts.
type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// ComputeTotals sums incoming and expense amounts over the filtered set.
func ComputeTotals(entries []Entry) Totals {
	income := decimal.Zero
	expense := decimal.Zero
	for _, e := range entries {
		income = income.Add(e.Incoming)
		expense = expense.Add(e.Expense)
	}
	return Totals{Income: income, Expense: expense, Net: income.Sub(expense)}
}

// PairedRow is one emitted statement row. In chronological mode only Left
// is set. In two-sided mode Left and Right are unrelated transactions that
// merely share a display position; either may be nil when one side's list
// is exhausted. Balance is the running balance at the time the row was
// processed under accumulation order; a presentation re-sort never
// recomputes it.
type PairedRow struct {
	Left    *Entry
	Right   *Entry
	Balance decimal.Decimal
}

// Align produces the final ordered row sequence for the chosen mode.
// Input entries are expected in canonical fetch order (date descending,
// newest first); ties within a date keep fetch order reversed, i.e. the
// overall accumulation order is oldest first.
func Align(entries []Entry, opts domain.DisplayOptions) []PairedRow {
	var rows []PairedRow
	if opts.TwoSided {
		rows = alignTwoSided(entries)
	} else {
		rows = alignChronological(entries)
	}
	if opts.ShowArea {
		resortByArea(rows)
	}
	return rows
}

func alignChronological(entries []Entry) []PairedRow {
	ordered := ascendingByDate(entries)
	rows := make([]PairedRow, 0, len(ordered))
	running := decimal.Zero
	for i := range ordered {
		e := ordered[i]
		running = running.Add(e.Incoming).Sub(e.Expense)
		rows = append(rows, PairedRow{Left: &ordered[i], Balance: running})
	}
	return rows
}

// alignTwoSided zips the independently sorted income and expense lists by
// position. Within one emitted row income is always applied to the running
// balance before expense, regardless of which side is missing.
func alignTwoSided(entries []Entry) []PairedRow {
	var incomes, expenses []Entry
	for _, e := range entries {
		if e.Kind == domain.Income {
			incomes = append(incomes, e)
		} else {
			expenses = append(expenses, e)
		}
	}
	incomes = ascendingByDate(incomes)
	expenses = ascendingByDate(expenses)

	n := len(incomes)
	if len(expenses) > n {
		n = len(expenses)
	}

	rows := make([]PairedRow, 0, n)
	running := decimal.Zero
	for i := 0; i < n; i++ {
		row := PairedRow{}
		if i < len(incomes) {
			row.Left = &incomes[i]
			running = running.Add(incomes[i].Incoming)
		}
		if i < len(expenses) {
			row.Right = &expenses[i]
			running = running.Sub(expenses[i].Expense)
		}
		row.Balance = running
		rows = append(rows, row)
	}
	return rows
}

// ascendingByDate returns a copy sorted ascending by date with ties broken
// by the original fetch order reversed (oldest first overall).
func ascendingByDate(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// resortByArea stably reorders emitted rows by area name, locale-aware and
// case/diacritic-insensitive. It is presentation only: pairing happened
// before this re-sort and each row keeps its already-computed balance.
func resortByArea(rows []PairedRow) {
	cl := collate.New(language.Und, collate.Loose)
	sort.SliceStable(rows, func(i, j int) bool {
		return cl.CompareString(rowArea(rows[i]), rowArea(rows[j])) < 0
	})
}

func rowArea(r PairedRow) string {
	if r.Left != nil {
		return r.Left.AreaName
	}
	if r.Right != nil {
		return r.Right.AreaName
	}
	return ""
}
