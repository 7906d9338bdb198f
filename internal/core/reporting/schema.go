package reporting

import "github.com/unionbooks/chapter_ledger/internal/core/domain"

// Column keys. Two-sided columns carry a side prefix so cell extraction
// stays unambiguous.
const (
	ColDate      = "date"
	ColKind      = "kind"
	ColDivision  = "division"
	ColArea      = "area"
	ColTaggedTo  = "taggedTo"
	ColCategory  = "category"
	ColIncoming  = "incoming"
	ColExpense   = "expense"
	ColBalance   = "balance"
	ColNotes     = "notes"
	ColPartition = "partition"

	ColLeftDate      = "l.date"
	ColLeftDivision  = "l.division"
	ColLeftCategory  = "l.category"
	ColLeftIncoming  = "l.incoming"
	ColRightDate     = "r.date"
	ColRightDivision = "r.division"
	ColRightCategory = "r.category"
	ColRightExpense  = "r.expense"
)

// Column describes one statement column: its header label, nominal width
// and the bounds width negotiation may move it between. Numeric columns and
// partition spacers are fixed-width and never shrunk. Widths are in the
// same unit as the page budget (millimetres for the PDF sink).
type Column struct {
	Key       string
	Title     string
	Nominal   float64
	Min       float64
	Max       float64
	Fixed     bool
	Numeric   bool
	Partition bool
	Wrap      bool // free-text column wrapped to a bounded line count
}

const partitionWidth = 2

func fixedCol(key, title string, w float64) Column {
	return Column{Key: key, Title: title, Nominal: w, Min: w, Max: w, Fixed: true, Numeric: true}
}

func partitionCol() Column {
	return Column{Key: ColPartition, Title: "", Nominal: partitionWidth, Min: partitionWidth, Max: partitionWidth, Fixed: true, Partition: true}
}

// BuildSchema computes the ordered column list for the toggle set once; all
// three render sinks consume it uniformly so column presence can never
// diverge between sinks.
func BuildSchema(opts domain.DisplayOptions) []Column {
	if opts.TwoSided {
		return twoSidedSchema(opts)
	}
	return chronologicalSchema(opts)
}

func chronologicalSchema(opts domain.DisplayOptions) []Column {
	cols := []Column{
		{Key: ColDate, Title: "Date", Nominal: 24, Min: 20, Max: 30},
	}
	if opts.ShowKind {
		cols = append(cols, Column{Key: ColKind, Title: "Kind", Nominal: 18, Min: 14, Max: 24})
	}
	cols = append(cols, Column{Key: ColDivision, Title: "Division", Nominal: 30, Min: 18, Max: 60})
	if opts.ShowArea {
		cols = append(cols, Column{Key: ColArea, Title: "Area", Nominal: 24, Min: 16, Max: 48})
	}
	if opts.ShowTaggedTo {
		cols = append(cols, Column{Key: ColTaggedTo, Title: "Tagged To", Nominal: 30, Min: 18, Max: 60})
	}
	cols = append(cols,
		Column{Key: ColCategory, Title: "Category", Nominal: 28, Min: 18, Max: 55},
		fixedCol(ColIncoming, "Incoming", 24),
		fixedCol(ColExpense, "Expense", 24),
	)
	if opts.ShowRunningBalance {
		cols = append(cols, fixedCol(ColBalance, "Balance", 26))
	}
	if opts.ShowNotes {
		cols = append(cols, Column{Key: ColNotes, Title: "Notes", Nominal: 40, Min: 24, Max: 90, Wrap: true})
	}
	return cols
}

func twoSidedSchema(opts domain.DisplayOptions) []Column {
	cols := []Column{
		{Key: ColLeftDate, Title: "Date", Nominal: 22, Min: 20, Max: 28},
		{Key: ColLeftDivision, Title: "Division", Nominal: 28, Min: 18, Max: 55},
		{Key: ColLeftCategory, Title: "Category", Nominal: 26, Min: 18, Max: 50},
		fixedCol(ColLeftIncoming, "Incoming", 24),
		partitionCol(),
		{Key: ColRightDate, Title: "Date", Nominal: 22, Min: 20, Max: 28},
		{Key: ColRightDivision, Title: "Division", Nominal: 28, Min: 18, Max: 55},
		{Key: ColRightCategory, Title: "Category", Nominal: 26, Min: 18, Max: 50},
		fixedCol(ColRightExpense, "Expense", 24),
	}
	if opts.ShowRunningBalance {
		cols = append(cols, partitionCol(), fixedCol(ColBalance, "Balance", 26))
	}
	return cols
}

// Headers returns the ordered header labels including partition
// pseudo-columns (rendered as empty labels).
func Headers(cols []Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Title
	}
	return out
}
