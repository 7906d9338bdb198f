package domain

import "time"

// KindFilter widens TransactionKind with an "everything" value for filtering.
type KindFilter string

const (
	KindAll     KindFilter = "ALL"
	KindIncome  KindFilter = "INCOME"
	KindExpense KindFilter = "EXPENSE"
)

// IsValid reports whether the filter value is one of the three accepted values.
func (k KindFilter) IsValid() bool {
	return k == KindAll || k == KindIncome || k == KindExpense
}

// StatementFilter is the immutable selection a statement is built from.
// Every multi-valued field follows the same rule: an empty set imposes no
// restriction on that dimension. DateFrom and DateTo are inclusive calendar
// dates; Normalize clamps an inverted range.
type StatementFilter struct {
	DateFrom    time.Time  `json:"dateFrom"`
	DateTo      time.Time  `json:"dateTo"`
	Kind        KindFilter `json:"kind"`
	DivisionIDs []string   `json:"divisionIDs"`
	Areas       []string   `json:"areas"`
	PersonIDs   []string   `json:"personIDs"`
	GroupIDs    []string   `json:"groupIDs"`
	CategoryIDs []string   `json:"categoryIDs"`
}

// Normalize enforces the DateFrom <= DateTo invariant by clamping DateTo up
// to DateFrom, and defaults an unset kind to ALL.
func (f StatementFilter) Normalize() StatementFilter {
	if f.Kind == "" {
		f.Kind = KindAll
	}
	if f.DateTo.Before(f.DateFrom) {
		f.DateTo = f.DateFrom
	}
	return f
}

// Reset clears every multi-valued selection and the kind back to ALL while
// leaving the date range untouched.
func (f StatementFilter) Reset() StatementFilter {
	return StatementFilter{
		DateFrom: f.DateFrom,
		DateTo:   f.DateTo,
		Kind:     KindAll,
	}
}

// DisplayOptions are the independent presentation toggles for a statement.
// Any combination is legal and must yield a consistent header/row/footer
// layout across all render sinks.
type DisplayOptions struct {
	ShowArea           bool `json:"showArea"`
	ShowTaggedTo       bool `json:"showTaggedTo"`
	ShowKind           bool `json:"showKind"`
	ShowRunningBalance bool `json:"showRunningBalance"`
	ShowNotes          bool `json:"showNotes"`
	TwoSided           bool `json:"twoSided"`
}

// TransactionQuery is the store-level query the filter translates into.
// DivisionIDs is the effective set (direct selections unioned with the ids
// of divisions whose area matched). If both PersonIDs and GroupIDs are
// non-empty a transaction matches when tagged to either; if only one is
// non-empty it is a plain membership predicate; if both are empty there is
// no person/group restriction. Results are returned sorted by date
// descending, tie-broken by creation time descending.
type TransactionQuery struct {
	DateFrom    time.Time
	DateTo      time.Time
	Kind        *TransactionKind
	DivisionIDs []string
	CategoryIDs []string
	PersonIDs   []string
	GroupIDs    []string
}
