package reporting

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/unionbooks/chapter_ledger/internal/core/domain"
)

// Placeholder is rendered wherever a referenced entity is missing or a
// two-sided row has no entry on one side. It is deliberately distinct from
// "0.00" so absence never reads as a zero value.
const Placeholder = "—"

// Entry is the canonical row shape every render sink derives from. It is
// built fresh from the latest store read on every filter or toggle change
// and never persisted.
type Entry struct {
	Date         time.Time
	Kind         domain.TransactionKind
	DivisionName string
	AreaName     string
	TaggedTo     string
	CategoryName string
	Incoming     decimal.Decimal
	Expense      decimal.Decimal
	Notes        string
}

// ReferenceSet carries the resolved reference entities needed for name
// lookup during materialization.
type ReferenceSet struct {
	Divisions  map[string]domain.Division
	Categories map[string]domain.Category
	Persons    map[string]domain.Person
	Groups     map[string]domain.Group
}

// NewReferenceSet indexes reference lists by id.
func NewReferenceSet(divisions []domain.Division, categories []domain.Category, persons []domain.Person, groups []domain.Group) ReferenceSet {
	rs := ReferenceSet{
		Divisions:  make(map[string]domain.Division, len(divisions)),
		Categories: make(map[string]domain.Category, len(categories)),
		Persons:    make(map[string]domain.Person, len(persons)),
		Groups:     make(map[string]domain.Group, len(groups)),
	}
	for _, d := range divisions {
		rs.Divisions[d.DivisionID] = d
	}
	for _, c := range categories {
		rs.Categories[c.CategoryID] = c
	}
	for _, p := range persons {
		rs.Persons[p.PersonID] = p
	}
	for _, g := range groups {
		rs.Groups[g.GroupID] = g
	}
	return rs
}

// MaterializeResult pairs the materialized entries with a count of source
// rows whose amount had to be coerced to zero.
type MaterializeResult struct {
	Entries      []Entry
	DataWarnings int
}

// Materialize normalizes raw transactions into entries, preserving the
// store's fetch order. Missing references resolve to the placeholder glyph;
// a negative amount is treated as malformed and coerced to zero, counted as
// a data warning rather than failing the whole report.
func Materialize(txns []domain.Transaction, refs ReferenceSet) MaterializeResult {
	entries := make([]Entry, 0, len(txns))
	warnings := 0
	for _, t := range txns {
		amount := t.Amount
		if amount.IsNegative() {
			amount = decimal.Zero
			warnings++
		}
		e := Entry{
			Date:         t.Date,
			Kind:         t.Kind,
			DivisionName: Placeholder,
			AreaName:     Placeholder,
			TaggedTo:     Placeholder,
			CategoryName: Placeholder,
			Incoming:     decimal.Zero,
			Expense:      decimal.Zero,
			Notes:        t.Notes,
		}
		switch t.Kind {
		case domain.Income:
			e.Incoming = amount
		case domain.Expense:
			e.Expense = amount
		}
		if t.DivisionID != nil {
			if d, ok := refs.Divisions[*t.DivisionID]; ok {
				e.DivisionName = d.Name
				if d.Area != "" {
					e.AreaName = d.Area
				}
			}
		}
		if t.CategoryID != nil {
			if c, ok := refs.Categories[*t.CategoryID]; ok {
				e.CategoryName = c.Name
			}
		}
		// Exactly one of person/group is meaningfully tagged; person wins
		// when both are set.
		if t.PersonID != nil {
			if p, ok := refs.Persons[*t.PersonID]; ok {
				e.TaggedTo = p.FullName
			}
		} else if t.GroupID != nil {
			if g, ok := refs.Groups[*t.GroupID]; ok {
				e.TaggedTo = g.Name
			}
		}
		entries = append(entries, e)
	}
	return MaterializeResult{Entries: entries, DataWarnings: warnings}
}
