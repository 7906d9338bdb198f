package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/unionbooks/chapter_ledger/internal/apperrors"
	"github.com/unionbooks/chapter_ledger/internal/core/domain"
	"github.com/unionbooks/chapter_ledger/internal/core/reporting"
)

// StatementRequest binds the statement query string. Multi-valued filters
// repeat the parameter (?divisionID=a&divisionID=b); an absent filter means
// "no restriction". Toggles default to off.
type StatementRequest struct {
	DateFrom    string   `form:"dateFrom" binding:"required"`
	DateTo      string   `form:"dateTo" binding:"required"`
	Kind        string   `form:"kind" binding:"omitempty,kindfilter"`
	DivisionIDs []string `form:"divisionID"`
	Areas       []string `form:"area"`
	PersonIDs   []string `form:"personID"`
	GroupIDs    []string `form:"groupID"`
	CategoryIDs []string `form:"categoryID"`

	ShowArea           bool `form:"showArea"`
	ShowTaggedTo       bool `form:"showTaggedTo"`
	ShowKind           bool `form:"showKind"`
	ShowRunningBalance bool `form:"showRunningBalance"`
	ShowNotes          bool `form:"showNotes"`
	TwoSided           bool `form:"twoSided"`
}

// ToFilter parses the request into an immutable filter/toggle pair.
func (r StatementRequest) ToFilter() (domain.StatementFilter, domain.DisplayOptions, error) {
	from, err := time.Parse("2006-01-02", r.DateFrom)
	if err != nil {
		return domain.StatementFilter{}, domain.DisplayOptions{}, fmt.Errorf("%w: invalid dateFrom %q", apperrors.ErrValidation, r.DateFrom)
	}
	to, err := time.Parse("2006-01-02", r.DateTo)
	if err != nil {
		return domain.StatementFilter{}, domain.DisplayOptions{}, fmt.Errorf("%w: invalid dateTo %q", apperrors.ErrValidation, r.DateTo)
	}

	kind := domain.KindFilter(r.Kind)
	if r.Kind == "" {
		kind = domain.KindAll
	}

	filter := domain.StatementFilter{
		DateFrom:    from,
		DateTo:      to,
		Kind:        kind,
		DivisionIDs: r.DivisionIDs,
		Areas:       r.Areas,
		PersonIDs:   r.PersonIDs,
		GroupIDs:    r.GroupIDs,
		CategoryIDs: r.CategoryIDs,
	}.Normalize()

	opts := domain.DisplayOptions{
		ShowArea:           r.ShowArea,
		ShowTaggedTo:       r.ShowTaggedTo,
		ShowKind:           r.ShowKind,
		ShowRunningBalance: r.ShowRunningBalance,
		ShowNotes:          r.ShowNotes,
		TwoSided:           r.TwoSided,
	}
	return filter, opts, nil
}

// StatementTotalsResponse mirrors the engine totals at 2-decimal precision.
type StatementTotalsResponse struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// StatementResponse is the on-screen table sink: the same headers, rows and
// totals the CSV and PDF sinks consume, plus the negotiated column widths so
// the dashboard can reproduce the layout.
type StatementResponse struct {
	Headers      []string                `json:"headers"`
	Rows         [][]string              `json:"rows"`
	Totals       StatementTotalsResponse `json:"totals"`
	ColumnWidths []float64               `json:"columnWidths"`
	Landscape    bool                    `json:"landscape"`
	DataWarnings int                     `json:"dataWarnings"`
	GeneratedAt  time.Time               `json:"generatedAt"`
}

// ToStatementResponse converts a computed report to the table DTO.
func ToStatementResponse(rep *reporting.Report) StatementResponse {
	return StatementResponse{
		Headers:      rep.Headers,
		Rows:         rep.Rows,
		Totals:       StatementTotalsResponse{Income: rep.Totals.Income, Expense: rep.Totals.Expense, Net: rep.Totals.Net},
		ColumnWidths: rep.ColumnWidths,
		Landscape:    rep.Landscape,
		DataWarnings: rep.DataWarnings,
		GeneratedAt:  rep.GeneratedAt,
	}
}
