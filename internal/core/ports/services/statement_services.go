package services

import (
	"context"

	"github.com/unionbooks/chapter_ledger/internal/core/domain"
	"github.com/unionbooks/chapter_ledger/internal/core/reporting"
)

// StatementSvcFacade defines the statement reporting operations. All three
// render sinks derive from the same computed report so their totals always
// agree.
type StatementSvcFacade interface {
	// BuildStatement queries the ledger with the given filter, builds the
	// report and caches it as the user's latest completed statement. A
	// build that finishes after a newer build has started is returned to
	// its caller but not cached.
	BuildStatement(ctx context.Context, userID string, filter domain.StatementFilter, opts domain.DisplayOptions) (*reporting.Report, error)

	// LastStatement returns the user's most recent successfully built
	// report, or nil when none exists. A failed build never evicts it.
	LastStatement(ctx context.Context, userID string) *reporting.Report

	// StatementCSV builds the statement and serializes it as CSV,
	// returning the payload and the suggested filename.
	StatementCSV(ctx context.Context, userID string, filter domain.StatementFilter, opts domain.DisplayOptions) ([]byte, string, error)

	// StatementPDF builds the statement and renders the paginated PDF
	// document, returning the payload and the suggested filename.
	StatementPDF(ctx context.Context, userID string, filter domain.StatementFilter, opts domain.DisplayOptions) ([]byte, string, error)
}
