package reporting_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unionbooks/chapter_ledger/internal/core/domain"
	"github.com/unionbooks/chapter_ledger/internal/core/reporting"
)

func strPtr(s string) *string { return &s }

func testRefs() reporting.ReferenceSet {
	return reporting.NewReferenceSet(
		[]domain.Division{
			{DivisionID: "d1", Name: "Metalworkers", Area: "North"},
			{DivisionID: "d2", Name: "Clerks", Area: "South"},
		},
		[]domain.Category{
			{CategoryID: "c1", Name: "Dues", Kind: domain.Income},
			{CategoryID: "c2", Name: "Travel", Kind: domain.Expense},
		},
		[]domain.Person{
			{PersonID: "p1", FullName: "Jo Berg"},
		},
		[]domain.Group{
			{GroupID: "g1", Name: "Strike Committee"},
		},
	)
}

func testTxns() []domain.Transaction {
	created := func(d int) domain.AuditFields {
		return domain.AuditFields{CreatedAt: day(d)}
	}
	// Canonical fetch order: date descending.
	return []domain.Transaction{
		{TransactionID: "t3", Date: day(3), Kind: domain.Expense, Amount: decimal.RequireFromString("30"), DivisionID: strPtr("d2"), CategoryID: strPtr("c2"), GroupID: strPtr("g1"), Notes: "bus tickets", AuditFields: created(3)},
		{TransactionID: "t2", Date: day(2), Kind: domain.Income, Amount: decimal.RequireFromString("50"), DivisionID: strPtr("d1"), CategoryID: strPtr("c1"), PersonID: strPtr("p1"), AuditFields: created(2)},
		{TransactionID: "t1", Date: day(1), Kind: domain.Income, Amount: decimal.RequireFromString("100"), DivisionID: strPtr("d1"), CategoryID: strPtr("c1"), AuditFields: created(1)},
	}
}

func TestBuildReport_Chronological(t *testing.T) {
	filter := domain.StatementFilter{DateFrom: day(1), DateTo: day(31)}
	opts := domain.DisplayOptions{ShowRunningBalance: true, ShowKind: true}
	now := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

	rep := reporting.BuildReport(testTxns(), testRefs(), filter, opts, now)

	require.Len(t, rep.Rows, 3)
	require.Equal(t, len(rep.Headers), len(rep.Rows[0]))
	require.Equal(t, len(rep.Headers), len(rep.ColumnWidths))

	// Columns: Date, Kind, Division, Category, Incoming, Expense, Balance.
	assert.Equal(t, []string{"Date", "Kind", "Division", "Category", "Incoming", "Expense", "Balance"}, rep.Headers)

	first := rep.Rows[0]
	assert.Equal(t, "2024-03-01", first[0])
	assert.Equal(t, "INCOME", first[1])
	assert.Equal(t, "Metalworkers", first[2])
	assert.Equal(t, "Dues", first[3])
	assert.Equal(t, "100.00", first[4])
	assert.Equal(t, "0.00", first[5])
	assert.Equal(t, "100.00", first[6])

	last := rep.Rows[2]
	assert.Equal(t, "2024-03-03", last[0])
	assert.Equal(t, "30.00", last[5])
	assert.Equal(t, "120.00", last[6])

	assert.Equal(t, "150.00", rep.Totals.Income.StringFixed(2))
	assert.Equal(t, "30.00", rep.Totals.Expense.StringFixed(2))
	assert.Equal(t, "120.00", rep.Totals.Net.StringFixed(2))
	assert.Equal(t, now, rep.GeneratedAt)
	assert.Zero(t, rep.DataWarnings)
}

func TestBuildReport_TwoSidedPlaceholders(t *testing.T) {
	filter := domain.StatementFilter{DateFrom: day(1), DateTo: day(31)}
	opts := domain.DisplayOptions{TwoSided: true, ShowRunningBalance: true}

	rep := reporting.BuildReport(testTxns(), testRefs(), filter, opts, time.Now())

	// Two incomes, one expense: two rows, second has an empty expense side.
	require.Len(t, rep.Rows, 2)

	second := rep.Rows[1]
	// Right-side columns follow the partition column (index 4).
	assert.Equal(t, reporting.Placeholder, second[5])
	assert.Equal(t, reporting.Placeholder, second[6])
	assert.Equal(t, reporting.Placeholder, second[7])
	assert.Equal(t, reporting.Placeholder, second[8])

	// Balance column closes the row: 100 + 50 - 30 = 120.
	assert.Equal(t, "120.00", second[len(second)-1])
}

func TestBuildReport_MissingReferencesRenderPlaceholder(t *testing.T) {
	txns := []domain.Transaction{
		{TransactionID: "t1", Date: day(1), Kind: domain.Income, Amount: decimal.RequireFromString("10"), DivisionID: strPtr("ghost")},
	}
	refs := reporting.NewReferenceSet(nil, nil, nil, nil)

	rep := reporting.BuildReport(txns, refs, domain.StatementFilter{DateFrom: day(1), DateTo: day(31)}, domain.DisplayOptions{}, time.Now())

	require.Len(t, rep.Rows, 1)
	// Division and Category both unresolved.
	assert.Equal(t, reporting.Placeholder, rep.Rows[0][1])
	assert.Equal(t, reporting.Placeholder, rep.Rows[0][2])
}

func TestBuildReport_NegativeAmountCoercedWithWarning(t *testing.T) {
	txns := []domain.Transaction{
		{TransactionID: "t1", Date: day(1), Kind: domain.Income, Amount: decimal.RequireFromString("-5")},
		{TransactionID: "t2", Date: day(2), Kind: domain.Income, Amount: decimal.RequireFromString("10")},
	}

	rep := reporting.BuildReport(txns, reporting.NewReferenceSet(nil, nil, nil, nil), domain.StatementFilter{DateFrom: day(1), DateTo: day(31)}, domain.DisplayOptions{}, time.Now())

	assert.Equal(t, 1, rep.DataWarnings)
	assert.Equal(t, "10.00", rep.Totals.Income.StringFixed(2))
}

func TestBuildReport_EmptyResultHasHeadersAndZeroTotals(t *testing.T) {
	rep := reporting.BuildReport(nil, reporting.NewReferenceSet(nil, nil, nil, nil), domain.StatementFilter{DateFrom: day(1), DateTo: day(31)}, domain.DisplayOptions{}, time.Now())

	assert.NotEmpty(t, rep.Headers)
	assert.Empty(t, rep.Rows)
	assert.Equal(t, "0.00", rep.Totals.Income.StringFixed(2))
	assert.Equal(t, "0.00", rep.Totals.Net.StringFixed(2))
}

func TestBuildReport_PersonWinsOverGroupForTaggedTo(t *testing.T) {
	txns := []domain.Transaction{
		{TransactionID: "t1", Date: day(1), Kind: domain.Income, Amount: decimal.RequireFromString("10"), PersonID: strPtr("p1"), GroupID: strPtr("g1")},
	}

	rep := reporting.BuildReport(txns, testRefs(), domain.StatementFilter{DateFrom: day(1), DateTo: day(31)}, domain.DisplayOptions{ShowTaggedTo: true}, time.Now())

	// Columns: Date, Division, Tagged To, Category, Incoming, Expense.
	require.Len(t, rep.Rows, 1)
	assert.Equal(t, "Jo Berg", rep.Rows[0][2])
}
