package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind is the polarity of a ledger entry: money coming in or going out.
type TransactionKind string

const (
	Income  TransactionKind = "INCOME"
	Expense TransactionKind = "EXPENSE"
)

// IsValid reports whether the kind is one of the two known polarities.
func (k TransactionKind) IsValid() bool {
	return k == Income || k == Expense
}

// Transaction is a single journal entry in the chapter ledger.
// Amount is always non-negative; the polarity lives in Kind.
// At most one of PersonID/GroupID is meaningfully set ("tagged to") at a time.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	Date          time.Time       `json:"date"` // calendar date, no time component
	Kind          TransactionKind `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	Notes         string          `json:"notes"`
	DivisionID    *string         `json:"divisionID"`
	CategoryID    *string         `json:"categoryID"`
	PersonID      *string         `json:"personID"`
	GroupID       *string         `json:"groupID"`
	AuditFields
}
