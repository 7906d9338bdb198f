package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/unionbooks/chapter_ledger/internal/core/domain"
)

// CreateTransactionRequest is the payload for recording one journal entry.
// Amount is non-negative; polarity lives in Kind.
type CreateTransactionRequest struct {
	Date       string          `json:"date" binding:"required"`
	Kind       string          `json:"kind" binding:"required,oneof=INCOME EXPENSE"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Notes      string          `json:"notes"`
	DivisionID *string         `json:"divisionID"`
	CategoryID *string         `json:"categoryID"`
	PersonID   *string         `json:"personID"`
	GroupID    *string         `json:"groupID"`
}

// BulkCreateTransactionsRequest carries a bulk row entry; all rows are
// persisted atomically.
type BulkCreateTransactionsRequest struct {
	Entries []CreateTransactionRequest `json:"entries" binding:"required,min=1,dive"`
}

// TransactionResponse is the journal entry representation returned by the API.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	Date          string          `json:"date"`
	Kind          string          `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	Notes         string          `json:"notes"`
	DivisionID    *string         `json:"divisionID"`
	CategoryID    *string         `json:"categoryID"`
	PersonID      *string         `json:"personID"`
	GroupID       *string         `json:"groupID"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}

// ListTransactionsResponse is a page of journal entries.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		Date:          t.Date.Format("2006-01-02"),
		Kind:          string(t.Kind),
		Amount:        t.Amount,
		Notes:         t.Notes,
		DivisionID:    t.DivisionID,
		CategoryID:    t.CategoryID,
		PersonID:      t.PersonID,
		GroupID:       t.GroupID,
		CreatedAt:     t.CreatedAt,
		CreatedBy:     t.CreatedBy,
	}
}

// ToTransactionResponses converts a slice of transactions to DTOs.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
