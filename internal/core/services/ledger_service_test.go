package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/unionbooks/chapter_ledger/internal/apperrors"
	"github.com/unionbooks/chapter_ledger/internal/core/domain"
	portssvc "github.com/unionbooks/chapter_ledger/internal/core/ports/services"
	"github.com/unionbooks/chapter_ledger/internal/core/services"
	"github.com/unionbooks/chapter_ledger/internal/dto"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockRepo *MockTransactionRepository
	service  portssvc.LedgerSvcFacade
	now      time.Time
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTransactionRepository)
	suite.now = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewLedgerService(suite.mockRepo,
		services.WithLedgerClock(func() time.Time { return suite.now }),
	)
}

func validCreateRequest() dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		Date:   "2024-03-10",
		Kind:   "EXPENSE",
		Amount: decimal.RequireFromString("42.50"),
		Notes:  "hall rental",
	}
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_Success() {
	ctx := context.Background()
	req := validCreateRequest()

	suite.mockRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.TransactionID != "" &&
			t.Kind == domain.Expense &&
			t.Amount.Equal(req.Amount) &&
			t.Date.Format("2006-01-02") == req.Date &&
			t.CreatedBy == "user-1" &&
			t.CreatedAt.Equal(suite.now)
	})).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal("hall rental", txn.Notes)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_InvalidDate() {
	req := validCreateRequest()
	req.Date = "10/03/2024"

	txn, err := suite.service.CreateTransaction(context.Background(), req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(txn)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_InvalidKind() {
	req := validCreateRequest()
	req.Kind = "TRANSFER"

	_, err := suite.service.CreateTransaction(context.Background(), req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_NegativeAmount() {
	req := validCreateRequest()
	req.Amount = decimal.RequireFromString("-1")

	_, err := suite.service.CreateTransaction(context.Background(), req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_PersonAndGroupBothSet() {
	personID := "p1"
	groupID := "g1"
	req := validCreateRequest()
	req.PersonID = &personID
	req.GroupID = &groupID

	_, err := suite.service.CreateTransaction(context.Background(), req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestCreateTransactions_Success() {
	ctx := context.Background()
	req := dto.BulkCreateTransactionsRequest{
		Entries: []dto.CreateTransactionRequest{validCreateRequest(), validCreateRequest()},
	}

	suite.mockRepo.On("SaveTransactions", ctx, mock.MatchedBy(func(txns []domain.Transaction) bool {
		return len(txns) == 2 && txns[0].TransactionID != txns[1].TransactionID
	})).Return(nil).Once()

	txns, err := suite.service.CreateTransactions(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Len(txns, 2)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateTransactions_BadEntryNamesItsIndex() {
	bad := validCreateRequest()
	bad.Kind = "TRANSFER"
	req := dto.BulkCreateTransactionsRequest{
		Entries: []dto.CreateTransactionRequest{validCreateRequest(), bad},
	}

	txns, err := suite.service.CreateTransactions(context.Background(), req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "entry 1")
	suite.Nil(txns)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransactions", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestGetTransactionByID_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindTransactionByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	txn, err := suite.service.GetTransactionByID(ctx, "missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(txn)
}

func (suite *LedgerServiceTestSuite) TestListTransactions_EmptyPageIsNotNil() {
	ctx := context.Background()
	suite.mockRepo.On("ListTransactions", ctx, 50, (*string)(nil)).Return(nil, nil, nil).Once()

	txns, nextToken, err := suite.service.ListTransactions(ctx, 50, nil)

	suite.Require().NoError(err)
	suite.NotNil(txns)
	suite.Empty(txns)
	suite.Nil(nextToken)
}

func (suite *LedgerServiceTestSuite) TestListTransactions_PassesTokenThrough() {
	ctx := context.Background()
	token := "opaque"
	next := "next-page"
	suite.mockRepo.On("ListTransactions", ctx, 10, &token).Return(sampleTxns(), &next, nil).Once()

	txns, nextToken, err := suite.service.ListTransactions(ctx, 10, &token)

	suite.Require().NoError(err)
	suite.Len(txns, 2)
	suite.Require().NotNil(nextToken)
	assert.Equal(suite.T(), "next-page", *nextToken)
}

func (suite *LedgerServiceTestSuite) TestDeleteTransaction() {
	ctx := context.Background()
	suite.mockRepo.On("DeleteTransaction", ctx, "t1").Return(nil).Once()

	suite.Require().NoError(suite.service.DeleteTransaction(ctx, "t1"))
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
