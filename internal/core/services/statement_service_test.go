package services_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/unionbooks/chapter_ledger/internal/apperrors"
	"github.com/unionbooks/chapter_ledger/internal/core/domain"
	portsrepo "github.com/unionbooks/chapter_ledger/internal/core/ports/repositories"
	portssvc "github.com/unionbooks/chapter_ledger/internal/core/ports/services"
	"github.com/unionbooks/chapter_ledger/internal/core/reporting"
	"github.com/unionbooks/chapter_ledger/internal/core/services"
	"github.com/unionbooks/chapter_ledger/internal/utils"
)

type StatementServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockDivisionRepo *MockDivisionRepository
	mockCategoryRepo *MockCategoryRepository
	mockPersonRepo   *MockPersonRepository
	mockGroupRepo    *MockGroupRepository
	service          portssvc.StatementSvcFacade
	now              time.Time
}

func (suite *StatementServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockDivisionRepo = new(MockDivisionRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockPersonRepo = new(MockPersonRepository)
	suite.mockGroupRepo = new(MockGroupRepository)
	suite.now = time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)

	repos := &portsrepo.RepositoryProvider{
		TransactionRepo: suite.mockTxnRepo,
		DivisionRepo:    suite.mockDivisionRepo,
		CategoryRepo:    suite.mockCategoryRepo,
		PersonRepo:      suite.mockPersonRepo,
		GroupRepo:       suite.mockGroupRepo,
	}
	suite.service = services.NewStatementService(repos, "Chapter 12", "",
		services.WithStatementClock(func() time.Time { return suite.now }),
		services.WithLogoFetcher(func(context.Context, string) utils.LogoResult { return utils.LogoResult{} }),
	)
}

func (suite *StatementServiceTestSuite) expectReferences(divisions []domain.Division) {
	suite.mockDivisionRepo.On("ListDivisions", mock.Anything).Return(divisions, nil)
	suite.mockCategoryRepo.On("ListCategories", mock.Anything).Return([]domain.Category{}, nil)
	suite.mockPersonRepo.On("ListPersons", mock.Anything).Return([]domain.Person{}, nil)
	suite.mockGroupRepo.On("ListGroups", mock.Anything).Return([]domain.Group{}, nil)
}

func statementFilter() domain.StatementFilter {
	return domain.StatementFilter{
		DateFrom: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		DateTo:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}
}

func sampleTxns() []domain.Transaction {
	return []domain.Transaction{
		{TransactionID: "t2", Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), Kind: domain.Expense, Amount: decimal.RequireFromString("40")},
		{TransactionID: "t1", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Kind: domain.Income, Amount: decimal.RequireFromString("100")},
	}
}

func (suite *StatementServiceTestSuite) TestBuildStatement_Success() {
	ctx := context.Background()
	suite.expectReferences([]domain.Division{})
	suite.mockTxnRepo.On("QueryTransactions", ctx, mock.Anything).Return(sampleTxns(), nil).Once()

	rep, err := suite.service.BuildStatement(ctx, "user-1", statementFilter(), domain.DisplayOptions{})

	suite.Require().NoError(err)
	suite.Require().NotNil(rep)
	suite.Len(rep.Rows, 2)
	suite.Equal("100.00", rep.Totals.Income.StringFixed(2))
	suite.Equal("40.00", rep.Totals.Expense.StringFixed(2))
	suite.Equal(suite.now, rep.GeneratedAt)

	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *StatementServiceTestSuite) TestBuildStatement_TranslatesAreasToDivisionIDs() {
	ctx := context.Background()
	divisions := []domain.Division{
		{DivisionID: "d1", Name: "Metalworkers", Area: "North"},
		{DivisionID: "d2", Name: "Clerks", Area: "South"},
	}
	suite.expectReferences(divisions)

	filter := statementFilter()
	filter.Areas = []string{"North"}

	suite.mockTxnRepo.On("QueryTransactions", ctx, mock.MatchedBy(func(q domain.TransactionQuery) bool {
		return len(q.DivisionIDs) == 1 && q.DivisionIDs[0] == "d1"
	})).Return([]domain.Transaction{}, nil).Once()

	_, err := suite.service.BuildStatement(ctx, "user-1", filter, domain.DisplayOptions{})

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *StatementServiceTestSuite) TestBuildStatement_QueryFailure() {
	ctx := context.Background()
	suite.expectReferences([]domain.Division{})
	suite.mockTxnRepo.On("QueryTransactions", ctx, mock.Anything).Return(nil, assert.AnError).Once()

	rep, err := suite.service.BuildStatement(ctx, "user-1", statementFilter(), domain.DisplayOptions{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrQueryFailed)
	suite.Nil(rep)
}

func (suite *StatementServiceTestSuite) TestBuildStatement_ReferenceFailureDegradesToPlaceholders() {
	ctx := context.Background()
	suite.mockDivisionRepo.On("ListDivisions", mock.Anything).Return(nil, assert.AnError)
	suite.mockCategoryRepo.On("ListCategories", mock.Anything).Return(nil, assert.AnError)
	suite.mockPersonRepo.On("ListPersons", mock.Anything).Return(nil, assert.AnError)
	suite.mockGroupRepo.On("ListGroups", mock.Anything).Return(nil, assert.AnError)

	divisionID := "d1"
	txns := []domain.Transaction{
		{TransactionID: "t1", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Kind: domain.Income, Amount: decimal.RequireFromString("10"), DivisionID: &divisionID},
	}
	suite.mockTxnRepo.On("QueryTransactions", ctx, mock.Anything).Return(txns, nil).Once()

	rep, err := suite.service.BuildStatement(ctx, "user-1", statementFilter(), domain.DisplayOptions{})

	suite.Require().NoError(err)
	suite.Require().Len(rep.Rows, 1)
	// Division column renders the placeholder, not an error.
	suite.Equal("—", rep.Rows[0][1])
}

func (suite *StatementServiceTestSuite) TestLastStatement_NilBeforeAnyBuild() {
	suite.Nil(suite.service.LastStatement(context.Background(), "user-1"))
}

func (suite *StatementServiceTestSuite) TestLastStatement_UpdatedAfterSuccess() {
	ctx := context.Background()
	suite.expectReferences([]domain.Division{})
	suite.mockTxnRepo.On("QueryTransactions", ctx, mock.Anything).Return(sampleTxns(), nil).Once()

	rep, err := suite.service.BuildStatement(ctx, "user-1", statementFilter(), domain.DisplayOptions{})
	suite.Require().NoError(err)

	suite.Same(rep, suite.service.LastStatement(ctx, "user-1"))
	// Other users see their own slot, not this one.
	suite.Nil(suite.service.LastStatement(ctx, "user-2"))
}

func (suite *StatementServiceTestSuite) TestLastStatement_PreservedAfterFailedBuild() {
	ctx := context.Background()
	suite.expectReferences([]domain.Division{})
	suite.mockTxnRepo.On("QueryTransactions", ctx, mock.Anything).Return(sampleTxns(), nil).Once()
	suite.mockTxnRepo.On("QueryTransactions", ctx, mock.Anything).Return(nil, assert.AnError).Once()

	rep, err := suite.service.BuildStatement(ctx, "user-1", statementFilter(), domain.DisplayOptions{})
	suite.Require().NoError(err)

	_, err = suite.service.BuildStatement(ctx, "user-1", statementFilter(), domain.DisplayOptions{})
	suite.Require().Error(err)

	suite.Same(rep, suite.service.LastStatement(ctx, "user-1"))
}

func (suite *StatementServiceTestSuite) TestLastStatement_OvertakenBuildIsNotCached() {
	ctx := context.Background()
	suite.expectReferences([]domain.Division{})

	newerTxns := []domain.Transaction{
		{TransactionID: "t3", Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Kind: domain.Income, Amount: decimal.RequireFromString("500")},
	}

	var newer *reporting.Report
	suite.mockTxnRepo.On("QueryTransactions", ctx, mock.Anything).
		Run(func(mock.Arguments) {
			// A second build starts and completes while the first one is
			// still waiting on its query.
			rep, err := suite.service.BuildStatement(ctx, "user-1", statementFilter(), domain.DisplayOptions{})
			suite.Require().NoError(err)
			newer = rep
		}).
		Return(sampleTxns(), nil).Once()
	suite.mockTxnRepo.On("QueryTransactions", ctx, mock.Anything).Return(newerTxns, nil).Once()

	older, err := suite.service.BuildStatement(ctx, "user-1", statementFilter(), domain.DisplayOptions{})

	// The overtaken build still goes back to its caller.
	suite.Require().NoError(err)
	suite.Require().NotNil(older)
	suite.Equal("60.00", older.Totals.Net.StringFixed(2))

	// The cache keeps the newer report, not the one that finished last.
	suite.Require().NotNil(newer)
	suite.Same(newer, suite.service.LastStatement(ctx, "user-1"))
	suite.NotSame(older, suite.service.LastStatement(ctx, "user-1"))
}

func (suite *StatementServiceTestSuite) TestStatementCSV() {
	ctx := context.Background()
	suite.expectReferences([]domain.Division{})
	suite.mockTxnRepo.On("QueryTransactions", ctx, mock.Anything).Return(sampleTxns(), nil).Once()

	payload, filename, err := suite.service.StatementCSV(ctx, "user-1", statementFilter(), domain.DisplayOptions{})

	suite.Require().NoError(err)
	suite.Equal("statement_2024-03-01_to_2024-03-31.csv", filename)
	suite.True(bytes.HasPrefix(payload, []byte("Date,")))
	suite.Contains(string(payload), "Total,")
}

func (suite *StatementServiceTestSuite) TestStatementPDF() {
	ctx := context.Background()
	suite.expectReferences([]domain.Division{})
	suite.mockTxnRepo.On("QueryTransactions", ctx, mock.Anything).Return(sampleTxns(), nil).Once()

	payload, filename, err := suite.service.StatementPDF(ctx, "user-1", statementFilter(), domain.DisplayOptions{ShowRunningBalance: true})

	suite.Require().NoError(err)
	suite.Equal("statement_2024-03-01_to_2024-03-31.pdf", filename)
	suite.Require().NotEmpty(payload)
	suite.Equal("%PDF", string(payload[:4]))
}

func TestStatementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StatementServiceTestSuite))
}
