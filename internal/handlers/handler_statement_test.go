package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"github.com/unionbooks/chapter_ledger/internal/apperrors"
	"github.com/unionbooks/chapter_ledger/internal/core/domain"
	portssvc "github.com/unionbooks/chapter_ledger/internal/core/ports/services"
	"github.com/unionbooks/chapter_ledger/internal/core/reporting"
	"github.com/unionbooks/chapter_ledger/internal/dto"
	"github.com/unionbooks/chapter_ledger/internal/handlers"
	"github.com/unionbooks/chapter_ledger/internal/middleware"
)

// --- Mock StatementService ---
type MockStatementService struct {
	mock.Mock
}

func (m *MockStatementService) BuildStatement(ctx context.Context, userID string, filter domain.StatementFilter, opts domain.DisplayOptions) (*reporting.Report, error) {
	args := m.Called(ctx, userID, filter, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reporting.Report), args.Error(1)
}

func (m *MockStatementService) LastStatement(ctx context.Context, userID string) *reporting.Report {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*reporting.Report)
}

func (m *MockStatementService) StatementCSV(ctx context.Context, userID string, filter domain.StatementFilter, opts domain.DisplayOptions) ([]byte, string, error) {
	args := m.Called(ctx, userID, filter, opts)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func (m *MockStatementService) StatementPDF(ctx context.Context, userID string, filter domain.StatementFilter, opts domain.DisplayOptions) ([]byte, string, error) {
	args := m.Called(ctx, userID, filter, opts)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

var _ portssvc.StatementSvcFacade = (*MockStatementService)(nil)

// --- Test Suite ---
type StatementHandlerTestSuite struct {
	suite.Suite
	router               *gin.Engine
	mockStatementService *MockStatementService
	jwtSecret            string
}

func (suite *StatementHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "chapter-ledger-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *StatementHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	handlers.RegisterCustomValidators()
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockStatementService = new(MockStatementService)

	documentLimiter := limiter.New(memory.NewStore(), limiter.Rate{Period: time.Minute, Limit: 100})
	v1 := suite.router.Group("/api/v1")
	handlers.RegisterStatementRoutes(v1, suite.mockStatementService, documentLimiter)
}

func (suite *StatementHandlerTestSuite) doRequest(method, url, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func sampleReport() *reporting.Report {
	return &reporting.Report{
		Filter: domain.StatementFilter{
			DateFrom: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			DateTo:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
			Kind:     domain.KindAll,
		},
		Headers: []string{"Date", "Division", "Category", "Incoming", "Expense"},
		Rows: [][]string{
			{"2024-03-01", "Metalworkers", "Dues", "100.00", "0.00"},
		},
		Totals: reporting.Totals{
			Income:  decimal.RequireFromString("100"),
			Expense: decimal.Zero,
			Net:     decimal.RequireFromString("100"),
		},
		ColumnWidths: []float64{24, 60, 58, 24, 24},
		GeneratedAt:  time.Now(),
	}
}

// --- Test Cases ---

func (suite *StatementHandlerTestSuite) TestBuildStatement_Success() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)

	suite.mockStatementService.On("BuildStatement",
		mock.Anything,
		userID,
		mock.MatchedBy(func(f domain.StatementFilter) bool {
			return f.DateFrom.Format("2006-01-02") == "2024-03-01" &&
				f.DateTo.Format("2006-01-02") == "2024-03-31" &&
				f.Kind == domain.KindAll
		}),
		mock.MatchedBy(func(o domain.DisplayOptions) bool {
			return o.ShowRunningBalance && !o.TwoSided
		}),
	).Return(sampleReport(), nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/statements?dateFrom=2024-03-01&dateTo=2024-03-31&showRunningBalance=true", token)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.StatementResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal([]string{"Date", "Division", "Category", "Incoming", "Expense"}, resp.Headers)
	suite.Len(resp.Rows, 1)
	suite.Equal("100", resp.Totals.Net.String())

	suite.mockStatementService.AssertExpectations(suite.T())
}

func (suite *StatementHandlerTestSuite) TestBuildStatement_MissingDates() {
	token := suite.generateTestToken(uuid.NewString())

	w := suite.doRequest(http.MethodGet, "/api/v1/statements", token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockStatementService.AssertNotCalled(suite.T(), "BuildStatement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *StatementHandlerTestSuite) TestBuildStatement_BadDateFormat() {
	token := suite.generateTestToken(uuid.NewString())

	w := suite.doRequest(http.MethodGet, "/api/v1/statements?dateFrom=01-03-2024&dateTo=2024-03-31", token)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *StatementHandlerTestSuite) TestBuildStatement_NoToken() {
	w := suite.doRequest(http.MethodGet, "/api/v1/statements?dateFrom=2024-03-01&dateTo=2024-03-31", "")

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *StatementHandlerTestSuite) TestBuildStatement_QueryFailedMapsToBadGateway() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)

	suite.mockStatementService.On("BuildStatement", mock.Anything, userID, mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrQueryFailed).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/statements?dateFrom=2024-03-01&dateTo=2024-03-31", token)

	suite.Equal(http.StatusBadGateway, w.Code)
}

func (suite *StatementHandlerTestSuite) TestLastStatement_NotFoundWhenNoneBuilt() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)

	suite.mockStatementService.On("LastStatement", mock.Anything, userID).Return(nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/statements/last", token)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *StatementHandlerTestSuite) TestLastStatement_ReturnsCachedReport() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)

	suite.mockStatementService.On("LastStatement", mock.Anything, userID).Return(sampleReport()).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/statements/last", token)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *StatementHandlerTestSuite) TestStatementCSV_SetsDownloadHeaders() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)

	payload := []byte("Date,Division\n2024-03-01,Metalworkers\n")
	suite.mockStatementService.On("StatementCSV", mock.Anything, userID, mock.Anything, mock.Anything).
		Return(payload, "statement_2024-03-01_to_2024-03-31.csv", nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/statements/csv?dateFrom=2024-03-01&dateTo=2024-03-31", token)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(`attachment; filename="statement_2024-03-01_to_2024-03-31.csv"`, w.Header().Get("Content-Disposition"))
	suite.Contains(w.Header().Get("Content-Type"), "text/csv")
	suite.Equal(payload, w.Body.Bytes())
}

func (suite *StatementHandlerTestSuite) TestStatementPDF_SetsDownloadHeaders() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)

	suite.mockStatementService.On("StatementPDF", mock.Anything, userID, mock.Anything, mock.Anything).
		Return([]byte("%PDF-1.3"), "statement_2024-03-01_to_2024-03-31.pdf", nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/statements/pdf?dateFrom=2024-03-01&dateTo=2024-03-31", token)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Header().Get("Content-Type"), "application/pdf")
	suite.Contains(w.Header().Get("Content-Disposition"), ".pdf")
}

func (suite *StatementHandlerTestSuite) TestStatement_InvalidKindRejectedByBinding() {
	token := suite.generateTestToken(uuid.NewString())

	w := suite.doRequest(http.MethodGet, "/api/v1/statements?dateFrom=2024-03-01&dateTo=2024-03-31&kind=TRANSFER", token)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func TestStatementHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(StatementHandlerTestSuite))
}
