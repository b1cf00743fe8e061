package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/statementdesk/bank_recon_app/internal/apperrors"
	"github.com/statementdesk/bank_recon_app/internal/core/domain"
	"github.com/statementdesk/bank_recon_app/internal/core/ports"
	"github.com/statementdesk/bank_recon_app/internal/dto"
	"github.com/statementdesk/bank_recon_app/internal/handlers"
	"github.com/statementdesk/bank_recon_app/internal/platform/config"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock StatementService ---
type MockStatementService struct {
	mock.Mock
}

func (m *MockStatementService) ImportStatement(ctx context.Context, data []byte, fileName string) (*domain.Statement, int, error) {
	args := m.Called(ctx, data, fileName)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).(*domain.Statement), args.Int(1), args.Error(2)
}

func (m *MockStatementService) GetStatementByID(ctx context.Context, statementID string) (*domain.Statement, error) {
	args := m.Called(ctx, statementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statement), args.Error(1)
}

func (m *MockStatementService) ListStatements(ctx context.Context, limit int, offset int) ([]domain.Statement, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Statement), args.Error(1)
}

var _ ports.StatementSvcFacade = (*MockStatementService)(nil)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) GrabTransaction(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) UpdateUserNotes(ctx context.Context, transactionID string, notes string, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, notes, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) CompleteTransaction(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

var _ ports.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockReportingService) ListAssignedTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

var _ ports.ReportingSvcFacade = (*MockReportingService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

var _ ports.UserSvcFacade = (*MockUserService)(nil)

func strPtr(s string) *string { return &s }

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router                 *gin.Engine
	mockStatementService   *MockStatementService
	mockTransactionService *MockTransactionService
	mockReportingService   *MockReportingService
	mockUserService        *MockUserService
	jwtSecret              string
}

func (suite *TransactionHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "recon-test",
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

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	gin.EnableJsonDecoderDisallowUnknownFields()
	handlers.RegisterValidations()

	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.router = gin.New()

	suite.mockStatementService = new(MockStatementService)
	suite.mockTransactionService = new(MockTransactionService)
	suite.mockReportingService = new(MockReportingService)
	suite.mockUserService = new(MockUserService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret}
	noRateLimit := func(c *gin.Context) { c.Next() }
	handlers.RegisterRoutes(suite.router, cfg, handlers.Services{
		Statement:   suite.mockStatementService,
		Transaction: suite.mockTransactionService,
		Reporting:   suite.mockReportingService,
		User:        suite.mockUserService,
	}, noRateLimit)
}

func (suite *TransactionHandlerTestSuite) doRequest(method, path, token string, body []byte) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_Unauthorized() {
	w := suite.doRequest(http.MethodGet, "/api/v1/transactions", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_NoFilter() {
	token := suite.generateTestToken("user-1")
	suite.mockReportingService.On("ListTransactions", mock.Anything, dto.ListTransactionsParams{}).
		Return([]domain.Transaction{{TransactionID: "txn-1", Status: domain.StatusUnassigned}}, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/transactions", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Transactions, 1)
	suite.Equal("txn-1", resp.Transactions[0].TransactionID)
	suite.mockReportingService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_MonthYearForwarded() {
	token := suite.generateTestToken("user-1")
	suite.mockReportingService.On("ListTransactions", mock.Anything, mock.MatchedBy(func(params dto.ListTransactionsParams) bool {
		return params.Month != nil && *params.Month == 2 && params.Year != nil && *params.Year == 2024
	})).Return([]domain.Transaction{}, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/transactions?month=2&year=2024", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockReportingService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_BadMonth() {
	token := suite.generateTestToken("user-1")

	w := suite.doRequest(http.MethodGet, "/api/v1/transactions?month=13&year=2024", token, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReportingService.AssertNotCalled(suite.T(), "ListTransactions", mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_NotFound() {
	token := suite.generateTestToken("user-1")
	suite.mockTransactionService.On("GetTransactionByID", mock.Anything, "txn-404").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/transactions/txn-404", token, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestPatchTransaction_Grab() {
	token := suite.generateTestToken("user-1")
	claimed := &domain.Transaction{TransactionID: "txn-1", Status: domain.StatusInProgress, AssignedTo: strPtr("user-1")}
	suite.mockTransactionService.On("UpdateTransaction", mock.Anything, "txn-1", mock.MatchedBy(func(req dto.UpdateTransactionRequest) bool {
		return req.Status != nil && *req.Status == "in_progress"
	}), "user-1").Return(claimed, nil).Once()

	body := []byte(`{"status":"in_progress","assignedTo":"user-1"}`)
	w := suite.doRequest(http.MethodPatch, "/api/v1/transactions/txn-1", token, body)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TransactionDetailResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("in_progress", resp.Transaction.Status)
	suite.mockTransactionService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestPatchTransaction_UnknownFieldRejected() {
	token := suite.generateTestToken("user-1")

	body := []byte(`{"status":"in_progress","favoriteColor":"green"}`)
	w := suite.doRequest(http.MethodPatch, "/api/v1/transactions/txn-1", token, body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTransactionService.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestPatchTransaction_BogusStatusRejected() {
	token := suite.generateTestToken("user-1")

	body := []byte(`{"status":"archived"}`)
	w := suite.doRequest(http.MethodPatch, "/api/v1/transactions/txn-1", token, body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTransactionService.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestPatchTransaction_GrabConflict() {
	token := suite.generateTestToken("user-1")
	suite.mockTransactionService.On("UpdateTransaction", mock.Anything, "txn-1", mock.Anything, "user-1").
		Return(nil, apperrors.ErrAlreadyAssigned).Once()

	body := []byte(`{"status":"in_progress"}`)
	w := suite.doRequest(http.MethodPatch, "/api/v1/transactions/txn-1", token, body)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestPatchTransaction_NotAssignee() {
	token := suite.generateTestToken("user-2")
	suite.mockTransactionService.On("UpdateTransaction", mock.Anything, "txn-1", mock.Anything, "user-2").
		Return(nil, apperrors.ErrNotAssignee).Once()

	body := []byte(`{"userNotes":"mine now"}`)
	w := suite.doRequest(http.MethodPatch, "/api/v1/transactions/txn-1", token, body)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestPatchTransaction_InvalidTransition() {
	token := suite.generateTestToken("user-1")
	suite.mockTransactionService.On("UpdateTransaction", mock.Anything, "txn-1", mock.Anything, "user-1").
		Return(nil, apperrors.ErrInvalidTransition).Once()

	body := []byte(`{"status":"completed"}`)
	w := suite.doRequest(http.MethodPatch, "/api/v1/transactions/txn-1", token, body)

	suite.Equal(http.StatusConflict, w.Code)
}

func TestTransactionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
