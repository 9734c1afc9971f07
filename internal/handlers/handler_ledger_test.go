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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/shopledger/shop_ledger_backend/internal/apperrors"
	"github.com/shopledger/shop_ledger_backend/internal/core/domain"
	portsrepo "github.com/shopledger/shop_ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/shopledger/shop_ledger_backend/internal/core/ports/services"
	"github.com/shopledger/shop_ledger_backend/internal/core/services"
	"github.com/shopledger/shop_ledger_backend/internal/dto"
	"github.com/shopledger/shop_ledger_backend/internal/handlers"
	"github.com/shopledger/shop_ledger_backend/internal/middleware"
	"github.com/shopledger/shop_ledger_backend/internal/platform/config"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerService) CreateEntryIn(ctx context.Context, set portsrepo.RepositorySet, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, set, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}

func (m *MockLedgerService) AccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerService) TrialBalance(ctx context.Context) (*dto.TrialBalanceResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TrialBalanceResponse), args.Error(1)
}

func (m *MockLedgerService) IncomeStatement(ctx context.Context, from, to *time.Time) (*domain.IncomeStatement, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeStatement), args.Error(1)
}

type LedgerHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockLedgerSvc *MockLedgerService
	userID        string
}

func (suite *LedgerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.mockLedgerSvc = new(MockLedgerService)
	suite.userID = uuid.NewString()

	cfg := &config.Config{Port: "8080", IsProduction: true, RateLimit: "1000-M"}
	container := &portssvc.ServiceContainer{Ledger: suite.mockLedgerSvc}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, container)
}

func (suite *LedgerHandlerTestSuite) postEntry(body any, withUser bool) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ledger/entries", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if withUser {
		req.Header.Set(middleware.UserIDHeader, suite.userID)
	}

	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	return rec
}

func (suite *LedgerHandlerTestSuite) TestCreateEntry_Success() {
	req := dto.CreateEntryRequest{
		Description: "cash sale",
		Lines: []dto.EntryLineInput{
			{AccountCode: domain.CodeCash, Debit: decimal.NewFromInt(100)},
			{AccountCode: domain.CodeSales, Credit: decimal.NewFromInt(100)},
		},
	}

	entry := &domain.JournalEntry{
		EntryID:     uuid.NewString(),
		EntryDate:   time.Now().UTC(),
		Description: req.Description,
	}
	suite.mockLedgerSvc.On("CreateEntry", mock.Anything, mock.AnythingOfType("dto.CreateEntryRequest"), suite.userID).
		Return(entry, nil).Once()

	rec := suite.postEntry(req, true)

	suite.Equal(http.StatusCreated, rec.Code)
	var resp dto.EntryResponse
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	suite.Equal(entry.EntryID, resp.EntryID)
	suite.mockLedgerSvc.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestCreateEntry_MissingUserHeader() {
	req := dto.CreateEntryRequest{Description: "anonymous"}

	rec := suite.postEntry(req, false)

	suite.Equal(http.StatusUnauthorized, rec.Code)
	suite.mockLedgerSvc.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestCreateEntry_Unbalanced() {
	req := dto.CreateEntryRequest{
		Description: "lopsided",
		Lines: []dto.EntryLineInput{
			{AccountCode: domain.CodeCash, Debit: decimal.NewFromInt(100)},
			{AccountCode: domain.CodeSales, Credit: decimal.NewFromInt(90)},
		},
	}

	suite.mockLedgerSvc.On("CreateEntry", mock.Anything, mock.AnythingOfType("dto.CreateEntryRequest"), suite.userID).
		Return(nil, &services.UnbalancedEntryError{
			TotalDebit:  decimal.NewFromInt(100),
			TotalCredit: decimal.NewFromInt(90),
		}).Once()

	rec := suite.postEntry(req, true)

	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Contains(rec.Body.String(), "unbalanced")
}

func (suite *LedgerHandlerTestSuite) TestCreateEntry_MalformedBody() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ledger/entries", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.UserIDHeader, suite.userID)

	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)

	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *LedgerHandlerTestSuite) TestGetEntry_NotFound() {
	entryID := uuid.NewString()
	suite.mockLedgerSvc.On("GetEntryByID", mock.Anything, entryID).
		Return(nil, apperrors.ErrNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ledger/entries/"+entryID, nil)
	req.Header.Set(middleware.UserIDHeader, suite.userID)
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)

	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *LedgerHandlerTestSuite) TestListEntries() {
	suite.mockLedgerSvc.On("ListEntries", mock.Anything, dto.ListEntriesParams{Limit: 5}).
		Return(&dto.ListEntriesResponse{Entries: []dto.EntryResponse{}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ledger/entries?limit=5", nil)
	req.Header.Set(middleware.UserIDHeader, suite.userID)
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)

	suite.Equal(http.StatusOK, rec.Code)
}

func TestLedgerHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}
