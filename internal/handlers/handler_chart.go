package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shopledger/shop_ledger_backend/internal/apperrors"
	portssvc "github.com/shopledger/shop_ledger_backend/internal/core/ports/services"
	"github.com/shopledger/shop_ledger_backend/internal/dto"
	"github.com/shopledger/shop_ledger_backend/internal/middleware"
)

const dateLayout = "2006-01-02"

// chartHandler handles HTTP requests for the chart of accounts and the
// statements derived from it.
type chartHandler struct {
	chartService  portssvc.ChartSvcFacade
	ledgerService portssvc.LedgerSvcFacade
}

// newChartHandler creates a new chartHandler.
func newChartHandler(cs portssvc.ChartSvcFacade, ls portssvc.LedgerSvcFacade) *chartHandler {
	return &chartHandler{
		chartService:  cs,
		ledgerService: ls,
	}
}

// registerChartRoutes registers routes related to accounts and statements.
func registerChartRoutes(rg *gin.RouterGroup, chartService portssvc.ChartSvcFacade, ledgerService portssvc.LedgerSvcFacade) {
	h := newChartHandler(chartService, ledgerService)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("/accounts", h.trialBalance)
		ledger.GET("/accounts/:code/balance", h.accountBalance)
		ledger.GET("/income-statement", h.incomeStatement)
	}
}

// trialBalance godoc
// @Summary Trial balance
// @Description Returns every account with raw debit/credit totals, its signed balance, and per-type totals
// @Tags ledger
// @Produce  json
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 500 {object} map[string]string "Failed to build trial balance"
// @Router /ledger/accounts [get]
func (h *chartHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	balance, err := h.ledgerService.TrialBalance(c.Request.Context())
	if err != nil {
		logger.Error("Failed to build trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build trial balance"})
		return
	}

	c.JSON(http.StatusOK, balance)
}

// accountBalance godoc
// @Summary Account balance by code
// @Description Returns the signed balance of one account under its normal polarity
// @Tags ledger
// @Produce  json
// @Param   code path string true "Account code"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to compute balance"
// @Router /ledger/accounts/{code}/balance [get]
func (h *chartHandler) accountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	account, err := h.chartService.GetAccountByCode(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to find account", slog.String("error", err.Error()), slog.String("code", code))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
		return
	}

	balance, err := h.ledgerService.AccountBalance(c.Request.Context(), account.AccountID)
	if err != nil {
		logger.Error("Failed to compute account balance", slog.String("error", err.Error()), slog.String("code", code))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
		return
	}

	c.JSON(http.StatusOK, dto.AccountBalanceResponse{
		AccountID:   account.AccountID,
		Code:        account.Code,
		Name:        account.Name,
		AccountType: account.AccountType,
		Balance:     balance,
	})
}

// incomeStatement godoc
// @Summary Income statement
// @Description Income and expense lines over an optional inclusive date range, with totals and the net result
// @Tags ledger
// @Produce  json
// @Param   from query string false "Start date (YYYY-MM-DD, inclusive)"
// @Param   to query string false "End date (YYYY-MM-DD, inclusive)"
// @Success 200 {object} domain.IncomeStatement
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 500 {object} map[string]string "Failed to build income statement"
// @Router /ledger/income-statement [get]
func (h *chartHandler) incomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var query dto.IncomeStatementQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	from, err := parseDateParam(query.From, false)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' date, expected YYYY-MM-DD"})
		return
	}
	to, err := parseDateParam(query.To, true)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' date, expected YYYY-MM-DD"})
		return
	}

	statement, err := h.ledgerService.IncomeStatement(c.Request.Context(), from, to)
	if err != nil {
		logger.Error("Failed to build income statement", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build income statement"})
		return
	}

	c.JSON(http.StatusOK, statement)
}

// parseDateParam parses an optional YYYY-MM-DD bound. End bounds are pushed
// to the last instant of the day so the range stays inclusive against
// timestamp columns.
func parseDateParam(s *string, endOfDay bool) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
