package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopledger/shop_ledger_backend/internal/apperrors"
	portssvc "github.com/shopledger/shop_ledger_backend/internal/core/ports/services"
	"github.com/shopledger/shop_ledger_backend/internal/dto"
	"github.com/shopledger/shop_ledger_backend/internal/middleware"
)

// reportingHandler handles HTTP requests for time-series reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to reports.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/sales-over-time", h.salesOverTime)
		reports.GET("/income-vs-expense", h.incomeVsExpense)
	}
}

// salesOverTime godoc
// @Summary Sales revenue over time
// @Description Aggregates posted sales revenue into buckets of the requested interval (day, week, month, quarter, year; default month)
// @Tags reports
// @Produce  json
// @Param   interval query string false "Bucket interval" Enums(day, week, month, quarter, year)
// @Success 200 {object} dto.TimeSeriesResponse
// @Failure 400 {object} map[string]string "Invalid interval"
// @Failure 500 {object} map[string]string "Failed to build report"
// @Router /reports/sales-over-time [get]
func (h *reportingHandler) salesOverTime(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var query dto.TimeSeriesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid interval: " + err.Error()})
		return
	}

	series, err := h.reportingService.SalesOverTime(c.Request.Context(), query.Interval)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to build sales-over-time report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, series)
}

// incomeVsExpense godoc
// @Summary Income vs expense over time
// @Description Paired income and expense series, both as positive magnitudes per bucket
// @Tags reports
// @Produce  json
// @Param   interval query string false "Bucket interval" Enums(day, week, month, quarter, year)
// @Success 200 {object} dto.IncomeVsExpenseResponse
// @Failure 400 {object} map[string]string "Invalid interval"
// @Failure 500 {object} map[string]string "Failed to build report"
// @Router /reports/income-vs-expense [get]
func (h *reportingHandler) incomeVsExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var query dto.TimeSeriesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid interval: " + err.Error()})
		return
	}

	report, err := h.reportingService.IncomeVsExpenseOverTime(c.Request.Context(), query.Interval)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to build income-vs-expense report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, report)
}
