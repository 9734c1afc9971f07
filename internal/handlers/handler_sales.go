package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopledger/shop_ledger_backend/internal/apperrors"
	portssvc "github.com/shopledger/shop_ledger_backend/internal/core/ports/services"
	"github.com/shopledger/shop_ledger_backend/internal/core/services"
	"github.com/shopledger/shop_ledger_backend/internal/dto"
	"github.com/shopledger/shop_ledger_backend/internal/middleware"
)

// salesHandler handles HTTP requests that post sales into the ledger.
type salesHandler struct {
	inventoryService portssvc.InventorySvcFacade
}

// newSalesHandler creates a new salesHandler.
func newSalesHandler(is portssvc.InventorySvcFacade) *salesHandler {
	return &salesHandler{
		inventoryService: is,
	}
}

// registerSalesRoutes registers routes related to sales.
func registerSalesRoutes(rg *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade) {
	h := newSalesHandler(inventoryService)

	sales := rg.Group("/sales")
	{
		sales.POST("", h.recordSale)
		sales.POST("/:reference/reverse", h.reverseSale)
	}
}

// recordSale godoc
// @Summary Record a sale
// @Description Decrements stock and posts the revenue entry (and the cost entry when the product carries cost) in one transaction
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   sale body dto.RecordSaleRequest true "Sale details"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} map[string]string "Invalid input or insufficient stock"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 500 {object} map[string]string "Failed to record sale"
// @Router /sales [post]
func (h *salesHandler) recordSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	sale, err := h.inventoryService.RecordSale(c.Request.Context(), req, userID)
	if err != nil {
		h.writeSaleError(c, logger, "record", err)
		return
	}

	logger.Info("Sale recorded",
		slog.String("reference", sale.Reference),
		slog.String("revenue_entry_id", sale.RevenueEntryID),
		slog.String("user_id", userID))
	c.JSON(http.StatusCreated, sale)
}

// reverseSale godoc
// @Summary Reverse a sale
// @Description Restores stock and posts new entries with debit and credit swapped; the original entries remain
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   reference path string true "Sale reference"
// @Param   sale body dto.ReverseSaleRequest true "Reversal details"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 500 {object} map[string]string "Failed to reverse sale"
// @Router /sales/{reference}/reverse [post]
func (h *salesHandler) reverseSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReverseSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	req.Reference = c.Param("reference")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	sale, err := h.inventoryService.ReverseSale(c.Request.Context(), req, userID)
	if err != nil {
		h.writeSaleError(c, logger, "reverse", err)
		return
	}

	logger.Info("Sale reversed", slog.String("reference", sale.Reference), slog.String("user_id", userID))
	c.JSON(http.StatusCreated, sale)
}

func (h *salesHandler) writeSaleError(c *gin.Context, logger *slog.Logger, action string, err error) {
	switch {
	case errors.Is(err, services.ErrInsufficientStock), errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	default:
		logger.Error("Failed to "+action+" sale", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action + " sale"})
	}
}
