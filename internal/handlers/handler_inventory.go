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

// inventoryHandler handles HTTP requests for the product catalog and stock.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
}

// newInventoryHandler creates a new inventoryHandler.
func newInventoryHandler(is portssvc.InventorySvcFacade) *inventoryHandler {
	return &inventoryHandler{
		inventoryService: is,
	}
}

// registerInventoryRoutes registers routes related to products and stock.
func registerInventoryRoutes(rg *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade) {
	h := newInventoryHandler(inventoryService)

	products := rg.Group("/inventory/products")
	{
		products.POST("", h.createProduct)
		products.GET("", h.listProducts)
		products.GET("/:id", h.getProduct)
		products.POST("/:id/receive", h.receiveStock)
	}
}

// createProduct godoc
// @Summary Create a product
// @Description Registers an inventory item with zero initial stock
// @Tags inventory
// @Accept  json
// @Produce  json
// @Param   product body dto.CreateProductRequest true "Product details"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Duplicate SKU"
// @Failure 500 {object} map[string]string "Failed to create product"
// @Router /inventory/products [post]
func (h *inventoryHandler) createProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	product, err := h.inventoryService.CreateProduct(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create product", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		}
		return
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID), slog.String("creator_user_id", creatorUserID))
	c.JSON(http.StatusCreated, dto.ToProductResponse(product))
}

// listProducts godoc
// @Summary List products
// @Tags inventory
// @Produce  json
// @Success 200 {array} dto.ProductResponse
// @Failure 500 {object} map[string]string "Failed to list products"
// @Router /inventory/products [get]
func (h *inventoryHandler) listProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	products, err := h.inventoryService.ListProducts(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list products", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}

	responses := make([]dto.ProductResponse, len(products))
	for i := range products {
		responses[i] = dto.ToProductResponse(&products[i])
	}
	c.JSON(http.StatusOK, responses)
}

// getProduct godoc
// @Summary Get a product
// @Tags inventory
// @Produce  json
// @Param   id path string true "Product ID"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 500 {object} map[string]string "Failed to retrieve product"
// @Router /inventory/products/{id} [get]
func (h *inventoryHandler) getProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("id")

	product, err := h.inventoryService.GetProductByID(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		logger.Error("Failed to get product", slog.String("error", err.Error()), slog.String("product_id", productID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// receiveStock godoc
// @Summary Receive stock
// @Description Adds quantity to a product and recalculates its weighted-average unit cost
// @Tags inventory
// @Accept  json
// @Produce  json
// @Param   id path string true "Product ID"
// @Param   receipt body dto.ReceiveStockRequest true "Receipt details"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 500 {object} map[string]string "Failed to receive stock"
// @Router /inventory/products/{id}/receive [post]
func (h *inventoryHandler) receiveStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("id")

	var req dto.ReceiveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	product, err := h.inventoryService.ReceiveStock(c.Request.Context(), productID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		default:
			logger.Error("Failed to receive stock", slog.String("error", err.Error()), slog.String("product_id", productID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to receive stock"})
		}
		return
	}

	logger.Info("Stock received", slog.String("product_id", productID), slog.String("user_id", userID))
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}
