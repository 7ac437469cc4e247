package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Ahsankhan2345/shopping-hify/internal/cart"
	"github.com/Ahsankhan2345/shopping-hify/internal/catalog"
)

type CartHandler struct {
	carts  *cart.Store
	cache  *catalog.Cache
	logger *zap.Logger
}

func NewCartHandler(carts *cart.Store, cache *catalog.Cache, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		carts:  carts,
		cache:  cache,
		logger: logger,
	}
}

func (h *CartHandler) Get(c *gin.Context) {
	userID := c.GetString(ctxUserID)
	c.JSON(http.StatusOK, gin.H{
		"items": h.carts.Lines(userID),
		"total": h.carts.Total(userID),
	})
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// Add resolves the product from the catalog and adds it to the cart. The
// cart keeps its own snapshot of the product, so this is the only point the
// catalog is consulted.
func (h *CartHandler) Add(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid add-to-cart request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
		return
	}

	product, err := h.cache.Get(c.Request.Context(), req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}

	userID := c.GetString(ctxUserID)
	h.carts.Add(userID, product)
	c.JSON(http.StatusOK, gin.H{
		"items": h.carts.Lines(userID),
		"total": h.carts.Total(userID),
	})
}

func (h *CartHandler) Increment(c *gin.Context) {
	userID := c.GetString(ctxUserID)
	h.carts.Increment(userID, c.Param("id"))
	c.JSON(http.StatusOK, gin.H{
		"items": h.carts.Lines(userID),
		"total": h.carts.Total(userID),
	})
}

func (h *CartHandler) Decrement(c *gin.Context) {
	userID := c.GetString(ctxUserID)
	h.carts.Decrement(userID, c.Param("id"))
	c.JSON(http.StatusOK, gin.H{
		"items": h.carts.Lines(userID),
		"total": h.carts.Total(userID),
	})
}

func (h *CartHandler) Remove(c *gin.Context) {
	userID := c.GetString(ctxUserID)
	h.carts.Remove(userID, c.Param("id"))
	c.JSON(http.StatusOK, gin.H{
		"items": h.carts.Lines(userID),
		"total": h.carts.Total(userID),
	})
}

func (h *CartHandler) Clear(c *gin.Context) {
	userID := c.GetString(ctxUserID)
	h.carts.Clear(userID)
	c.Status(http.StatusNoContent)
}
