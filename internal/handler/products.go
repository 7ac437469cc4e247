package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Ahsankhan2345/shopping-hify/internal/catalog"
)

type ProductHandler struct {
	cache  *catalog.Cache
	logger *zap.Logger
}

func NewProductHandler(cache *catalog.Cache, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		cache:  cache,
		logger: logger,
	}
}

// List serves the cached catalog, optionally filtered by ?search=. The cache
// is refreshed lazily on first use; a failed refresh with a warm cache still
// serves the previous products.
func (h *ProductHandler) List(c *gin.Context) {
	if h.cache.LastSync().IsZero() {
		if err := h.cache.Refresh(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
	}

	if term := c.Query("search"); term != "" {
		c.JSON(http.StatusOK, gin.H{"products": h.cache.Search(term)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": h.cache.Products()})
}

// Refresh re-fetches the catalog on user action. Failure leaves the previous
// catalog intact and surfaces a retry affordance.
func (h *ProductHandler) Refresh(c *gin.Context) {
	if err := h.cache.Refresh(c.Request.Context()); err != nil {
		h.logger.Warn("catalog refresh failed", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"products":  h.cache.Products(),
		"last_sync": h.cache.LastSync(),
	})
}

func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.cache.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}
