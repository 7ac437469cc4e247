package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Ahsankhan2345/shopping-hify/internal/checkout"
	"github.com/Ahsankhan2345/shopping-hify/internal/domain"
)

type CheckoutHandler struct {
	checkout *checkout.Service
	logger   *zap.Logger
}

func NewCheckoutHandler(svc *checkout.Service, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: svc,
		logger:   logger,
	}
}

// Begin snapshots the cart into a draft order and returns the priced
// preview. An empty cart is rejected; the client keeps an escape path back
// to browsing.
func (h *CheckoutHandler) Begin(c *gin.Context) {
	order, err := h.checkout.Begin(c.Request.Context(), c.GetString(ctxUserID), c.GetString(ctxUserName))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type placeOrderRequest struct {
	PaymentMethod  string `json:"payment_method"`
	DeliveryMethod string `json:"delivery_method"`
}

func (h *CheckoutHandler) Place(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid place-order request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	order, err := h.checkout.Place(c.Request.Context(),
		c.GetString(ctxUserID), c.GetString(ctxUserName),
		domain.PaymentMethod(req.PaymentMethod), domain.DeliveryMethod(req.DeliveryMethod))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *CheckoutHandler) Order(c *gin.Context) {
	order, err := h.checkout.Order(c.GetString(ctxUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// Receipt exports the placed order as plain text.
func (h *CheckoutHandler) Receipt(c *gin.Context) {
	receipt, err := h.checkout.ExportReceipt(c.Request.Context(), c.GetString(ctxUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.String(http.StatusOK, receipt)
}
