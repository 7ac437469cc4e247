package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Ahsankhan2345/shopping-hify/internal/cart"
	"github.com/Ahsankhan2345/shopping-hify/internal/catalog"
	"github.com/Ahsankhan2345/shopping-hify/internal/checkout"
	"github.com/Ahsankhan2345/shopping-hify/internal/domain"
	"github.com/Ahsankhan2345/shopping-hify/internal/repository"
	"github.com/Ahsankhan2345/shopping-hify/internal/session"
)

const upstreamList = `[
	{"id": 1, "title": "USB Hub", "price": 10, "description": "hub", "image": "https://img/1.png", "category": "electronics"},
	{"id": 2, "title": "Gold Ring", "price": 5, "description": "ring", "image": "https://img/2.png", "category": "jewelery"}
]`

type fixture struct {
	router   *gin.Engine
	upstream *httptest.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products":
			w.Write([]byte(upstreamList))
		case "/products/1":
			w.Write([]byte(`{"id": 1, "title": "USB Hub", "price": 10, "description": "hub", "image": "https://img/1.png", "category": "electronics"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(upstream.Close)

	cache := catalog.NewCache(catalog.NewClient(upstream.URL, 100), logger)
	carts := cart.NewStore(logger)
	checkoutSvc := checkout.NewService(carts, noopPublisher{}, logger)
	tokens := session.NewTokenManager("test-secret", time.Hour)
	sessions := session.NewService(
		repository.NewMemoryUserStore(),
		repository.NewMemorySessionStore(),
		repository.NewMemorySessionStore(),
		tokens, logger)

	router := NewRouter(
		NewProductHandler(cache, logger),
		NewCartHandler(carts, cache, logger),
		NewCheckoutHandler(checkoutSvc, logger),
		NewAuthHandler(sessions, logger),
		logger)

	return &fixture{router: router, upstream: upstream}
}

type noopPublisher struct{}

func (noopPublisher) OrderPlaced(ctx context.Context, userID string, order domain.Order) error {
	return nil
}

func (noopPublisher) ReceiptExported(ctx context.Context, userID, invoiceNo string) error {
	return nil
}

func (f *fixture) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) registerAndLogin(t *testing.T) string {
	t.Helper()
	w := f.do(t, http.MethodPost, "/api/v1/auth/register", "",
		`{"name": "Ali", "email": "ali@example.com", "password": "secret1"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var sess domain.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sess))
	require.NotEmpty(t, sess.AuthToken)
	return sess.AuthToken
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodGet, "/api/v1/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListProducts(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodGet, "/api/v1/products", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Products []domain.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Products, 2)
	assert.Equal(t, "USB Hub", resp.Products[0].Name)
	assert.Equal(t, int64(1000), resp.Products[0].Price)
	assert.Equal(t, domain.CategoryTech, resp.Products[0].Category)
}

func TestSearchProducts(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodGet, "/api/v1/products?search=ring", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Products []domain.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Gold Ring", resp.Products[0].Name)
}

func TestGetProductNotFound(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodGet, "/api/v1/products/999", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCatalogUnavailable(t *testing.T) {
	f := newFixture(t)
	f.upstream.Close()

	w := f.do(t, http.MethodGet, "/api/v1/products", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCartRequiresSession(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/cart", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(t, http.MethodGet, "/api/v1/cart", "not-a-session", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterValidationAndConflict(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/auth/register", "",
		`{"name": "Ali", "email": "ali@example.com", "password": "12345"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	f.registerAndLogin(t)
	w = f.do(t, http.MethodPost, "/api/v1/auth/register", "",
		`{"name": "Other", "email": "ali@example.com", "password": "secret2"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newFixture(t)
	f.registerAndLogin(t)

	w := f.do(t, http.MethodPost, "/api/v1/auth/login", "",
		`{"identifier": "ali@example.com", "password": "wrongpass"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	f := newFixture(t)
	token := f.registerAndLogin(t)

	w := f.do(t, http.MethodPost, "/api/v1/auth/logout", token, "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(t, http.MethodGet, "/api/v1/cart", token, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCartFlow(t *testing.T) {
	f := newFixture(t)
	token := f.registerAndLogin(t)

	w := f.do(t, http.MethodPost, "/api/v1/cart/items", token, `{"product_id": "1"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = f.do(t, http.MethodPost, "/api/v1/cart/items/1/increment", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []domain.CartLine `json:"items"`
		Total int64             `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Items[0].Qty)
	assert.Equal(t, int64(2000), resp.Total)

	w = f.do(t, http.MethodDelete, "/api/v1/cart/items/1", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
}

func TestAddUnknownProduct(t *testing.T) {
	f := newFixture(t)
	token := f.registerAndLogin(t)

	w := f.do(t, http.MethodPost, "/api/v1/cart/items", token, `{"product_id": "999"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckoutFlow(t *testing.T) {
	f := newFixture(t)
	token := f.registerAndLogin(t)

	// Empty cart blocks checkout.
	w := f.do(t, http.MethodPost, "/api/v1/checkout", token, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = f.do(t, http.MethodPost, "/api/v1/cart/items", token, `{"product_id": "1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPost, "/api/v1/checkout", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var draft domain.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &draft))
	assert.Equal(t, domain.OrderStatusDraft, draft.Status)
	assert.Equal(t, int64(1000), draft.Subtotal)

	// Missing delivery method is rejected and the draft survives.
	w = f.do(t, http.MethodPost, "/api/v1/checkout/place", token,
		fmt.Sprintf(`{"payment_method": %q}`, domain.PaymentCard))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/api/v1/checkout/place", token,
		fmt.Sprintf(`{"payment_method": %q, "delivery_method": %q}`, domain.PaymentCard, domain.DeliveryStandard))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var placed domain.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &placed))
	assert.Equal(t, domain.OrderStatusPlaced, placed.Status)
	assert.Equal(t, int64(1050), placed.GrandTotal)

	// The cart cleared at placement.
	w = f.do(t, http.MethodGet, "/api/v1/cart", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	var cartResp struct {
		Items []domain.CartLine `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cartResp))
	assert.Empty(t, cartResp.Items)

	// Receipt still shows the snapshot.
	w = f.do(t, http.MethodPost, "/api/v1/checkout/receipt", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), placed.InvoiceNo)
	assert.Contains(t, w.Body.String(), "USB Hub")
}

func TestReceiptWithoutPlacedOrder(t *testing.T) {
	f := newFixture(t)
	token := f.registerAndLogin(t)

	w := f.do(t, http.MethodPost, "/api/v1/checkout/receipt", token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
