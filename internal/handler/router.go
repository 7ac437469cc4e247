package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Ahsankhan2345/shopping-hify/pkg/middleware"
)

// NewRouter assembles the API surface. Cart and checkout routes are gated by
// the session; the catalog and auth endpoints are public.
func NewRouter(products *ProductHandler, carts *CartHandler, checkouts *CheckoutHandler, auth *AuthHandler, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "healthy", "service": "shopping-hify"})
		})

		v1.GET("/products", products.List)
		v1.POST("/products/refresh", products.Refresh)
		v1.GET("/products/:id", products.Get)

		v1.POST("/auth/register", auth.Register)
		v1.POST("/auth/login", auth.Login)
		v1.POST("/auth/logout", auth.Logout)
		v1.GET("/auth/session", auth.Session)

		secured := v1.Group("")
		secured.Use(auth.RequireSession())
		{
			secured.GET("/cart", carts.Get)
			secured.POST("/cart/items", carts.Add)
			secured.POST("/cart/items/:id/increment", carts.Increment)
			secured.POST("/cart/items/:id/decrement", carts.Decrement)
			secured.DELETE("/cart/items/:id", carts.Remove)
			secured.DELETE("/cart", carts.Clear)

			secured.POST("/checkout", checkouts.Begin)
			secured.GET("/checkout", checkouts.Order)
			secured.POST("/checkout/place", checkouts.Place)
			secured.POST("/checkout/receipt", checkouts.Receipt)
		}
	}

	return router
}
