package routes

import (
	"github.com/gin-gonic/gin"

	"storefront/controllers"
)

// Register wires the storefront API onto the router.
func Register(r *gin.Engine, sc *controllers.StorefrontController) {
	api := r.Group("/api/v1")
	{
		api.GET("/cart", sc.GetCart)
		api.POST("/cart/items", sc.AddItem)
		api.DELETE("/cart", sc.EmptyCart)

		api.POST("/checkout/orders", sc.PlaceOrder)

		api.GET("/products", sc.ListProducts)
		api.GET("/products/search", sc.SearchProducts)
		api.GET("/products/:id", sc.GetProduct)

		api.GET("/currencies", sc.ListCurrencies)
		api.POST("/session/currency", sc.SetCurrency)

		api.GET("/ads", sc.GetAds)
	}
}
