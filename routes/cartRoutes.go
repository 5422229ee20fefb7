package routes

import (
	"github.com/Kariqs/amexan-store/controllers"
	"github.com/gin-gonic/gin"
)

func CartRoutes(server *gin.Engine, h *controllers.Handler, sessions gin.HandlerFunc) {
	cart := server.Group("/cart", sessions)
	{
		cart.GET("", h.GetCart)
		cart.POST("/items/:productId", h.AddCartItem)
		cart.DELETE("/items/:productId", h.RemoveCartItem)
		cart.POST("/items/:productId/quantity/:quantity", h.SetCartItemQuantity)
	}
}
