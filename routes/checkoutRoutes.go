package routes

import (
	"github.com/Kariqs/amexan-store/controllers"
	"github.com/Kariqs/amexan-store/middlewares"
	"github.com/gin-gonic/gin"
)

func CheckoutRoutes(server *gin.Engine, h *controllers.Handler, sessions gin.HandlerFunc, jwtSecret string) {
	checkout := server.Group("/checkout", sessions)
	{
		checkout.GET("/confirmation", h.GetConfirmation)

		authed := checkout.Group("", middlewares.RequireAuth(jwtSecret))
		authed.GET("", h.GetCheckout)
		authed.POST("", h.PostCheckout)
	}
}
