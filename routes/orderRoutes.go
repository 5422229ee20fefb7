package routes

import (
	"github.com/Kariqs/amexan-store/controllers"
	"github.com/Kariqs/amexan-store/middlewares"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine, h *controllers.Handler, jwtSecret string) {
	server.GET("/orders", middlewares.RequireAuth(jwtSecret), h.GetOrders)
	server.GET("/orders/:id", middlewares.RequireAuth(jwtSecret), h.GetOrder)
}
