package routes

import (
	"github.com/Kariqs/amexan-store/controllers"
	"github.com/Kariqs/amexan-store/middlewares"
	"github.com/gin-gonic/gin"
)

func ProductRoutes(server *gin.Engine, h *controllers.Handler, jwtSecret string) {
	products := server.Group("/products")
	{
		products.GET("", h.GetProducts)
		products.GET("/:id", h.GetProduct)

		admin := products.Group("", middlewares.RequireAuth(jwtSecret), middlewares.RequireAdmin())
		admin.POST("", h.CreateProduct)
		admin.POST("/:id/images", h.UploadProductImage)
	}
}
