package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to Amexan Store API ❤️.

AUTH
- POST "/auth/signup" - Create user account
- POST "/auth/login" - Access user account

PRODUCT
- GET "/products" - List products
- GET "/products/:id" - Get product by ID
- POST "/products" - Create product (admin)
- POST "/products/:id/images" - Upload product image (admin)

CART
- GET "/cart" - View cart
- POST "/cart/items/:productId" - Add one unit
- DELETE "/cart/items/:productId" - Remove item
- POST "/cart/items/:productId/quantity/:quantity" - Set quantity

CHECKOUT
- GET "/checkout" - Price the cart for checkout
- POST "/checkout" - create_payment or place_order
- GET "/checkout/confirmation" - Last order confirmation, shown once

ORDER
- GET "/orders" - Orders for the signed in user
- GET "/orders/:id" - One order of the signed in user`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
