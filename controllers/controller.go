package controllers

import (
	"github.com/Kariqs/amexan-store/catalog"
	"github.com/Kariqs/amexan-store/checkout"
	"github.com/Kariqs/amexan-store/orders"
	"github.com/Kariqs/amexan-store/session"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Standard response messages
const (
	msgInvalidInput          = "invalid input"
	msgUserAlreadyExists     = "user already exists"
	msgFailedToHashPassword  = "failed to hash password"
	msgInvalidCredentials    = "invalid email or password"
	msgFailedToGenerateToken = "failed to generate token"
	msgInternalServerError   = "Internal server error"
	msgUserCreated           = "User created successfully."
	msgProductNotFound       = "Product not found"
	msgGatewayUnavailable    = "Payment service is temporarily unavailable, please try again."
	msgEmptyCart             = "Your cart is empty."
)

type Handler struct {
	DB        *gorm.DB
	Catalog   *catalog.Catalog
	Images    catalog.ImageUploader
	Orders    *orders.Store
	Pricer    checkout.Pricer
	Sessions  session.Store
	Checkout  *checkout.Orchestrator
	JWTSecret string
}

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

// Common error response helper
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}
