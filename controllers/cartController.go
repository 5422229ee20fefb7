package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Kariqs/amexan-store/cart"
	"github.com/Kariqs/amexan-store/catalog"
	"github.com/Kariqs/amexan-store/middlewares"
	"github.com/Kariqs/amexan-store/session"
	"github.com/gin-gonic/gin"
)

func productIDParam(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("productId"), 10, 64)
	if err != nil || id == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) saveSession(ctx *gin.Context, s *session.Session) bool {
	if err := h.Sessions.Save(ctx.Request.Context(), s); err != nil {
		log.Println("Session save error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return false
	}
	return true
}

func (h *Handler) GetCart(ctx *gin.Context) {
	s := middlewares.CurrentSession(ctx)

	quote, err := h.Pricer.Price(ctx.Request.Context(), s.Cart.Snapshot())
	if err != nil {
		log.Println("Cart pricing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"cart":  quote,
		"count": s.Cart.Count(),
	})
}

func (h *Handler) AddCartItem(ctx *gin.Context) {
	productID, ok := productIDParam(ctx)
	if !ok {
		return
	}

	product, err := h.Catalog.Find(ctx.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgProductNotFound)
			return
		}
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	s := middlewares.CurrentSession(ctx)
	quantity := s.Cart.Add(productID)
	if !h.saveSession(ctx, s) {
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message":  product.Name + " added to cart",
		"quantity": quantity,
		"count":    s.Cart.Count(),
	})
}

func (h *Handler) RemoveCartItem(ctx *gin.Context) {
	productID, ok := productIDParam(ctx)
	if !ok {
		return
	}

	s := middlewares.CurrentSession(ctx)
	s.Cart.Remove(productID)
	if !h.saveSession(ctx, s) {
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Item removed from cart",
		"count":   s.Cart.Count(),
	})
}

func (h *Handler) SetCartItemQuantity(ctx *gin.Context) {
	productID, ok := productIDParam(ctx)
	if !ok {
		return
	}

	s := middlewares.CurrentSession(ctx)
	quantity, err := s.Cart.SetQuantity(productID, ctx.Param("quantity"))
	if err != nil {
		var validationErr *cart.ValidationError
		if errors.As(err, &validationErr) {
			sendJSONResponse(ctx, http.StatusBadRequest, gin.H{
				"message": validationErr.Message,
				"field":   validationErr.Field,
			})
			return
		}
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if !h.saveSession(ctx, s) {
		return
	}

	quote, err := h.Pricer.Price(ctx.Request.Context(), s.Cart.Snapshot())
	if err != nil {
		log.Println("Cart pricing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}
	response := gin.H{
		"message":  "Cart item quantity updated",
		"quantity": quantity,
		"count":    s.Cart.Count(),
		"total":    quote.Total,
	}
	for _, item := range quote.Items {
		if item.ProductID == productID {
			response["lineTotal"] = item.Subtotal
		}
	}
	sendJSONResponse(ctx, http.StatusOK, response)
}
