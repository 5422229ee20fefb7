package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Kariqs/amexan-store/orders"
	"github.com/gin-gonic/gin"
)

func (h *Handler) GetOrders(ctx *gin.Context) {
	user, err := h.currentUser(ctx)
	if err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found")
		return
	}

	orders, err := h.Orders.ListByUser(ctx.Request.Context(), user.ID)
	if err != nil {
		log.Println("Order lookup error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

// GetOrder answers 404 for orders owned by someone else so ids are not enumerable.
func (h *Handler) GetOrder(ctx *gin.Context) {
	user, err := h.currentUser(ctx)
	if err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found")
		return
	}

	orderID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid order ID", err)
		return
	}

	order, err := h.Orders.FindByID(ctx.Request.Context(), uint(orderID))
	if errors.Is(err, orders.ErrNotFound) || (err == nil && order.UserID != user.ID) {
		sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		log.Println("Order lookup error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch order")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
}
