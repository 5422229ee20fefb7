package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Kariqs/amexan-store/cart"
	"github.com/Kariqs/amexan-store/checkout"
	"github.com/Kariqs/amexan-store/gateway"
	"github.com/Kariqs/amexan-store/middlewares"
	"github.com/Kariqs/amexan-store/session"
	"github.com/gin-gonic/gin"
)

// CheckoutRequest accepts both the JSON body sent by the storefront and the
// form the payment widget posts back.
type CheckoutRequest struct {
	Action checkout.Action `json:"action" form:"action" binding:"required"`
	gateway.Payload
	checkout.Contact
}

func (h *Handler) customer(ctx *gin.Context) (checkout.Customer, bool) {
	user, err := h.currentUser(ctx)
	if err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found")
		return checkout.Customer{}, false
	}
	return checkout.Customer{
		UserID:  user.ID,
		Name:    user.Username,
		Email:   user.Email,
		Phone:   user.Phone,
		Address: user.Address,
	}, true
}

func (h *Handler) GetCheckout(ctx *gin.Context) {
	customer, ok := h.customer(ctx)
	if !ok {
		return
	}

	view, err := h.Checkout.View(ctx.Request.Context(), middlewares.CurrentSession(ctx), customer)
	if err != nil {
		respondWithCheckoutError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"checkout": view})
}

func (h *Handler) PostCheckout(ctx *gin.Context) {
	var req CheckoutRequest
	if err := ctx.ShouldBind(&req); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	customer, ok := h.customer(ctx)
	if !ok {
		return
	}

	outcome, err := h.Checkout.Handle(ctx.Request.Context(), middlewares.CurrentSession(ctx), customer, checkout.Command{
		Action:  req.Action,
		Payment: req.Payload,
		Contact: req.Contact,
	})
	if err != nil {
		respondWithCheckoutError(ctx, err)
		return
	}

	if outcome.Payment != nil {
		sendJSONResponse(ctx, http.StatusOK, gin.H{"payment": outcome.Payment})
		return
	}
	status := http.StatusCreated
	if outcome.Order.Duplicate {
		status = http.StatusOK
	}
	sendJSONResponse(ctx, status, gin.H{"order": outcome.Order})
}

func (h *Handler) GetConfirmation(ctx *gin.Context) {
	s := middlewares.CurrentSession(ctx)

	confirmation, err := h.Checkout.Reveal(ctx.Request.Context(), s.ID)
	if errors.Is(err, session.ErrNoConfirmation) {
		sendErrorResponse(ctx, http.StatusNotFound, "No recent order to confirm")
		return
	}
	if err != nil {
		log.Println("Confirmation lookup error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"confirmation": confirmation})
}

func respondWithCheckoutError(ctx *gin.Context, err error) {
	var validationErr *cart.ValidationError
	switch {
	case errors.As(err, &validationErr):
		sendJSONResponse(ctx, http.StatusBadRequest, gin.H{
			"message": validationErr.Message,
			"field":   validationErr.Field,
		})
	case errors.Is(err, gateway.ErrIncompletePayload), errors.Is(err, checkout.ErrUnknownAction):
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
	case errors.Is(err, checkout.ErrEmptyCart):
		sendErrorResponse(ctx, http.StatusBadRequest, msgEmptyCart)
	case errors.Is(err, gateway.ErrUnavailable):
		ctx.Header("Retry-After", "5")
		sendErrorResponse(ctx, http.StatusServiceUnavailable, msgGatewayUnavailable)
	case errors.Is(err, checkout.ErrIllegalTransition):
		sendErrorResponse(ctx, http.StatusConflict, "Checkout is already in progress")
	default:
		log.Println("Checkout error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
	}
}
