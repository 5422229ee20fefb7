package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Kariqs/amexan-store/gateway"
	"github.com/Kariqs/amexan-store/models"
	"github.com/Kariqs/amexan-store/notify"
	"github.com/Kariqs/amexan-store/orders"
	"github.com/Kariqs/amexan-store/pricing"
	"github.com/Kariqs/amexan-store/session"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type OrderResult struct {
	OrderID       uint                 `json:"orderId"`
	Total         decimal.Decimal      `json:"total"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
	FailureReason string               `json:"failureReason,omitempty"`
	Duplicate     bool                 `json:"duplicate"`
}

// PlaceOrder is phase two. The signed payload decides the payment status, but
// an order is written either way so failed payments can be reconciled. A repeat
// submission for the same gateway order/payment pair returns the original order.
func (o *Orchestrator) PlaceOrder(ctx context.Context, s *session.Session, customer Customer, payload gateway.Payload) (*OrderResult, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}

	key := payload.OrderID + "|" + payload.PaymentID
	v, err, _ := o.inflight.Do(key, func() (any, error) {
		return o.placeOrder(ctx, s, customer, payload)
	})
	if err != nil {
		return nil, err
	}

	result := *v.(*OrderResult)
	return &result, nil
}

func (o *Orchestrator) placeOrder(ctx context.Context, s *session.Session, customer Customer, payload gateway.Payload) (*OrderResult, error) {
	// A gateway order/payment pair is settled once, whatever its status. Orders
	// recorded as Failed are reconciled by hand, never re-verified here.
	existing, err := o.orders.FindByPayment(ctx, payload.OrderID, payload.PaymentID)
	if err == nil {
		log.Printf("checkout: duplicate place-order for %s/%s returns order %d", payload.OrderID, payload.PaymentID, existing.ID)
		o.metrics.Duplicates.Inc()
		o.confirm(ctx, s.ID, existing)
		return resultFor(existing, true), nil
	}
	if !errors.Is(err, orders.ErrNotFound) {
		return nil, o.fail(ctx, s, fmt.Errorf("find order by payment: %w", err))
	}

	begin(s)
	if err := transition(s, session.StateVerifying); err != nil {
		return nil, err
	}

	// The session may have changed since phase one, so price it again.
	quote, err := o.pricer.Price(ctx, s.Cart.Snapshot())
	if err != nil {
		return nil, o.fail(ctx, s, fmt.Errorf("price cart: %w", err))
	}
	if quote.IsEmpty() {
		s.State = session.StateBuilding
		return nil, ErrEmptyCart
	}

	status, reason := o.verify(ctx, s, payload, quote)

	order := &models.Order{
		UserID:            customer.UserID,
		Name:              customer.Name,
		Phone:             customer.Phone,
		Email:             customer.Email,
		Address:           customer.Address,
		TotalPrice:        quote.Total,
		RazorpayPaymentId: payload.PaymentID,
		RazorpayOrderId:   payload.OrderID,
		RazorpaySignature: payload.Signature,
		PaymentStatus:     status,
		FailureReason:     reason,
		PricingWarnings:   warningsJSON(quote.Warnings),
		OrderItems:        orderItems(quote.Items),
	}

	stored, created, err := o.orders.CreateOnce(ctx, order)
	if err != nil {
		return nil, o.fail(ctx, s, fmt.Errorf("create order: %w", err))
	}
	if !created {
		o.metrics.Duplicates.Inc()
		o.confirm(ctx, s.ID, stored)
		return resultFor(stored, true), nil
	}
	o.metrics.Orders.WithLabelValues(string(stored.PaymentStatus)).Inc()

	o.notify(ctx, stored)

	if stored.PaymentStatus == models.PaymentSuccess || o.cfg.ClearCartOnFailedPayment {
		s.Cart.Clear()
	}
	s.Pending = nil
	if err := transition(s, session.StateCompleted); err != nil {
		return nil, err
	}
	if err := o.sessions.Save(ctx, s); err != nil {
		log.Printf("checkout: order %d placed but session %s not saved: %v", stored.ID, s.ID, err)
	}
	o.confirm(ctx, s.ID, stored)

	return resultFor(stored, false), nil
}

// verify decides the payment status. Besides the signature, the callback must
// belong to the intent this session opened, for the amount it was opened with.
func (o *Orchestrator) verify(ctx context.Context, s *session.Session, payload gateway.Payload, quote *pricing.Quote) (models.PaymentStatus, string) {
	gatewayCtx, cancel := context.WithTimeout(ctx, o.cfg.GatewayTimeout)
	defer cancel()

	start := time.Now()
	result := o.gateway.VerifySignature(gatewayCtx, payload)
	o.metrics.GatewayLatency.WithLabelValues("verify_signature").Observe(float64(time.Since(start).Milliseconds()))

	switch {
	case !result.Verified:
		return models.PaymentFailed, result.Reason
	case s.Pending == nil:
		return models.PaymentFailed, "no payment intent was issued for this session"
	case s.Pending.OrderID != payload.OrderID:
		return models.PaymentFailed, "payment does not belong to the issued intent"
	case s.Pending.Amount != quote.MinorUnits():
		return models.PaymentFailed, fmt.Sprintf("amount changed from %d to %d since the intent was issued", s.Pending.Amount, quote.MinorUnits())
	}
	return models.PaymentSuccess, ""
}

// fail keeps the cart, records the failed state and hides the detail from callers.
func (o *Orchestrator) fail(ctx context.Context, s *session.Session, err error) error {
	log.Printf("checkout: session %s: %v", s.ID, err)
	s.State = session.StateFailed
	if saveErr := o.sessions.Save(ctx, s); saveErr != nil {
		log.Printf("checkout: save session %s: %v", s.ID, saveErr)
	}
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}

func (o *Orchestrator) notify(ctx context.Context, order *models.Order) {
	if o.notifier == nil {
		return
	}
	notifyCtx, cancel := context.WithTimeout(ctx, o.cfg.NotifyTimeout)
	defer cancel()

	subject, body := notify.OrderConfirmation(order.Name, order.ID, order.TotalPrice.String(), string(order.PaymentStatus))
	if err := o.notifier.Send(notifyCtx, order.Email, subject, body); err != nil {
		o.metrics.NotificationFailures.Inc()
		log.Printf("checkout: notification for order %d failed: %v", order.ID, err)
	}
}

func (o *Orchestrator) confirm(ctx context.Context, sessionID string, order *models.Order) {
	err := o.sessions.SetConfirmation(ctx, sessionID, &session.Confirmation{
		OrderID:       order.ID,
		Total:         order.TotalPrice,
		PaymentStatus: string(order.PaymentStatus),
	})
	if err != nil {
		log.Printf("checkout: store confirmation for order %d: %v", order.ID, err)
	}
}

func resultFor(order *models.Order, duplicate bool) *OrderResult {
	return &OrderResult{
		OrderID:       order.ID,
		Total:         order.TotalPrice,
		PaymentStatus: order.PaymentStatus,
		FailureReason: order.FailureReason,
		Duplicate:     duplicate,
	}
}

func orderItems(items []pricing.LineItem) []models.OrderItem {
	out := make([]models.OrderItem, len(items))
	for i, item := range items {
		out[i] = models.OrderItem{
			ProductId: item.ProductID,
			Name:      item.Name,
			Price:     item.UnitPrice,
			Quantity:  item.Quantity,
		}
	}
	return out
}

func warningsJSON(warnings []pricing.Warning) datatypes.JSON {
	if len(warnings) == 0 {
		return nil
	}
	data, err := json.Marshal(warnings)
	if err != nil {
		return nil
	}
	return datatypes.JSON(data)
}
