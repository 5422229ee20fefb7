package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Kariqs/amexan-store/gateway"
	"github.com/Kariqs/amexan-store/pricing"
	"github.com/Kariqs/amexan-store/session"
)

type PaymentResponse struct {
	GatewayKey     string         `json:"gatewayKey"`
	GatewayOrderID string         `json:"gatewayOrderId"`
	Amount         int64          `json:"amountMinorUnits"`
	Currency       string         `json:"currency"`
	Quote          *pricing.Quote `json:"quote"`
}

// CreatePayment is phase one: price the cart and open a gateway intent for the
// total. No order is written here.
func (o *Orchestrator) CreatePayment(ctx context.Context, s *session.Session) (*PaymentResponse, error) {
	begin(s)

	quote, err := o.pricer.Price(ctx, s.Cart.Snapshot())
	if err != nil {
		o.metrics.Intents.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: price cart: %v", ErrPersistence, err)
	}
	if quote.IsEmpty() {
		o.metrics.Intents.WithLabelValues("empty_cart").Inc()
		return nil, ErrEmptyCart
	}

	amount := quote.MinorUnits()
	gatewayCtx, cancel := context.WithTimeout(ctx, o.cfg.GatewayTimeout)
	defer cancel()

	start := time.Now()
	intent, err := o.gateway.CreateIntent(gatewayCtx, amount, o.cfg.Currency)
	o.metrics.GatewayLatency.WithLabelValues("create_intent").Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		log.Printf("checkout: create payment intent for session %s failed: %v", s.ID, err)
		o.metrics.Intents.WithLabelValues("gateway_unavailable").Inc()

		s.Pending = nil
		s.State = session.StateBuilding
		if saveErr := o.sessions.Save(ctx, s); saveErr != nil {
			log.Printf("checkout: save session %s: %v", s.ID, saveErr)
		}
		if !errors.Is(err, gateway.ErrUnavailable) {
			err = fmt.Errorf("%w: %v", gateway.ErrUnavailable, err)
		}
		return nil, err
	}

	if err := transition(s, session.StateIntentCreated); err != nil {
		return nil, err
	}
	s.Pending = intent
	if err := o.sessions.Save(ctx, s); err != nil {
		o.metrics.Intents.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: save session: %v", ErrPersistence, err)
	}
	o.metrics.Intents.WithLabelValues("created").Inc()

	return &PaymentResponse{
		GatewayKey:     o.gateway.KeyID(),
		GatewayOrderID: intent.OrderID,
		Amount:         intent.Amount,
		Currency:       intent.Currency,
		Quote:          quote,
	}, nil
}
