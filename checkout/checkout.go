// Package checkout turns a session cart into an order through a two-phase
// payment handshake: open a gateway intent, then verify the signed callback
// and persist the order.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Kariqs/amexan-store/cart"
	"github.com/Kariqs/amexan-store/gateway"
	"github.com/Kariqs/amexan-store/models"
	"github.com/Kariqs/amexan-store/notify"
	"github.com/Kariqs/amexan-store/pricing"
	"github.com/Kariqs/amexan-store/session"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/singleflight"
)

var (
	ErrEmptyCart      = errors.New("cart is empty, nothing to checkout")
	ErrPersistence    = errors.New("checkout could not be completed")
	ErrUnknownAction  = errors.New("unknown checkout action")
	ErrInvalidContact = errors.New("invalid contact details")
)

type Pricer interface {
	Price(ctx context.Context, entries []cart.Entry) (*pricing.Quote, error)
}

type OrderStore interface {
	CreateOnce(ctx context.Context, order *models.Order) (*models.Order, bool, error)
	FindByPayment(ctx context.Context, gatewayOrderID, paymentID string) (*models.Order, error)
}

// Customer carries the account defaults used to fill contact details.
type Customer struct {
	UserID  uint
	Name    string
	Email   string
	Phone   string
	Address string
}

// Contact holds form-supplied contact details; non-empty fields win over the
// account defaults.
type Contact struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Phone   string `json:"phone" form:"phone"`
	Address string `json:"address" form:"address"`
}

func (c Customer) With(contact Contact) Customer {
	if v := strings.TrimSpace(contact.Name); v != "" {
		c.Name = v
	}
	if v := strings.TrimSpace(contact.Email); v != "" {
		c.Email = v
	}
	if v := strings.TrimSpace(contact.Phone); v != "" {
		c.Phone = v
	}
	if v := strings.TrimSpace(contact.Address); v != "" {
		c.Address = v
	}
	return c
}

// Widths of the contact columns stored on an order.
const (
	MaxNameLength    = 100
	MaxPhoneLength   = 100
	MaxEmailLength   = 254
	MaxAddressLength = 1000
)

// Validate rejects contact details the order columns cannot hold.
func (c Customer) Validate() error {
	fields := []struct {
		name  string
		value string
		limit int
	}{
		{"name", c.Name, MaxNameLength},
		{"email", c.Email, MaxEmailLength},
		{"phone", c.Phone, MaxPhoneLength},
		{"address", c.Address, MaxAddressLength},
	}
	for _, f := range fields {
		if len(f.value) > f.limit {
			return &cart.ValidationError{
				Field:   f.name,
				Message: fmt.Sprintf("must be at most %d characters", f.limit),
				Err:     ErrInvalidContact,
			}
		}
	}
	return nil
}

type Config struct {
	Currency                 string
	GatewayTimeout           time.Duration
	NotifyTimeout            time.Duration
	ClearCartOnFailedPayment bool
}

type Deps struct {
	Pricer   Pricer
	Gateway  gateway.Gateway
	Orders   OrderStore
	Notifier notify.Notifier
	Sessions session.Store
	Metrics  *Metrics
	Config   Config
}

type Orchestrator struct {
	pricer   Pricer
	gateway  gateway.Gateway
	orders   OrderStore
	notifier notify.Notifier
	sessions session.Store
	metrics  *Metrics
	cfg      Config
	inflight singleflight.Group
}

func New(deps Deps) *Orchestrator {
	cfg := deps.Config
	if cfg.Currency == "" {
		cfg.Currency = "INR"
	}
	if cfg.GatewayTimeout <= 0 {
		cfg.GatewayTimeout = 10 * time.Second
	}
	if cfg.NotifyTimeout <= 0 {
		cfg.NotifyTimeout = 5 * time.Second
	}
	metrics := deps.Metrics
	if metrics == nil {
		metrics = NewMetrics(prometheus.NewRegistry())
	}

	return &Orchestrator{
		pricer:   deps.Pricer,
		gateway:  deps.Gateway,
		orders:   deps.Orders,
		notifier: deps.Notifier,
		sessions: deps.Sessions,
		metrics:  metrics,
		cfg:      cfg,
	}
}

type View struct {
	State    session.State   `json:"state"`
	Empty    bool            `json:"empty"`
	Quote    *pricing.Quote  `json:"quote,omitempty"`
	Pending  *gateway.Intent `json:"pending,omitempty"`
	Customer Customer        `json:"customer"`
}

// View prices the current cart for the checkout page. It can be called any
// number of times without changing the session.
func (o *Orchestrator) View(ctx context.Context, s *session.Session, customer Customer) (*View, error) {
	begin(s)

	quote, err := o.pricer.Price(ctx, s.Cart.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("%w: price cart: %v", ErrPersistence, err)
	}

	return &View{
		State:    s.State,
		Empty:    quote.IsEmpty(),
		Quote:    quote,
		Pending:  s.Pending,
		Customer: customer,
	}, nil
}

type Command struct {
	Action  Action
	Payment gateway.Payload
	Contact Contact
}

type Outcome struct {
	Payment *PaymentResponse
	Order   *OrderResult
}

// Handle dispatches an explicit checkout action to its phase.
func (o *Orchestrator) Handle(ctx context.Context, s *session.Session, customer Customer, cmd Command) (*Outcome, error) {
	switch cmd.Action {
	case ActionCreatePayment:
		resp, err := o.CreatePayment(ctx, s)
		if err != nil {
			return nil, err
		}
		return &Outcome{Payment: resp}, nil
	case ActionPlaceOrder:
		result, err := o.PlaceOrder(ctx, s, customer.With(cmd.Contact), cmd.Payment)
		if err != nil {
			return nil, err
		}
		return &Outcome{Order: result}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, cmd.Action)
	}
}

// Reveal returns the confirmation left by the last placed order exactly once.
func (o *Orchestrator) Reveal(ctx context.Context, sessionID string) (*session.Confirmation, error) {
	return o.sessions.TakeConfirmation(ctx, sessionID)
}
