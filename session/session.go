// Package session keeps per-visitor state in redis: the cart, the checkout
// state, the payment intent issued in phase one and a one-shot confirmation.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Kariqs/amexan-store/cart"
	"github.com/Kariqs/amexan-store/gateway"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

var ErrNoConfirmation = errors.New("no confirmation to reveal")

type State string

const (
	StateBuilding      State = "Building"
	StateIntentCreated State = "IntentCreated"
	StateVerifying     State = "Verifying"
	StateCompleted     State = "Completed"
	StateFailed        State = "Failed"
)

type Session struct {
	ID      string          `json:"-"`
	Cart    *cart.Cart      `json:"cart"`
	State   State           `json:"state"`
	Pending *gateway.Intent `json:"pending,omitempty"`
}

// Confirmation is handed from the place-order step to the confirmation view
// and can be read only once.
type Confirmation struct {
	OrderID       uint            `json:"orderId"`
	Total         decimal.Decimal `json:"total"`
	PaymentStatus string          `json:"paymentStatus"`
}

type Store interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	SetConfirmation(ctx context.Context, id string, c *Confirmation) error
	TakeConfirmation(ctx context.Context, id string) (*Confirmation, error)
}

type RedisStore struct {
	client      *redis.Client
	ttl         time.Duration
	maxQuantity int
}

func NewRedisStore(client *redis.Client, ttl time.Duration, maxQuantity int) *RedisStore {
	if ttl <= 0 {
		ttl = 14 * 24 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl, maxQuantity: maxQuantity}
}

// Load returns the stored session or a fresh empty one.
func (r *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	s := &Session{ID: id, State: StateBuilding}

	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	if err == nil {
		if err := json.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("unmarshal session failed: %w", err)
		}
	}

	if s.Cart == nil {
		s.Cart = cart.New()
	}
	s.Cart.WithMaxQuantity(r.maxQuantity)
	if s.State == "" {
		s.State = StateBuilding
	}
	return s, nil
}

// Save overwrites the stored session; the last writer wins.
func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session failed: %w", err)
	}
	if err := r.client.Set(ctx, sessionKey(s.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisStore) SetConfirmation(ctx context.Context, id string, c *Confirmation) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal confirmation failed: %w", err)
	}
	if err := r.client.Set(ctx, confirmationKey(id), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// TakeConfirmation reads and deletes the confirmation atomically.
func (r *RedisStore) TakeConfirmation(ctx context.Context, id string) (*Confirmation, error) {
	data, err := r.client.GetDel(ctx, confirmationKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoConfirmation
	}
	if err != nil {
		return nil, fmt.Errorf("redis getdel failed: %w", err)
	}

	var c Confirmation
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshal confirmation failed: %w", err)
	}
	return &c, nil
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

func confirmationKey(id string) string {
	return fmt.Sprintf("session:%s:confirmation", id)
}
