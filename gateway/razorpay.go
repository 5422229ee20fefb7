package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/razorpay/razorpay-go/utils"
	"github.com/sony/gobreaker/v2"
)

const defaultBaseURL = "https://api.razorpay.com"

type RazorpayConfig struct {
	KeyID     string
	KeySecret string
	BaseURL   string
	Timeout   time.Duration
}

type razorpayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

type Razorpay struct {
	client    *resty.Client
	keyID     string
	keySecret string
	breaker   *gobreaker.CircuitBreaker[*Intent]
}

func NewRazorpay(cfg RazorpayConfig) *Razorpay {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetBasicAuth(cfg.KeyID, cfg.KeySecret).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	breaker := gobreaker.NewCircuitBreaker[*Intent](gobreaker.Settings{
		Name:        "razorpay-orders",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("circuit breaker %s: %s -> %s", name, from, to)
		},
	})

	return &Razorpay{
		client:    client,
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		breaker:   breaker,
	}
}

func (r *Razorpay) KeyID() string {
	return r.keyID
}

func (r *Razorpay) CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error) {
	intent, err := r.breaker.Execute(func() (*Intent, error) {
		return r.createOrder(ctx, amount, currency)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return intent, nil
}

func (r *Razorpay) createOrder(ctx context.Context, amount int64, currency string) (*Intent, error) {
	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"amount":          amount,
			"currency":        currency,
			"payment_capture": 1,
		}).
		Post("/v1/orders")
	if err != nil {
		return nil, fmt.Errorf("razorpay create order request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("razorpay create order failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var order razorpayOrder
	if err := json.Unmarshal(resp.Body(), &order); err != nil {
		return nil, fmt.Errorf("failed to parse razorpay order: %w", err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("order id not found in response: %s", string(resp.Body()))
	}

	return &Intent{OrderID: order.ID, Amount: amount, Currency: currency}, nil
}

// VerifySignature checks the HMAC-SHA256 of "order_id|payment_id" keyed with the
// account secret against the signature supplied by the client.
func (r *Razorpay) VerifySignature(_ context.Context, payload Payload) Verification {
	if err := payload.Validate(); err != nil {
		return Verification{Reason: err.Error()}
	}
	if r.keySecret == "" {
		return Verification{Reason: "gateway secret not configured"}
	}

	params := map[string]interface{}{
		"razorpay_order_id":   payload.OrderID,
		"razorpay_payment_id": payload.PaymentID,
	}
	if !utils.VerifyPaymentSignature(params, payload.Signature, r.keySecret) {
		return Verification{Reason: "signature mismatch"}
	}
	return Verification{Verified: true}
}

// Sign produces the signature the provider attaches for an order/payment pair.
// The service only verifies; Sign builds callbacks for tests and local tooling.
func Sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
