// Package gateway wraps the external payment provider: it opens payment intents
// and checks the signatures the provider attaches to payment callbacks.
package gateway

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrUnavailable covers network, auth and timeout failures while opening an intent.
	ErrUnavailable = errors.New("payment gateway unavailable")
	// ErrIncompletePayload is returned for callbacks with a missing or oversized signed field.
	ErrIncompletePayload = errors.New("incomplete payment payload")
)

// Intent is a provisional transaction opened with the provider. It travels to the
// client and back; the amount is in minor currency units.
type Intent struct {
	OrderID  string `json:"gatewayOrderId"`
	Amount   int64  `json:"amountMinorUnits"`
	Currency string `json:"currency"`
}

// Payload is the signed callback the client hands back after paying.
type Payload struct {
	OrderID   string `json:"razorpay_order_id" form:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id" form:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature" form:"razorpay_signature"`
}

// Stored column widths for the signed fields.
const (
	MaxIDLength        = 64
	MaxSignatureLength = 128
)

func (p Payload) Validate() error {
	var missing, tooLong []string
	check := func(name, value string, limit int) {
		switch {
		case strings.TrimSpace(value) == "":
			missing = append(missing, name)
		case len(value) > limit:
			tooLong = append(tooLong, name)
		}
	}
	check("razorpay_order_id", p.OrderID, MaxIDLength)
	check("razorpay_payment_id", p.PaymentID, MaxIDLength)
	check("razorpay_signature", p.Signature, MaxSignatureLength)

	if len(missing) > 0 {
		return &FieldError{Fields: missing, Problem: "missing"}
	}
	if len(tooLong) > 0 {
		return &FieldError{Fields: tooLong, Problem: "too long"}
	}
	return nil
}

type FieldError struct {
	Fields  []string
	Problem string
}

func (e *FieldError) Error() string {
	return e.Problem + " " + strings.Join(e.Fields, ", ")
}

func (e *FieldError) Is(target error) bool {
	return target == ErrIncompletePayload
}

// Verification is the outcome of a signature check. A rejected signature is a
// normal result, not an error.
type Verification struct {
	Verified bool
	Reason   string
}

type Gateway interface {
	KeyID() string
	CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error)
	VerifySignature(ctx context.Context, payload Payload) Verification
}
