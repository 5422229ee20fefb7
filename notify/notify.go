// Package notify delivers order notifications. Callers treat every sink as
// best effort.
package notify

import (
	"context"
	"fmt"
)

type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// OrderConfirmation renders the subject and body sent after an order is placed.
func OrderConfirmation(name string, orderID uint, total, status string) (string, string) {
	body := fmt.Sprintf(
		"Thank you %s! Your order ID is %d\nPayment Amount: %s\nPayment Status: %s",
		name, orderID, total, status,
	)
	return "Order Confirmation", body
}
