package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentSuccess PaymentStatus = "Success"
	PaymentFailed  PaymentStatus = "Failed"
)

type Order struct {
	gorm.Model
	UserID            uint            `json:"userId" gorm:"index"`
	Name              string          `json:"name" gorm:"size:100"`
	Phone             string          `json:"phone" gorm:"size:100"`
	Email             string          `json:"email"`
	Address           string          `json:"address"`
	TotalPrice        decimal.Decimal `json:"totalPrice" gorm:"type:decimal(10,2);not null"`
	RazorpayPaymentId string          `json:"razorpayPaymentId" gorm:"size:64;uniqueIndex:idx_razorpay_payment"`
	RazorpayOrderId   string          `json:"razorpayOrderId" gorm:"size:64;uniqueIndex:idx_razorpay_payment"`
	RazorpaySignature string          `json:"-" gorm:"size:128"`
	PaymentStatus     PaymentStatus   `json:"paymentStatus" gorm:"size:16;not null"`
	FailureReason     string          `json:"failureReason,omitempty"`
	PricingWarnings   datatypes.JSON  `json:"pricingWarnings,omitempty"`
	OrderItems        []OrderItem     `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem is the product reference attached to an order, frozen at creation time.
type OrderItem struct {
	gorm.Model
	OrderID   uint            `json:"orderId" gorm:"index"`
	ProductId uint            `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Quantity  int             `json:"quantity"`
}
