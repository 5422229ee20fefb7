// Package orders is the durable record of checkout attempts.
package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kariqs/amexan-store/models"
	"gorm.io/gorm"
)

var (
	ErrNotFound   = errors.New("order not found")
	ErrEmptyOrder = errors.New("order has no products")
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// CreateOnce writes the order and its items in one transaction, unless an order
// for the same gateway order/payment pair already exists. In that case the
// existing order is returned and created is false.
func (s *Store) CreateOnce(ctx context.Context, order *models.Order) (stored *models.Order, created bool, err error) {
	if len(order.OrderItems) == 0 {
		return nil, false, ErrEmptyOrder
	}

	existing, err := s.FindByPayment(ctx, order.RazorpayOrderId, order.RazorpayPaymentId)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	items := order.OrderItems
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("OrderItems").Create(order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("create order items: %w", err)
		}
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		existing, findErr := s.FindByPayment(ctx, order.RazorpayOrderId, order.RazorpayPaymentId)
		if findErr != nil {
			return nil, false, findErr
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	order.OrderItems = items
	return order, true, nil
}

func (s *Store) FindByPayment(ctx context.Context, gatewayOrderID, paymentID string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("OrderItems").
		Where("razorpay_order_id = ? AND razorpay_payment_id = ?", gatewayOrderID, paymentID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *Store) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("OrderItems").First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *Store) ListByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("OrderItems").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
