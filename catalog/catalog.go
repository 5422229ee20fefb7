// Package catalog reads and writes products. Checkout only depends on it through
// pricing.ProductLookup.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kariqs/amexan-store/models"
	"github.com/Kariqs/amexan-store/pricing"
	"gorm.io/gorm"
)

// ErrProductNotFound aliases the pricing sentinel so lookups satisfy its contract.
var ErrProductNotFound = pricing.ErrProductNotFound

type Catalog struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

func (c *Catalog) Find(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := c.db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product %d: %w", id, ErrProductNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProduct implements pricing.ProductLookup.
func (c *Catalog) GetProduct(ctx context.Context, id uint) (*pricing.Product, error) {
	product, err := c.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return &pricing.Product{
		ID:    product.ID,
		Name:  product.Name,
		Price: product.Price,
		Stock: product.Stock,
	}, nil
}

type ListQuery struct {
	Page   int
	Limit  int
	Search string
}

func (c *Catalog) List(ctx context.Context, q ListQuery) ([]models.Product, int64, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 12
	}

	search := func(db *gorm.DB) *gorm.DB {
		if q.Search != "" {
			return db.Where("name LIKE ?", "%"+q.Search+"%")
		}
		return db
	}

	var count int64
	if err := c.db.WithContext(ctx).Model(&models.Product{}).Scopes(search).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	err := c.db.WithContext(ctx).
		Scopes(search).
		Order("id asc").
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, count, nil
}

func (c *Catalog) Create(ctx context.Context, product *models.Product) error {
	if product.Price.IsNegative() {
		return errors.New("price must not be negative")
	}
	return c.db.WithContext(ctx).Create(product).Error
}

func (c *Catalog) SetImage(ctx context.Context, id uint, url string) error {
	result := c.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Update("image_url", url)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product %d: %w", id, ErrProductNotFound)
	}
	return nil
}
