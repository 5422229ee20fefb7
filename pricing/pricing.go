// Package pricing derives line totals, subtotal, flat-rate tax and grand total
// for a cart from live product prices. Nothing is cached between calls.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Kariqs/amexan-store/cart"
	"github.com/shopspring/decimal"
)

// ErrProductNotFound must be returned (possibly wrapped) by a ProductLookup for
// ids that no longer resolve. Any other lookup error aborts pricing.
var ErrProductNotFound = errors.New("product not found")

const DefaultTaxPercent = 10

type Product struct {
	ID    uint
	Name  string
	Price decimal.Decimal
	Stock int
}

type ProductLookup interface {
	GetProduct(ctx context.Context, id uint) (*Product, error)
}

type LineItem struct {
	ProductID uint            `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type Warning struct {
	ProductID uint   `json:"productId"`
	Message   string `json:"message"`
}

type Quote struct {
	Items    []LineItem      `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
	Warnings []Warning       `json:"warnings,omitempty"`
}

func (q *Quote) IsEmpty() bool {
	return len(q.Items) == 0
}

// MinorUnits converts the grand total to the smallest currency unit, truncating
// any fraction of a minor unit.
func (q *Quote) MinorUnits() int64 {
	return q.Total.Mul(decimal.NewFromInt(100)).IntPart()
}

type Engine struct {
	products ProductLookup
	taxRate  decimal.Decimal
}

func NewEngine(products ProductLookup, taxPercent int) *Engine {
	if taxPercent < 0 {
		taxPercent = DefaultTaxPercent
	}
	return &Engine{
		products: products,
		taxRate:  decimal.NewFromInt(int64(taxPercent)).Div(decimal.NewFromInt(100)),
	}
}

// Price computes a quote for the given entries. Products that no longer resolve
// are left out of the sums and reported as warnings.
func (e *Engine) Price(ctx context.Context, entries []cart.Entry) (*Quote, error) {
	quote := &Quote{
		Items:    make([]LineItem, 0, len(entries)),
		Subtotal: decimal.Zero,
	}

	for _, entry := range entries {
		if entry.Quantity < 1 {
			continue
		}
		product, err := e.products.GetProduct(ctx, entry.ProductID)
		if errors.Is(err, ErrProductNotFound) {
			log.Printf("pricing: skipping product %d: %v", entry.ProductID, err)
			quote.Warnings = append(quote.Warnings, Warning{
				ProductID: entry.ProductID,
				Message:   "product is no longer available",
			})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("lookup product %d: %w", entry.ProductID, err)
		}

		price := product.Price
		if price.IsNegative() {
			price = decimal.Zero
		}
		subtotal := price.Mul(decimal.NewFromInt(int64(entry.Quantity)))
		quote.Items = append(quote.Items, LineItem{
			ProductID: entry.ProductID,
			Name:      product.Name,
			UnitPrice: price,
			Quantity:  entry.Quantity,
			Subtotal:  subtotal,
		})
		quote.Subtotal = quote.Subtotal.Add(subtotal)
	}

	quote.Tax = quote.Subtotal.Mul(e.taxRate).Floor()
	quote.Total = quote.Subtotal.Add(quote.Tax)
	return quote, nil
}
