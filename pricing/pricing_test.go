package pricing

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Kariqs/amexan-store/cart"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLookup struct {
	products map[uint]*Product
	err      error
}

func (f fakeLookup) GetProduct(_ context.Context, id uint) (*Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, ErrProductNotFound)
	}
	return p, nil
}

func catalog() fakeLookup {
	return fakeLookup{products: map[uint]*Product{
		1: {ID: 1, Name: "A", Price: decimal.NewFromInt(100)},
		2: {ID: 2, Name: "B", Price: decimal.NewFromInt(50)},
		3: {ID: 3, Name: "C", Price: decimal.RequireFromString("19.99")},
	}}
}

func TestPrice_Scenario(t *testing.T) {
	engine := NewEngine(catalog(), DefaultTaxPercent)

	quote, err := engine.Price(context.Background(), []cart.Entry{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	})

	require.NoError(t, err)
	assert.Equal(t, "250", quote.Subtotal.String())
	assert.Equal(t, "25", quote.Tax.String())
	assert.Equal(t, "275", quote.Total.String())
	assert.EqualValues(t, 27500, quote.MinorUnits())
	require.Len(t, quote.Items, 2)
	assert.Equal(t, "200", quote.Items[0].Subtotal.String())
}

func TestPrice_TaxIsFloored(t *testing.T) {
	engine := NewEngine(catalog(), DefaultTaxPercent)

	quote, err := engine.Price(context.Background(), []cart.Entry{{ProductID: 3, Quantity: 3}})

	require.NoError(t, err)
	assert.Equal(t, "59.97", quote.Subtotal.String())
	assert.Equal(t, "5", quote.Tax.String())
	assert.Equal(t, "64.97", quote.Total.String())
	assert.EqualValues(t, 6497, quote.MinorUnits())
}

func TestPrice_Deterministic(t *testing.T) {
	engine := NewEngine(catalog(), DefaultTaxPercent)
	entries := []cart.Entry{{ProductID: 1, Quantity: 3}, {ProductID: 3, Quantity: 7}}

	first, err := engine.Price(context.Background(), entries)
	require.NoError(t, err)
	second, err := engine.Price(context.Background(), entries)
	require.NoError(t, err)

	assert.True(t, first.Total.Equal(second.Total))
	assert.True(t, first.Tax.Equal(second.Tax))
}

func TestPrice_MissingProductIsWarning(t *testing.T) {
	engine := NewEngine(catalog(), DefaultTaxPercent)

	quote, err := engine.Price(context.Background(), []cart.Entry{
		{ProductID: 1, Quantity: 1},
		{ProductID: 99, Quantity: 4},
	})

	require.NoError(t, err)
	assert.Len(t, quote.Items, 1)
	assert.Equal(t, "110", quote.Total.String())
	require.Len(t, quote.Warnings, 1)
	assert.EqualValues(t, 99, quote.Warnings[0].ProductID)
}

func TestPrice_LookupFailureAborts(t *testing.T) {
	engine := NewEngine(fakeLookup{err: errors.New("db down")}, DefaultTaxPercent)

	_, err := engine.Price(context.Background(), []cart.Entry{{ProductID: 1, Quantity: 1}})

	assert.ErrorContains(t, err, "db down")
}

func TestPrice_EmptyCart(t *testing.T) {
	engine := NewEngine(catalog(), DefaultTaxPercent)

	quote, err := engine.Price(context.Background(), nil)

	require.NoError(t, err)
	assert.True(t, quote.IsEmpty())
	assert.True(t, quote.Total.IsZero())
}
