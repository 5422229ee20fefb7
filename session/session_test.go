package session

import (
	"context"
	"testing"
	"time"

	"github.com/Kariqs/amexan-store/gateway"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client, time.Hour, 5), mr
}

func TestLoad_NewSessionIsEmpty(t *testing.T) {
	store, _ := setupTestRedis(t)

	s, err := store.Load(context.Background(), "abc")

	require.NoError(t, err)
	assert.Equal(t, "abc", s.ID)
	assert.Equal(t, StateBuilding, s.State)
	assert.True(t, s.Cart.IsEmpty())
	assert.Nil(t, s.Pending)
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	s, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	s.Cart.Add(3)
	s.Cart.Add(3)
	s.State = StateIntentCreated
	s.Pending = &gateway.Intent{OrderID: "order_1", Amount: 1100, Currency: "INR"}
	require.NoError(t, store.Save(ctx, s))

	assert.True(t, mr.Exists(sessionKey("abc")))
	assert.Equal(t, time.Hour, mr.TTL(sessionKey("abc")))

	loaded, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Cart.Quantity(3))
	assert.Equal(t, StateIntentCreated, loaded.State)
	assert.Equal(t, s.Pending, loaded.Pending)
}

func TestLoad_AppliesMaxQuantity(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	s, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		s.Cart.Add(1)
	}

	assert.Equal(t, 5, s.Cart.Quantity(1))
}

func TestLoad_InvalidJSON(t *testing.T) {
	store, mr := setupTestRedis(t)
	require.NoError(t, mr.Set(sessionKey("abc"), "{not json"))

	_, err := store.Load(context.Background(), "abc")

	assert.ErrorContains(t, err, "unmarshal session failed")
}

func TestConfirmation_IsOneShot(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	err := store.SetConfirmation(ctx, "abc", &Confirmation{
		OrderID:       12,
		Total:         decimal.NewFromInt(275),
		PaymentStatus: "Success",
	})
	require.NoError(t, err)

	c, err := store.TakeConfirmation(ctx, "abc")
	require.NoError(t, err)
	assert.EqualValues(t, 12, c.OrderID)
	assert.Equal(t, "275", c.Total.String())

	_, err = store.TakeConfirmation(ctx, "abc")
	assert.ErrorIs(t, err, ErrNoConfirmation)
}
