package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRazorpay(t *testing.T, handler http.HandlerFunc) *Razorpay {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewRazorpay(RazorpayConfig{
		KeyID:     "rzp_test_key",
		KeySecret: "secret",
		BaseURL:   srv.URL,
		Timeout:   200 * time.Millisecond,
	})
}

func TestCreateIntent_Success(t *testing.T) {
	var body map[string]any
	rp := newTestRazorpay(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "secret", pass)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"order_abc","amount":27500,"currency":"INR","status":"created"}`))
	})

	intent, err := rp.CreateIntent(context.Background(), 27500, "INR")

	require.NoError(t, err)
	assert.Equal(t, &Intent{OrderID: "order_abc", Amount: 27500, Currency: "INR"}, intent)
	assert.EqualValues(t, 27500, body["amount"])
	assert.Equal(t, "INR", body["currency"])
}

func TestCreateIntent_AuthFailure(t *testing.T) {
	rp := newTestRazorpay(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"Authentication failed"}}`))
	})

	_, err := rp.CreateIntent(context.Background(), 100, "INR")

	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestCreateIntent_Timeout(t *testing.T) {
	rp := newTestRazorpay(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	})

	_, err := rp.CreateIntent(context.Background(), 100, "INR")

	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestCreateIntent_BreakerOpens(t *testing.T) {
	calls := 0
	rp := newTestRazorpay(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	})

	for i := 0; i < 8; i++ {
		_, err := rp.CreateIntent(context.Background(), 100, "INR")
		require.ErrorIs(t, err, ErrUnavailable)
	}

	assert.Equal(t, 5, calls)
}

func TestVerifySignature(t *testing.T) {
	rp := NewRazorpay(RazorpayConfig{KeyID: "k", KeySecret: "secret"})
	valid := Sign("secret", "order_1", "pay_1")

	tests := []struct {
		name     string
		payload  Payload
		verified bool
		reason   string
	}{
		{"valid", Payload{OrderID: "order_1", PaymentID: "pay_1", Signature: valid}, true, ""},
		{"wrong pair", Payload{OrderID: "order_2", PaymentID: "pay_1", Signature: valid}, false, "signature mismatch"},
		{"wrong secret", Payload{OrderID: "order_1", PaymentID: "pay_1", Signature: Sign("other", "order_1", "pay_1")}, false, "signature mismatch"},
		{"garbage", Payload{OrderID: "order_1", PaymentID: "pay_1", Signature: "zz"}, false, "signature mismatch"},
		{"missing field", Payload{OrderID: "order_1", Signature: valid}, false, "missing razorpay_payment_id"},
		{"oversized signature", Payload{OrderID: "order_1", PaymentID: "pay_1", Signature: strings.Repeat("a", MaxSignatureLength+1)}, false, "too long razorpay_signature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rp.VerifySignature(context.Background(), tt.payload)
			assert.Equal(t, tt.verified, got.Verified)
			assert.Equal(t, tt.reason, got.Reason)
		})
	}
}

func TestPayloadValidate(t *testing.T) {
	err := Payload{}.Validate()

	require.ErrorIs(t, err, ErrIncompletePayload)
	var ferr *FieldError
	require.ErrorAs(t, err, &ferr)
	assert.Len(t, ferr.Fields, 3)
}

func TestPayloadValidate_Lengths(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
		fields  []string
	}{
		{"at limit", Payload{OrderID: strings.Repeat("o", MaxIDLength), PaymentID: "pay_1", Signature: strings.Repeat("s", MaxSignatureLength)}, nil},
		{"long order id", Payload{OrderID: strings.Repeat("o", MaxIDLength+1), PaymentID: "pay_1", Signature: "s"}, []string{"razorpay_order_id"}},
		{"long payment id and signature", Payload{OrderID: "order_1", PaymentID: strings.Repeat("p", MaxIDLength+1), Signature: strings.Repeat("s", 200)}, []string{"razorpay_payment_id", "razorpay_signature"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrIncompletePayload)
			var ferr *FieldError
			require.ErrorAs(t, err, &ferr)
			assert.Equal(t, tt.fields, ferr.Fields)
			assert.Equal(t, "too long", ferr.Problem)
		})
	}
}
