package razorpay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/blayzex/storefront-api/internal/config"
	"github.com/blayzex/storefront-api/pkg/errors"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(config.RazorpayConfig{KeyID: "rzp_test_key", KeySecret: "secret"}, zap.NewNop())
	c.baseURL = srv.URL
	return c
}

func TestCreateOrder(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "secret", pass)

		var req createOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(249900), req.Amount)
		assert.Equal(t, "INR", req.Currency)

		json.NewEncoder(w).Encode(Order{
			ID:       "order_abc",
			Amount:   req.Amount,
			Currency: req.Currency,
			Receipt:  req.Receipt,
			Status:   "created",
		})
	})

	order, err := client.CreateOrder(context.Background(), 249900, "INR", "receipt_ab12cd")
	require.NoError(t, err)
	assert.Equal(t, "order_abc", order.ID)
	assert.Equal(t, int64(249900), order.Amount)
}

func TestCreateOrderGatewayError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"amount exceeds maximum amount allowed"}}`))
	})

	_, err := client.CreateOrder(context.Background(), 1<<40, "INR", "receipt_ab12cd")
	require.Error(t, err)

	gwErr, ok := err.(*errors.ErrGateway)
	require.True(t, ok, "expected gateway error, got %T", err)
	assert.Equal(t, "amount exceeds maximum amount allowed", gwErr.Message)
}

func TestCreateOrderMissingCredentials(t *testing.T) {
	client := NewClient(config.RazorpayConfig{}, zap.NewNop())

	assert.False(t, client.Configured())

	_, err := client.CreateOrder(context.Background(), 100, "INR", "receipt_ab12cd")
	require.Error(t, err)
	_, ok := err.(*errors.ErrConfiguration)
	assert.True(t, ok, "expected configuration error, got %T", err)
}
