package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domain "github.com/faisalawaludin/kasir-chain/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, "kasir-chain-test")
}

func TestListProductsDecodesBareArray(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "kasir-chain-test", r.Header.Get("User-Agent"))
		_ = json.NewEncoder(w).Encode([]productData{{
			ID: "p-1", Name: "Latte", Price: 24000, Status: "available",
			SubCategories: []variantData{{ID: "v-l", Name: "Large", AdditionalPrice: 6000}},
		}})
	})

	got, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(24000), got[0].Price)
	assert.Equal(t, domain.ProductAvailable, got[0].Status)
	require.Len(t, got[0].Variants, 1)
	assert.Equal(t, int64(6000), got[0].Variants[0].AdditionalPrice)
}

func TestGetOrderUnwrapsOkEnvelope(t *testing.T) {
	created := time.Date(2026, 4, 2, 10, 30, 0, 123456789, time.UTC)
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/o-1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok": orderData{
				ID: "o-1", Status: "pending",
				Subtotal: 24000, Tax: 2400, Total: 26400,
				CreatedAt: created.UnixNano(),
			},
		})
	})

	got, err := c.GetOrder(context.Background(), "o-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.True(t, got.CreatedAt.Equal(created))
	assert.Equal(t, int64(26400), got.Total)
}

func TestErrEnvelopeBecomesRemoteError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"err": "Order not found"})
	})

	_, err := c.GetOrder(context.Background(), "o-missing")
	require.Error(t, err)
	var re *RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "getOrder", re.Op)
	assert.Equal(t, "Order not found", re.Msg)
}

func TestCreateOrderSendsWireShape(t *testing.T) {
	var got orderData
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": struct{}{}})
	})

	now := time.Now()
	order := domain.NewOrder("o-1", []domain.CartLine{{
		Product:  domain.Product{ID: "p-1", Name: "Latte", Price: 24000},
		Quantity: 1,
		Note:     "no sugar",
	}}, nil, domain.PaymentCash, "", now)

	require.NoError(t, c.CreateOrder(context.Background(), order))
	assert.Equal(t, "o-1", got.ID)
	assert.Equal(t, "pending", got.Status)
	assert.Equal(t, now.UnixNano(), got.CreatedAt)
	require.Len(t, got.Items, 1)
	require.NotNil(t, got.Items[0].CustomerNote)
	assert.Equal(t, "no sugar", *got.Items[0].CustomerNote)
	require.NotNil(t, got.PaymentMethod)
	assert.Equal(t, "cash", *got.PaymentMethod)
	assert.Nil(t, got.CompletedAt)
}

func TestServerErrorStatus(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err := c.ListOrders(context.Background())
	assert.Error(t, err)
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // nothing listens anymore
	c := NewClient(srv.URL, time.Second, "")

	_, err := c.ListVouchers(context.Background())
	assert.Error(t, err)
}

func TestVoucherExpiryRoundTrip(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]voucherData{{
			ID: "v-1", Code: "OPENING10", Discount: 10,
			ExpiryDate: "2026-12-31", IsActive: true,
		}})
	})

	got, err := c.ListVouchers(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2026, got[0].ExpiryDate.Year())
	assert.Equal(t, time.December, got[0].ExpiryDate.Month())
	assert.Equal(t, 31, got[0].ExpiryDate.Day())
}
