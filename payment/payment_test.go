package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/junaidrashid-git/storefront-api/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
)

func sampleRequest() SessionRequest {
	return SessionRequest{
		LineItems: []LineItem{
			{Name: "Linen Shirt", Image: "https://cdn/shirt.jpg", Description: "Size: M, Color: Red", UnitAmount: 1999, Quantity: 2},
			{Name: "Cap", UnitAmount: 500, Quantity: 1},
		},
		Currency:           "usd",
		PaymentMethodTypes: []string{"card"},
		RequireBilling:     true,
		ShippingCountries:  []string{"US", "CA"},
		SuccessURL:         "https://shop.test/checkout/success?session_id=" + SessionIDPlaceholder,
		CancelURL:          "https://shop.test/cart",
		ClientReference:    "u1",
	}
}

func TestAmountTotal(t *testing.T) {
	assert.Equal(t, int64(4498), sampleRequest().AmountTotal())
	assert.Zero(t, SessionRequest{}.AmountTotal())
}

func TestNew(t *testing.T) {
	p, err := New(config.PaymentConfig{}, nil)
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = New(config.PaymentConfig{Provider: "stripe", StripeSecretKey: "sk_test"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "stripe", p.Name())

	p, err = New(config.PaymentConfig{Provider: "telr", TelrStoreID: 1, TelrAuthKey: "k"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "telr", p.Name())

	_, err = New(config.PaymentConfig{Provider: "paypal"}, nil)
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestNewRejectsUnknownProviderFromEnv(t *testing.T) {
	t.Setenv("PAYMENT_PROVIDER", "paypal")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test")

	p, err := New(config.Load().Payment, nil)
	assert.ErrorIs(t, err, ErrUnknownProvider)
	assert.Nil(t, p)
}

func TestStripeParams(t *testing.T) {
	params := stripeParams(sampleRequest())

	assert.Equal(t, string(stripe.CheckoutSessionModePayment), *params.Mode)
	require.Len(t, params.PaymentMethodTypes, 1)
	assert.Equal(t, "card", *params.PaymentMethodTypes[0])
	assert.Equal(t, "required", *params.BillingAddressCollection)
	require.Len(t, params.ShippingAddressCollection.AllowedCountries, 2)
	assert.Equal(t, "CA", *params.ShippingAddressCollection.AllowedCountries[1])
	assert.Equal(t, "u1", *params.ClientReferenceID)

	require.Len(t, params.LineItems, 2)
	first := params.LineItems[0]
	assert.Equal(t, int64(1999), *first.PriceData.UnitAmount)
	assert.Equal(t, int64(2), *first.Quantity)
	assert.Equal(t, "usd", *first.PriceData.Currency)
	assert.Equal(t, "Linen Shirt", *first.PriceData.ProductData.Name)
	assert.Equal(t, "Size: M, Color: Red", *first.PriceData.ProductData.Description)
	require.Len(t, first.PriceData.ProductData.Images, 1)

	second := params.LineItems[1]
	assert.Nil(t, second.PriceData.ProductData.Description)
	assert.Empty(t, second.PriceData.ProductData.Images)
}

func TestTelrCreateCheckoutSession(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"order":{"ref":"REF123","url":"https://secure.telr.com/gateway/process.html?o=REF123"}}`))
	}))
	defer srv.Close()

	telr := NewTelr(TelrConfig{StoreID: 42, AuthKey: "secret", APIURL: srv.URL, TestMode: true}, srv.Client())
	s, err := telr.CreateCheckoutSession(context.Background(), sampleRequest())
	require.NoError(t, err)

	assert.Equal(t, "REF123", s.ID)
	assert.Contains(t, s.URL, "REF123")

	order := got["order"].(map[string]any)
	assert.Equal(t, "44.98", order["amount"])
	assert.Equal(t, "USD", order["currency"])
	assert.Equal(t, float64(1), order["test"])
	assert.Equal(t, "2 x Linen Shirt, 1 x Cap", order["description"])
	assert.Equal(t, float64(42), got["store"])

	ret := got["return"].(map[string]any)
	assert.Equal(t, "https://shop.test/checkout/success", ret["authorised"])
	assert.Equal(t, "https://shop.test/cart", ret["cancelled"])
	assert.NotContains(t, ret["authorised"], SessionIDPlaceholder)
}

func TestTelrRejectsNonCardPaymentMethods(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"order":{"ref":"R","url":"https://secure.telr.com/x"}}`))
	}))
	defer srv.Close()

	req := sampleRequest()
	req.PaymentMethodTypes = []string{"card", "klarna"}

	telr := NewTelr(TelrConfig{APIURL: srv.URL}, srv.Client())
	_, err := telr.CreateCheckoutSession(context.Background(), req)
	assert.ErrorIs(t, err, ErrUnsupportedOption)
	assert.Zero(t, calls)
}

func TestStripPlaceholder(t *testing.T) {
	const base = "https://shop.test/checkout/success"
	tests := []struct {
		in   string
		want string
	}{
		{base + "?session_id=" + SessionIDPlaceholder, base},
		{base + "?ref=a&session_id=" + SessionIDPlaceholder, base + "?ref=a"},
		{base + "?ref=a", base + "?ref=a"},
		{base, base},
	}
	for _, tt := range tests {
		got, err := stripPlaceholder(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

type countingTransport struct {
	calls int
}

func (c *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	c.calls++
	return http.DefaultTransport.RoundTrip(r)
}

func TestStripeUsesInjectedClient(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_1","object":"checkout.session","url":"https://checkout.stripe.com/c/cs_test_1"}`))
	}))
	defer srv.Close()

	transport := &countingTransport{}
	s := newStripe("sk_test", &stripe.BackendConfig{
		HTTPClient: &http.Client{Transport: transport},
		URL:        stripe.String(srv.URL),
	})

	session, err := s.CreateCheckoutSession(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", session.ID)
	assert.Equal(t, "/v1/checkout/sessions", path)
	assert.Equal(t, 1, transport.calls)
}

func TestTelrErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"non-200", http.StatusBadGateway, `oops`},
		{"api error", http.StatusOK, `{"error":{"message":"Invalid store","note":"check id"}}`},
		{"empty url", http.StatusOK, `{"order":{"ref":"R"}}`},
		{"bad json", http.StatusOK, `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			telr := NewTelr(TelrConfig{APIURL: srv.URL}, srv.Client())
			_, err := telr.CreateCheckoutSession(context.Background(), sampleRequest())
			assert.Error(t, err)
		})
	}
}

func TestFormatMinor(t *testing.T) {
	assert.Equal(t, "19.99", formatMinor(1999))
	assert.Equal(t, "0.05", formatMinor(5))
	assert.Equal(t, "100.00", formatMinor(10000))
}
