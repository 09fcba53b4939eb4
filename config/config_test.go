package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadPaymentDefaultsToStripeWhenKeyPresent(t *testing.T) {
	t.Setenv("PAYMENT_PROVIDER", "")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("SHIPPING_COUNTRIES", "us, ca ,,gb")

	p := loadPayment()

	assert.Equal(t, "stripe", p.Provider)
	assert.Equal(t, []string{"US", "CA", "GB"}, p.ShippingCountries)
	assert.Equal(t, "usd", p.Currency)
}

func TestLoadPaymentUnconfigured(t *testing.T) {
	t.Setenv("PAYMENT_PROVIDER", "")
	t.Setenv("STRIPE_SECRET_KEY", "")

	assert.Empty(t, loadPayment().Provider)
}

func TestLoadPaymentTelrRequiresCredentials(t *testing.T) {
	t.Setenv("PAYMENT_PROVIDER", "telr")
	t.Setenv("TELR_STORE_ID", "")
	t.Setenv("TELR_AUTH_KEY", "key")
	assert.Empty(t, loadPayment().Provider)

	t.Setenv("TELR_STORE_ID", "1234")
	t.Setenv("TELR_MODE", "sandbox")
	p := loadPayment()
	assert.Equal(t, "telr", p.Provider)
	assert.Equal(t, 1234, p.TelrStoreID)
	assert.True(t, p.TelrTestMode)
}

func TestDatabaseURLPrefersFullURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db/shop")
	assert.Equal(t, "postgres://u:p@db/shop", databaseURL())

	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "shop")
	assert.Contains(t, databaseURL(), "host=db")
	assert.Contains(t, databaseURL(), "dbname=shop")
}

func TestLoadPaymentKeepsUnknownProvider(t *testing.T) {
	t.Setenv("PAYMENT_PROVIDER", "PayPal")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")

	assert.Equal(t, "paypal", loadPayment().Provider)
}
