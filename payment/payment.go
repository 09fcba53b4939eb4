// Package payment creates hosted checkout sessions with an external
// payment processor.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/junaidrashid-git/storefront-api/config"
)

var (
	// ErrUnknownProvider is returned by New for a provider name it cannot build.
	ErrUnknownProvider = errors.New("unknown payment provider")
	// ErrUnsupportedOption is returned when a processor cannot honour a
	// session option.
	ErrUnsupportedOption = errors.New("session option not supported by processor")
)

// SessionIDPlaceholder is substituted by the processor with its session id
// in SuccessURL. Processors that cannot substitute it drop the parameter.
const SessionIDPlaceholder = "{CHECKOUT_SESSION_ID}"

// LineItem is one product line of a hosted checkout. UnitAmount is in the
// currency's minor unit (cents).
type LineItem struct {
	Name        string
	Image       string
	Description string
	UnitAmount  int64
	Quantity    int64
}

type SessionRequest struct {
	LineItems          []LineItem
	Currency           string
	PaymentMethodTypes []string
	RequireBilling     bool
	ShippingCountries  []string
	SuccessURL         string
	CancelURL          string
	ClientReference    string
}

// AmountTotal sums UnitAmount × Quantity across all line items.
func (r SessionRequest) AmountTotal() int64 {
	var total int64
	for _, li := range r.LineItems {
		total += li.UnitAmount * li.Quantity
	}
	return total
}

// Session is the processor's answer to a session request.
type Session struct {
	ID  string
	URL string
}

type Processor interface {
	Name() string
	CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error)
}

// New builds the processor selected by cfg. It returns nil, nil when no
// processor is configured. Every processor sends its API calls through
// client; nil means the processor's default client.
func New(cfg config.PaymentConfig, client *http.Client) (Processor, error) {
	switch strings.ToLower(cfg.Provider) {
	case "":
		return nil, nil
	case "stripe":
		return NewStripe(cfg.StripeSecretKey, client), nil
	case "telr":
		if len(cfg.ShippingCountries) > 0 {
			log.Printf("⚠️ telr hosted page cannot restrict shipping countries, ignoring SHIPPING_COUNTRIES=%v", cfg.ShippingCountries)
		}
		return NewTelr(TelrConfig{
			StoreID:  cfg.TelrStoreID,
			AuthKey:  cfg.TelrAuthKey,
			APIURL:   cfg.TelrAPIURL,
			TestMode: cfg.TelrTestMode,
		}, client), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}
