package checkoutControllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/junaidrashid-git/storefront-api/payment"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrMisconfigured = errors.New("payment processor is not configured")
	ErrEmptyCart     = errors.New("cart is empty")
	ErrInvalidItem   = errors.New("invalid cart item")
	ErrUpstream      = errors.New("payment processor rejected the checkout")
	ErrPersist       = errors.New("checkout session could not be recorded")
)

var hundred = decimal.NewFromInt(100)

type SessionStore interface {
	Create(ctx context.Context, s *models.CheckoutSession) error
}

type ProductCatalog interface {
	GetMany(ctx context.Context, ids []uint) (map[uint]models.Product, error)
}

// ItemInput is one cart line as the storefront sends it.
type ItemInput struct {
	ID        string `json:"id"`
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type Result struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

type Options struct {
	Currency          string
	ShippingCountries []string
	BaseURL           string
}

// Initiator turns a cart snapshot into a hosted checkout session and a
// CheckoutSession row.
type Initiator struct {
	processor payment.Processor
	sessions  SessionStore
	products  ProductCatalog
	opts      Options
	onCreated func(models.CheckoutSession)
}

func NewInitiator(processor payment.Processor, sessions SessionStore, products ProductCatalog, opts Options) *Initiator {
	if opts.Currency == "" {
		opts.Currency = "usd"
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	return &Initiator{processor: processor, sessions: sessions, products: products, opts: opts}
}

// OnCreated registers fn to run after each session row is stored.
func (in *Initiator) OnCreated(fn func(models.CheckoutSession)) {
	in.onCreated = fn
}

// Configured reports whether a payment processor is available.
func (in *Initiator) Configured() bool {
	return in.processor != nil
}

func (in *Initiator) Initiate(ctx context.Context, userID string, items []ItemInput) (*Result, error) {
	ctx, span := otel.Tracer("storefront/checkout").Start(ctx, "checkout.initiate",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("user.id", userID), attribute.Int("checkout.items", len(items))),
	)
	defer span.End()

	res, err := in.initiate(ctx, userID, items)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return res, err
}

func (in *Initiator) initiate(ctx context.Context, userID string, items []ItemInput) (*Result, error) {
	if in.processor == nil {
		return nil, ErrMisconfigured
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	req, err := in.buildRequest(ctx, userID, items)
	if err != nil {
		return nil, err
	}

	session, err := in.processor.CreateCheckoutSession(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	record := models.CheckoutSession{
		SessionID:   session.ID,
		UserID:      userID,
		Provider:    in.processor.Name(),
		AmountTotal: req.AmountTotal(),
		Currency:    req.Currency,
	}
	if err := in.sessions.Create(ctx, &record); err != nil {
		// The upstream session exists but has no local row.
		log.Printf("❌ Checkout session %s for user %s created upstream but not stored: %v", session.ID, userID, err)
		return nil, fmt.Errorf("%w: %v", ErrPersist, err)
	}
	if in.onCreated != nil {
		in.onCreated(record)
	}

	log.Printf("✅ Checkout session %s created for user %s (%d items)", session.ID, userID, len(items))
	return &Result{SessionID: session.ID, URL: session.URL}, nil
}

func (in *Initiator) buildRequest(ctx context.Context, userID string, items []ItemInput) (payment.SessionRequest, error) {
	ids := make([]uint, 0, len(items))
	for _, it := range items {
		if it.Quantity < 1 {
			return payment.SessionRequest{}, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidItem)
		}
		ids = append(ids, it.ProductID)
	}
	products, err := in.products.GetMany(ctx, ids)
	if err != nil {
		return payment.SessionRequest{}, err
	}

	lineItems := make([]payment.LineItem, 0, len(items))
	for _, it := range items {
		p, ok := products[it.ProductID]
		if !ok {
			return payment.SessionRequest{}, fmt.Errorf("%w: product %d does not exist", ErrInvalidItem, it.ProductID)
		}
		lineItems = append(lineItems, payment.LineItem{
			Name:        p.Name,
			Image:       p.FirstImage(),
			Description: variantLabel(it.Size, it.Color),
			UnitAmount:  MinorUnits(p.Price),
			Quantity:    int64(it.Quantity),
		})
	}

	return payment.SessionRequest{
		LineItems:          lineItems,
		Currency:           in.opts.Currency,
		PaymentMethodTypes: []string{"card"},
		RequireBilling:     true,
		ShippingCountries:  in.opts.ShippingCountries,
		SuccessURL:         in.opts.BaseURL + "/checkout/success?session_id=" + payment.SessionIDPlaceholder,
		CancelURL:          in.opts.BaseURL + "/cart",
		ClientReference:    userID,
	}, nil
}

// MinorUnits converts a decimal amount to the processor's integer minor
// unit, rounding half away from zero.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

func variantLabel(size, color string) string {
	var parts []string
	if size != "" {
		parts = append(parts, "Size: "+size)
	}
	if color != "" {
		parts = append(parts, "Color: "+color)
	}
	return strings.Join(parts, ", ")
}
