package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/google/uuid"
)

type TelrConfig struct {
	StoreID  int
	AuthKey  string
	APIURL   string
	TestMode bool
}

// Telr creates orders on the Telr hosted payment page. Telr takes a single
// order amount, so line items are folded into the total and description.
//
// The hosted page only takes card payments and always collects the card
// billing address, so PaymentMethodTypes must be empty or "card" and
// RequireBilling needs no field. It has no shipping allow-list;
// ShippingCountries is ignored (New logs a warning at startup).
type Telr struct {
	cfg    TelrConfig
	client *http.Client
}

func NewTelr(cfg TelrConfig, client *http.Client) *Telr {
	if client == nil {
		client = http.DefaultClient
	}
	return &Telr{cfg: cfg, client: client}
}

func (t *Telr) Name() string { return "telr" }

type telrOrderResponse struct {
	Order struct {
		Ref string `json:"ref"`
		URL string `json:"url"`
	} `json:"order"`
	Error *struct {
		Message string `json:"message"`
		Note    string `json:"note"`
	} `json:"error,omitempty"`
}

func (t *Telr) CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error) {
	for _, m := range req.PaymentMethodTypes {
		if m != "card" {
			return nil, fmt.Errorf("telr: payment method %q: %w", m, ErrUnsupportedOption)
		}
	}
	success, err := stripPlaceholder(req.SuccessURL)
	if err != nil {
		return nil, fmt.Errorf("telr: success url: %w", err)
	}

	test := 0
	if t.cfg.TestMode {
		test = 1
	}
	payload := map[string]any{
		"method":  "create",
		"store":   t.cfg.StoreID,
		"authkey": t.cfg.AuthKey,
		"order": map[string]any{
			"cartid":      uuid.NewString(),
			"test":        test,
			"amount":      formatMinor(req.AmountTotal()),
			"currency":    strings.ToUpper(req.Currency),
			"description": describe(req.LineItems),
		},
		"return": map[string]string{
			"authorised": success,
			"declined":   req.CancelURL,
			"cancelled":  req.CancelURL,
		},
	}
	if req.ClientReference != "" {
		payload["customer"] = map[string]any{"ref": req.ClientReference}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("telr: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("telr: API error (%d): %s", resp.StatusCode, string(raw))
	}

	var out telrOrderResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("telr: decode response: %w", err)
	}
	if out.Error != nil {
		return nil, fmt.Errorf("telr: %s %s", out.Error.Message, out.Error.Note)
	}
	if out.Order.Ref == "" || out.Order.URL == "" {
		return nil, fmt.Errorf("telr: empty order reference or payment URL")
	}
	return &Session{ID: out.Order.Ref, URL: out.Order.URL}, nil
}

// stripPlaceholder removes query parameters carrying SessionIDPlaceholder.
// Telr never fills it in, so the shopper would return with the literal text.
func stripPlaceholder(raw string) (string, error) {
	if !strings.Contains(raw, SessionIDPlaceholder) {
		return raw, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	q := u.Query()
	for k, vs := range q {
		if slices.Contains(vs, SessionIDPlaceholder) {
			q.Del(k)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// formatMinor renders 1999 as "19.99".
func formatMinor(amount int64) string {
	return fmt.Sprintf("%d.%02d", amount/100, amount%100)
}

func describe(items []LineItem) string {
	parts := make([]string, 0, len(items))
	for _, li := range items {
		parts = append(parts, fmt.Sprintf("%d x %s", li.Quantity, li.Name))
	}
	return strings.Join(parts, ", ")
}
