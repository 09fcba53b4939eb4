package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/junaidrashid-git/storefront-api/telemetry"
)

// Error codes sent by the API in the "code" field of error bodies.
const (
	codeAlreadyInWishlist = "already_in_wishlist"
	codeMisconfigured     = "misconfigured"
	codeEmptyCart         = "empty_cart"
	codeUpstream          = "upstream_error"
)

type AddCartItemRequest struct {
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type CheckoutItem struct {
	ID        string `json:"id"`
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type CheckoutRequest struct {
	UserID string         `json:"user_id"`
	Items  []CheckoutItem `json:"items"`
}

type CheckoutResult struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// API is the backend surface the cart and wishlist aggregates depend on.
type API interface {
	ListCart(ctx context.Context, s *Session) ([]models.CartItem, error)
	AddCartItem(ctx context.Context, s *Session, req AddCartItemRequest) (*models.CartItem, error)
	UpdateCartItem(ctx context.Context, s *Session, id uuid.UUID, quantity int) (*models.CartItem, error)
	DeleteCartItem(ctx context.Context, s *Session, id uuid.UUID) error

	ListWishlist(ctx context.Context, s *Session) ([]models.WishlistItem, error)
	AddWishlistItem(ctx context.Context, s *Session, productID uint) (*models.WishlistItem, error)
	DeleteWishlistItem(ctx context.Context, s *Session, id uuid.UUID) error

	CreateCheckout(ctx context.Context, s *Session, req CheckoutRequest) (*CheckoutResult, error)
}

// Client talks to the storefront API over HTTP/JSON. It never retries.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for baseURL. A nil httpClient gets a traced
// default client.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = telemetry.NewTracedHTTPClient(nil)
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (c *Client) ListCart(ctx context.Context, s *Session) ([]models.CartItem, error) {
	var items []models.CartItem
	err := c.do(ctx, "cart.load", s, http.MethodGet, "/user/cart", nil, &items)
	return items, err
}

func (c *Client) AddCartItem(ctx context.Context, s *Session, req AddCartItemRequest) (*models.CartItem, error) {
	var item models.CartItem
	if err := c.do(ctx, "cart.add", s, http.MethodPost, "/user/cart", req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateCartItem(ctx context.Context, s *Session, id uuid.UUID, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	body := map[string]int{"quantity": quantity}
	if err := c.do(ctx, "cart.update", s, http.MethodPut, "/user/cart/"+id.String(), body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteCartItem(ctx context.Context, s *Session, id uuid.UUID) error {
	return c.do(ctx, "cart.remove", s, http.MethodDelete, "/user/cart/"+id.String(), nil, nil)
}

func (c *Client) ListWishlist(ctx context.Context, s *Session) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := c.do(ctx, "wishlist.load", s, http.MethodGet, "/user/wishlist", nil, &items)
	return items, err
}

func (c *Client) AddWishlistItem(ctx context.Context, s *Session, productID uint) (*models.WishlistItem, error) {
	var item models.WishlistItem
	body := map[string]uint{"product_id": productID}
	if err := c.do(ctx, "wishlist.add", s, http.MethodPost, "/user/wishlist", body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteWishlistItem(ctx context.Context, s *Session, id uuid.UUID) error {
	return c.do(ctx, "wishlist.remove", s, http.MethodDelete, "/user/wishlist/"+id.String(), nil, nil)
}

func (c *Client) CreateCheckout(ctx context.Context, s *Session, req CheckoutRequest) (*CheckoutResult, error) {
	var res CheckoutResult
	if err := c.do(ctx, "checkout", s, http.MethodPost, "/user/checkout", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (c *Client) do(ctx context.Context, op string, s *Session, method, path string, body, out any) error {
	if s == nil {
		return newError(op, ErrUnauthenticated)
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &Error{Op: op, Kind: ErrRequestFailed, Err: err}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Op: op, Kind: ErrRequestFailed, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.Token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Op: op, Kind: ErrRequestFailed, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&eb)
		return &Error{
			Op:      op,
			Kind:    kindFor(resp.StatusCode, eb.Code),
			Status:  resp.StatusCode,
			Message: eb.Error,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Op: op, Kind: ErrRequestFailed, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func kindFor(status int, code string) error {
	switch {
	case code == codeAlreadyInWishlist:
		return ErrDuplicateItem
	case code == codeMisconfigured || status == http.StatusServiceUnavailable:
		return ErrMisconfigured
	case code == codeEmptyCart:
		return ErrEmptyCart
	case code == codeUpstream || status == http.StatusBadGateway:
		return ErrUpstream
	case status == http.StatusUnauthorized:
		return ErrUnauthenticated
	default:
		return ErrRequestFailed
	}
}
