package storefront

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/junaidrashid-git/storefront-api/models"
)

// Cart mirrors the signed-in user's cart. Mutations are applied to the
// local list only after the API confirms them, and the list is always
// replaced as a whole. ClearCart is the exception: it empties the local
// list even when some server-side deletions fail.
type Cart struct {
	api        API
	sessions   SessionProvider
	notifier   Notifier
	redirector Redirector

	mu    sync.RWMutex
	items []models.CartItem
}

// NewCart builds a cart. A nil notifier logs; a nil redirector means
// hosted checkout is not configured on this client.
func NewCart(api API, sessions SessionProvider, notifier Notifier, redirector Redirector) *Cart {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &Cart{api: api, sessions: sessions, notifier: notifier, redirector: redirector}
}

// Items returns a copy of the current lines.
func (c *Cart) Items() []models.CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

// ItemCount is the sum of quantities across all lines.
func (c *Cart) ItemCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

func (c *Cart) replace(items []models.CartItem) {
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
}

// update builds a new list from the current one under the write lock.
func (c *Cart) update(fn func([]models.CartItem) []models.CartItem) {
	c.mu.Lock()
	c.items = fn(slices.Clone(c.items))
	c.mu.Unlock()
}

func (c *Cart) fail(op string, err error) error {
	se := asError(op, err)
	c.notifier.Failure(se)
	return se
}

// Load fetches the user's cart. Without a session the cart is emptied and
// no request is made.
func (c *Cart) Load(ctx context.Context) error {
	s := c.sessions.Session()
	if s == nil {
		c.replace(nil)
		return nil
	}
	items, err := c.api.ListCart(ctx, s)
	if err != nil {
		return c.fail("cart.load", err)
	}
	c.replace(items)
	return nil
}

// AddToCart adds quantity of the product variant. The returned item replaces
// the local line with the same ID or is appended.
func (c *Cart) AddToCart(ctx context.Context, product models.Product, quantity int, size, color string) (*models.CartItem, error) {
	s := c.sessions.Session()
	if s == nil {
		return nil, c.fail("cart.add", newError("cart.add", ErrUnauthenticated))
	}

	item, err := c.api.AddCartItem(ctx, s, AddCartItemRequest{
		ProductID: product.ID,
		Quantity:  quantity,
		Size:      size,
		Color:     color,
	})
	if err != nil {
		return nil, c.fail("cart.add", err)
	}

	c.update(func(items []models.CartItem) []models.CartItem {
		if i := slices.IndexFunc(items, func(it models.CartItem) bool { return it.ID == item.ID }); i >= 0 {
			items[i] = *item
			return items
		}
		return append(items, *item)
	})
	c.notifier.Success(fmt.Sprintf("Added %s to cart", product.Name))
	return item, nil
}

// RemoveFromCart deletes one line. Without a session it does nothing.
func (c *Cart) RemoveFromCart(ctx context.Context, id uuid.UUID) error {
	s := c.sessions.Session()
	if s == nil {
		return nil
	}
	if err := c.api.DeleteCartItem(ctx, s, id); err != nil {
		return c.fail("cart.remove", err)
	}
	c.update(func(items []models.CartItem) []models.CartItem {
		return slices.DeleteFunc(items, func(it models.CartItem) bool { return it.ID == id })
	})
	return nil
}

// UpdateQuantity sets a line's quantity to the value the server stores.
// Bounds are enforced by the API, not here.
func (c *Cart) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) (*models.CartItem, error) {
	s := c.sessions.Session()
	if s == nil {
		return nil, c.fail("cart.update", newError("cart.update", ErrUnauthenticated))
	}
	item, err := c.api.UpdateCartItem(ctx, s, id, quantity)
	if err != nil {
		return nil, c.fail("cart.update", err)
	}
	c.update(func(items []models.CartItem) []models.CartItem {
		for i := range items {
			if items[i].ID == item.ID {
				items[i] = *item
			}
		}
		return items
	})
	return item, nil
}

// ClearCart deletes every line with one request each. A failed deletion
// does not stop the rest; the local cart always ends empty and the
// failures are returned joined.
func (c *Cart) ClearCart(ctx context.Context) error {
	s := c.sessions.Session()
	items := c.Items()
	if s == nil {
		c.replace(nil)
		return nil
	}

	var errs []error
	for _, it := range items {
		if err := c.api.DeleteCartItem(ctx, s, it.ID); err != nil {
			log.Printf("⚠️ Failed to delete cart item %s: %v", it.ID, err)
			errs = append(errs, asError("cart.clear", err))
		}
	}
	c.replace(nil)

	if len(errs) > 0 {
		err := errors.Join(errs...)
		c.notifier.Failure(err)
		return err
	}
	return nil
}

// Checkout starts a hosted checkout for the current lines and hands the
// session to the redirector.
func (c *Cart) Checkout(ctx context.Context) (*CheckoutResult, error) {
	s := c.sessions.Session()
	if s == nil {
		return nil, c.fail("checkout", newError("checkout", ErrUnauthenticated))
	}
	if c.redirector == nil {
		return nil, c.fail("checkout", newError("checkout", ErrMisconfigured))
	}

	items := c.Items()
	if len(items) == 0 {
		return nil, c.fail("checkout", newError("checkout", ErrEmptyCart))
	}

	req := CheckoutRequest{UserID: s.UserID, Items: make([]CheckoutItem, 0, len(items))}
	for _, it := range items {
		req.Items = append(req.Items, CheckoutItem{
			ID:        it.ID.String(),
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Size:      it.Size,
			Color:     it.Color,
		})
	}

	res, err := c.api.CreateCheckout(ctx, s, req)
	if err != nil {
		return nil, c.fail("checkout", err)
	}
	if err := c.redirector.RedirectToCheckout(ctx, res.SessionID, res.URL); err != nil {
		return nil, c.fail("checkout", &Error{Op: "checkout", Kind: ErrRequestFailed, Err: err})
	}
	return res, nil
}
