package storefront

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/junaidrashid-git/storefront-api/models"
)

// Wishlist mirrors the signed-in user's wishlist, one entry per product.
type Wishlist struct {
	api      API
	sessions SessionProvider
	notifier Notifier

	mu    sync.RWMutex
	items []models.WishlistItem
}

func NewWishlist(api API, sessions SessionProvider, notifier Notifier) *Wishlist {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &Wishlist{api: api, sessions: sessions, notifier: notifier}
}

func (w *Wishlist) Items() []models.WishlistItem {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.items)
}

func (w *Wishlist) ItemCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.items)
}

// IsInWishlist reports whether productID is in the local list.
func (w *Wishlist) IsInWishlist(productID uint) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.ContainsFunc(w.items, func(it models.WishlistItem) bool { return it.ProductID == productID })
}

func (w *Wishlist) update(fn func([]models.WishlistItem) []models.WishlistItem) {
	w.mu.Lock()
	w.items = fn(slices.Clone(w.items))
	w.mu.Unlock()
}

func (w *Wishlist) fail(op string, err error) error {
	se := asError(op, err)
	w.notifier.Failure(se)
	return se
}

// Load fetches the wishlist, or empties it without a request when signed out.
func (w *Wishlist) Load(ctx context.Context) error {
	s := w.sessions.Session()
	if s == nil {
		w.update(func([]models.WishlistItem) []models.WishlistItem { return nil })
		return nil
	}
	items, err := w.api.ListWishlist(ctx, s)
	if err != nil {
		return w.fail("wishlist.load", err)
	}
	w.update(func([]models.WishlistItem) []models.WishlistItem { return items })
	return nil
}

// AddToWishlist stores product. A product already on the server's list
// fails with ErrDuplicateItem.
func (w *Wishlist) AddToWishlist(ctx context.Context, product models.Product) (*models.WishlistItem, error) {
	s := w.sessions.Session()
	if s == nil {
		return nil, w.fail("wishlist.add", newError("wishlist.add", ErrUnauthenticated))
	}
	item, err := w.api.AddWishlistItem(ctx, s, product.ID)
	if err != nil {
		return nil, w.fail("wishlist.add", err)
	}

	w.update(func(items []models.WishlistItem) []models.WishlistItem {
		if i := slices.IndexFunc(items, func(it models.WishlistItem) bool { return it.ProductID == item.ProductID }); i >= 0 {
			items[i] = *item
			return items
		}
		return append(items, *item)
	})
	w.notifier.Success(fmt.Sprintf("Added %s to wishlist", product.Name))
	return item, nil
}

func (w *Wishlist) RemoveFromWishlist(ctx context.Context, id uuid.UUID) error {
	s := w.sessions.Session()
	if s == nil {
		return w.fail("wishlist.remove", newError("wishlist.remove", ErrUnauthenticated))
	}
	if err := w.api.DeleteWishlistItem(ctx, s, id); err != nil {
		return w.fail("wishlist.remove", err)
	}
	w.update(func(items []models.WishlistItem) []models.WishlistItem {
		return slices.DeleteFunc(items, func(it models.WishlistItem) bool { return it.ID == id })
	})
	return nil
}
