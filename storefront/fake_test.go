package storefront

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// fakeAPI keeps server-side state in memory and mirrors the API contract:
// cart lines are keyed by (product, size, color), wishlist by product.
type fakeAPI struct {
	mu       sync.Mutex
	cart     []models.CartItem
	wishlist []models.WishlistItem
	calls    int

	failDelete map[uuid.UUID]bool
	failAdd    bool
	checkout   *CheckoutResult
	checkedOut []CheckoutRequest
}

func (f *fakeAPI) hit() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

func (f *fakeAPI) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func requestFailed(op string) error {
	return &Error{Op: op, Kind: ErrRequestFailed, Status: http.StatusInternalServerError}
}

func (f *fakeAPI) ListCart(context.Context, *Session) ([]models.CartItem, error) {
	f.hit()
	return append([]models.CartItem{}, f.cart...), nil
}

func (f *fakeAPI) AddCartItem(_ context.Context, s *Session, req AddCartItemRequest) (*models.CartItem, error) {
	f.hit()
	if f.failAdd {
		return nil, requestFailed("cart.add")
	}
	for i, it := range f.cart {
		if it.ProductID == req.ProductID && it.Size == req.Size && it.Color == req.Color {
			f.cart[i].Quantity += req.Quantity
			out := f.cart[i]
			return &out, nil
		}
	}
	item := models.CartItem{
		ID:        uuid.New(),
		UserID:    s.UserID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Size:      req.Size,
		Color:     req.Color,
	}
	f.cart = append(f.cart, item)
	return &item, nil
}

func (f *fakeAPI) UpdateCartItem(_ context.Context, _ *Session, id uuid.UUID, quantity int) (*models.CartItem, error) {
	f.hit()
	for i, it := range f.cart {
		if it.ID == id {
			f.cart[i].Quantity = quantity
			out := f.cart[i]
			return &out, nil
		}
	}
	return nil, &Error{Op: "cart.update", Kind: ErrRequestFailed, Status: http.StatusNotFound}
}

func (f *fakeAPI) DeleteCartItem(_ context.Context, _ *Session, id uuid.UUID) error {
	f.hit()
	if f.failDelete[id] {
		return requestFailed("cart.remove")
	}
	for i, it := range f.cart {
		if it.ID == id {
			f.cart = append(f.cart[:i], f.cart[i+1:]...)
			return nil
		}
	}
	return &Error{Op: "cart.remove", Kind: ErrRequestFailed, Status: http.StatusNotFound}
}

func (f *fakeAPI) ListWishlist(context.Context, *Session) ([]models.WishlistItem, error) {
	f.hit()
	return append([]models.WishlistItem{}, f.wishlist...), nil
}

func (f *fakeAPI) AddWishlistItem(_ context.Context, s *Session, productID uint) (*models.WishlistItem, error) {
	f.hit()
	for _, it := range f.wishlist {
		if it.ProductID == productID {
			return nil, &Error{Op: "wishlist.add", Kind: ErrDuplicateItem, Status: http.StatusConflict}
		}
	}
	item := models.WishlistItem{ID: uuid.New(), UserID: s.UserID, ProductID: productID}
	f.wishlist = append(f.wishlist, item)
	return &item, nil
}

func (f *fakeAPI) DeleteWishlistItem(_ context.Context, _ *Session, id uuid.UUID) error {
	f.hit()
	for i, it := range f.wishlist {
		if it.ID == id {
			f.wishlist = append(f.wishlist[:i], f.wishlist[i+1:]...)
			return nil
		}
	}
	return &Error{Op: "wishlist.remove", Kind: ErrRequestFailed, Status: http.StatusNotFound}
}

func (f *fakeAPI) CreateCheckout(_ context.Context, _ *Session, req CheckoutRequest) (*CheckoutResult, error) {
	f.hit()
	f.checkedOut = append(f.checkedOut, req)
	if f.checkout == nil {
		return nil, &Error{Op: "checkout", Kind: ErrUpstream, Status: http.StatusBadGateway}
	}
	return f.checkout, nil
}

type recorder struct {
	successes []string
	failures  []error
}

func (r *recorder) Success(message string) { r.successes = append(r.successes, message) }
func (r *recorder) Failure(err error)      { r.failures = append(r.failures, err) }

type redirectFunc func(ctx context.Context, sessionID, url string) error

func (f redirectFunc) RedirectToCheckout(ctx context.Context, sessionID, url string) error {
	return f(ctx, sessionID, url)
}

var errRedirect = errors.New("redirect blocked")

func signedIn(userID string) SessionProvider {
	return SessionFunc(func() *Session { return &Session{UserID: userID, Token: "tok-" + userID} })
}

var signedOut = SessionFunc(func() *Session { return nil })

var (
	p1 = models.Product{
		ID:     1,
		Name:   "P1",
		Price:  decimal.RequireFromString("19.99"),
		Sizes:  pq.StringArray{"S", "M"},
		Colors: pq.StringArray{"Red"},
	}
	p2 = models.Product{ID: 2, Name: "P2", Price: decimal.NewFromInt(5)}
)
