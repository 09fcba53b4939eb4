package storefront

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlistLoadWithoutSession(t *testing.T) {
	api := &fakeAPI{}
	w := NewWishlist(api, signedOut, &recorder{})
	require.NoError(t, w.Load(context.Background()))
	assert.Zero(t, w.ItemCount())
	assert.Zero(t, api.Calls())
}

func TestWishlistScenarioDuplicate(t *testing.T) {
	ctx := context.Background()
	notes := &recorder{}
	w := NewWishlist(&fakeAPI{}, signedIn("u1"), notes)

	_, err := w.AddToWishlist(ctx, p2)
	require.NoError(t, err)
	assert.True(t, w.IsInWishlist(p2.ID))
	assert.True(t, w.IsInWishlist(p2.ID))
	assert.False(t, w.IsInWishlist(p1.ID))

	_, err = w.AddToWishlist(ctx, p2)
	assert.ErrorIs(t, err, ErrDuplicateItem)
	assert.NotErrorIs(t, err, ErrRequestFailed)
	assert.Equal(t, 1, w.ItemCount())
	require.Len(t, notes.failures, 1)
	assert.ErrorIs(t, notes.failures[0], ErrDuplicateItem)
}

func TestWishlistRemove(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{}
	w := NewWishlist(api, signedIn("u1"), &recorder{})

	item, err := w.AddToWishlist(ctx, p1)
	require.NoError(t, err)
	require.NoError(t, w.RemoveFromWishlist(ctx, item.ID))
	assert.False(t, w.IsInWishlist(p1.ID))
	assert.Zero(t, w.ItemCount())

	// A second delete fails server-side and leaves the local list as is.
	assert.ErrorIs(t, w.RemoveFromWishlist(ctx, item.ID), ErrRequestFailed)
}

func TestWishlistRequiresSession(t *testing.T) {
	api := &fakeAPI{}
	w := NewWishlist(api, signedOut, &recorder{})
	_, err := w.AddToWishlist(context.Background(), p1)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Zero(t, api.Calls())
}
