package wishlistControllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/junaidrashid-git/storefront-api/middleware"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/junaidrashid-git/storefront-api/repository"
)

// CodeAlreadyInWishlist marks the 409 body of a duplicate add.
const CodeAlreadyInWishlist = "already_in_wishlist"

type Store interface {
	ListByUser(ctx context.Context, userID string) ([]models.WishlistItem, error)
	Add(ctx context.Context, item *models.WishlistItem) error
	Exists(ctx context.Context, userID string, productID uint) (bool, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) error
}

type ProductLookup interface {
	Get(ctx context.Context, id uint) (*models.Product, error)
}

type AddWishlistInput struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GET /user/wishlist
func GetWishlist(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		items, err := store.ListByUser(c.Request.Context(), userID)
		if err != nil {
			log.Printf("❌ Failed to fetch wishlist for %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// POST /user/wishlist
func AddToWishlist(store Store, products ProductLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input AddWishlistInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		product, err := products.Get(c.Request.Context(), input.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		item := models.WishlistItem{UserID: userID, ProductID: product.ID, Product: *product}
		if err := store.Add(c.Request.Context(), &item); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				c.JSON(http.StatusConflict, gin.H{"error": "Product already in wishlist", "code": CodeAlreadyInWishlist})
				return
			}
			log.Printf("❌ Failed to add product %d to wishlist of %s: %v", product.ID, userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to wishlist"})
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

// DELETE /user/wishlist/:id
func RemoveFromWishlist(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wishlist item id"})
			return
		}

		if err := store.Delete(c.Request.Context(), userID, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Wishlist item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove from wishlist"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Wishlist item removed"})
	}
}

// GET /user/wishlist/check/:product_id
func CheckWishlistStatus(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
			return
		}

		exists, err := store.Exists(c.Request.Context(), userID, uint(productID))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check wishlist"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"in_wishlist": exists})
	}
}
