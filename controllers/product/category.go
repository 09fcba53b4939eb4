package productcontroller

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/junaidrashid-git/storefront-api/repository"
)

type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id uint) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) error
	Update(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, id uint) error
}

type CategoryInput struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Slugify lower-cases s and joins its alphanumeric runs with hyphens.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}

func (in CategoryInput) apply(cat *models.Category) error {
	cat.Name = strings.TrimSpace(in.Name)
	cat.Slug = Slugify(in.Slug)
	if cat.Slug == "" {
		cat.Slug = Slugify(in.Name)
	}
	if cat.Slug == "" {
		return errors.New("name must contain letters or digits")
	}
	cat.Description = in.Description
	cat.Image = in.Image
	return nil
}

func GetAllCategories(store CategoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := store.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

func GetCategoryByID(store CategoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := categoryID(c)
		if !ok {
			return
		}
		category, err := store.Get(c.Request.Context(), id)
		if err != nil {
			categoryError(c, err, "Failed to fetch category")
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

func CreateCategory(store CategoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var category models.Category
		if err := input.apply(&category); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := store.Create(c.Request.Context(), &category); err != nil {
			categoryError(c, err, "Failed to create category")
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

func UpdateCategory(store CategoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := categoryID(c)
		if !ok {
			return
		}
		var input CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		category, err := store.Get(c.Request.Context(), id)
		if err != nil {
			categoryError(c, err, "Failed to fetch category")
			return
		}
		if err := input.apply(category); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := store.Update(c.Request.Context(), category); err != nil {
			categoryError(c, err, "Failed to update category")
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

func DeleteCategory(store CategoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := categoryID(c)
		if !ok {
			return
		}
		if err := store.Delete(c.Request.Context(), id); err != nil {
			categoryError(c, err, "Failed to delete category")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
	}
}

func categoryID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return 0, false
	}
	return uint(id), true
}

func categoryError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
	case errors.Is(err, repository.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "A category with this slug already exists"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
