package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	productcontroller "github.com/junaidrashid-git/storefront-api/controllers/product"
)

// SetupCatalogRoutes registers the unauthenticated browse endpoints.
func SetupCatalogRoutes(r *gin.Engine, d Deps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/products", productcontroller.GetProducts(d.Products))
	r.GET("/products/:id", productcontroller.GetProductByID(d.Products))
	r.GET("/categories", productcontroller.GetAllCategories(d.Categories))
	r.GET("/categories/:id", productcontroller.GetCategoryByID(d.Categories))
}
