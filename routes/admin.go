package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/junaidrashid-git/storefront-api/controllers/cart"
	checkoutControllers "github.com/junaidrashid-git/storefront-api/controllers/checkout"
	productcontroller "github.com/junaidrashid-git/storefront-api/controllers/product"
	userControllers "github.com/junaidrashid-git/storefront-api/controllers/user"
	"github.com/junaidrashid-git/storefront-api/middleware"
)

// SetupAdminRoutes registers all “/admin/*” endpoints. Requires API-Key middleware.
func SetupAdminRoutes(r *gin.Engine, d Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey(d.AdminAPIKey))
	{
		// ─────────── User Management ───────────
		adminGroup.GET("/users", userControllers.GetAllUsers(d.Users))

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(d.Products))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(d.Products))
			productAdmin.GET("", productcontroller.GetProducts(d.Products))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(d.Products))
			productAdmin.POST("/import-excel", productcontroller.ImportProductsFromExcel(d.Products))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(d.Products))
		}

		// ─────────── Category Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productcontroller.CreateCategory(d.Categories))
			categoryAdmin.PUT("/:id", productcontroller.UpdateCategory(d.Categories))
			categoryAdmin.GET("", productcontroller.GetAllCategories(d.Categories))
			categoryAdmin.DELETE("/:id", productcontroller.DeleteCategory(d.Categories))
		}

		// ─────────── Carts & Checkouts ───────────
		adminGroup.GET("/user-cart/:user_id", cartControllers.GetAdminUserCart(d.Carts))
		adminGroup.GET("/checkout-sessions", checkoutControllers.ListCheckoutSessions(d.Sessions))
		adminGroup.GET("/ws/checkouts", d.Feed.Handler)
	}
}
