package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/junaidrashid-git/storefront-api/controllers/cart"
	checkoutControllers "github.com/junaidrashid-git/storefront-api/controllers/checkout"
	productcontroller "github.com/junaidrashid-git/storefront-api/controllers/product"
	userControllers "github.com/junaidrashid-git/storefront-api/controllers/user"
	wishlistControllers "github.com/junaidrashid-git/storefront-api/controllers/wishlist"
	"github.com/junaidrashid-git/storefront-api/middleware"
)

// SetupUserRoutes registers all “/user/*” endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, d Deps) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken(d.JWTSecret))
	{
		// ──────────────── User Profile ────────────────
		userGroup.GET("", userControllers.GetUser(d.Users))    // GET /user
		userGroup.PUT("", userControllers.UpdateUser(d.Users)) // PUT /user

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetUserCart(d.Carts))              // GET /user/cart
			cartGroup.POST("", cartControllers.AddCartItem(d.Carts, d.Products)) // POST /user/cart
			cartGroup.PUT("/:id", cartControllers.UpdateCartItem(d.Carts))       // PUT /user/cart/:id
			cartGroup.DELETE("/:id", cartControllers.DeleteCartItem(d.Carts))    // DELETE /user/cart/:id
			cartGroup.DELETE("", cartControllers.ClearUserCart(d.Carts))         // DELETE /user/cart
		}

		// ──────────────── Wishlist ────────────────
		wishlistGroup := userGroup.Group("/wishlist")
		{
			wishlistGroup.GET("", wishlistControllers.GetWishlist(d.Wishlists))
			wishlistGroup.POST("", wishlistControllers.AddToWishlist(d.Wishlists, d.Products))
			wishlistGroup.DELETE("/:id", wishlistControllers.RemoveFromWishlist(d.Wishlists))
			wishlistGroup.GET("/check/:product_id", wishlistControllers.CheckWishlistStatus(d.Wishlists))
		}

		// ──────────────── Checkout ────────────────
		userGroup.POST("/checkout", checkoutControllers.CreateCheckoutSession(d.Initiator))

		// ──────────────── Browse Products ────────────────
		userGroup.GET("/products", productcontroller.GetProducts(d.Products))
		userGroup.GET("/products/:id", productcontroller.GetProductByID(d.Products))
	}
}
