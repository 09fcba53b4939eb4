package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/auth"
	checkoutControllers "github.com/junaidrashid-git/storefront-api/controllers/checkout"
	"github.com/junaidrashid-git/storefront-api/repository"
)

// Deps carries everything the route groups hand to their controllers.
type Deps struct {
	Products   *repository.ProductRepository
	Categories *repository.CategoryRepository
	Carts      *repository.CartRepository
	Wishlists  *repository.WishlistRepository
	Users      *repository.UserRepository
	Sessions   *repository.CheckoutSessionRepository

	Initiator *checkoutControllers.Initiator
	Feed      *checkoutControllers.Feed
	// Verifier is nil when Google login is not configured.
	Verifier auth.TokenVerifier

	JWTSecret   string
	AdminAPIKey string
}

// SetupRoutes is the single entry-point that wires up the public, Auth, User and Admin route groups.
func SetupRoutes(r *gin.Engine, d Deps) {
	// 1️⃣ Public catalog
	SetupCatalogRoutes(r, d)

	// 2️⃣ Public Auth routes (no middleware)
	SetupAuthRoutes(r, d)

	// 3️⃣ User routes (JWT-protected)
	SetupUserRoutes(r, d)

	// 4️⃣ Admin routes (API-Key-protected)
	SetupAdminRoutes(r, d)
}
