package checkoutControllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/middleware"
	"github.com/junaidrashid-git/storefront-api/models"
)

type CheckoutRequest struct {
	UserID string      `json:"user_id"`
	Items  []ItemInput `json:"items"`
}

// POST /user/checkout
func CreateCheckoutSession(in *Initiator) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if !in.Configured() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": ErrMisconfigured.Error(), "code": CodeMisconfigured})
			return
		}

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		if req.UserID != "" && req.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "user_id does not match the signed-in user"})
			return
		}

		res, err := in.Initiate(c.Request.Context(), userID, req.Items)
		if err != nil {
			status, code := statusFor(err)
			c.JSON(status, gin.H{"error": err.Error(), "code": code})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// Error codes carried in the "code" field of checkout error bodies.
const (
	CodeMisconfigured = "misconfigured"
	CodeEmptyCart     = "empty_cart"
	CodeInvalidItem   = "invalid_item"
	CodeUpstream      = "upstream_error"
	CodeInternal      = "internal_error"
)

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrMisconfigured):
		return http.StatusServiceUnavailable, CodeMisconfigured
	case errors.Is(err, ErrEmptyCart):
		return http.StatusBadRequest, CodeEmptyCart
	case errors.Is(err, ErrInvalidItem):
		return http.StatusBadRequest, CodeInvalidItem
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway, CodeUpstream
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

type SessionLister interface {
	List(ctx context.Context, userID string, limit int) ([]models.CheckoutSession, error)
}

// GET /admin/checkout-sessions
func ListCheckoutSessions(store SessionLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 50
		if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= 500 {
			limit = l
		}
		sessions, err := store.List(c.Request.Context(), c.Query("user_id"), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch checkout sessions"})
			return
		}
		c.JSON(http.StatusOK, sessions)
	}
}
