package auth

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	firebase "firebase.google.com/go"
	fbauth "firebase.google.com/go/auth"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/junaidrashid-git/storefront-api/config"
	"github.com/junaidrashid-git/storefront-api/models"
	"google.golang.org/api/option"
)

const tokenTTL = 24 * time.Hour

var (
	ErrInvalidIDToken = errors.New("invalid Google ID token")
	ErrMissingSecret  = errors.New("JWT secret is not configured")
)

// Identity is the verified subset of a Google ID token.
type Identity struct {
	UID     string
	Email   string
	Name    string
	Picture string
}

type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*Identity, error)
}

type UserStore interface {
	Upsert(ctx context.Context, u *models.User) error
}

// FirebaseVerifier checks ID tokens against a Firebase project.
type FirebaseVerifier struct {
	client    *fbauth.Client
	projectID string
}

func NewFirebaseVerifier(ctx context.Context, cfg config.FirebaseConfig) (*FirebaseVerifier, error) {
	app, err := firebase.NewApp(ctx,
		&firebase.Config{ProjectID: cfg.ProjectID},
		option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)),
	)
	if err != nil {
		return nil, err
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return &FirebaseVerifier{client: client, projectID: cfg.ProjectID}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*Identity, error) {
	token, err := v.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		return nil, errors.Join(ErrInvalidIDToken, err)
	}
	if token.Audience != v.projectID {
		return nil, ErrInvalidIDToken
	}

	email, _ := token.Claims["email"].(string)
	if email == "" {
		return nil, ErrInvalidIDToken
	}
	name, _ := token.Claims["name"].(string)
	picture, _ := token.Claims["picture"].(string)
	return &Identity{UID: token.UID, Email: email, Name: name, Picture: picture}, nil
}

type googleLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// GoogleUserLogin serves POST /auth/google. A nil verifier means Google
// login is not configured.
func GoogleUserLogin(verifier TokenVerifier, users UserStore, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if verifier == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google login is not configured"})
			return
		}

		var req googleLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		id, err := verifier.Verify(c.Request.Context(), req.IDToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Firebase ID token"})
			return
		}

		user := models.User{
			ID:       id.UID,
			Email:    id.Email,
			Name:     id.Name,
			Picture:  id.Picture,
			Provider: "google",
		}
		if err := users.Upsert(c.Request.Context(), &user); err != nil {
			log.Printf("❌ Failed to upsert user %s: %v", id.UID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save user"})
			return
		}

		token, err := IssueJWT(secret, user, "user", time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"user":    user,
			"token":   token,
		})
	}
}

// IssueJWT signs an HS256 token for user valid for 24 hours from now.
func IssueJWT(secret string, user models.User, role string, now time.Time) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    role,
		"name":    user.Name,
		"picture": user.Picture,
		"iat":     now.Unix(),
		"exp":     now.Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
