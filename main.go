package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/auth"
	"github.com/junaidrashid-git/storefront-api/config"
	checkoutControllers "github.com/junaidrashid-git/storefront-api/controllers/checkout"
	"github.com/junaidrashid-git/storefront-api/payment"
	"github.com/junaidrashid-git/storefront-api/repository"
	"github.com/junaidrashid-git/storefront-api/routes"
	"github.com/junaidrashid-git/storefront-api/telemetry"
)

const serviceName = "storefront-api"

func main() {
	log.Println("✅ Starting application...")

	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName:  serviceName,
		Environment:  cfg.Environment,
		OTLPEndpoint: cfg.OTLPEndpoint,
		Stdout:       cfg.TraceStdout,
	})
	if err != nil {
		log.Fatalf("❌ Tracing setup failed: %v", err)
	}

	// Init DB and auto-migrate all tables
	db, err := repository.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}

	processor, err := payment.New(cfg.Payment, telemetry.NewTracedHTTPClient(nil))
	if err != nil {
		log.Fatalf("❌ Payment setup failed: %v", err)
	}
	if processor == nil {
		log.Println("⚠️ No payment processor configured, checkout will answer 503")
	} else {
		log.Printf("✅ Payment processor: %s", processor.Name())
	}

	deps := routes.Deps{
		Products:    repository.NewProductRepository(db),
		Categories:  repository.NewCategoryRepository(db),
		Carts:       repository.NewCartRepository(db),
		Wishlists:   repository.NewWishlistRepository(db),
		Users:       repository.NewUserRepository(db),
		Sessions:    repository.NewCheckoutSessionRepository(db),
		Feed:        checkoutControllers.NewFeed(),
		JWTSecret:   cfg.JWTSecret,
		AdminAPIKey: cfg.AdminAPIKey,
	}
	deps.Initiator = checkoutControllers.NewInitiator(processor, deps.Sessions, deps.Products, checkoutControllers.Options{
		Currency:          cfg.Payment.Currency,
		ShippingCountries: cfg.Payment.ShippingCountries,
		BaseURL:           cfg.BaseURL,
	})
	deps.Initiator.OnCreated(deps.Feed.Broadcast)

	if cfg.Firebase.Enabled() {
		verifier, err := auth.NewFirebaseVerifier(ctx, cfg.Firebase)
		if err != nil {
			log.Fatalf("❌ Error initializing Firebase app: %v", err)
		}
		deps.Verifier = verifier
	} else {
		log.Println("⚠️ Firebase is not configured, Google login is disabled")
	}

	// Gin setup
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           telemetry.Handler(r, serviceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server running on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Server shutdown: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Printf("❌ Tracing shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
