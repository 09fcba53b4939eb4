package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	JWTSecret   string
	AdminAPIKey string
	BaseURL     string

	Payment  PaymentConfig
	Firebase FirebaseConfig

	OTLPEndpoint string
	TraceStdout  bool
}

// PaymentConfig selects and configures the hosted checkout processor.
// Provider is empty when no processor credentials are present. An unknown
// PAYMENT_PROVIDER is kept as given so payment.New rejects it at startup.
type PaymentConfig struct {
	Provider          string
	Currency          string
	ShippingCountries []string

	StripeSecretKey string

	TelrStoreID  int
	TelrAuthKey  string
	TelrAPIURL   string
	TelrTestMode bool
}

type FirebaseConfig struct {
	ProjectID       string
	CredentialsJSON string
}

func (f FirebaseConfig) Enabled() bool {
	return f.ProjectID != "" && f.CredentialsJSON != ""
}

// Load reads .env (when present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("✅ .env file loaded")
	}

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		DatabaseURL:  databaseURL(),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		AdminAPIKey:  getEnv("ADMIN_API_KEY", ""),
		BaseURL:      strings.TrimRight(getEnv("BASE_URL", "http://localhost:3000"), "/"),
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		TraceStdout:  getBool("TRACE_STDOUT", false),
		Firebase: FirebaseConfig{
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
			CredentialsJSON: getEnv("FIREBASE_CREDENTIALS_JSON", ""),
		},
	}
	cfg.Payment = loadPayment()

	if cfg.JWTSecret == "" {
		log.Println("⚠️ JWT_SECRET is not set, user routes will reject every token")
	}
	return cfg
}

func loadPayment() PaymentConfig {
	p := PaymentConfig{
		Currency:          strings.ToLower(getEnv("CHECKOUT_CURRENCY", "usd")),
		ShippingCountries: splitList(getEnv("SHIPPING_COUNTRIES", "US,CA,GB,AU")),
		StripeSecretKey:   getEnv("STRIPE_SECRET_KEY", ""),
		TelrAuthKey:       getEnv("TELR_AUTH_KEY", ""),
		TelrAPIURL:        getEnv("TELR_API_URL", "https://secure.telr.com/gateway/order.json"),
	}
	p.TelrStoreID, _ = strconv.Atoi(getEnv("TELR_STORE_ID", ""))
	mode := strings.ToLower(getEnv("TELR_MODE", ""))
	p.TelrTestMode = mode == "sandbox" || mode == "dev"

	switch provider := strings.ToLower(getEnv("PAYMENT_PROVIDER", "")); provider {
	case "telr":
		if p.TelrStoreID != 0 && p.TelrAuthKey != "" {
			p.Provider = "telr"
		}
	case "", "stripe":
		if p.StripeSecretKey != "" {
			p.Provider = "stripe"
		}
	default:
		p.Provider = provider
	}
	return p
}

func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", ""),
		getEnv("DB_NAME", "storefront"),
		getEnv("DB_PORT", "5432"),
	)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.ToUpper(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}
