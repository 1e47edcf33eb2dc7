package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Single-admin auth
	AdminPassword     string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Exchange rate source (Frankfurter-compatible historical rate API)
	FrankfurterBaseURL  string
	RateHTTPTimeout     time.Duration
	RateCacheMaxEntries int
	RateCacheTTL        time.Duration

	// Gemini extraction endpoint (API key itself lives in settings, not env)
	GeminiBaseURL     string
	GeminiHTTPTimeout time.Duration

	// Google Drive backup OAuth
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
	FrontendBaseURL    string `mapstructure:"FRONTEND_BASE_URL"`

	// Requests per period per client IP, e.g. "120-M"
	RateLimitSpec string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("ADMIN_PASSWORD", "")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "12h")
	viper.SetDefault("JWT_ISSUER", "receipt-management-app")
	viper.SetDefault("FRANKFURTER_BASE_URL", "https://api.frankfurter.dev/v1")
	viper.SetDefault("RATE_HTTP_TIMEOUT", "10s")
	viper.SetDefault("RATE_CACHE_MAX_ENTRIES", 1000)
	viper.SetDefault("RATE_CACHE_TTL", "24h")
	viper.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta")
	viper.SetDefault("GEMINI_HTTP_TIMEOUT", "60s")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT_SPEC", "120-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.AdminPassword = viper.GetString("ADMIN_PASSWORD")
	if cfg.AdminPassword == "" {
		log.Println("Warning: ADMIN_PASSWORD not set. Login is disabled until it is configured.")
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 12 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.FrankfurterBaseURL = viper.GetString("FRANKFURTER_BASE_URL")

	rateTimeoutStr := viper.GetString("RATE_HTTP_TIMEOUT")
	rateTimeout, err := time.ParseDuration(rateTimeoutStr)
	if err != nil {
		rateTimeout = 10 * time.Second
		log.Printf("Warning: Invalid value for RATE_HTTP_TIMEOUT ('%s'). Defaulting to %s.\n", rateTimeoutStr, rateTimeout.String())
	}
	cfg.RateHTTPTimeout = rateTimeout

	cfg.RateCacheMaxEntries = viper.GetInt("RATE_CACHE_MAX_ENTRIES")
	if cfg.RateCacheMaxEntries <= 0 {
		cfg.RateCacheMaxEntries = 1000
	}

	rateTTLStr := viper.GetString("RATE_CACHE_TTL")
	rateTTL, err := time.ParseDuration(rateTTLStr)
	if err != nil {
		rateTTL = 24 * time.Hour
		log.Printf("Warning: Invalid value for RATE_CACHE_TTL ('%s'). Defaulting to %s.\n", rateTTLStr, rateTTL.String())
	}
	cfg.RateCacheTTL = rateTTL

	cfg.GeminiBaseURL = viper.GetString("GEMINI_BASE_URL")
	geminiTimeoutStr := viper.GetString("GEMINI_HTTP_TIMEOUT")
	geminiTimeout, err := time.ParseDuration(geminiTimeoutStr)
	if err != nil {
		geminiTimeout = 60 * time.Second
		log.Printf("Warning: Invalid value for GEMINI_HTTP_TIMEOUT ('%s'). Defaulting to %s.\n", geminiTimeoutStr, geminiTimeout.String())
	}
	cfg.GeminiHTTPTimeout = geminiTimeout

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")

	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google Drive backup will not function.")
	}
	if cfg.GoogleClientSecret == "" {
		log.Println("Warning: GOOGLE_CLIENT_SECRET not set. Google Drive backup will not function.")
	}

	cfg.RateLimitSpec = viper.GetString("RATE_LIMIT_SPEC")

	return cfg, nil
}
