package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	RedisURL          string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Branding used on generated documents.
	ChapterName string
	LogoURL     string

	// Rate limiting for the document generation endpoints.
	DocumentRateLimit  int64
	DocumentRatePeriod time.Duration

	// TTL for cached reference data (divisions, categories, persons, groups).
	ReferenceCacheTTL time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "chapter-ledger")
	viper.SetDefault("CHAPTER_NAME", "Union Chapter")
	viper.SetDefault("LOGO_URL", "")
	viper.SetDefault("DOCUMENT_RATE_LIMIT", 10)
	viper.SetDefault("DOCUMENT_RATE_PERIOD", "1m")
	viper.SetDefault("REFERENCE_CACHE_TTL", "5m")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.RedisURL = viper.GetString("REDIS_URL")
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set. Reference data caching is disabled.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "chapter-ledger"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.ChapterName = viper.GetString("CHAPTER_NAME")
	cfg.LogoURL = viper.GetString("LOGO_URL")

	cfg.DocumentRateLimit = viper.GetInt64("DOCUMENT_RATE_LIMIT")
	if cfg.DocumentRateLimit <= 0 {
		cfg.DocumentRateLimit = 10
	}

	ratePeriodStr := viper.GetString("DOCUMENT_RATE_PERIOD")
	ratePeriod, err := time.ParseDuration(ratePeriodStr)
	if err != nil {
		ratePeriod = time.Minute
		if ratePeriodStr != "" {
			log.Printf("Warning: Invalid value for DOCUMENT_RATE_PERIOD ('%s'). Defaulting to %s.\n", ratePeriodStr, ratePeriod.String())
		}
	}
	cfg.DocumentRatePeriod = ratePeriod

	cacheTTLStr := viper.GetString("REFERENCE_CACHE_TTL")
	cacheTTL, err := time.ParseDuration(cacheTTLStr)
	if err != nil {
		cacheTTL = 5 * time.Minute
		if cacheTTLStr != "" {
			log.Printf("Warning: Invalid value for REFERENCE_CACHE_TTL ('%s'). Defaulting to %s.\n", cacheTTLStr, cacheTTL.String())
		}
	}
	cfg.ReferenceCacheTTL = cacheTTL

	return cfg, nil
}
