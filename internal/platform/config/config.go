package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/ulule/limiter/v3"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	RunMigrations  bool
	MigrationsPath string

	JWTSecret string
	JWTIssuer string

	// Redis backs the filter options cache. An empty address disables it.
	RedisAddr             string
	RedisPassword         string
	RedisDB               int
	FilterOptionsCacheTTL time.Duration

	ReportTimeout        time.Duration
	LedgerAllowOverdraft bool

	// ExportRateLimit uses the limiter's formatted rate, e.g. "10-M".
	ExportRateLimit    string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("RUN_MIGRATIONS", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_ISSUER", "")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("FILTER_OPTIONS_CACHE_TTL", "5m")
	viper.SetDefault("REPORT_TIMEOUT", "30s")
	viper.SetDefault("LEDGER_ALLOW_OVERDRAFT", false)
	viper.SetDefault("EXPORT_RATE_LIMIT", "10-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:          viper.GetString("PGSQL_URL"),
		Port:                 viper.GetString("PORT"),
		IsProduction:         viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:        viper.GetBool("ENABLE_DB_CHECK"),
		RunMigrations:        viper.GetBool("RUN_MIGRATIONS"),
		MigrationsPath:       viper.GetString("MIGRATIONS_PATH"),
		JWTSecret:            viper.GetString("JWT_SECRET"),
		JWTIssuer:            viper.GetString("JWT_ISSUER"),
		RedisAddr:            viper.GetString("REDIS_ADDR"),
		RedisPassword:        viper.GetString("REDIS_PASSWORD"),
		RedisDB:              viper.GetInt("REDIS_DB"),
		LedgerAllowOverdraft: viper.GetBool("LEDGER_ALLOW_OVERDRAFT"),
		ExportRateLimit:      viper.GetString("EXPORT_RATE_LIMIT"),
		CORSAllowedOrigins:   splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, errors.New("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.FilterOptionsCacheTTL = durationOrDefault("FILTER_OPTIONS_CACHE_TTL", 5*time.Minute)
	cfg.ReportTimeout = durationOrDefault("REPORT_TIMEOUT", 30*time.Second)

	if _, err := limiter.NewRateFromFormatted(cfg.ExportRateLimit); err != nil {
		log.Printf("Warning: Invalid value for EXPORT_RATE_LIMIT ('%s'). Defaulting to 10-M.\n", cfg.ExportRateLimit)
		cfg.ExportRateLimit = "10-M"
	}

	if cfg.LedgerAllowOverdraft {
		log.Println("Warning: LEDGER_ALLOW_OVERDRAFT is enabled; session balances may go negative.")
	}

	return cfg, nil
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
