package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store drivers accepted by STORE_DRIVER
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverGCS      = "gcs"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// Save failure modes accepted by SAVE_FAILURE_MODE
const (
	SaveFailureError = "error"
	SaveFailureWarn  = "warn"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	LogDir      string // empty disables the log file tee
	LogMaxFiles int

	// Document store
	StoreDriver         string
	ContentFile         string
	DatabaseURL         string
	TablePrefix         string
	GCSBucket           string
	GCSObject           string
	StorageEmulatorHost string
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	RedisKeyPrefix      string
	ContentSeedPath     string
	SaveFailureMode     string

	PublicBaseURL string

	// Admin authentication
	AdminPassword     string
	AdminPasswordHash string // bcrypt, wins over AdminPassword
	AdminToken        string // static bearer token, disabled when empty
	AdminJWTSecret    string
	AdminTokenTTL     time.Duration
	AuthJWKSURL       string
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		LogDir:      getEnv("LOG_DIR", ""),
		LogMaxFiles: getEnvInt("LOG_MAX_FILES", 10),

		StoreDriver:         strings.ToLower(getEnv("STORE_DRIVER", DriverFile)),
		ContentFile:         getEnv("CONTENT_FILE", "./data/content.json"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		TablePrefix:         getTablePrefix(env),
		GCSBucket:           getEnv("GCS_BUCKET", ""),
		GCSObject:           getEnv("GCS_OBJECT", "content.json"),
		StorageEmulatorHost: getEnv("STORAGE_EMULATOR_HOST", ""),
		RedisAddr:           getEnv("REDIS_ADDR", ""),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		RedisDB:             getEnvInt("REDIS_DB", 0),
		RedisKeyPrefix:      getEnv("REDIS_KEY_PREFIX", "coursetree:"),
		ContentSeedPath:     getEnv("CONTENT_SEED_PATH", ""),
		SaveFailureMode:     strings.ToLower(getEnv("SAVE_FAILURE_MODE", SaveFailureError)),

		PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", "https://ara-celi.org"), "/"),

		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		AdminToken:        getEnv("ADMIN_TOKEN", ""),
		AdminJWTSecret:    getEnv("ADMIN_JWT_SECRET", ""),
		AdminTokenTTL:     getEnvDuration("ADMIN_TOKEN_TTL", 12*time.Hour),
		AuthJWKSURL:       getEnv("AUTH_JWKS_URL", ""),
	}
}

// Validate reports every misconfiguration at once
func (c *Config) Validate() error {
	var errs []error

	switch c.StoreDriver {
	case DriverFile:
		if c.ContentFile == "" {
			errs = append(errs, errors.New("CONTENT_FILE is required for the file store"))
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres store"))
		}
	case DriverGCS:
		if c.GCSBucket == "" {
			errs = append(errs, errors.New("GCS_BUCKET is required for the gcs store"))
		}
		if c.GCSObject == "" {
			errs = append(errs, errors.New("GCS_OBJECT cannot be empty"))
		}
	case DriverRedis:
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required for the redis store"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}

	switch c.SaveFailureMode {
	case SaveFailureError, SaveFailureWarn:
	default:
		errs = append(errs, fmt.Errorf("unknown SAVE_FAILURE_MODE %q (want %q or %q)",
			c.SaveFailureMode, SaveFailureError, SaveFailureWarn))
	}

	if c.PasswordLoginEnabled() && c.AdminJWTSecret == "" {
		errs = append(errs, errors.New("ADMIN_JWT_SECRET is required when an admin password is configured"))
	}
	if c.AdminJWTSecret != "" && len(c.AdminJWTSecret) < MinJWTSecretLength {
		errs = append(errs, fmt.Errorf("ADMIN_JWT_SECRET must be at least %d bytes", MinJWTSecretLength))
	}
	if c.AdminTokenTTL <= 0 {
		errs = append(errs, errors.New("ADMIN_TOKEN_TTL must be positive"))
	}
	if c.LogMaxFiles < 1 {
		errs = append(errs, errors.New("LOG_MAX_FILES must be at least 1"))
	}

	return errors.Join(errs...)
}

// PasswordLoginEnabled reports whether POST /api/auth/login can succeed
func (c *Config) PasswordLoginEnabled() bool {
	return c.AdminPassword != "" || c.AdminPasswordHash != ""
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: invalid %s=%q, using %d\n", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: invalid %s=%q, using %s\n", key, value, defaultValue)
		return defaultValue
	}
	return d
}
