package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends selectable with STORE_BACKEND.
const (
	StoreBackendMemory   = "memory"
	StoreBackendPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	Environment   string
	Server        ServerConfig
	Services      ServicesConfig
	Store         StoreConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	Auth          AuthConfig
	Notifications NotificationsConfig
	Client        ClientConfig
	OTEL          OTELConfig
}

// ServerConfig holds server configuration shared by every service
type ServerConfig struct {
	Host           string
	AllowedOrigins []string
}

// ServicesConfig holds the fixed local port of each service
type ServicesConfig struct {
	FavoritesPort     int
	ReviewsPort       int
	RatingsPort       int
	AuthPort          int
	NotificationsPort int
}

// StoreConfig selects where records live
type StoreConfig struct {
	Backend        string
	DataDir        string
	SeedSampleData bool
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// AuthConfig holds token signing configuration
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// NotificationsConfig holds the promotion scheduler settings
type NotificationsConfig struct {
	PromotionsEnabled     bool
	PromotionInitialDelay time.Duration
	PromotionInterval     time.Duration
	DefaultPageSize       int
}

// ClientConfig holds settings of the Go client library and CLI
type ClientConfig struct {
	FavoritesURL     string
	ReviewsURL       string
	RatingsURL       string
	AuthURL          string
	NotificationsURL string
	StateDir         string
	HealthCooldown   time.Duration
	HealthTimeout    time.Duration
	RequestTimeout   time.Duration

	// NotifyFavorites makes the client ask the notifications service about
	// each saved favorite. Deployments with the event bus leave it off.
	NotifyFavorites bool
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// DefaultJWTSecret is the demo signing secret used when JWT_SECRET is unset.
const DefaultJWTSecret = "wheretogo_secret_key_2024"

// Load loads configuration from environment variables. A .env file in the
// working directory is read first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"*"}),
		},
		Services: ServicesConfig{
			FavoritesPort:     getEnvAsInt("FAVORITES_PORT", 3001),
			ReviewsPort:       getEnvAsInt("REVIEWS_PORT", 3002),
			RatingsPort:       getEnvAsInt("RATINGS_PORT", 3003),
			AuthPort:          getEnvAsInt("AUTH_PORT", 3004),
			NotificationsPort: getEnvAsInt("NOTIFICATIONS_PORT", 3005),
		},
		Store: StoreConfig{
			Backend:        strings.ToLower(getEnv("STORE_BACKEND", StoreBackendMemory)),
			DataDir:        getEnv("DATA_DIR", "data"),
			SeedSampleData: getEnvAsBool("SEED_SAMPLE_DATA", true),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "wheretogo"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", DefaultJWTSecret),
			TokenTTL:  getEnvAsDuration("JWT_TTL", 7*24*time.Hour),
		},
		Notifications: NotificationsConfig{
			PromotionsEnabled:     getEnvAsBool("PROMOTIONS_ENABLED", true),
			PromotionInitialDelay: getEnvAsDuration("PROMOTION_INITIAL_DELAY", 10*time.Second),
			PromotionInterval:     getEnvAsDuration("PROMOTION_INTERVAL", 2*time.Minute),
			DefaultPageSize:       getEnvAsInt("NOTIFICATIONS_PAGE_SIZE", 20),
		},
		Client: ClientConfig{
			FavoritesURL:     getEnv("FAVORITES_URL", "http://localhost:3001/api"),
			ReviewsURL:       getEnv("REVIEWS_URL", "http://localhost:3002/api"),
			RatingsURL:       getEnv("RATINGS_URL", "http://localhost:3003/api"),
			AuthURL:          getEnv("AUTH_URL", "http://localhost:3004/api"),
			NotificationsURL: getEnv("NOTIFICATIONS_URL", "http://localhost:3005"),
			StateDir:         getEnv("WHERETOGO_STATE_DIR", defaultStateDir()),
			HealthCooldown:   getEnvAsDuration("HEALTH_CHECK_COOLDOWN", 60*time.Second),
			HealthTimeout:    getEnvAsDuration("HEALTH_CHECK_TIMEOUT", 3*time.Second),
			RequestTimeout:   getEnvAsDuration("CLIENT_REQUEST_TIMEOUT", 5*time.Second),
			NotifyFavorites:  getEnvAsBool("CLIENT_NOTIFY_FAVORITES", !getEnvAsBool("REDIS_ENABLED", false)),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "wheretogo"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later at runtime
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case StoreBackendMemory, StoreBackendPostgres:
	default:
		return fmt.Errorf("unsupported STORE_BACKEND %q", c.Store.Backend)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	if c.Client.HealthTimeout <= 0 || c.Client.HealthCooldown <= 0 {
		return fmt.Errorf("health check cooldown and timeout must be positive")
	}
	if c.Notifications.DefaultPageSize <= 0 {
		return fmt.Errorf("NOTIFICATIONS_PAGE_SIZE must be positive")
	}
	return nil
}

// UsesDefaultSecret reports whether tokens are signed with the demo secret
func (c *AuthConfig) UsesDefaultSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

// Addr returns the listen address for a port
func (c *ServerConfig) Addr(port int) string {
	return fmt.Sprintf("%s:%d", c.Host, port)
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func defaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + string(os.PathSeparator) + "wheretogo"
	}
	return ".wheretogo"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
