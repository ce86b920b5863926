package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"

	EventsNone  = "none"
	EventsRedis = "redis"
	EventsKafka = "kafka"
)

type Config struct {
	AppEnv   string
	Port     string
	LogLevel string

	StoreDriver   string
	DatabaseURL   string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	MigrationsDir string

	RedisURL      string
	RedisAddr     string
	RedisPassword string
	CartTTL       time.Duration

	JWTSecret string
	JWTExpiry time.Duration

	UploadDir     string
	MaxUploadSize int64
	OriginURL     string

	DeliveryFee       decimal.Decimal
	ServiceFee        decimal.Decimal
	StatusDelays      []time.Duration
	EstimatedDelivery time.Duration
	SimulatedLatency  time.Duration

	RateLimitRPS   float64
	RateLimitBurst int

	EventsDriver string
	KafkaBrokers []string
	KafkaTopic   string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	CloudinaryURL       string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
}

var AppConfig *Config

// DefaultStatusDelays are the waits before each automatic status step:
// pending→confirmed, confirmed→preparing, preparing→out-for-delivery,
// out-for-delivery→delivered.
var DefaultStatusDelays = []time.Duration{
	2 * time.Second,
	5 * time.Second,
	10 * time.Second,
	15 * time.Second,
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, using system environment variables")
	}

	AppConfig = &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		Port:     getEnv("APP_PORT", getEnv("PORT", "8082")),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		StoreDriver:   strings.ToLower(getEnv("STORE_DRIVER", StoreMemory)),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "quickbite"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "database/migration"),

		RedisURL:      os.Getenv("REDIS_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		CartTTL:       getDuration("CART_TTL", 7*24*time.Hour),

		JWTSecret: getEnv("JWT_SECRET", "secret"),
		JWTExpiry: getDuration("JWT_EXPIRY", 24*time.Hour),

		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadSize: getInt64("MAX_UPLOAD_SIZE", 5242880),
		OriginURL:     os.Getenv("ORIGIN_URL"),

		DeliveryFee:       getDecimal("DELIVERY_FEE", decimal.RequireFromString("2.99")),
		ServiceFee:        getDecimal("SERVICE_FEE", decimal.RequireFromString("1.50")),
		StatusDelays:      getDurations("ORDER_STATUS_DELAYS", DefaultStatusDelays),
		EstimatedDelivery: getDuration("ESTIMATED_DELIVERY", 30*time.Minute),
		SimulatedLatency:  getDuration("SIMULATED_LATENCY", 0),

		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst: int(getInt64("RATE_LIMIT_BURST", 40)),

		EventsDriver: strings.ToLower(getEnv("EVENTS_DRIVER", EventsNone)),
		KafkaBrokers: splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "quickbite.order-events"),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: int(getInt64("SMTP_PORT", 587)),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		SMTPFrom: getEnv("SMTP_FROM", "QuickBite <no-reply@quickbite.local>"),

		CloudinaryURL:       os.Getenv("CLOUDINARY_URL"),
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
	}

	log.Info().
		Str("env", AppConfig.AppEnv).
		Str("port", AppConfig.Port).
		Str("store", AppConfig.StoreDriver).
		Str("events", AppConfig.EventsDriver).
		Msg("configuration loaded")

	return AppConfig
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// SMTPConfigured reports whether outbound mail can be sent.
func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUser != "" && c.SMTPPass != ""
}

func (c *Config) CloudinaryConfigured() bool {
	if c.CloudinaryURL != "" {
		return true
	}
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt64(key string, def int64) int64 {
	v, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil || v == 0 {
		return def
	}
	return v
}

func getFloat(key string, def float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Warn().Str("key", key).Str("value", raw).Msg("invalid duration, using default")
		return def
	}
	return d
}

func getDecimal(key string, def decimal.Decimal) decimal.Decimal {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		log.Warn().Str("key", key).Str("value", raw).Msg("invalid amount, using default")
		return def
	}
	return d
}

// getDurations parses a comma separated list of exactly len(def) durations.
func getDurations(key string, def []time.Duration) []time.Duration {
	parts := splitList(os.Getenv(key))
	if len(parts) == 0 {
		return def
	}
	if len(parts) != len(def) {
		log.Warn().Str("key", key).Int("want", len(def)).Int("got", len(parts)).Msg("wrong number of durations, using defaults")
		return def
	}
	out := make([]time.Duration, 0, len(parts))
	for _, p := range parts {
		d, err := time.ParseDuration(p)
		if err != nil || d < 0 {
			log.Warn().Str("key", key).Str("value", p).Msg("invalid duration, using defaults")
			return def
		}
		out = append(out, d)
	}
	return out
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
