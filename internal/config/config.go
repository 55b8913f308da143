package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTP      HTTPConfig
	Postgres  PostgresConfig
	Auth      AuthConfig
	Mail      MailConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	AI        AIConfig
	Uploads   UploadConfig
	Lifecycle LifecycleConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

type HTTPConfig struct {
	Port            string
	BasePath        string
	PublicURL       string // scheme://host used in links to uploaded files
	AllowedOrigins  []string
	TrustedProxies  []string // peers allowed to set X-Forwarded-For; empty trusts none
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type PostgresConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type AuthConfig struct {
	JWTSecret     []byte
	EncryptionKey []byte // 32 bytes, A256KW
	Issuer        string
	Audience      string
	StepUpTTL     time.Duration
	SessionTTL    time.Duration
	ResetTTL      time.Duration
	OTPDigits     int
	// MaxOTPAttempts caps code submissions per step-up token.
	MaxOTPAttempts int
	// SingleUseStepUp rejects a step-up token once it has been exchanged for a session.
	SingleUseStepUp bool
	CookieName      string
	CookieDomain    string
	CookieSecure    bool
}

type MailConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	FromName   string
	UseSSL     bool
	RequireTLS bool
	AppName    string
	AppBaseURL string
}

type RedisConfig struct {
	Addrs    []string
	Password string
	Cluster  bool
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type AIConfig struct {
	Provider    string
	GeminiKey   string
	GeminiModel string
	OpenAIKey   string
	OpenAIModel string
	Timeout     time.Duration
}

type UploadConfig struct {
	Dir      string
	MaxBytes int64
}

type LifecycleConfig struct {
	// ReserveVehicle moves a vehicle to IN_USE while it carries an open shipment.
	ReserveVehicle bool
}

type RateLimitConfig struct {
	PerMinute float64
	Burst     int
}

type LogConfig struct {
	Level       string
	Development bool
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTP: HTTPConfig{
			Port:            getEnv("PORT", "8080"),
			BasePath:        getEnv("API_BASE_PATH", "/api/v1"),
			PublicURL:       strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/"),
			AllowedOrigins:  getList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			TrustedProxies:  getList("HTTP_TRUSTED_PROXIES", nil),
			ReadTimeout:     getDuration("HTTP_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Postgres: PostgresConfig{
			URL:             os.Getenv("POSTGRES_URL"),
			MaxOpenConns:    getInt("POSTGRES_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    getInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDuration("POSTGRES_CONN_MAX_LIFETIME", 30*time.Minute),
			AutoMigrate:     getBool("POSTGRES_AUTO_MIGRATE", true),
		},
		Auth: AuthConfig{
			JWTSecret:       []byte(os.Getenv("JWT_SECRET")),
			Issuer:          getEnv("JWT_ISSUER", "next-nexus-app"),
			Audience:        getEnv("JWT_AUDIENCE", "auth-service"),
			StepUpTTL:       getDuration("AUTH_STEP_UP_TTL", 5*time.Minute),
			SessionTTL:      getDuration("AUTH_SESSION_TTL", 30*24*time.Hour),
			ResetTTL:        getDuration("AUTH_RESET_TTL", 5*time.Minute),
			OTPDigits:       getInt("AUTH_OTP_DIGITS", 6),
			MaxOTPAttempts:  getInt("AUTH_MAX_OTP_ATTEMPTS", 5),
			SingleUseStepUp: getBool("AUTH_SINGLE_USE_STEP_UP", false),
			CookieName:      getEnv("AUTH_COOKIE_NAME", "session_token"),
			CookieDomain:    os.Getenv("AUTH_COOKIE_DOMAIN"),
			CookieSecure:    getBool("AUTH_COOKIE_SECURE", true),
		},
		Mail: MailConfig{
			Host:       getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:       getInt("SMTP_PORT", 587),
			Username:   os.Getenv("SMTP_USERNAME"),
			Password:   os.Getenv("SMTP_PASSWORD"),
			From:       os.Getenv("SMTP_FROM"),
			FromName:   getEnv("SMTP_FROM_NAME", "Hospilog"),
			UseSSL:     getBool("SMTP_USE_SSL", false),
			RequireTLS: getBool("SMTP_REQUIRE_TLS", true),
			AppName:    getEnv("APP_NAME", "Hospilog"),
			AppBaseURL: getEnv("APP_BASE_URL", "http://localhost:3000"),
		},
		Redis: RedisConfig{
			Addrs:    getList("REDIS_ADDRS", nil),
			Password: os.Getenv("REDIS_PASSWORD"),
			Cluster:  getBool("REDIS_CLUSTER", false),
		},
		Kafka: KafkaConfig{
			Brokers: getList("KAFKA_BROKERS", nil),
			Topic:   getEnv("KAFKA_LIFECYCLE_TOPIC", "hospilog.lifecycle"),
		},
		AI: AIConfig{
			Provider:    getEnv("AI_PROVIDER", "gemini"),
			GeminiKey:   os.Getenv("GEMINI_API_KEY"),
			GeminiModel: getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
			OpenAIModel: getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			Timeout:     getDuration("AI_TIMEOUT", 30*time.Second),
		},
		Uploads: UploadConfig{
			Dir:      getEnv("UPLOAD_DIR", "uploads"),
			MaxBytes: int64(getInt("UPLOAD_MAX_BYTES", 10<<20)),
		},
		Lifecycle: LifecycleConfig{
			ReserveVehicle: getBool("LIFECYCLE_RESERVE_VEHICLE", true),
		},
		RateLimit: RateLimitConfig{
			PerMinute: getFloat("AUTH_RATE_PER_MINUTE", 10),
			Burst:     getInt("AUTH_RATE_BURST", 5),
		},
		Log: LogConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getBool("LOG_DEVELOPMENT", false),
		},
	}

	key, err := decodeKey(os.Getenv("SESSION_ENCRYPTION_KEY"))
	if err != nil {
		return nil, err
	}
	cfg.Auth.EncryptionKey = key

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Postgres.URL == "" {
		return errors.New("config: POSTGRES_URL is required")
	}
	if len(c.Auth.JWTSecret) < 32 {
		return errors.New("config: JWT_SECRET must be at least 32 bytes")
	}
	if len(c.Auth.EncryptionKey) != 32 {
		return errors.New("config: SESSION_ENCRYPTION_KEY must decode to 32 bytes")
	}
	if c.Auth.MaxOTPAttempts < 1 {
		return fmt.Errorf("config: AUTH_MAX_OTP_ATTEMPTS must be at least 1")
	}
	if c.Auth.OTPDigits < 4 || c.Auth.OTPDigits > 10 {
		return fmt.Errorf("config: AUTH_OTP_DIGITS out of range: %d", c.Auth.OTPDigits)
	}
	return nil
}

// decodeKey accepts either 64 hex characters or a raw 32 byte string.
func decodeKey(raw string) ([]byte, error) {
	if raw == "" {
		return nil, errors.New("config: SESSION_ENCRYPTION_KEY is required")
	}
	if len(raw) == 64 {
		if b, err := hex.DecodeString(raw); err == nil {
			return b, nil
		}
	}
	return []byte(raw), nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
