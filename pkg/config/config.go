package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Voucher  VoucherConfig
	Redis    RedisConfig
}

type ServerConfig struct {
	Address      string
	WriteTimeout time.Duration
	ReadTimeout  time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	MaxPoolConns int
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type VoucherConfig struct {
	// OutputDir is where generated voucher PDFs are written.
	OutputDir string
	// PublicPrefix is the URL prefix under which OutputDir is served.
	PublicPrefix string
	// FrontendBaseURL is the storefront origin embedded in voucher QR codes.
	FrontendBaseURL string
	// QRSize is the pixel width of the embedded QR image.
	QRSize int
}

// RedisConfig is optional: when Addr is empty the verification-code
// store falls back to the in-memory implementation.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func (dc *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s dbname=%s user=%s password=%s pool_max_conns=%d",
		dc.Host,
		dc.Port,
		dc.Name,
		dc.User,
		dc.Password,
		dc.MaxPoolConns,
	)
}

func NewConfig() (*Config, error) {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	serverCfg, err := newServerConfig()
	if err != nil {
		return nil, fmt.Errorf("server config error: %w", err)
	}

	dbCfg, err := newDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("database config error: %w", err)
	}

	authCfg, err := newAuthConfig()
	if err != nil {
		return nil, fmt.Errorf("auth config error: %w", err)
	}

	voucherCfg, err := newVoucherConfig()
	if err != nil {
		return nil, fmt.Errorf("voucher config error: %w", err)
	}

	return &Config{
		Server:   serverCfg,
		Database: dbCfg,
		Auth:     authCfg,
		Voucher:  voucherCfg,
		Redis:    newRedisConfig(),
	}, nil
}

func newServerConfig() (ServerConfig, error) {
	writeTimeout, err := getDurationFromEnv("SERVER_WRITE_TIMEOUT", "15s")
	if err != nil {
		return ServerConfig{}, fmt.Errorf("write timeout parse error: %w", err)
	}

	readTimeout, err := getDurationFromEnv("SERVER_READ_TIMEOUT", "15s")
	if err != nil {
		return ServerConfig{}, fmt.Errorf("read timeout parse error: %w", err)
	}

	idleTimeout, err := getDurationFromEnv("SERVER_IDLE_TIMEOUT", "30s")
	if err != nil {
		return ServerConfig{}, fmt.Errorf("idle timeout parse error: %w", err)
	}

	return ServerConfig{
		Address:      getEnvOrDefault("SERVER_ADDRESS", ":5000"),
		WriteTimeout: writeTimeout,
		ReadTimeout:  readTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func newDatabaseConfig() (DatabaseConfig, error) {
	maxConns, err := strconv.Atoi(getEnvOrDefault("MAX_CONNS", "20"))
	if err != nil {
		return DatabaseConfig{}, fmt.Errorf("max connections parse error: %w", err)
	}

	return DatabaseConfig{
		Host:         getEnvOrDefault("POSTGRES_HOST", "localhost"),
		Port:         getEnvOrDefault("POSTGRES_PORT", "5432"),
		Name:         getEnvOrDefault("POSTGRES_DB", "tourbook"),
		User:         getEnvOrDefault("POSTGRES_USER", "postgres"),
		Password:     getEnvOrDefault("POSTGRES_PASSWORD", ""),
		MaxPoolConns: maxConns,
	}, nil
}

func newAuthConfig() (AuthConfig, error) {
	ttl, err := getDurationFromEnv("TOKEN_TTL", "24h")
	if err != nil {
		return AuthConfig{}, fmt.Errorf("token ttl parse error: %w", err)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return AuthConfig{}, fmt.Errorf("JWT_SECRET must be set")
	}

	return AuthConfig{
		JWTSecret: secret,
		TokenTTL:  ttl,
	}, nil
}

func newVoucherConfig() (VoucherConfig, error) {
	qrSize, err := strconv.Atoi(getEnvOrDefault("VOUCHER_QR_SIZE", "256"))
	if err != nil {
		return VoucherConfig{}, fmt.Errorf("qr size parse error: %w", err)
	}

	return VoucherConfig{
		OutputDir:       getEnvOrDefault("VOUCHER_DIR", "uploads/vouchers"),
		PublicPrefix:    getEnvOrDefault("VOUCHER_PUBLIC_PREFIX", "/uploads/vouchers"),
		FrontendBaseURL: getEnvOrDefault("FRONTEND_BASE_URL", "http://localhost:3000"),
		QRSize:          qrSize,
	}, nil
}

func newRedisConfig() RedisConfig {
	db, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		db = 0
	}
	return RedisConfig{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationFromEnv(key, defaultValue string) (time.Duration, error) {
	return time.ParseDuration(getEnvOrDefault(key, defaultValue))
}
