package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tayotravel/tourbook/pkg/config"
)

func TestNewConfigDefaults(t *testing.T) {
	os.Clearenv()
	os.Setenv("JWT_SECRET", "test-secret")

	cfg, err := config.NewConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, ":5000", cfg.Server.Address)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "tourbook", cfg.Database.Name)
	assert.Equal(t, "postgres", cfg.Database.User)
	assert.Equal(t, "", cfg.Database.Password)
	assert.Equal(t, 20, cfg.Database.MaxPoolConns)
	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "uploads/vouchers", cfg.Voucher.OutputDir)
	assert.Equal(t, "/uploads/vouchers", cfg.Voucher.PublicPrefix)
	assert.Equal(t, "http://localhost:3000", cfg.Voucher.FrontendBaseURL)
	assert.Equal(t, 256, cfg.Voucher.QRSize)
	assert.Equal(t, "", cfg.Redis.Addr)
}

func TestNewConfigWithEnvVars(t *testing.T) {
	os.Clearenv()

	envVars := map[string]string{
		"SERVER_ADDRESS":        ":8080",
		"SERVER_WRITE_TIMEOUT":  "30s",
		"SERVER_READ_TIMEOUT":   "30s",
		"SERVER_IDLE_TIMEOUT":   "60s",
		"POSTGRES_HOST":         "db.example.com",
		"POSTGRES_PORT":         "5433",
		"POSTGRES_DB":           "testdb",
		"POSTGRES_USER":         "testuser",
		"POSTGRES_PASSWORD":     "testpass",
		"MAX_CONNS":             "50",
		"JWT_SECRET":            "supersecret",
		"TOKEN_TTL":             "2h",
		"VOUCHER_DIR":           "/var/vouchers",
		"VOUCHER_PUBLIC_PREFIX": "/files/vouchers",
		"FRONTEND_BASE_URL":     "https://tours.example.com",
		"VOUCHER_QR_SIZE":       "512",
		"REDIS_ADDR":            "redis:6379",
		"REDIS_DB":              "3",
	}
	for k, v := range envVars {
		os.Setenv(k, v)
	}

	cfg, err := config.NewConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, "db.example.com", cfg.Database.Host)
	assert.Equal(t, "5433", cfg.Database.Port)
	assert.Equal(t, "testdb", cfg.Database.Name)
	assert.Equal(t, 50, cfg.Database.MaxPoolConns)
	assert.Equal(t, "supersecret", cfg.Auth.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "/var/vouchers", cfg.Voucher.OutputDir)
	assert.Equal(t, "/files/vouchers", cfg.Voucher.PublicPrefix)
	assert.Equal(t, "https://tours.example.com", cfg.Voucher.FrontendBaseURL)
	assert.Equal(t, 512, cfg.Voucher.QRSize)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestDatabaseDSN(t *testing.T) {
	dbConfig := config.DatabaseConfig{
		Host:         "localhost",
		Port:         "5432",
		Name:         "testdb",
		User:         "testuser",
		Password:     "testpass",
		MaxPoolConns: 50,
	}

	expected := "host=localhost port=5432 dbname=testdb user=testuser password=testpass pool_max_conns=50"
	assert.Equal(t, expected, dbConfig.DSN())
}

func TestInvalidConfigurations(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name:    "Missing JWT secret",
			envVars: map[string]string{},
		},
		{
			name: "Invalid write timeout",
			envVars: map[string]string{
				"JWT_SECRET":           "s",
				"SERVER_WRITE_TIMEOUT": "invalid",
			},
		},
		{
			name: "Invalid token ttl",
			envVars: map[string]string{
				"JWT_SECRET": "s",
				"TOKEN_TTL":  "invalid",
			},
		},
		{
			name: "Invalid max connections",
			envVars: map[string]string{
				"JWT_SECRET": "s",
				"MAX_CONNS":  "invalid",
			},
		},
		{
			name: "Invalid qr size",
			envVars: map[string]string{
				"JWT_SECRET":      "s",
				"VOUCHER_QR_SIZE": "invalid",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			_, err := config.NewConfig()
			assert.Error(t, err)
		})
	}
}
