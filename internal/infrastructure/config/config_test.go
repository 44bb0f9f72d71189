package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"CUSTOMERS_APP_NAME":                os.Getenv("CUSTOMERS_APP_NAME"),
		"CUSTOMERS_APP_ENV":                 os.Getenv("CUSTOMERS_APP_ENV"),
		"CUSTOMERS_APP_PORT":                os.Getenv("CUSTOMERS_APP_PORT"),
		"CUSTOMERS_DATABASE_HOST":           os.Getenv("CUSTOMERS_DATABASE_HOST"),
		"CUSTOMERS_DATABASE_PORT":           os.Getenv("CUSTOMERS_DATABASE_PORT"),
		"CUSTOMERS_DATABASE_USER":           os.Getenv("CUSTOMERS_DATABASE_USER"),
		"CUSTOMERS_DATABASE_PASSWORD":       os.Getenv("CUSTOMERS_DATABASE_PASSWORD"),
		"CUSTOMERS_DATABASE_DBNAME":         os.Getenv("CUSTOMERS_DATABASE_DBNAME"),
		"CUSTOMERS_DATABASE_SSLMODE":        os.Getenv("CUSTOMERS_DATABASE_SSLMODE"),
		"CUSTOMERS_DATABASE_MAX_OPEN_CONNS": os.Getenv("CUSTOMERS_DATABASE_MAX_OPEN_CONNS"),
		"CUSTOMERS_DATABASE_MAX_IDLE_CONNS": os.Getenv("CUSTOMERS_DATABASE_MAX_IDLE_CONNS"),
		"CUSTOMERS_LOOKUP_PROVIDER":         os.Getenv("CUSTOMERS_LOOKUP_PROVIDER"),
		"CUSTOMERS_LOOKUP_BASE_URL":         os.Getenv("CUSTOMERS_LOOKUP_BASE_URL"),
		"CUSTOMERS_LOOKUP_TIMEOUT":          os.Getenv("CUSTOMERS_LOOKUP_TIMEOUT"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "customers-api", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "customers", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, "viacep", cfg.Lookup.Provider)
		assert.Equal(t, "https://viacep.com.br", cfg.Lookup.BaseURL)
		assert.Equal(t, 5*time.Second, cfg.Lookup.Timeout)
	})

	t.Run("loads values from environment variables with CUSTOMERS prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("CUSTOMERS_APP_NAME", "test-app")
		os.Setenv("CUSTOMERS_APP_PORT", "9000")
		os.Setenv("CUSTOMERS_DATABASE_HOST", "testdb.local")
		os.Setenv("CUSTOMERS_DATABASE_PORT", "5433")
		os.Setenv("CUSTOMERS_DATABASE_USER", "testuser")
		os.Setenv("CUSTOMERS_DATABASE_PASSWORD", "testpass")
		os.Setenv("CUSTOMERS_LOOKUP_PROVIDER", "stub")
		os.Setenv("CUSTOMERS_LOOKUP_TIMEOUT", "2s")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "stub", cfg.Lookup.Provider)
		assert.Equal(t, 2*time.Second, cfg.Lookup.Timeout)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("CUSTOMERS_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("CUSTOMERS_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("rejects unknown lookup provider", func(t *testing.T) {
		clearEnv()
		os.Setenv("CUSTOMERS_LOOKUP_PROVIDER", "correios")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "lookup.provider")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	originalEnv := map[string]string{
		"CUSTOMERS_APP_ENV":           os.Getenv("CUSTOMERS_APP_ENV"),
		"CUSTOMERS_DATABASE_PASSWORD": os.Getenv("CUSTOMERS_DATABASE_PASSWORD"),
		"CUSTOMERS_DATABASE_SSLMODE":  os.Getenv("CUSTOMERS_DATABASE_SSLMODE"),
		"CUSTOMERS_LOOKUP_PROVIDER":   os.Getenv("CUSTOMERS_LOOKUP_PROVIDER"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("requires database.password in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("CUSTOMERS_APP_ENV", "production")
		os.Setenv("CUSTOMERS_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("CUSTOMERS_APP_ENV", "production")
		os.Setenv("CUSTOMERS_DATABASE_PASSWORD", "secure-password")
		os.Setenv("CUSTOMERS_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("rejects stub lookup provider in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("CUSTOMERS_APP_ENV", "production")
		os.Setenv("CUSTOMERS_DATABASE_PASSWORD", "secure-password")
		os.Setenv("CUSTOMERS_DATABASE_SSLMODE", "require")
		os.Setenv("CUSTOMERS_LOOKUP_PROVIDER", "stub")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "lookup.provider cannot be 'stub' in production")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		clearEnv()
		os.Setenv("CUSTOMERS_APP_ENV", "production")
		os.Setenv("CUSTOMERS_DATABASE_PASSWORD", "secure-password")
		os.Setenv("CUSTOMERS_DATABASE_SSLMODE", "require")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost")
		assert.Contains(t, dsn, "5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "pass%40word%23123")
	})
}
