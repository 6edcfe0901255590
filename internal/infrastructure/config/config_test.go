package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	originalEnv := map[string]string{
		"KITCHEN_APP_NAME":                os.Getenv("KITCHEN_APP_NAME"),
		"KITCHEN_APP_ENV":                 os.Getenv("KITCHEN_APP_ENV"),
		"KITCHEN_APP_PORT":                os.Getenv("KITCHEN_APP_PORT"),
		"KITCHEN_DATABASE_HOST":           os.Getenv("KITCHEN_DATABASE_HOST"),
		"KITCHEN_DATABASE_PORT":           os.Getenv("KITCHEN_DATABASE_PORT"),
		"KITCHEN_DATABASE_PASSWORD":       os.Getenv("KITCHEN_DATABASE_PASSWORD"),
		"KITCHEN_DATABASE_DBNAME":         os.Getenv("KITCHEN_DATABASE_DBNAME"),
		"KITCHEN_DATABASE_MAX_OPEN_CONNS": os.Getenv("KITCHEN_DATABASE_MAX_OPEN_CONNS"),
		"KITCHEN_DATABASE_MAX_IDLE_CONNS": os.Getenv("KITCHEN_DATABASE_MAX_IDLE_CONNS"),
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

		assert.Equal(t, "kitchen-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "kitchen", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "console", cfg.Log.Format)
	})

	t.Run("loads values from environment variables with KITCHEN prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("KITCHEN_APP_PORT", "9000")
		os.Setenv("KITCHEN_DATABASE_HOST", "testdb.local")
		os.Setenv("KITCHEN_DATABASE_PORT", "5433")
		os.Setenv("KITCHEN_DATABASE_DBNAME", "testdb")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testdb", cfg.Database.DBName)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("KITCHEN_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("KITCHEN_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
	})

	t.Run("production requires a database password", func(t *testing.T) {
		clearEnv()
		os.Setenv("KITCHEN_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "password")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "kitchen",
		Password: "p@ss/word",
		DBName:   "kitchen",
		SSLMode:  "disable",
	}

	dsn := d.DSN()

	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "sslmode=disable")
	// special characters must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}
