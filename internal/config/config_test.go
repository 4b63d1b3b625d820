package config

import (
	"os"
	"testing"

	"github.com/franciscosanchezn/pizzeria-dao/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvWithDefault(t *testing.T) {
	testCases := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		expected     string
	}{
		{
			name:         "should return env value when set",
			key:          "TEST_KEY",
			defaultValue: "default",
			envValue:     "from_env",
			expected:     "from_env",
		},
		{
			name:         "should return default when env not set",
			key:          "MISSING_KEY",
			defaultValue: "default_value",
			expected:     "default_value",
		},
		{
			name:         "should return empty string default",
			key:          "EMPTY_KEY",
			defaultValue: "",
			expected:     "",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.envValue)
			assert.Equal(t, tt.expected, GetEnvWithDefault(tt.key, tt.defaultValue))
		})
	}
}

func TestGetEnvAsType(t *testing.T) {
	t.Setenv("INT_KEY", "7")
	t.Setenv("BAD_INT_KEY", "seven")
	t.Setenv("BOOL_KEY", "false")
	t.Setenv("BAD_BOOL_KEY", "nope")
	t.Setenv("UNSET_INT_KEY", "")

	intValue, err := GetEnvAsType("INT_KEY", 3)
	require.NoError(t, err)
	assert.Equal(t, 7, intValue)

	intValue, err = GetEnvAsType("UNSET_INT_KEY", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, intValue)

	_, err = GetEnvAsType("BAD_INT_KEY", 3)
	assert.ErrorContains(t, err, "BAD_INT_KEY")

	boolValue, err := GetEnvAsType("BOOL_KEY", true)
	require.NoError(t, err)
	assert.False(t, boolValue)

	_, err = GetEnvAsType("BAD_BOOL_KEY", true)
	assert.ErrorContains(t, err, "BAD_BOOL_KEY")

	stringValue, err := GetEnvAsType("INT_KEY", "x")
	require.NoError(t, err)
	assert.Equal(t, "7", stringValue)

	_, err = GetEnvAsType("INT_KEY", 1.5)
	assert.Error(t, err, "unsupported types are rejected")
}

// clearEnv blanks every variable LoadConfig reads for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_PORT", "APP_HOST", "APP_ENV", "LOG_LEVEL", "JWT_SECRET",
		"DB_DRIVER", "DATABASE_URL", "DB_HOST", "DB_PORT", "DB_NAME", "DB_USER",
		"DB_PASSWORD", "DB_SSLMODE", "DB_PATH", "DB_CONNECT_ATTEMPTS",
		"BULK_BATCH_SIZE", "SEED_ON_EMPTY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("successful config load with all env vars", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("APP_PORT", "9000")
		t.Setenv("APP_HOST", "0.0.0.0")
		t.Setenv("APP_ENV", "production")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("JWT_SECRET", "super_secret_jwt_key")
		t.Setenv("DB_DRIVER", "Postgres")
		t.Setenv("DATABASE_URL", "postgres://root:pw@db:5432/pizzadb")
		t.Setenv("BULK_BATCH_SIZE", "10")
		t.Setenv("SEED_ON_EMPTY", "false")
		t.Setenv("DB_CONNECT_ATTEMPTS", "2")

		config, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, 9000, config.Port)
		assert.Equal(t, "0.0.0.0", config.Host)
		assert.Equal(t, "debug", config.LogLevel)
		assert.Equal(t, "postgres", config.DBDriver)
		assert.Equal(t, 10, config.BatchSize)
		assert.False(t, config.SeedOnEmpty)
		assert.False(t, config.IsDevelopment())

		dbConfig := config.DatabaseConfig()
		assert.Equal(t, "postgres://root:pw@db:5432/pizzadb", dbConfig.DSN())
		assert.Equal(t, 2, dbConfig.ConnectAttempts)
	})

	for _, key := range []string{"BULK_BATCH_SIZE", "DB_CONNECT_ATTEMPTS", "SEED_ON_EMPTY"} {
		t.Run("should fail with malformed "+key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, "many")

			config, err := LoadConfig()
			assert.ErrorContains(t, err, key)
			assert.Nil(t, config)
		})
	}

	t.Run("should fail with invalid port", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("APP_PORT", "not_a_number")

		config, err := LoadConfig()
		assert.Error(t, err)
		assert.Nil(t, config)
	})

	t.Run("should fail with unsupported driver", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DB_DRIVER", "mysql")

		config, err := LoadConfig()
		assert.ErrorIs(t, err, database.ErrUnsupportedDriver)
		assert.Nil(t, config)
	})

	t.Run("should fail with malformed database url", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATABASE_URL", "not a url")

		config, err := LoadConfig()
		assert.Error(t, err)
		assert.Nil(t, config)
	})

	t.Run("should fail with non positive batch size", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("BULK_BATCH_SIZE", "0")

		config, err := LoadConfig()
		assert.Error(t, err)
		assert.Nil(t, config)
	})

	t.Run("should use defaults when optional env vars not set", func(t *testing.T) {
		clearEnv(t)

		config, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, 8080, config.Port)
		assert.Equal(t, "localhost", config.Host)
		assert.Equal(t, "info", config.LogLevel)
		assert.Equal(t, "sqlite", config.DBDriver)
		assert.Equal(t, "pizzadb.sqlite", config.DBPath)
		assert.Equal(t, 3, config.BatchSize)
		assert.Equal(t, 5, config.DBConnectAttempts)
		assert.True(t, config.SeedOnEmpty)
		assert.True(t, config.IsDevelopment())
	})
}

func TestConfigStringMasksSecrets(t *testing.T) {
	config := &Config{
		DatabaseURL: "postgres://root:hunter2@db:5432/pizzadb",
		DBPassword:  "hunter2",
		JWTSecret:   "jwt-secret",
	}

	out := config.String()
	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, "jwt-secret")
	assert.Contains(t, out, "root")
}

func BenchmarkGetEnvWithDefault(b *testing.B) {
	os.Setenv("BENCH_KEY", "test_value")
	defer os.Unsetenv("BENCH_KEY")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		GetEnvWithDefault("BENCH_KEY", "default")
	}
}
