package database

import (
	"path/filepath"
	"testing"

	"github.com/franciscosanchezn/pizzeria-dao/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	testCases := []struct {
		name     string
		config   DatabaseConfig
		expected string
	}{
		{
			name: "postgres from discrete fields",
			config: DatabaseConfig{
				Driver: "postgres", Host: "localhost", Port: "5432", User: "root",
				Password: "pw", Name: "pizzadb", SSLMode: "disable",
			},
			expected: "host=localhost user=root password=pw dbname=pizzadb port=5432 sslmode=disable",
		},
		{
			name:     "postgres url wins",
			config:   DatabaseConfig{Driver: "postgres", URL: "postgres://root:pw@db:5432/pizzadb", Host: "ignored"},
			expected: "postgres://root:pw@db:5432/pizzadb",
		},
		{
			name:     "sqlite path",
			config:   DatabaseConfig{Driver: "sqlite", Path: "pizzadb.sqlite"},
			expected: "pizzadb.sqlite",
		},
		{
			name:     "empty driver defaults to sqlite",
			config:   DatabaseConfig{Path: "other.sqlite"},
			expected: "other.sqlite",
		},
		{
			name:     "unknown driver",
			config:   DatabaseConfig{Driver: "mysql"},
			expected: "",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.DSN())
		})
	}
}

func TestStringRedactsPassword(t *testing.T) {
	cfg := DatabaseConfig{Driver: "postgres", Password: "super-secret"}
	assert.NotContains(t, cfg.String(), "super-secret")
	assert.Contains(t, cfg.String(), "[REDACTED]")
}

func TestInitDatabaseUnsupportedDriver(t *testing.T) {
	db, err := InitDatabase(DatabaseConfig{Driver: "oracle", ConnectAttempts: 3})
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
	assert.Nil(t, db)
}

func TestInitDatabaseAndEnsureSchema(t *testing.T) {
	cfg := DatabaseConfig{
		Driver:          "sqlite",
		Path:            filepath.Join(t.TempDir(), "pizzadb.sqlite"),
		ConnectAttempts: 1,
	}

	db, err := InitDatabase(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, EnsureSchema(db))
	// running it again on an existing schema is a no-op
	require.NoError(t, EnsureSchema(db))

	assert.True(t, db.Migrator().HasTable(&models.Pizza{}))
	assert.True(t, db.Migrator().HasColumn(&models.Pizza{}, "Code"))
	assert.True(t, db.Migrator().HasColumn(&models.Pizza{}, "categorie"))
}
