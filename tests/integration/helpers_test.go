//go:build integration

package integration

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lynxshop/backend/internal/infrastructure/clients/postgres"
	"github.com/lynxshop/backend/internal/infrastructure/clients/redis"
	"github.com/lynxshop/backend/pkg/config"
)

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

func newTestPostgresClient(t *testing.T) *postgres.Client {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Host:     getEnv("TEST_DB_HOST", "localhost"),
		Port:     getEnvAsInt("TEST_DB_PORT", 5432),
		User:     getEnv("TEST_DB_USER", "postgres"),
		Password: getEnv("TEST_DB_PASSWORD", "postgres"),
		Database: getEnv("TEST_DB_NAME", "lynxshop_test"),
		SSLMode:  getEnv("TEST_DB_SSLMODE", "disable"),
	}

	client, err := postgres.NewClient(cfg)
	require.NoError(t, err, "Failed to create postgres client")
	return client
}

func maybeTestRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	cfg := &config.RedisConfig{
		Host:     getEnv("TEST_REDIS_HOST", "localhost"),
		Port:     getEnvAsInt("TEST_REDIS_PORT", 6379),
		Password: getEnv("TEST_REDIS_PASSWORD", ""),
		DB:       getEnvAsInt("TEST_REDIS_DB", 0),
	}

	client, err := redis.NewClient(cfg)
	if err != nil {
		t.Logf("Redis unavailable: %v", err)
		return nil
	}
	return client
}

func runAllMigrations(t *testing.T, client *postgres.Client) {
	t.Helper()

	migrationDir := filepath.Join("..", "..", "migrations")
	entries, err := os.ReadDir(migrationDir)
	require.NoError(t, err)

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) != ".sql" {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	for _, file := range files {
		sql, err := os.ReadFile(filepath.Join(migrationDir, file))
		require.NoError(t, err)
		_, err = client.DB().Exec(string(sql))
		require.NoError(t, err, "migration %s failed", file)
	}
}

func cleanupSearchTables(t *testing.T, client *postgres.Client) {
	t.Helper()

	_, err := client.DB().Exec(`
		TRUNCATE TABLE
			search_metrics,
			product_synonyms,
			products,
			categories
		RESTART IDENTITY CASCADE
	`)
	require.NoError(t, err)
}

func seedCatalog(t *testing.T, client *postgres.Client) {
	t.Helper()

	_, err := client.DB().Exec(`
		INSERT INTO categories (name) VALUES ('Frutas'), ('Bebidas'), ('Snacks');

		INSERT INTO products (name, price, stock, category_id, image_filename) VALUES
			('Manzana Roja', 10.00, 20, 1, 'manzana.png'),
			('Agua Natural 600ml', 8.00, 50, 2, NULL),
			('Doritos Nacho', 18.00, 30, 3, 'doritos.png');
	`)
	require.NoError(t, err)
}
