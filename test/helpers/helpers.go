// test/helpers/helpers.go
package helpers

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/japolo/catalog-api/internal/adapters/db"
	"github.com/japolo/catalog-api/internal/core/domain"
	"github.com/japolo/catalog-api/internal/pkg/config"
)

// TestDB represents a test database instance
type TestDB struct {
	Database *db.Database
	Resource *dockertest.Resource
	Pool     *dockertest.Pool
	Config   *db.Config
}

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	if testing.Verbose() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// CreateTestUser returns a user fixture
func CreateTestUser() *domain.User {
	return &domain.User{
		ID:    1,
		Name:  "Carlos López",
		Email: "carlos@example.com",
	}
}

// CreateTestProduct returns a product fixture
func CreateTestProduct() *domain.Product {
	return &domain.Product{
		ID:          1,
		Name:        "Teclado",
		Description: "RGB",
		Price:       decimal.NewFromFloat(89.99),
		Stock:       20,
	}
}

// LoadTestConfig returns a test configuration
func LoadTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "catalog-api-test",
			Environment: "development",
			Version:     "test",
			APIVersion:  "v1",
			LogLevel:    "debug",
			LogFormat:   "text",
			Debug:       true,
		},
		Database: config.DatabaseConfig{
			Host:           "localhost",
			Port:           "5432",
			User:           "test",
			Password:       "test",
			Name:           "test_catalog",
			SSLMode:        "disable",
			MaxConnections: 5,
			MinConnections: 1,
			AcquireTimeout: 2 * time.Second,
		},
		Security: config.SecurityConfig{
			SecretKey:         "test-secret",
			RateLimitRequests: 100,
			RateLimitDuration: time.Minute,
			AllowedOrigins:    []string{"*"},
			SecureHeaders:     false,
		},
		Server: config.ServerConfig{
			Host:              "localhost",
			Port:              "8080",
			EnableHealthCheck: true,
		},
	}
}

// testSchema creates the tables and the stored functions the repositories
// call. In deployed environments these are assumed pre-existing.
const testSchema = `
CREATE TABLE IF NOT EXISTS users (
	id    BIGSERIAL PRIMARY KEY,
	name  TEXT NOT NULL,
	email TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
	id          BIGSERIAL PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	price       NUMERIC(12,2) NOT NULL DEFAULT 0,
	stock       INTEGER NOT NULL DEFAULT 0
);

CREATE OR REPLACE FUNCTION get_user_by_id(p_id BIGINT)
RETURNS SETOF users AS $$
	SELECT * FROM users WHERE id = p_id;
$$ LANGUAGE sql;

CREATE OR REPLACE FUNCTION create_user(p_name TEXT, p_email TEXT)
RETURNS SETOF users AS $$
	INSERT INTO users (name, email) VALUES (p_name, p_email) RETURNING *;
$$ LANGUAGE sql;

CREATE OR REPLACE FUNCTION update_user(p_id BIGINT, p_name TEXT, p_email TEXT)
RETURNS SETOF users AS $$
	UPDATE users SET name = p_name, email = p_email WHERE id = p_id RETURNING *;
$$ LANGUAGE sql;

CREATE OR REPLACE FUNCTION delete_user(p_id BIGINT)
RETURNS SETOF users AS $$
	DELETE FROM users WHERE id = p_id RETURNING *;
$$ LANGUAGE sql;

CREATE OR REPLACE FUNCTION get_product_by_id(p_id BIGINT)
RETURNS SETOF products AS $$
	SELECT * FROM products WHERE id = p_id;
$$ LANGUAGE sql;

CREATE OR REPLACE FUNCTION create_product(p_name TEXT, p_description TEXT, p_price NUMERIC, p_stock INTEGER)
RETURNS SETOF products AS $$
	INSERT INTO products (name, description, price, stock)
	VALUES (p_name, p_description, p_price, p_stock) RETURNING *;
$$ LANGUAGE sql;

CREATE OR REPLACE FUNCTION update_product(p_id BIGINT, p_name TEXT, p_description TEXT, p_price NUMERIC, p_stock INTEGER)
RETURNS SETOF products AS $$
	UPDATE products SET name = p_name, description = p_description, price = p_price, stock = p_stock
	WHERE id = p_id RETURNING *;
$$ LANGUAGE sql;

CREATE OR REPLACE FUNCTION delete_product(p_id BIGINT)
RETURNS SETOF products AS $$
	DELETE FROM products WHERE id = p_id RETURNING *;
$$ LANGUAGE sql;
`

// TruncateAllTables clears test data between tests
func TruncateAllTables(t *testing.T, database *db.Database) {
	t.Helper()

	_, err := database.Exec(context.Background(),
		"TRUNCATE TABLE users, products RESTART IDENTITY")
	require.NoError(t, err, "Could not truncate tables")
}

// SetupTestDB creates a PostgreSQL container for integration tests
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "Could not connect to Docker")

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=test_catalog",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "Could not start PostgreSQL container")

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Could not purge resource: %s", err)
		}
	})

	dbConfig := &db.Config{
		Host:               "localhost",
		Port:               resource.GetPort("5432/tcp"),
		User:               "test",
		Password:           "test",
		Database:           "test_catalog",
		SSLMode:            "disable",
		MaxConnections:     5,
		MinConnections:     1,
		MaxConnLifetime:    time.Hour,
		MaxConnIdleTime:    time.Minute * 30,
		HealthCheckPeriod:  time.Minute,
		ConnectTimeout:     time.Second * 10,
		AcquireTimeout:     time.Second * 2,
		EnableQueryLogging: testing.Verbose(),
	}

	var database *db.Database
	err = pool.Retry(func() error {
		ctx := context.Background()
		var err error
		database, err = db.NewDatabase(ctx, dbConfig, TestLogger())
		if err != nil {
			return err
		}
		return database.Ping(ctx)
	})
	require.NoError(t, err, "Could not connect to PostgreSQL")

	_, err = database.Exec(context.Background(), testSchema)
	require.NoError(t, err, "Could not apply test schema")

	return &TestDB{
		Database: database,
		Resource: resource,
		Pool:     pool,
		Config:   dbConfig,
	}
}
