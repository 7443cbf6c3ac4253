//go:build integration
// +build integration

// internal/adapters/db/repository_integration_test.go
package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/japolo/catalog-api/internal/adapters/db"
	"github.com/japolo/catalog-api/internal/core/domain"
	"github.com/japolo/catalog-api/internal/core/ports"
	"github.com/japolo/catalog-api/test/helpers"
)

type RepositorySuite struct {
	suite.Suite
	testDB   *helpers.TestDB
	users    ports.UserRepository
	products ports.ProductRepository
	ctx      context.Context
}

func (s *RepositorySuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())

	exec := db.NewExecutor(s.testDB.Database, helpers.TestLogger())
	s.users = db.NewUserRepository(exec, helpers.TestLogger())
	s.products = db.NewProductRepository(exec, helpers.TestLogger())
	s.ctx = context.Background()
}

func (s *RepositorySuite) SetupTest() {
	helpers.TruncateAllTables(s.T(), s.testDB.Database)
}

func (s *RepositorySuite) TestUserLifecycle() {
	created, err := s.users.Create(s.ctx, "Carlos López", "carlos@example.com")
	s.NoError(err)
	s.NotZero(created.ID)
	s.Equal("Carlos López", created.Name)

	fetched, err := s.users.GetByID(s.ctx, created.ID)
	s.NoError(err)
	s.Equal(created.Email, fetched.Email)

	updated, err := s.users.Update(s.ctx, created.ID, "Carlos A. López", "carlos.a@example.com")
	s.NoError(err)
	s.Equal("Carlos A. López", updated.Name)
	s.Equal("carlos.a@example.com", updated.Email)

	err = s.users.Delete(s.ctx, created.ID)
	s.NoError(err)

	_, err = s.users.GetByID(s.ctx, created.ID)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *RepositorySuite) TestUserGetAll() {
	_, err := s.users.Create(s.ctx, "Ana", "ana@example.com")
	s.NoError(err)
	_, err = s.users.Create(s.ctx, "Juan", "juan@example.com")
	s.NoError(err)

	users, err := s.users.GetAll(s.ctx)
	s.NoError(err)
	s.Len(users, 2)
	s.Equal("Ana", users[0].Name)
	s.Equal("Juan", users[1].Name)
}

func (s *RepositorySuite) TestUserGetAll_Empty() {
	users, err := s.users.GetAll(s.ctx)
	s.NoError(err)
	s.NotNil(users)
	s.Empty(users)
}

func (s *RepositorySuite) TestUserNotFound() {
	_, err := s.users.GetByID(s.ctx, 9999)
	s.ErrorIs(err, domain.ErrNotFound)

	_, err = s.users.Update(s.ctx, 9999, "Nadie", "nadie@example.com")
	s.ErrorIs(err, domain.ErrNotFound)

	err = s.users.Delete(s.ctx, 9999)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *RepositorySuite) TestProductLifecycle() {
	price := decimal.RequireFromString("89.99")

	created, err := s.products.Create(s.ctx, domain.Product{
		Name:        "Teclado",
		Description: "Teclado mecánico RGB",
		Price:       price,
		Stock:       20,
	})
	s.NoError(err)
	s.NotZero(created.ID)
	s.True(created.Price.Equal(price))

	fetched, err := s.products.GetByID(s.ctx, created.ID)
	s.NoError(err)
	s.Equal("Teclado", fetched.Name)
	s.Equal("Teclado mecánico RGB", fetched.Description)
	s.True(fetched.Price.Equal(price))
	s.Equal(20, fetched.Stock)

	newPrice := decimal.RequireFromString("79.99")
	updated, err := s.products.Update(s.ctx, created.ID, domain.Product{
		Name:        "Teclado",
		Description: "Teclado mecánico RGB",
		Price:       newPrice,
		Stock:       15,
	})
	s.NoError(err)
	s.True(updated.Price.Equal(newPrice))
	s.Equal(15, updated.Stock)

	err = s.products.Delete(s.ctx, created.ID)
	s.NoError(err)

	_, err = s.products.GetByID(s.ctx, created.ID)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *RepositorySuite) TestProductPricePrecision() {
	// NUMERIC(12,2) round-trips exactly; float64 would not
	price := decimal.RequireFromString("1299.99")

	created, err := s.products.Create(s.ctx, domain.Product{
		Name:        "Laptop",
		Description: "Laptop Dell XPS 13",
		Price:       price,
		Stock:       5,
	})
	s.NoError(err)

	fetched, err := s.products.GetByID(s.ctx, created.ID)
	s.NoError(err)
	s.True(fetched.Price.Equal(price), "expected %s, got %s", price, fetched.Price)
}

func (s *RepositorySuite) TestProductNotFound() {
	_, err := s.products.GetByID(s.ctx, 9999)
	s.ErrorIs(err, domain.ErrNotFound)

	err = s.products.Delete(s.ctx, 9999)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *RepositorySuite) TestPoolSaturationFailsWithinBoundedWait() {
	// A single-connection pool with a short acquire timeout: while one call
	// holds the connection, a second call must fail with ErrPoolExhausted
	// within that bound instead of blocking.
	cfg := *s.testDB.Config
	cfg.MaxConnections = 1
	cfg.MinConnections = 1
	cfg.AcquireTimeout = 300 * time.Millisecond

	database, err := db.NewDatabase(s.ctx, &cfg, helpers.TestLogger())
	s.Require().NoError(err)
	defer database.Close()

	exec := db.NewExecutor(database, helpers.TestLogger())

	holderErr := make(chan error, 1)
	go func() {
		_, err := exec.Execute(s.ctx, ports.Call{
			Kind:   ports.CallLiteral,
			Target: "SELECT pg_sleep(2)",
		})
		holderErr <- err
	}()

	// Give the holder time to take the only connection
	time.Sleep(200 * time.Millisecond)

	start := time.Now()
	_, err = exec.Execute(s.ctx, ports.Call{
		Kind:   ports.CallLiteral,
		Target: "SELECT 1",
	})
	elapsed := time.Since(start)

	s.ErrorIs(err, db.ErrPoolExhausted)
	s.Less(elapsed, 1500*time.Millisecond, "saturation must fail within the acquire bound, not block")

	s.NoError(<-holderErr)
}

func (s *RepositorySuite) TestPoolSharesConnectionAfterRelease() {
	// Sequential calls on a single-connection pool reuse the connection; no
	// call leaks it past rows.Close.
	cfg := *s.testDB.Config
	cfg.MaxConnections = 1
	cfg.MinConnections = 1
	cfg.AcquireTimeout = time.Second

	database, err := db.NewDatabase(s.ctx, &cfg, helpers.TestLogger())
	s.Require().NoError(err)
	defer database.Close()

	exec := db.NewExecutor(database, helpers.TestLogger())

	for i := 0; i < 5; i++ {
		result, err := exec.Execute(s.ctx, ports.Call{
			Kind:   ports.CallLiteral,
			Target: "SELECT 1 AS one",
		})
		s.Require().NoError(err, "call %d should reuse the released connection", i+1)
		s.True(result.Success)
	}
}

func TestRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RepositorySuite))
}
