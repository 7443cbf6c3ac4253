// internal/core/ports/repositories.go
package ports

import (
	"context"

	"github.com/japolo/catalog-api/internal/core/domain"
)

// UserRepository defines the persistence port for users. Implementations map
// each method to a fixed executor call; they carry no business rules.
type UserRepository interface {
	GetAll(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, name, email string) (*domain.User, error)
	Update(ctx context.Context, id int64, name, email string) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

// ProductRepository defines the persistence port for products.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id int64, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}
