// internal/adapters/db/product_repository.go
package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"

	"github.com/japolo/catalog-api/internal/core/domain"
	"github.com/japolo/catalog-api/internal/core/ports"
)

// productRepository implements ports.ProductRepository
type productRepository struct {
	exec   ports.Executor
	logger *slog.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(exec ports.Executor, logger *slog.Logger) ports.ProductRepository {
	return &productRepository{
		exec:   exec,
		logger: logger.With(slog.String("repository", "products")),
	}
}

// GetAll retrieves every product
func (r *productRepository) GetAll(ctx context.Context) ([]domain.Product, error) {
	query, _, err := squirrel.
		Select("id", "name", "description", "price", "stock").
		From("products").
		OrderBy("id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build products query: %w", err)
	}

	result, err := r.exec.Execute(ctx, ports.Call{
		Kind:   ports.CallLiteral,
		Target: query,
	})
	if err != nil {
		return nil, err
	}

	rows := result.FirstRecordset()
	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		p, err := productFromRow(row)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}

	return products, nil
}

// GetByID retrieves a single product or domain.ErrNotFound
func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	result, err := r.exec.Execute(ctx, ports.Call{
		Kind:   ports.CallFunction,
		Target: "get_product_by_id",
		Params: []ports.Param{
			{Name: "product_id", Value: id},
		},
	})
	if err != nil {
		return nil, err
	}

	rows := result.FirstRecordset()
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}

	return productFromRow(rows[0])
}

// Create inserts a product and returns the created row
func (r *productRepository) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	result, err := r.exec.Execute(ctx, ports.Call{
		Kind:   ports.CallFunction,
		Target: "create_product",
		Params: []ports.Param{
			{Name: "name", Value: p.Name},
			{Name: "description", Value: p.Description},
			{Name: "price", Value: p.Price},
			{Name: "stock", Value: p.Stock},
		},
	})
	if err != nil {
		return nil, err
	}

	rows := result.FirstRecordset()
	if len(rows) == 0 {
		return nil, fmt.Errorf("create_product returned no rows")
	}

	created, err := productFromRow(rows[0])
	if err != nil {
		return nil, err
	}

	r.logger.DebugContext(ctx, "product created",
		slog.Int64("id", created.ID),
		slog.String("name", created.Name))

	return created, nil
}

// Update replaces a product's fields and returns the updated row
func (r *productRepository) Update(ctx context.Context, id int64, p domain.Product) (*domain.Product, error) {
	result, err := r.exec.Execute(ctx, ports.Call{
		Kind:   ports.CallFunction,
		Target: "update_product",
		Params: []ports.Param{
			{Name: "product_id", Value: id},
			{Name: "name", Value: p.Name},
			{Name: "description", Value: p.Description},
			{Name: "price", Value: p.Price},
			{Name: "stock", Value: p.Stock},
		},
	})
	if err != nil {
		return nil, err
	}

	rows := result.FirstRecordset()
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}

	return productFromRow(rows[0])
}

// Delete removes a product
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.exec.Execute(ctx, ports.Call{
		Kind:   ports.CallFunction,
		Target: "delete_product",
		Params: []ports.Param{
			{Name: "product_id", Value: id},
		},
	})
	if err != nil {
		return err
	}

	if len(result.FirstRecordset()) == 0 && result.RowCount == 0 {
		return domain.ErrNotFound
	}

	r.logger.DebugContext(ctx, "product deleted", slog.Int64("id", id))
	return nil
}

// productFromRow maps one recordset row onto the domain type
func productFromRow(row ports.Row) (*domain.Product, error) {
	id, err := rowInt64(row["id"])
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", err)
	}
	name, err := rowString(row["name"])
	if err != nil {
		return nil, fmt.Errorf("invalid product name: %w", err)
	}
	description, err := rowString(row["description"])
	if err != nil {
		return nil, fmt.Errorf("invalid product description: %w", err)
	}
	price, err := rowDecimal(row["price"])
	if err != nil {
		return nil, fmt.Errorf("invalid product price: %w", err)
	}
	stock, err := rowInt(row["stock"])
	if err != nil {
		return nil, fmt.Errorf("invalid product stock: %w", err)
	}

	return &domain.Product{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
	}, nil
}
