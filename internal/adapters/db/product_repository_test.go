// internal/adapters/db/product_repository_test.go
package db_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/japolo/catalog-api/internal/adapters/db"
	"github.com/japolo/catalog-api/internal/core/domain"
	"github.com/japolo/catalog-api/internal/core/ports"
	"github.com/japolo/catalog-api/test/helpers"
	"github.com/japolo/catalog-api/test/mocks"
)

func productRow(id int64, name, description, price string, stock int) ports.Row {
	return ports.Row{
		"id":          id,
		"name":        name,
		"description": description,
		"price":       price,
		"stock":       stock,
	}
}

func TestProductRepository_GetByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExec := mocks.NewMockExecutor(ctrl)
	mockExec.EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, call ports.Call) (*ports.Result, error) {
			assert.Equal(t, ports.CallFunction, call.Kind)
			assert.Equal(t, "get_product_by_id", call.Target)
			require.Len(t, call.Params, 1)
			assert.Equal(t, "product_id", call.Params[0].Name)
			assert.Equal(t, int64(3), call.Params[0].Value)
			return resultWithRows(productRow(3, "Teclado", "Teclado mecánico RGB", "89.99", 20)), nil
		})

	repo := db.NewProductRepository(mockExec, helpers.TestLogger())

	product, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), product.ID)
	assert.Equal(t, "Teclado", product.Name)
	assert.Equal(t, "Teclado mecánico RGB", product.Description)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("89.99")))
	assert.Equal(t, 20, product.Stock)
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExec := mocks.NewMockExecutor(ctrl)
	mockExec.EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		Return(resultWithRows(), nil)

	repo := db.NewProductRepository(mockExec, helpers.TestLogger())

	_, err := repo.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductRepository_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExec := mocks.NewMockExecutor(ctrl)
	mockExec.EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, call ports.Call) (*ports.Result, error) {
			assert.Equal(t, ports.CallLiteral, call.Kind)
			assert.Equal(t, "SELECT id, name, description, price, stock FROM products ORDER BY id", call.Target)
			return resultWithRows(
				productRow(1, "Laptop", "Laptop Dell XPS 13", "1299.99", 5),
				productRow(2, "Mouse", "Mouse inalámbrico", "29.99", 50),
			), nil
		})

	repo := db.NewProductRepository(mockExec, helpers.TestLogger())

	products, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Laptop", products[0].Name)
	assert.True(t, products[1].Price.Equal(decimal.RequireFromString("29.99")))
}

func TestProductRepository_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	price := decimal.RequireFromString("89.99")
	input := domain.Product{
		Name:        "Teclado",
		Description: "Teclado mecánico RGB",
		Price:       price,
		Stock:       20,
	}

	mockExec := mocks.NewMockExecutor(ctrl)
	mockExec.EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, call ports.Call) (*ports.Result, error) {
			assert.Equal(t, ports.CallFunction, call.Kind)
			assert.Equal(t, "create_product", call.Target)
			require.Len(t, call.Params, 4)
			assert.Equal(t, "name", call.Params[0].Name)
			assert.Equal(t, "description", call.Params[1].Name)
			assert.Equal(t, "price", call.Params[2].Name)
			assert.Equal(t, price, call.Params[2].Value)
			assert.Equal(t, "stock", call.Params[3].Name)
			assert.Equal(t, 20, call.Params[3].Value)
			return resultWithRows(productRow(7, "Teclado", "Teclado mecánico RGB", "89.99", 20)), nil
		})

	repo := db.NewProductRepository(mockExec, helpers.TestLogger())

	created, err := repo.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	assert.True(t, created.Price.Equal(price))
}

func TestProductRepository_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExec := mocks.NewMockExecutor(ctrl)
	mockExec.EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, call ports.Call) (*ports.Result, error) {
			assert.Equal(t, "update_product", call.Target)
			require.Len(t, call.Params, 5)
			assert.Equal(t, "product_id", call.Params[0].Name)
			assert.Equal(t, int64(3), call.Params[0].Value)
			return resultWithRows(productRow(3, "Teclado", "Teclado mecánico RGB", "79.99", 15)), nil
		})

	repo := db.NewProductRepository(mockExec, helpers.TestLogger())

	updated, err := repo.Update(context.Background(), 3, domain.Product{
		Name:        "Teclado",
		Description: "Teclado mecánico RGB",
		Price:       decimal.RequireFromString("79.99"),
		Stock:       15,
	})
	require.NoError(t, err)
	assert.Equal(t, 15, updated.Stock)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("79.99")))
}

func TestProductRepository_Delete(t *testing.T) {
	tests := []struct {
		name        string
		result      *ports.Result
		expectedErr error
	}{
		{
			name:   "deletes_existing_product",
			result: resultWithRows(productRow(3, "Teclado", "Teclado mecánico RGB", "89.99", 20)),
		},
		{
			name:        "missing_product_is_not_found",
			result:      &ports.Result{Recordsets: []ports.Recordset{{}}, RowCount: 0, Success: true},
			expectedErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockExec := mocks.NewMockExecutor(ctrl)
			mockExec.EXPECT().
				Execute(gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, call ports.Call) (*ports.Result, error) {
					assert.Equal(t, "delete_product", call.Target)
					return tt.result, nil
				})

			repo := db.NewProductRepository(mockExec, helpers.TestLogger())

			err := repo.Delete(context.Background(), 3)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
