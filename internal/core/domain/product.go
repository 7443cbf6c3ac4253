// internal/core/domain/product.go
package domain

import "github.com/shopspring/decimal"

// Product represents a catalog product row as stored in the products table.
// Price uses decimal to avoid float rounding on money values.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}
