// internal/adapters/db/scan.go
package db

import (
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// Row value coercion helpers. The executor returns driver-native values
// (int32 for integer columns, pgtype.Numeric for numeric, etc.); these
// normalize them into the domain field types.

func rowInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case int:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case string:
		return strconv.ParseInt(n, 10, 64)
	default:
		return 0, fmt.Errorf("cannot convert %T to int64", v)
	}
}

func rowInt(v any) (int, error) {
	n, err := rowInt64(v)
	return int(n), err
}

func rowString(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case nil:
		return "", nil
	case []byte:
		return string(s), nil
	default:
		return "", fmt.Errorf("cannot convert %T to string", v)
	}
}

func rowDecimal(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case pgtype.Numeric:
		if !n.Valid || n.Int == nil {
			return decimal.Zero, nil
		}
		return decimal.NewFromBigInt(n.Int, n.Exp), nil
	case decimal.Decimal:
		return n, nil
	case string:
		return decimal.NewFromString(n)
	case float64:
		return decimal.NewFromFloat(n), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case int32:
		return decimal.NewFromInt32(n), nil
	default:
		return decimal.Zero, fmt.Errorf("cannot convert %T to decimal", v)
	}
}
