// internal/adapters/db/executor.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/japolo/catalog-api/internal/core/ports"
)

// Querier is the slice of pool behavior the executor needs. In production it
// is the *Database wrapper, whose Query bounds the acquire wait and surfaces
// ErrPoolExhausted on saturation; pgxmock pools satisfy it in tests. Query
// acquires one pooled connection and returns it to the pool when the rows are
// closed, so a call holds exactly one connection for its duration.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Executor runs tagged calls against PostgreSQL and normalizes the driver
// result into the uniform ports.Result shape. It performs no retries and
// recovers no errors; failures bubble up to the handler boundary.
type Executor struct {
	db     Querier
	logger *slog.Logger
}

// Statically assert that *Executor implements the Executor port.
var _ ports.Executor = (*Executor)(nil)

// NewExecutor creates a new query executor
func NewExecutor(db Querier, logger *slog.Logger) *Executor {
	return &Executor{
		db:     db,
		logger: logger.With(slog.String("component", "executor")),
	}
}

// Execute runs a single call. Stored-function calls are built as
// SELECT * FROM target($1..$n) with parameters bound in slice order; literal
// calls pass the target SQL through verbatim.
func (e *Executor) Execute(ctx context.Context, call ports.Call) (*ports.Result, error) {
	sql, args, err := BuildSQL(call)
	if err != nil {
		return nil, err
	}

	e.logger.DebugContext(ctx, "executing call",
		slog.String("target", call.Target),
		slog.Int("params", len(call.Params)))

	rows, err := e.db.Query(ctx, sql, args...)
	if err != nil {
		if errors.Is(err, ErrPoolExhausted) {
			return nil, fmt.Errorf("acquiring connection for %q: %w", call.Target, err)
		}
		return nil, &QueryError{Target: call.Target, Err: err}
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()

	recordset := ports.Recordset{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, &QueryError{Target: call.Target, Err: err}
		}
		row := make(ports.Row, len(fields))
		for i := range fields {
			row[fields[i].Name] = values[i]
		}
		recordset = append(recordset, row)
	}

	// Close before reading the command tag; it is only valid once the rows
	// are fully drained.
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Target: call.Target, Err: err}
	}

	result := &ports.Result{
		RowCount: rows.CommandTag().RowsAffected(),
		Success:  true,
	}
	if len(fields) > 0 {
		result.Recordsets = []ports.Recordset{recordset}
		if result.RowCount == 0 {
			result.RowCount = int64(len(recordset))
		}
	}

	return result, nil
}

// BuildSQL translates a tagged call into SQL text plus positional arguments.
// Parameter count always matches placeholder count for function calls; for
// literal calls the target author is responsible for matching placeholders.
func BuildSQL(call ports.Call) (string, []any, error) {
	target := strings.TrimSpace(call.Target)
	if target == "" {
		return "", nil, fmt.Errorf("call target is empty")
	}

	args := make([]any, len(call.Params))
	for i, p := range call.Params {
		args[i] = p.Value
	}

	switch call.Kind {
	case ports.CallFunction:
		placeholders := make([]string, len(call.Params))
		for i := range call.Params {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
		}
		sql := fmt.Sprintf("SELECT * FROM %s(%s)", target, strings.Join(placeholders, ", "))
		return sql, args, nil
	case ports.CallLiteral:
		return target, args, nil
	default:
		return "", nil, fmt.Errorf("unknown call kind: %d", call.Kind)
	}
}
