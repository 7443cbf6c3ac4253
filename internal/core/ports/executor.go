// internal/core/ports/executor.go
package ports

import "context"

// CallKind tags how a Call target should be interpreted. The original data
// layer guessed by sniffing the target for SQL keywords, which is ambiguous
// for function names that resemble keywords; callers tag the call explicitly
// instead.
type CallKind int

const (
	// CallFunction targets a stored function invoked as
	// SELECT * FROM target($1, ..., $n).
	CallFunction CallKind = iota
	// CallLiteral targets literal SQL text passed through verbatim with
	// positional placeholders.
	CallLiteral
)

// Param is one named query parameter. Params bind positionally in slice
// order, so the slice order must match the placeholder order.
type Param struct {
	Name  string
	Value any
}

// Call describes a single query execution request.
type Call struct {
	Kind   CallKind
	Target string
	Params []Param
}

// Row is one result row keyed by column name.
type Row map[string]any

// Recordset is one result table as an ordered sequence of rows.
type Recordset []Row

// Result is the normalized outcome of a Call. Statements that return no rows
// (DELETE/UPDATE without RETURNING) yield empty Recordsets and a RowCount
// reflecting the affected rows.
type Result struct {
	Recordsets []Recordset `json:"recordsets"`
	RowCount   int64       `json:"rowcount"`
	Success    bool        `json:"success"`
}

// FirstRecordset returns the first recordset or nil when the statement
// produced none.
func (r *Result) FirstRecordset() Recordset {
	if len(r.Recordsets) == 0 {
		return nil
	}
	return r.Recordsets[0]
}

// Executor runs a Call against the database, holding one pooled connection
// for the call's duration, and normalizes the driver result into a Result.
// Failures are surfaced immediately; the executor never retries.
type Executor interface {
	Execute(ctx context.Context, call Call) (*Result, error)
}
