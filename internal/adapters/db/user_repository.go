// internal/adapters/db/user_repository.go
package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"

	"github.com/japolo/catalog-api/internal/core/domain"
	"github.com/japolo/catalog-api/internal/core/ports"
)

// userRepository implements ports.UserRepository. Each method is a fixed
// mapping from a CRUD operation to one executor call; write operations
// invoke stored functions that return the affected row.
type userRepository struct {
	exec   ports.Executor
	logger *slog.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(exec ports.Executor, logger *slog.Logger) ports.UserRepository {
	return &userRepository{
		exec:   exec,
		logger: logger.With(slog.String("repository", "users")),
	}
}

// GetAll retrieves every user
func (r *userRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	query, _, err := squirrel.
		Select("id", "name", "email").
		From("users").
		OrderBy("id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build users query: %w", err)
	}

	result, err := r.exec.Execute(ctx, ports.Call{
		Kind:   ports.CallLiteral,
		Target: query,
	})
	if err != nil {
		return nil, err
	}

	rows := result.FirstRecordset()
	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		u, err := userFromRow(row)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}

	return users, nil
}

// GetByID retrieves a single user or domain.ErrNotFound
func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	result, err := r.exec.Execute(ctx, ports.Call{
		Kind:   ports.CallFunction,
		Target: "get_user_by_id",
		Params: []ports.Param{
			{Name: "user_id", Value: id},
		},
	})
	if err != nil {
		return nil, err
	}

	rows := result.FirstRecordset()
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}

	return userFromRow(rows[0])
}

// Create inserts a user and returns the created row
func (r *userRepository) Create(ctx context.Context, name, email string) (*domain.User, error) {
	result, err := r.exec.Execute(ctx, ports.Call{
		Kind:   ports.CallFunction,
		Target: "create_user",
		Params: []ports.Param{
			{Name: "name", Value: name},
			{Name: "email", Value: email},
		},
	})
	if err != nil {
		return nil, err
	}

	rows := result.FirstRecordset()
	if len(rows) == 0 {
		return nil, fmt.Errorf("create_user returned no rows")
	}

	user, err := userFromRow(rows[0])
	if err != nil {
		return nil, err
	}

	r.logger.DebugContext(ctx, "user created",
		slog.Int64("id", user.ID),
		slog.String("email", user.Email))

	return user, nil
}

// Update replaces a user's fields and returns the updated row
func (r *userRepository) Update(ctx context.Context, id int64, name, email string) (*domain.User, error) {
	result, err := r.exec.Execute(ctx, ports.Call{
		Kind:   ports.CallFunction,
		Target: "update_user",
		Params: []ports.Param{
			{Name: "user_id", Value: id},
			{Name: "name", Value: name},
			{Name: "email", Value: email},
		},
	})
	if err != nil {
		return nil, err
	}

	rows := result.FirstRecordset()
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}

	return userFromRow(rows[0])
}

// Delete removes a user
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.exec.Execute(ctx, ports.Call{
		Kind:   ports.CallFunction,
		Target: "delete_user",
		Params: []ports.Param{
			{Name: "user_id", Value: id},
		},
	})
	if err != nil {
		return err
	}

	if len(result.FirstRecordset()) == 0 && result.RowCount == 0 {
		return domain.ErrNotFound
	}

	r.logger.DebugContext(ctx, "user deleted", slog.Int64("id", id))
	return nil
}

// userFromRow maps one recordset row onto the domain type
func userFromRow(row ports.Row) (*domain.User, error) {
	id, err := rowInt64(row["id"])
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}
	name, err := rowString(row["name"])
	if err != nil {
		return nil, fmt.Errorf("invalid user name: %w", err)
	}
	email, err := rowString(row["email"])
	if err != nil {
		return nil, fmt.Errorf("invalid user email: %w", err)
	}

	return &domain.User{ID: id, Name: name, Email: email}, nil
}
