// internal/handlers/user.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/japolo/catalog-api/internal/core/domain"
	"github.com/japolo/catalog-api/internal/core/ports"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	repo   ports.UserRepository
	logger *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(repo ports.UserRepository, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		repo:   repo,
		logger: logger.With(slog.String("handler", "users")),
	}
}

// List handles GET /api/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.repo.GetAll(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list users",
			slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to list users")
		return
	}

	respondJSON(w, http.StatusOK, users)
}

// Get handles GET /api/users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	user, err := h.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user",
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to retrieve user")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// Create handles POST /api/users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.repo.Create(ctx, req.Name, req.Email)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create user",
			slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	h.logger.InfoContext(ctx, "user created",
		slog.Int64("id", user.ID),
		slog.String("email", user.Email))

	respondJSON(w, http.StatusCreated, user)
}

// Update handles PUT /api/users/{id}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var req UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.repo.Update(ctx, id, req.Name, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to update user",
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to update user")
		return
	}

	h.logger.InfoContext(ctx, "user updated", slog.Int64("id", id))

	respondJSON(w, http.StatusOK, user)
}

// Delete handles DELETE /api/users/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete user",
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	h.logger.InfoContext(ctx, "user deleted", slog.Int64("id", id))

	respondJSON(w, http.StatusNoContent, nil)
}

// parseID reads the {id} path value shared by the entity handlers
func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// UserRequest represents the request body for creating or updating a user
type UserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate checks required fields before any repository call
func (r *UserRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	return nil
}
