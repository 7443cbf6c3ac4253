// internal/handlers/api.go
package handlers

import (
	"net/http"

	"github.com/japolo/catalog-api/internal/pkg/config"
)

// APIInfo describes the service for the root endpoint.
type APIInfo struct {
	Message    string            `json:"message"`
	Version    string            `json:"version"`
	APIVersion string            `json:"api_version"`
	Endpoints  map[string]string `json:"endpoints"`
}

// APIHandler serves the root API description
type APIHandler struct {
	config *config.Config
}

// NewAPIHandler creates a new API info handler
func NewAPIHandler(cfg *config.Config) *APIHandler {
	return &APIHandler{config: cfg}
}

// Info handles GET /
func (h *APIHandler) Info(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, APIInfo{
		Message:    h.config.App.Name + " - REST API",
		Version:    h.config.App.Version,
		APIVersion: h.config.App.APIVersion,
		Endpoints: map[string]string{
			"users":    "/api/users",
			"products": "/api/products",
			"health":   "/health",
		},
	})
}
