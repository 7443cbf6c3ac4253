// internal/handlers/middleware/middleware_test.go
package middleware_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/japolo/catalog-api/internal/handlers/middleware"
	"github.com/japolo/catalog-api/internal/pkg/logger"
	"github.com/japolo/catalog-api/test/helpers"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
}

func TestRequestID_GeneratesID(t *testing.T) {
	var capturedID string
	handler := middleware.RequestID("")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedID, _ = r.Context().Value(logger.ContextKeyRequestID).(string)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/users", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	require.NotEmpty(t, capturedID)
	_, err := uuid.Parse(capturedID)
	assert.NoError(t, err, "generated request ID should be a UUID")
	assert.Equal(t, capturedID, w.Header().Get("X-Request-ID"))
}

func TestRequestID_HonorsExistingHeader(t *testing.T) {
	handler := middleware.RequestID("X-Request-ID")(okHandler())

	req := httptest.NewRequest("GET", "/api/users", nil)
	req.Header.Set("X-Request-ID", "upstream-id-123")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, "upstream-id-123", w.Header().Get("X-Request-ID"))
}

func TestRequestID_ConfiguredHeaderName(t *testing.T) {
	handler := middleware.RequestID("X-Correlation-ID")(okHandler())

	req := httptest.NewRequest("GET", "/api/users", nil)
	req.Header.Set("X-Correlation-ID", "corr-42")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, "corr-42", w.Header().Get("X-Correlation-ID"))
	assert.Empty(t, w.Header().Get("X-Request-ID"))
}

func TestRecovery_ConvertsPanicTo500(t *testing.T) {
	handler := middleware.Recovery(helpers.TestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest("GET", "/api/users", nil)
	w := httptest.NewRecorder()

	require.NotPanics(t, func() {
		handler.ServeHTTP(w, req)
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Internal Server Error"}`, w.Body.String())
}

func TestRecovery_PassesThroughNormalRequests(t *testing.T) {
	handler := middleware.Recovery(helpers.TestLogger())(okHandler())

	req := httptest.NewRequest("GET", "/api/users", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestRateLimit_AllowsWithinLimit(t *testing.T) {
	handler := middleware.RateLimit(5, time.Minute)(okHandler())

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest("GET", "/api/users", nil)
		req.RemoteAddr = "10.0.0.1:12345"
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "request %d should pass", i+1)
	}
}

func TestRateLimit_RejectsOverLimit(t *testing.T) {
	handler := middleware.RateLimit(2, time.Minute)(okHandler())

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/api/users", nil)
		req.RemoteAddr = "10.0.0.2:12345"
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		statuses = append(statuses, w.Code)
	}

	assert.Equal(t, http.StatusOK, statuses[0])
	assert.Equal(t, http.StatusOK, statuses[1])
	assert.Equal(t, http.StatusTooManyRequests, statuses[2])
}

func TestRateLimit_TracksClientsSeparately(t *testing.T) {
	handler := middleware.RateLimit(1, time.Minute)(okHandler())

	first := httptest.NewRequest("GET", "/api/users", nil)
	first.RemoteAddr = "10.0.0.3:1111"
	w1 := httptest.NewRecorder()
	handler.ServeHTTP(w1, first)

	second := httptest.NewRequest("GET", "/api/users", nil)
	second.RemoteAddr = "10.0.0.4:2222"
	w2 := httptest.NewRecorder()
	handler.ServeHTTP(w2, second)

	assert.Equal(t, http.StatusOK, w1.Code)
	assert.Equal(t, http.StatusOK, w2.Code)
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name           string
		allowedOrigins []string
		origin         string
		method         string
		expectedStatus int
		expectAllowed  bool
	}{
		{
			name:           "wildcard_allows_any_origin",
			allowedOrigins: []string{"*"},
			origin:         "https://app.example.com",
			method:         "GET",
			expectedStatus: http.StatusOK,
			expectAllowed:  true,
		},
		{
			name:           "listed_origin_is_allowed",
			allowedOrigins: []string{"https://app.example.com"},
			origin:         "https://app.example.com",
			method:         "GET",
			expectedStatus: http.StatusOK,
			expectAllowed:  true,
		},
		{
			name:           "unlisted_origin_gets_no_cors_headers",
			allowedOrigins: []string{"https://app.example.com"},
			origin:         "https://evil.example.com",
			method:         "GET",
			expectedStatus: http.StatusOK,
			expectAllowed:  false,
		},
		{
			name:           "preflight_returns_no_content",
			allowedOrigins: []string{"*"},
			origin:         "https://app.example.com",
			method:         "OPTIONS",
			expectedStatus: http.StatusNoContent,
			expectAllowed:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middleware.CORS(tt.allowedOrigins)(okHandler())

			req := httptest.NewRequest(tt.method, "/api/users", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectAllowed {
				assert.Equal(t, tt.origin, w.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestSecureHeaders(t *testing.T) {
	handler := middleware.SecureHeaders(okHandler())

	req := httptest.NewRequest("GET", "/api/users", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"), "HSTS only set on TLS requests")
}

// captureHandler records the context each log record was emitted with.
type captureHandler struct {
	mu   sync.Mutex
	ctxs []context.Context
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(ctx context.Context, _ slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ctxs = append(h.ctxs, ctx)
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(string) slog.Handler      { return h }

func TestChain_LogRecordsCarryRequestID(t *testing.T) {
	capture := &captureHandler{}
	l := slog.New(capture)

	// Same order as the server assembly: RequestID outermost, so Logger and
	// Recovery emit their records with the ID already in context.
	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	handler = middleware.Recovery(l)(handler)
	handler = middleware.Logger(l)(handler)
	handler = middleware.RequestID("X-Request-ID")(handler)

	req := httptest.NewRequest("GET", "/api/users", nil)
	req.Header.Set("X-Request-ID", "req-abc")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotEmpty(t, capture.ctxs, "expected panic and completion records")
	for _, ctx := range capture.ctxs {
		id, _ := ctx.Value(logger.ContextKeyRequestID).(string)
		assert.Equal(t, "req-abc", id)
	}
}

func TestLogger_CompletesRequest(t *testing.T) {
	handler := middleware.Logger(helpers.TestLogger())(okHandler())

	req := httptest.NewRequest("GET", "/api/users", nil)
	req.RemoteAddr = "10.0.0.5:33333"
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}
