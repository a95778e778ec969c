package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/exchange_rates_app/internal/middleware"
	"github.com/SscSPs/exchange_rates_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func protectedRouter() *gin.Engine {
	r := gin.New()
	r.GET("/admin", middleware.AuthMiddleware(testSecret), func(c *gin.Context) {
		adminID, ok := middleware.GetAdminIDFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, adminID)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	valid, err := utils.GenerateAdminToken("operator-7", testSecret, time.Hour, time.Now())
	require.NoError(t, err)
	notYet, err := utils.GenerateAdminToken("operator-7", testSecret, time.Hour, time.Now().Add(time.Hour))
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
		wantError  string
	}{
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK, wantBody: "operator-7"},
		{name: "lowercase scheme", header: "bearer " + valid, wantStatus: http.StatusOK, wantBody: "operator-7"},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantError: "Authorization header required"},
		{name: "wrong scheme", header: "Basic " + valid, wantStatus: http.StatusUnauthorized, wantError: "Authorization header format must be Bearer {token}"},
		{name: "garbage token", header: "Bearer not.a.jwt", wantStatus: http.StatusUnauthorized, wantError: "Invalid token"},
		{name: "not valid yet", header: "Bearer " + notYet, wantStatus: http.StatusUnauthorized, wantError: "Token not valid yet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := serve(protectedRouter(), req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
			if tt.wantError != "" {
				var body map[string]string
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.wantError, body["error"])
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	l, err := middleware.NewIPLimiter("2-M")
	require.NoError(t, err)

	r := gin.New()
	r.POST("/reserve", middleware.RateLimit(l), func(c *gin.Context) { c.Status(http.StatusCreated) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest(http.MethodPost, "/reserve", nil)
		req.RemoteAddr = "203.0.113.5:4000"
		codes = append(codes, serve(r, req).Code)
	}
	assert.Equal(t, []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, codes)

	// A different client has its own budget.
	req, _ := http.NewRequest(http.MethodPost, "/reserve", nil)
	req.RemoteAddr = "203.0.113.9:4000"
	w := serve(r, req)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))
}

func TestNewIPLimiter_InvalidFormat(t *testing.T) {
	_, err := middleware.NewIPLimiter("twenty per minute")
	assert.Error(t, err)
}

func TestStructuredLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(base))
	r.GET("/currencies", func(c *gin.Context) {
		middleware.GetLoggerFromCtx(c.Request.Context()).Info("handler ran")
		assert.Same(t, middleware.GetLoggerFromContext(c), middleware.GetLoggerFromCtx(c.Request.Context()))
		c.Status(http.StatusNoContent)
	})

	req, _ := http.NewRequest(http.MethodGet, "/currencies", nil)
	w := serve(r, req)

	requestID := w.Header().Get("X-Request-ID")
	require.NotEmpty(t, requestID)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	for _, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		assert.Equal(t, requestID, entry["request_id"])
		assert.Equal(t, "/currencies", entry["path"])
	}

	var done map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &done))
	assert.Equal(t, "Request completed", done["msg"])
	assert.EqualValues(t, http.StatusNoContent, done["status"])
}

func TestGetLoggerFromCtx_FallsBackToDefault(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	assert.Same(t, slog.Default(), middleware.GetLoggerFromCtx(req.Context()))
}
