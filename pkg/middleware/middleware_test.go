package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"hospilog/internal/models/db_models"
	"hospilog/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubResolver struct {
	accounts map[string]*db_models.Account
	err      error
}

func (s stubResolver) SessionLookup(_ context.Context, token string) (*db_models.Account, error) {
	if s.err != nil {
		return nil, s.err
	}
	if a, ok := s.accounts[token]; ok {
		return a, nil
	}
	return nil, utils.ErrUnauthorized
}

func decode(t *testing.T, w *httptest.ResponseRecorder) utils.APIResponse {
	t.Helper()
	var body utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func newSessionRouter(resolver SessionResolver) *gin.Engine {
	r := gin.New()
	r.Use(TraceIDMiddleware())
	authed := r.Group("/", SessionAuth(resolver, "session_token"))
	authed.GET("/me", func(c *gin.Context) {
		id, role, _ := CurrentAccount(c)
		c.JSON(http.StatusOK, gin.H{"id": id.String(), "role": role, "email": CurrentEmail(c)})
	})
	authed.POST("/orders/:id/confirm", RequireCapability(db_models.CapConfirmOrder), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestSessionAuth(t *testing.T) {
	vendor := &db_models.Account{BaseModel: db_models.BaseModel{ID: uuid.New()}, Email: "v@x.io", Role: db_models.RoleVendor}
	staff := &db_models.Account{BaseModel: db_models.BaseModel{ID: uuid.New()}, Email: "s@x.io", Role: db_models.RoleStaff}
	r := newSessionRouter(stubResolver{accounts: map[string]*db_models.Account{"tok-v": vendor, "tok-s": staff}})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "UNAUTHORIZED", decode(t, w).ErrorCode)
	})

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer tok-v")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), vendor.ID.String())
		assert.Contains(t, w.Body.String(), `"role":"VENDOR"`)
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "session_token", Value: "tok-s"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "s@x.io")
	})

	t.Run("unknown token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer nope")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("capability", func(t *testing.T) {
		for token, want := range map[string]int{"tok-v": http.StatusNoContent, "tok-s": http.StatusForbidden} {
			req := httptest.NewRequest(http.MethodPost, "/orders/1/confirm", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, want, w.Code, token)
		}
	})
}

func TestSessionAuthStoreFailure(t *testing.T) {
	r := newSessionRouter(stubResolver{err: errors.Join(utils.ErrDatabaseError, errors.New("conn reset"))})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestTraceID(t *testing.T) {
	r := gin.New()
	r.Use(TraceIDMiddleware())
	r.GET("/x", func(c *gin.Context) { utils.RespondSuccess(c, nil, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(TraceHeader, "abc123-trace")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc123-trace", w.Header().Get(TraceHeader))
	assert.Equal(t, "abc123-trace", decode(t, w).TraceID)

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(TraceHeader, "bad trace\r\nid")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	_, err := uuid.Parse(w.Header().Get(TraceHeader))
	assert.NoError(t, err)
}

func TestRateLimiter(t *testing.T) {
	lim := NewRateLimiter(60, 2)
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	lim.now = func() time.Time { return now }

	r := gin.New()
	r.POST("/auth/login", lim.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = ip + ":5555"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)
	w := send("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "TOO_MANY_REQUESTS", decode(t, w).ErrorCode)
	assert.Equal(t, http.StatusOK, send("10.0.0.2").Code, "buckets are per client")

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code, "one token refilled after a second")

	now = now.Add(10 * time.Minute)
	lim.sweep()
	assert.Empty(t, lim.buckets)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://app.hospital.test/"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://app.hospital.test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.hospital.test", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestZapLoggerLevels(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(TraceIDMiddleware(), ZapLogger(zap.New(core)), Metrics())
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
	assert.Equal(t, "/boom", entries[1].ContextMap()["path"])
}
