package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (p *stubPinger) Ping() error {
	return p.err
}

func newHealthRouter(db, cache Pinger) *gin.Engine {
	engine := gin.New()
	NewHealthHandler(db, cache).RegisterRoutes(&engine.RouterGroup)
	return engine
}

func doHealthRequest(t *testing.T, engine *gin.Engine) (int, map[string]string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHealthHandler_AllUp(t *testing.T) {
	engine := newHealthRouter(&stubPinger{}, &stubPinger{})

	code, body := doHealthRequest(t, engine)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "ok", body["database"])
	assert.Equal(t, "ok", body["cache"])
}

func TestHealthHandler_NoCacheConfigured(t *testing.T) {
	engine := newHealthRouter(&stubPinger{}, nil)

	code, body := doHealthRequest(t, engine)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
	assert.NotContains(t, body, "cache")
}

func TestHealthHandler_DatabaseDown(t *testing.T) {
	engine := newHealthRouter(&stubPinger{err: errors.New("connection refused")}, nil)

	code, body := doHealthRequest(t, engine)

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, "unreachable", body["database"])
}

func TestHealthHandler_CacheDownStaysUp(t *testing.T) {
	engine := newHealthRouter(&stubPinger{}, &stubPinger{err: errors.New("connection refused")})

	code, body := doHealthRequest(t, engine)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, "ok", body["database"])
	assert.Equal(t, "unreachable", body["cache"])
}
