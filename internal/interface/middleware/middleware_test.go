package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-lead-crm/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

func do(r http.Handler, method, path string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(CtxRequestIDKey)) })

	rec := do(r, http.MethodGet, "/", nil)
	_, err := uuid.Parse(rec.Body.String())
	require.NoError(t, err)
	assert.Equal(t, rec.Body.String(), rec.Header().Get(RequestIDHeader))

	incoming := uuid.NewString()
	rec = do(r, http.MethodGet, "/", map[string]string{RequestIDHeader: incoming})
	assert.Equal(t, incoming, rec.Body.String())

	rec = do(r, http.MethodGet, "/", map[string]string{RequestIDHeader: "<script>"})
	assert.NotEqual(t, "<script>", rec.Body.String())
}

func TestRealIP(t *testing.T) {
	r := gin.New()
	r.Use(RealIP())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(CtxRealIPKey)) })

	rec := do(r, http.MethodGet, "/", map[string]string{"CF-Connecting-IP": "203.0.113.7", "X-Forwarded-For": "198.51.100.1"})
	assert.Equal(t, "203.0.113.7", rec.Body.String())

	rec = do(r, http.MethodGet, "/", map[string]string{"X-Forwarded-For": " 198.51.100.1 , 10.0.0.1"})
	assert.Equal(t, "198.51.100.1", rec.Body.String())

	rec = do(r, http.MethodGet, "/", map[string]string{"X-Forwarded-For": "garbage"})
	assert.Equal(t, "192.0.2.1", rec.Body.String(), "httptest remote addr")
}

func TestAllowPrivateIP(t *testing.T) {
	allow := AllowPrivateIP()
	for ip, want := range map[string]bool{"127.0.0.1": true, "10.1.2.3": true, "192.168.0.5": true, "203.0.113.7": false, "nope": false} {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Set(CtxRealIPKey, ip)
		assert.Equal(t, want, allow(c), ip)
	}
}

func newLimited(t *testing.T, rdb *redis.Client, max int, allow AllowFunc) *gin.Engine {
	t.Helper()
	r := gin.New()
	r.Use(RealIP())
	rl := RateLimit(rdb, max, time.Minute, KeyByIPAndRoute(), allow, helpers.NopLogger())
	r.POST("/leads", rl, func(c *gin.Context) { c.Status(http.StatusCreated) })
	r.GET("/leads", rl, func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRateLimit_BlocksAfterMax(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	r := newLimited(t, rdb, 2, nil)

	for i := 0; i < 2; i++ {
		rec := do(r, http.MethodPost, "/leads", nil)
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	rec := do(r, http.MethodPost, "/leads", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), `"error":"rate limit exceeded"`)

	// a different route has its own window
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/leads", nil).Code)

	// another client is unaffected
	rec = do(r, http.MethodPost, "/leads", map[string]string{"X-Forwarded-For": "198.51.100.9"})
	assert.Equal(t, http.StatusCreated, rec.Code)

	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/leads", nil).Code)
}

func TestRateLimit_AllowBypass(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	r := newLimited(t, rdb, 1, func(*gin.Context) bool { return true })

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/leads", nil).Code)
	}
}

func TestRateLimit_FailOpenAndDisabled(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	r := newLimited(t, rdb, 1, nil)
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/leads", nil).Code)
	}

	off := newLimited(t, nil, 1, nil)
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusCreated, do(off, http.MethodPost, "/leads", nil).Code)
	}
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware(), Recovery(helpers.NopLogger()))
	r.GET("/boom", func(*gin.Context) { panic("kaboom") })

	rec := do(r, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"Server Error"`)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestAccessLog_PassesThrough(t *testing.T) {
	r := gin.New()
	r.Use(AccessLog(helpers.NopLogger()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusTeapot) })
	assert.Equal(t, http.StatusTeapot, do(r, http.MethodGet, "/", nil).Code)
}
