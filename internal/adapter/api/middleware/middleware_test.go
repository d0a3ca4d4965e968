package middleware

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/infrastructure/ratelimit"
	"storefront/pkg/response"
)

type stubVerifier struct {
	tokens map[string]*auth.Token
}

func (s stubVerifier) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if token, ok := s.tokens[idToken]; ok {
		return token, nil
	}
	return nil, stderrors.New("token expired")
}

func newVerifier() stubVerifier {
	return stubVerifier{tokens: map[string]*auth.Token{
		"shopper": {UID: "u1", Claims: map[string]interface{}{}},
		"admin":   {UID: "a1", Claims: map[string]interface{}{"admin": true}},
	}}
}

func ok(c echo.Context) error {
	return c.String(http.StatusOK, c.Get(ContextUID).(string))
}

func serve(t *testing.T, h echo.HandlerFunc, authHeader string) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/products", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h(c))

	var body response.Response
	if rec.Code != http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestAuthenticate(t *testing.T) {
	h := NewAuthMiddleware(newVerifier()).Authenticate(ok)

	rec, body := serve(t, h, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", body.Error.Code)

	rec, _ = serve(t, h, "Token shopper")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = serve(t, h, "Bearer nope")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = serve(t, h, "Bearer shopper")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", rec.Body.String())
}

func TestAdminOnly(t *testing.T) {
	h := NewAuthMiddleware(newVerifier()).Authenticate(AdminOnly(ok))

	rec, body := serve(t, h, "Bearer shopper")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", body.Error.Code)

	rec, _ = serve(t, h, "Bearer admin")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a1", rec.Body.String())

	rec, _ = serve(t, AdminOnly(ok), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRateLimit(t *testing.T) {
	limiter := ratelimit.NewRateLimiter(ratelimit.Policy{Burst: 2, RefillRate: 1, RefillTime: time.Hour}, nil)

	e := echo.New()
	e.GET("/api/cart", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, RateLimit(limiter, ActionAPI))

	call := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		req.Header.Set(echo.HeaderXRealIP, ip)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, call("10.0.0.1").Code)

	rec := call("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	var body response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "TOO_MANY_REQUESTS", body.Error.Code)

	assert.Equal(t, http.StatusOK, call("10.0.0.2").Code)
}

func TestRetryAfterSeconds(t *testing.T) {
	assert.Equal(t, 1, retryAfterSeconds(0))
	assert.Equal(t, 1, retryAfterSeconds(200*time.Millisecond))
	assert.Equal(t, 3, retryAfterSeconds(2100*time.Millisecond))
}

func TestTracingPassesThroughErrors(t *testing.T) {
	e := echo.New()
	e.Use(Tracing("storefront"))
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "nope")
	})
	e.GET("/fine", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fine", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
