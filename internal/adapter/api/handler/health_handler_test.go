package handler

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestCheckHealth(t *testing.T) {
	e := echo.New()

	up := NewHealthHandler(pingFunc(func(context.Context) error { return nil }))
	rec := httptest.NewRecorder()
	assert.NoError(t, up.CheckHealth(e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	down := NewHealthHandler(pingFunc(func(context.Context) error { return stderrors.New("dial tcp: refused") }))
	rec = httptest.NewRecorder()
	assert.NoError(t, down.CheckHealth(e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
