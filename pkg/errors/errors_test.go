package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesWrappedAppError(t *testing.T) {
	cause := stderrors.New("dial tcp: connection refused")
	err := fmt.Errorf("load cart: %w", StoreUnavailable("Failed to load cart", cause))

	assert.True(t, Is(err, CodeStoreUnavailable))
	assert.False(t, Is(err, CodeNotFound))
	assert.ErrorIs(t, err, cause)
}

func TestIsRejectsPlainErrors(t *testing.T) {
	assert.False(t, Is(stderrors.New("boom"), CodeInternal))
	assert.False(t, Is(nil, CodeInternal))
}

func TestConstructorStatuses(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
		code   string
	}{
		{InvalidPayload("userId is required", nil), http.StatusBadRequest, CodeInvalidPayload},
		{BadRequest("bad", nil), http.StatusBadRequest, CodeInvalidPayload},
		{NotFound("Cart", nil), http.StatusNotFound, CodeNotFound},
		{StoreUnavailable("down", nil), http.StatusInternalServerError, CodeStoreUnavailable},
		{Conflict("stale"), http.StatusConflict, CodeConflict},
		{Unauthorized("no token", nil), http.StatusUnauthorized, CodeUnauthorized},
		{Forbidden("no", nil), http.StatusForbidden, CodeForbidden},
		{TooManyRequests("slow down"), http.StatusTooManyRequests, CodeTooManyRequests},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.Status, tc.code)
		assert.Equal(t, tc.code, tc.err.Code)
	}
}

func TestNotFoundMessage(t *testing.T) {
	assert.Equal(t, "NOT_FOUND: Cart not found", NotFound("Cart", nil).Error())
}
