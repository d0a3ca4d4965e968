package response

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "storefront/pkg/errors"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestOK(t *testing.T) {
	c, rec := newContext()
	require.NoError(t, OK(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.True(t, body.Success)
	assert.Nil(t, body.Error)
	assert.NotContains(t, rec.Body.String(), `"data"`)
}

func TestErrorRendersAppError(t *testing.T) {
	c, rec := newContext()
	require.NoError(t, Error(c, apperrors.NotFound("Cart", nil)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decode(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, apperrors.CodeNotFound, body.Error.Code)
	assert.Equal(t, "Cart not found", body.Error.Message)
}

func TestErrorRendersValidationError(t *testing.T) {
	type payload struct {
		UserID string `validate:"required"`
	}
	err := validator.New().Struct(payload{})
	require.Error(t, err)

	c, rec := newContext()
	require.NoError(t, Error(c, err))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, apperrors.CodeInvalidPayload, body.Error.Code)
	assert.Equal(t, "UserID is required", body.Error.Message)
}

func TestErrorMapsBindFailureToInvalidPayload(t *testing.T) {
	c, rec := newContext()
	require.NoError(t, Error(c, echo.NewHTTPError(http.StatusBadRequest, "unexpected EOF")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apperrors.CodeInvalidPayload, decode(t, rec).Error.Code)
}

func TestErrorHidesUnknownErrors(t *testing.T) {
	c, rec := newContext()
	require.NoError(t, Error(c, stderrors.New("secret driver detail")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestPaginatedRoundsPagesUp(t *testing.T) {
	c, rec := newContext()
	require.NoError(t, Paginated(c, []string{"a"}, 21, 1, 20))

	var body struct {
		Data PaginatedResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Data.TotalPages)
	assert.Equal(t, int64(21), body.Data.Total)
}
