package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestDataResponseWritesWireStatus(t *testing.T) {
	tests := []struct {
		name   string
		write  func(c echo.Context) error
		status int
	}{
		{"success", func(c echo.Context) error { return SuccessResponse(c, "ok") }, http.StatusOK},
		{"bad request", func(c echo.Context) error { return BadRequestResponse(c, "nope") }, http.StatusBadRequest},
		{"internal", InternalServerErrorResponse, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(t)
			require.NoError(t, tt.write(c))

			assert.Equal(t, tt.status, rec.Code, "wire status must match the envelope status")

			resp := decodeEnvelope(t, rec)
			assert.Equal(t, tt.status, resp.Status)
			assert.Equal(t, http.StatusText(tt.status), resp.Message)
		})
	}
}

func TestAppErrorResponse(t *testing.T) {
	c, rec := newTestContext(t)

	err := AppErrorResponse(c, NotFoundError("no such run"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp struct {
		Status int         `json:"status"`
		Data   []*AppError `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusNotFound, resp.Status)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "ERR_NOT_FOUND", resp.Data[0].Code)
	assert.Equal(t, "no such run", resp.Data[0].Message)
}

func TestAppErrorResponseUnknownError(t *testing.T) {
	c, rec := newTestContext(t)

	require.NoError(t, AppErrorResponse(c, fmt.Errorf("boom")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAppErrorWrapsCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := UnavailableError("sink unreachable").WithError(cause)

	assert.Equal(t, http.StatusServiceUnavailable, err.Status)
	assert.Equal(t, "ERR_UNAVAILABLE", err.Code)
	assert.Contains(t, err.Error(), "sink unreachable")
	assert.True(t, errors.Is(err, cause))
}
