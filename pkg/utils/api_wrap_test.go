package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveError(t *testing.T, err error) (int, APIResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("trace_id", "trace-1")

	HandleServiceError(c, err)

	var body APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHandleServiceErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{ErrInvalidOrExpiredToken, http.StatusUnauthorized, "INVALID_OR_EXPIRED_TOKEN"},
		{ErrMalformedToken, http.StatusBadRequest, "MALFORMED_TOKEN"},
		{ErrCodeMismatch, http.StatusUnauthorized, "CODE_MISMATCH"},
		{ErrMissingInput, http.StatusBadRequest, "MISSING_INPUT"},
		{ErrAccountExists, http.StatusConflict, "ACCOUNT_EXISTS"},
		{ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{fmt.Errorf("lookup: %w", ErrDatabaseError), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		status, body := serveError(t, tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.code, body.ErrorCode, tc.err.Error())
		assert.Equal(t, "trace-1", body.TraceID)
		assert.Equal(t, "error", body.Status)
	}
}

func TestHandleServiceErrorNotFound(t *testing.T) {
	status, body := serveError(t, NotFound("Account"))

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "ACCOUNT_NOT_FOUND", body.ErrorCode)
	assert.Equal(t, "Account Not Found", body.Message)
}

func TestHandleServiceErrorTransitionKeepsDetail(t *testing.T) {
	status, body := serveError(t, Transition("order", "o1", "is CANCELLED"))

	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INVALID_TRANSITION", body.ErrorCode)
	assert.Contains(t, body.Message, "o1 is CANCELLED")
}

func TestHandleServiceErrorValidation(t *testing.T) {
	status, body := serveError(t, Invalid("end", "must not precede start"))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", body.ErrorCode)
	assert.Contains(t, body.Message, "end")
}
