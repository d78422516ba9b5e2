package httputil

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduaid/auth-service/pkg/auth"
)

func TestWriteMsg(t *testing.T) {
	w := httptest.NewRecorder()
	WriteMsg(w, 401, "No token found")

	assert.Equal(t, 401, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body MsgResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "invalid JSON body")
	assert.Equal(t, "No token found", body.Msg)
}

func TestWriteValidationErrors(t *testing.T) {
	w := httptest.NewRecorder()
	WriteValidationErrors(w, []auth.FieldError{
		{Field: "email", Message: "Email must be valid"},
		{Field: "password", Message: "Password must be at least 3 characters long"},
	})

	assert.Equal(t, 400, w.Code)

	var body ValidationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "invalid JSON body")
	require.Len(t, body.Errors, 2)
	assert.Equal(t, "email", body.Errors[0].Field)
}

func TestWriteInternalError_NoDetailLeak(t *testing.T) {
	w := httptest.NewRecorder()
	WriteInternalError(w)

	assert.Equal(t, 500, w.Code)
	assert.Equal(t, "{\"msg\":\"Internal server error\"}\n", w.Body.String())
}
