package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/eduaid/auth-service/pkg/auth"
)

// MsgResponse is the generic single-message failure/ack body.
type MsgResponse struct {
	Msg string `json:"msg"`
}

// ValidationResponse carries field-level validation failures.
type ValidationResponse struct {
	Errors []auth.FieldError `json:"errors"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteMsg writes a {"msg": ...} response with the given status code.
func WriteMsg(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, MsgResponse{Msg: msg})
}

// WriteValidationErrors writes a 400 response listing every invalid field.
func WriteValidationErrors(w http.ResponseWriter, fields []auth.FieldError) {
	WriteJSON(w, http.StatusBadRequest, ValidationResponse{Errors: fields})
}

// WriteUnauthorized writes a 401 {"msg": ...} response.
func WriteUnauthorized(w http.ResponseWriter, msg string) {
	WriteMsg(w, http.StatusUnauthorized, msg)
}

// WriteServiceUnavailable writes a 503 {"msg": ...} response.
func WriteServiceUnavailable(w http.ResponseWriter, msg string) {
	WriteMsg(w, http.StatusServiceUnavailable, msg)
}

// WriteInternalError writes a 500 response with a generic message; internal
// detail never reaches the client.
func WriteInternalError(w http.ResponseWriter) {
	WriteMsg(w, http.StatusInternalServerError, "Internal server error")
}
