package common

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the error response shape shared by middleware that
// rejects a request before it reaches a handler.
type ErrorBody struct {
	Error   bool   `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondJSON sends a JSON response. Payloads go over the wire
// unwrapped; clients read domain fields at the top level.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError sends an error response
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorBody{
		Error:   true,
		Code:    code,
		Message: message,
	})
}
