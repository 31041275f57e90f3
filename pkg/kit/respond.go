package kit

import (
	"encoding/json"
	"net/http"
)

// FailureResponse is the body of every non-2xx answer.
type FailureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteFailure(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, FailureResponse{Success: false, Message: msg})
}
