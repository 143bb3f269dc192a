package httpx

import (
	"encoding/json"
	"net/http"
)

// The API uses two error shapes: lookups that miss return a bare
// {"error": ...}, while rejected writes return {"success": false,
// "error": ...} carrying the underlying message as-is.

type ErrorResponse struct {
	Error string `json:"error"`
}

type FailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	var body []byte
	var err error
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			// best-effort error response; avoid writing partial JSON
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	} else {
		body = []byte("null")
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		// nothing we can do at this point
		_ = err
	}
}

// Error writes the lookup-miss shape.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, ErrorResponse{Error: msg})
}

// Failure writes the rejected-write shape.
func Failure(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, FailureResponse{Success: false, Error: msg})
}
