package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// DetailResponse is the body of client errors.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// InfoResponse is the body of informational, non-error results.
type InfoResponse struct {
	Info string `json:"INFO"`
}

// ErrorResponse is the body of server-side failures.
type ErrorResponse struct {
	Error     string `json:"ERROR"`
	RequestID string `json:"request_id,omitempty"`
}

func JSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func JSONDetail(w http.ResponseWriter, statusCode int, detail string) {
	JSON(w, statusCode, DetailResponse{Detail: detail})
}

func JSONInfo(w http.ResponseWriter, statusCode int, info string) {
	JSON(w, statusCode, InfoResponse{Info: info})
}

func JSONError(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	JSON(w, statusCode, ErrorResponse{Error: message, RequestID: RequestIDFrom(r)})
}
