package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJSONDetail(t *testing.T) {
	w := httptest.NewRecorder()

	JSONDetail(w, http.StatusBadRequest, "Invalid ISBN!")

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
	if w.Header().Get("Content-Type") != "application/json" {
		t.Error("Expected Content-Type application/json")
	}

	var response DetailResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Detail != "Invalid ISBN!" {
		t.Errorf("Expected detail %q, got %q", "Invalid ISBN!", response.Detail)
	}
}

func TestJSONInfo(t *testing.T) {
	w := httptest.NewRecorder()

	JSONInfo(w, http.StatusAccepted, "The book listing is empty")

	if w.Code != http.StatusAccepted {
		t.Errorf("Expected status 202, got %d", w.Code)
	}
	if got := w.Body.String(); got != "{\"INFO\":\"The book listing is empty\"}\n" {
		t.Errorf("Unexpected body %q", got)
	}
}

func TestJSONError_IncludesRequestID(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(ContextWithRequestID(r.Context(), "req-1"))

	JSONError(w, r, http.StatusInternalServerError, "Connection Error, Database couldnt be reached")

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}

	var response ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Error != "Connection Error, Database couldnt be reached" {
		t.Errorf("Unexpected error %q", response.Error)
	}
	if response.RequestID != "req-1" {
		t.Errorf("Expected request id req-1, got %q", response.RequestID)
	}
}

func TestJSONError_WithoutRequestID(t *testing.T) {
	w := httptest.NewRecorder()

	JSONError(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusInternalServerError, "boom")

	if got := w.Body.String(); got != "{\"ERROR\":\"boom\"}\n" {
		t.Errorf("Unexpected body %q", got)
	}
}
