// Package testutil holds request builders and fixtures shared by handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// ThirteenPayload is a valid create request body.
var ThirteenPayload = map[string]string{
	"author": "Cavanagh, Steve",
	"title":  "Thirteen",
	"lang":   "de",
	"isbn":   "978-3-442-49215-2",
}

// WithISBN returns a copy of ThirteenPayload carrying a different ISBN.
func WithISBN(isbn string) map[string]string {
	out := make(map[string]string, len(ThirteenPayload))
	for k, v := range ThirteenPayload {
		out[k] = v
	}
	out["isbn"] = isbn
	return out
}

// NewRequest builds a test request, JSON-encoding body when it is not nil.
func NewRequest(method, path string, body any) *http.Request {
	if body == nil {
		return httptest.NewRequest(method, path, nil)
	}
	b, err := json.Marshal(body)
	if err != nil {
		panic(err)
	}
	r := httptest.NewRequest(method, path, bytes.NewReader(b))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// Response is a recorded reply with its JSON object body decoded.
type Response struct {
	Code   int
	Header http.Header
	Body   map[string]any
}

// Record decodes the recorder's reply. A body that is not a JSON object leaves Body nil.
func Record(w *httptest.ResponseRecorder) Response {
	result := w.Result()
	defer result.Body.Close()

	raw, _ := io.ReadAll(result.Body)

	var body map[string]any
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &body)
	}
	return Response{Code: result.StatusCode, Header: result.Header, Body: body}
}

func AssertCode(t testing.TB, got Response, want int) {
	t.Helper()
	if got.Code != want {
		t.Errorf("got status code %d, want %d (body %v)", got.Code, want, got.Body)
	}
}

// AssertField checks one top-level field of the decoded body.
func AssertField(t testing.TB, got Response, key string, want any) {
	t.Helper()
	value, ok := got.Body[key]
	if !ok {
		t.Errorf("response body missing key %q: %v", key, got.Body)
		return
	}
	if value != want {
		t.Errorf("got %v for key %q, want %v", value, key, want)
	}
}
