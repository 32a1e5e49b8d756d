// Package testutil provides testing helpers for documentation handlers and
// registry fixtures. This package is import-cycle safe and can be used from
// any package.
package testutil

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
)

// AssertStatus checks that the response has the expected status code.
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int) {
	t.Helper()
	if w.Code != expectedStatus {
		t.Errorf("expected status %d, got %d\nBody: %s", expectedStatus, w.Code, w.Body.String())
	}
}

// AssertHeader checks that a response header has the expected value.
func AssertHeader(t *testing.T, w *httptest.ResponseRecorder, key, expectedValue string) {
	t.Helper()
	actual := w.Header().Get(key)
	if actual != expectedValue {
		t.Errorf("expected header %s=%s, got %s", key, expectedValue, actual)
	}
}

// AssertContentType checks that the Content-Type header contains the
// expected media type.
func AssertContentType(t *testing.T, w *httptest.ResponseRecorder, mediaType string) {
	t.Helper()
	contentType := w.Header().Get("Content-Type")
	if !strings.Contains(contentType, mediaType) {
		t.Errorf("expected Content-Type to contain %s, got %s", mediaType, contentType)
	}
}

// AssertJSONEqual compares two JSON documents structurally, ignoring
// formatting and object key order.
func AssertJSONEqual(t *testing.T, expected, actual []byte) {
	t.Helper()

	var expectedData, actualData any
	if err := json.Unmarshal(expected, &expectedData); err != nil {
		t.Fatalf("expected value is not valid JSON: %v", err)
	}
	if err := json.Unmarshal(actual, &actualData); err != nil {
		t.Fatalf("actual value is not valid JSON: %v\nBody: %s", err, actual)
	}

	expectedStr, _ := json.MarshalIndent(expectedData, "", "  ")
	actualStr, _ := json.MarshalIndent(actualData, "", "  ")

	if string(expectedStr) != string(actualStr) {
		t.Errorf("JSON mismatch:\nExpected:\n%s\nActual:\n%s", expectedStr, actualStr)
	}
}

// errorEnvelope mirrors the handler's error response wrapper.
type errorEnvelope struct {
	Error ErrorResponse `json:"error"`
}

// ErrorResponse represents a generic error response with code and message.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// AssertJSONError checks that the response contains an error envelope with
// the expected code.
func AssertJSONError(t *testing.T, w *httptest.ResponseRecorder, expectedCode string) *ErrorResponse {
	t.Helper()

	var envelope errorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode error response: %v\nBody: %s", err, w.Body.String())
	}

	if envelope.Error.Code != expectedCode {
		t.Errorf("expected error code %s, got %s (message: %s)",
			expectedCode, envelope.Error.Code, envelope.Error.Message)
	}

	return &envelope.Error
}

// DecodeJSON decodes the response body into the provided value.
func DecodeJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response: %v\nBody: %s", err, w.Body.String())
	}
}
