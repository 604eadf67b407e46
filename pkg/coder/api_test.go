package coder

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func doJSON(t *testing.T, api *API, path, body string) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	api.Echo.ServeHTTP(rec, req)
	var out map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not JSON: %q", rec.Body.String())
	}
	return rec, out
}

func TestAPIEncodeDecode(t *testing.T) {
	api := NewAPI(newTestService(t, "none"))

	rec, out := doJSON(t, api, "/encode", `{"key":"test","text":"Hello, World!"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if out["result"] != "EEoY1tbOokok1R/d1Q==" {
		t.Errorf("Unexpected result %q", out["result"])
	}

	rec, out = doJSON(t, api, "/decode", `{"key":"test","text":"EEoY1tbOokok1R/d1Q=="}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if out["result"] != "Hello, World!" {
		t.Errorf("Unexpected result %q", out["result"])
	}
}

func TestAPIErrors(t *testing.T) {
	api := NewAPI(newTestService(t, "none"))

	tests := []struct {
		name string
		path string
		body string
		code int
	}{
		{"missing key", "/encode", `{"text":"x"}`, http.StatusBadRequest},
		{"bad json", "/encode", `{"key":`, http.StatusBadRequest},
		{"bad base64", "/decode", `{"key":"k","text":"***"}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, out := doJSON(t, api, tt.path, tt.body)
			if rec.Code != tt.code {
				t.Errorf("Expected %d, got %d", tt.code, rec.Code)
			}
			if out["error"] == "" {
				t.Error("Expected error message in body")
			}
		})
	}
}

func TestAPIHealth(t *testing.T) {
	api := NewAPI(newTestService(t, "none"))
	rec := httptest.NewRecorder()
	api.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("Unexpected health response %d %q", rec.Code, rec.Body.String())
	}
}
