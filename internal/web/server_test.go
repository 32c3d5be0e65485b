package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSecurityHeaders(t *testing.T) {
	handler := securityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	want := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}
	for header, value := range want {
		if got := rec.Header().Get(header); got != value {
			t.Errorf("%s = %q, want %q", header, got, value)
		}
	}
}

func TestQueryInt(t *testing.T) {
	tests := []struct {
		url  string
		def  int
		want int
	}{
		{"/files", 200, 200},
		{"/files?limit=50", 200, 50},
		{"/files?limit=abc", 200, 200},
		{"/files?limit=0", 200, 0},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, tt.url, nil)
		if got := queryInt(r, "limit", tt.def); got != tt.want {
			t.Errorf("queryInt(%q) = %d, want %d", tt.url, got, tt.want)
		}
	}
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"decision":"validated","bogus":1}`))

	var req decisionRequest
	if err := decodeJSON(r, &req); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestWriteErrorBody(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/files/99", nil)

	writeError(rec, r, http.StatusNotFound, "not_found", "resource not found")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body.Error != "not_found" || body.Message != "resource not found" {
		t.Errorf("body = %+v", body)
	}
}

func TestContentDisposition(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Companies.csv", `attachment; filename="Companies.csv"`},
		{"docs/notes/plan.md", `attachment; filename="plan.md"`},
		{"a/b", `attachment; filename="b"`},
	}
	for _, tt := range tests {
		if got := contentDisposition(tt.name); got != tt.want {
			t.Errorf("contentDisposition(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestDecodeJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"decision":"validated","notes":"3 of 4 confirmed pain"}`))

	var req decisionRequest
	if err := decodeJSON(r, &req); err != nil {
		t.Fatalf("decodeJSON: %v", err)
	}
	if req.Decision != "validated" || req.Notes != "3 of 4 confirmed pain" {
		t.Errorf("got %+v", req)
	}
}
