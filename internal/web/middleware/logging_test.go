package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResponseWriterTracksStatusAndBytes(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, status: http.StatusOK}

	rw.WriteHeader(http.StatusTeapot)
	n, err := rw.Write([]byte("short and stout"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if rw.status != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rw.status, http.StatusTeapot)
	}
	if rw.bytes != n {
		t.Errorf("bytes = %d, want %d", rw.bytes, n)
	}
}

func TestResponseWriterDefaultsToOK(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, status: http.StatusOK}

	// A handler that writes a body without calling WriteHeader gets an
	// implicit 200 from net/http; the wrapper must report the same.
	if _, err := rw.Write([]byte("ok")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if rw.status != http.StatusOK {
		t.Errorf("status = %d, want %d", rw.status, http.StatusOK)
	}
}
