package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSecurityHeadersMiddleware(t *testing.T) {
	middleware := SecurityHeadersMiddleware()

	handlerRan := false
	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerRan = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/v1/garden/plants", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if !handlerRan {
		t.Fatal("wrapped handler did not run")
	}

	tests := []struct {
		header   string
		expected string
	}{
		{HeaderContentType, HeaderValueNoSniff},
		{HeaderFrameOptions, HeaderValueSameOrigin},
		{HeaderXSSProtection, HeaderValueXSSBlock},
		{HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			if got := rec.Header().Get(tt.header); got != tt.expected {
				t.Errorf("expected header %s to be %q, got %q", tt.header, tt.expected, got)
			}
		})
	}
}
