package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecurityHeadersMiddleware(t *testing.T) {
	serve := func(production bool) *httptest.ResponseRecorder {
		h := SecurityHeadersMiddleware(production)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		return rec
	}

	t.Run("development", func(t *testing.T) {
		rec := serve(false)

		expectedHeaders := map[string]string{
			"X-Content-Type-Options":  "nosniff",
			"X-Frame-Options":         "DENY",
			"X-XSS-Protection":        "1; mode=block",
			"Referrer-Policy":         "strict-origin-when-cross-origin",
			"Content-Security-Policy": "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'",
		}
		for header, expected := range expectedHeaders {
			assert.Equal(t, expected, rec.Header().Get(header), header)
		}
		assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
	})

	t.Run("production adds HSTS", func(t *testing.T) {
		rec := serve(true)
		assert.Equal(t, HeaderValueHSTS, rec.Header().Get("Strict-Transport-Security"))
	})
}
