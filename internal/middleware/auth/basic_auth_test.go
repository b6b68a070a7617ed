package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBasicAuth(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name     string
		username string
		setAuth  func(r *http.Request)
		want     int
	}{
		{name: "valid", username: "admin", setAuth: func(r *http.Request) { r.SetBasicAuth("admin", "secret") }, want: http.StatusNoContent},
		{name: "wrong password", username: "admin", setAuth: func(r *http.Request) { r.SetBasicAuth("admin", "nope") }, want: http.StatusUnauthorized},
		{name: "wrong user", username: "admin", setAuth: func(r *http.Request) { r.SetBasicAuth("root", "secret") }, want: http.StatusUnauthorized},
		{name: "no header", username: "admin", setAuth: func(r *http.Request) {}, want: http.StatusUnauthorized},
		{name: "bearer token", username: "admin", setAuth: func(r *http.Request) { r.Header.Set("Authorization", "Bearer abc") }, want: http.StatusUnauthorized},
		{name: "not configured", username: "", setAuth: func(r *http.Request) { r.SetBasicAuth("", "secret") }, want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/admin/reset", nil)
			tt.setAuth(req)
			rr := httptest.NewRecorder()

			BasicAuth("", tt.username, "secret")(ok).ServeHTTP(rr, req)

			assert.Equal(t, tt.want, rr.Code)
			if tt.want == http.StatusUnauthorized {
				assert.Equal(t, `Basic realm="PayCalc Admin"`, rr.Header().Get("WWW-Authenticate"))
			}
		})
	}
}
