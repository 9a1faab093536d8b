package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMiddleware_RateLimiter(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	get := func(t *testing.T, srv *httptest.Server, ip string) int {
		t.Helper()

		req, err := http.NewRequest(http.MethodGet, srv.URL+"/test", nil)
		require.NoError(t, err)
		req.Header.Set("X-Forwarded-For", ip)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
		return resp.StatusCode
	}

	t.Run("requests over the limit are rejected", func(t *testing.T) {
		rl := NewRateLimiter(3, time.Minute)
		srv := httptest.NewServer(rl.Middleware()(h))
		defer srv.Close()

		for i := 0; i < 3; i++ {
			require.Equal(t, http.StatusOK, get(t, srv, "10.0.0.1"), "request %d should pass", i+1)
		}
		require.Equal(t, http.StatusTooManyRequests, get(t, srv, "10.0.0.1"), "burst is spent")
	})

	t.Run("limits are tracked per ip", func(t *testing.T) {
		rl := NewRateLimiter(1, time.Minute)
		srv := httptest.NewServer(rl.Middleware()(h))
		defer srv.Close()

		require.Equal(t, http.StatusOK, get(t, srv, "10.0.0.1"))
		require.Equal(t, http.StatusTooManyRequests, get(t, srv, "10.0.0.1"))
		require.Equal(t, http.StatusOK, get(t, srv, "10.0.0.2"), "other clients are not throttled")
	})

	t.Run("non-positive arguments are clamped", func(t *testing.T) {
		rl := NewRateLimiter(0, 0)
		srv := httptest.NewServer(rl.Middleware()(h))
		defer srv.Close()

		// One request per second, not a division-by-zero panic
		require.Equal(t, http.StatusOK, get(t, srv, "10.0.0.1"))
		require.Equal(t, http.StatusTooManyRequests, get(t, srv, "10.0.0.1"))
	})
}
