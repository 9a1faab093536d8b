package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	srv := httptest.NewServer(m.Middleware()(h))
	defer srv.Close()

	for i := 0; i < 3; i++ {
		resp, err := http.Get(srv.URL + "/api/courses")
		require.NoError(t, err, "should make request to test server")
		require.NoError(t, resp.Body.Close())
	}

	counted := testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/api/courses", "201"))
	require.Equal(t, float64(3), counted, "every request should be counted with its status")

	require.Equal(t, float64(0), testutil.ToFloat64(m.inFlight), "no requests in flight after responses")
}
