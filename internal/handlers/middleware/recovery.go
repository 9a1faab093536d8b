package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/getsentry/sentry-go"

	"github.com/edukit/campus/internal/handlers/render"
)

type errorLogger interface {
	Error(msg string, args ...any)
}

// Recover turns handler panics into a json 500 and reports them to sentry.
// Sentry is a no-op if it was never initialized, the log line always happens
func Recover(l errorLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				sentry.WithScope(func(scope *sentry.Scope) {
					scope.SetExtra("panic", rec)
					scope.SetExtra("stack", string(debug.Stack()))
					sentry.CaptureMessage("panic in request")
				})

				l.Error(
					"panic recovered",
					"method", r.Method,
					"uri", r.RequestURI,
					"panic", rec,
				)

				render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
