package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"contentgate/internal/httputil"
)

// Recovery turns a panicking handler into a 500 problem response carrying
// the request ID. http.ErrAbortHandler is re-raised so net/http can abort
// the connection quietly.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				requestID := httputil.GetRequestID(r)
				logger.Error("panic recovered",
					"error", rec,
					"path", r.URL.Path,
					"method", r.Method,
					"request_id", requestID,
					"stack", string(debug.Stack()),
				)

				problem := httputil.NewProblem(http.StatusInternalServerError, "internal server error")
				if requestID != "" {
					problem.Extra = map[string]interface{}{"request_id": requestID}
				}
				httputil.WriteProblem(w, problem)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
