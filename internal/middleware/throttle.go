package middleware

import (
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"contentgate/internal/httputil"
)

// NewAPILimiter returns a token bucket for rps requests per second with the
// given burst, or nil when rps is not positive.
func NewAPILimiter(rps, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// Throttle sheds load with 429 once the shared bucket is empty. A nil
// limiter passes every request through.
func Throttle(limiter *rate.Limiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reservation := limiter.Reserve()
			if !reservation.OK() {
				httputil.RespondError(w, http.StatusTooManyRequests, "request rate exceeded")
				return
			}
			if delay := reservation.Delay(); delay > 0 {
				reservation.Cancel()
				logger.Warn("api throttled",
					"path", r.URL.Path,
					"retry_after_ms", delay.Milliseconds(),
					"request_id", httputil.GetRequestID(r),
				)
				httputil.SetRetryAfter(w, delay)
				httputil.RespondError(w, http.StatusTooManyRequests, "request rate exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
