package server

import (
	"math"
	"net/http"
	"strconv"

	"github.com/osse101/CloverPit_Go/internal/handler"
	"github.com/osse101/CloverPit_Go/internal/logger"
	"github.com/osse101/CloverPit_Go/internal/metrics"
	"github.com/osse101/CloverPit_Go/internal/ratelimit"
)

// RateLimitMiddleware admits requests per client IP through limiter.
// Limiter failures let the request through.
func RateLimitMiddleware(limiter ratelimit.Limiter, trustedProxies []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			ip := extractIP(r, trustedProxies)
			log := logger.FromContext(r.Context())

			decision, err := limiter.Allow(r.Context(), ip)
			if err != nil {
				log.Error(LogMsgRateLimitError, "error", err, "ip", ip)
				next.ServeHTTP(w, r)
				return
			}

			resetSeconds := strconv.Itoa(int(math.Ceil(decision.ResetIn.Seconds())))
			h := w.Header()
			h.Set(HeaderRateLimitLimit, strconv.Itoa(decision.Limit))
			h.Set(HeaderRateLimitRemaining, strconv.Itoa(decision.Remaining))
			h.Set(HeaderRateLimitReset, resetSeconds)

			if !decision.Allowed {
				metrics.RateLimited.Inc()
				log.Warn(LogMsgRateLimited, "ip", ip, "path", r.URL.Path)

				h.Set(HeaderRetryAfter, resetSeconds)
				handler.RespondError(w, http.StatusTooManyRequests, ErrMsgTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
