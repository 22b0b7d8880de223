// Package mid holds the App-level middleware shared across the ledger
// core's HTTP handlers.
package mid

import (
	"context"
	"net/http"

	"golang.org/x/time/rate"

	v1 "github.com/wtran29/ledgercore/business/web/v1"
	"github.com/wtran29/ledgercore/foundation/web"
)

// RateLimit returns middleware backed by one token bucket shared across
// every request the App handles: the bucket holds up to burst tokens and
// refills at r tokens per second, and a request that finds it empty is
// rejected with 429. A node's public submit-transaction endpoint
// is the main thing this protects against flooding.
func RateLimit(r rate.Limit, burst int) web.Middleware {
	limiter := rate.NewLimiter(r, burst)

	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			if !limiter.Allow() {
				return v1.NewRequestError(errTooManyRequests, http.StatusTooManyRequests)
			}
			return handler(ctx, w, r)
		}
		return h
	}
	return m
}

var errTooManyRequests = rateLimitError("rate limit exceeded")

type rateLimitError string

func (e rateLimitError) Error() string { return string(e) }
