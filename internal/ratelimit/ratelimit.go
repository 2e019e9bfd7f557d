// Package ratelimit throttles contact submissions per client IP.
package ratelimit

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"quent-tech-backend/internal/http/response"
)

// MsgTooManyRequests is the error body of a throttled request
const MsgTooManyRequests = "Too many requests"

// Options configures the limiter
type Options struct {
	Requests int
	Window   time.Duration
	// Counter stores the sliding-window counts. Nil uses httprate's in-memory counter,
	// which is per process (per Lambda container).
	Counter httprate.LimitCounter
}

// Middleware limits requests per client IP and answers throttled ones with a JSON 429.
// The key is the connection address; in Lambda that is the API Gateway source IP.
func Middleware(opts Options) func(http.Handler) http.Handler {
	options := []httprate.Option{
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			response.TooManyRequests(w, MsgTooManyRequests)
		}),
	}
	if opts.Counter != nil {
		options = append(options, httprate.WithLimitCounter(opts.Counter))
	}
	return httprate.Limit(opts.Requests, opts.Window, options...)
}
