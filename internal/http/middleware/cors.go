package middleware

import (
	"net/http"
	"strings"
)

// ContactCORS stamps the fixed cross-origin headers of the contact endpoint on every response,
// including preflights and rate-limited requests.
//
// The allowed origin is the site origin unless the request comes from one of the other
// permitted origins (e.g. the www host), in which case that origin is echoed back.
func ContactCORS(siteOrigin string, permitted []string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(permitted))
	for _, o := range permitted {
		allowed[o] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := siteOrigin
			if reqOrigin := r.Header.Get("Origin"); reqOrigin != "" && allowed[reqOrigin] {
				origin = reqOrigin
			}

			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Headers", "Content-Type")
			h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			h.Set("Content-Type", "application/json")
			if len(allowed) > 1 && !varies(h, "Origin") {
				h.Add("Vary", "Origin")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// varies reports whether h already lists name in a Vary header
func varies(h http.Header, name string) bool {
	for _, v := range h.Values("Vary") {
		for _, field := range strings.Split(v, ",") {
			if strings.EqualFold(strings.TrimSpace(field), name) {
				return true
			}
		}
	}
	return false
}
