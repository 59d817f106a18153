package api

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	corsAllowHeaders = "Content-Type, X-Request-ID"
	corsMaxAge       = 10 * 60 // seconds
)

// corsMethods are the methods the /v1 routes answer to.
var corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete}

// corsPolicy decides which browser origins may call the API.
type corsPolicy struct {
	any     bool
	origins map[string]bool
}

func newCORSPolicy(origins []string) corsPolicy {
	p := corsPolicy{origins: make(map[string]bool, len(origins))}
	for _, o := range origins {
		if o == "*" {
			p.any = true
			continue
		}
		p.origins[strings.TrimSuffix(o, "/")] = true
	}
	return p
}

func (p corsPolicy) enabled() bool { return p.any || len(p.origins) > 0 }

func (p corsPolicy) allows(origin string) bool {
	return origin != "" && (p.any || p.origins[origin])
}

// corsMiddleware echoes allowed origins and answers preflight requests
// itself, so the router never sees OPTIONS for a PATCH or DELETE route.
// Requests from other origins pass through untouched and the browser
// blocks them.
func corsMiddleware(p corsPolicy) func(http.Handler) http.Handler {
	methods := strings.Join(corsMethods, ", ")
	return func(next http.Handler) http.Handler {
		if !p.enabled() {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Origin")
			origin := r.Header.Get("Origin")
			if !p.allows(origin) {
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Expose-Headers", "X-Request-ID")

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				h.Set("Access-Control-Allow-Methods", methods)
				h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
				h.Set("Access-Control-Max-Age", strconv.Itoa(corsMaxAge))
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
