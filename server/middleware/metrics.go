package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/linguist/observability"
)

// Metrics records active and completed requests on m.
func Metrics(m *observability.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			start := time.Now()
			m.RequestStarted(ctx)
			sw := newStatusWriter(w)
			defer func() {
				m.RequestFinished(ctx, r.Method+" "+routeLabel(r.URL.Path), sw.status, time.Since(start))
			}()
			next.ServeHTTP(sw, r)
		})
	}
}

// routeLabel replaces history entry ids with ":id" so that each entry does
// not become its own time series.
func routeLabel(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if _, err := uuid.Parse(p); err == nil {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}
