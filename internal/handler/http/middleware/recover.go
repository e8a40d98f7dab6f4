package middleware

import (
	"net/http"

	"github.com/worktravel/worktravel-api/internal/pkg/errtrack"
)

// ReportPanics sends handler panics to error tracking and re-panics so the
// outer chi Recoverer still logs and answers 500.
func ReportPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rv := recover(); rv != nil {
				if rv != http.ErrAbortHandler {
					errtrack.CapturePanic(r.Context(), rv, map[string]string{
						"endpoint": r.URL.Path,
						"method":   r.Method,
					})
				}
				panic(rv)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
