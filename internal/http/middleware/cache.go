package middleware

import (
	"fmt"
	"net/http"
)

// CacheControl lets shared caches keep successful GET responses for maxAge
// seconds and serve them stale while they revalidate. Zero disables it.
func CacheControl(maxAge int) func(http.Handler) http.Handler {
	value := fmt.Sprintf("public, s-maxage=%d, stale-while-revalidate", maxAge)

	return func(next http.Handler) http.Handler {
		if maxAge <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(&cachingWriter{ResponseWriter: w, value: value}, r)
		})
	}
}

// cachingWriter sets the header only once the status is known to be 200.
type cachingWriter struct {
	http.ResponseWriter
	value   string
	written bool
}

func (cw *cachingWriter) WriteHeader(code int) {
	if !cw.written {
		cw.written = true
		if code == http.StatusOK && cw.Header().Get("Cache-Control") == "" {
			cw.Header().Set("Cache-Control", cw.value)
		}
	}
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *cachingWriter) Write(b []byte) (int, error) {
	if !cw.written {
		cw.WriteHeader(http.StatusOK)
	}
	return cw.ResponseWriter.Write(b)
}
