package middleware

import (
	"net/http"

	log "github.com/sirupsen/logrus"
)

func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Tracef(
				" ====> [%s] %s from %s [UA: %s]",
				r.Method, r.URL.Path, r.RemoteAddr, r.Header.Get("User-Agent"),
			)
			next.ServeHTTP(w, r)
		})
	}
}
