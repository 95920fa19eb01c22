package middlewares

import (
	"net/http"
)

func Cache(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, stale-while-revalidate, max-age=3600") // embedded widget assets only change with a release
		handler.ServeHTTP(w, r)
	})
}
