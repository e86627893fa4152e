package http

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows the browser frontend to poll the API from another origin.
var CORS = cors.Handler(cors.Options{
	AllowedOrigins:   []string{"*"},
	AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
	AllowedHeaders:   []string{"Accept", "Content-Type", "X-Correlation-ID", "X-User-ID"},
	ExposedHeaders:   []string{"X-Correlation-ID"},
	AllowCredentials: false,
	MaxAge:           300,
})

// ContentTypeJSON sets the response content type for API routes.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
