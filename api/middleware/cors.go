package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS applies the storefront's open cross-origin policy. The API serves a
// public static site, so every origin is allowed and preflights are answered
// with the same header set.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Requested-With"},
		MaxAge:         300,
	}).Handler
}
