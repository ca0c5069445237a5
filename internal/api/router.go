/**
 * @description
 * This file sets up the HTTP router for the anti-fraud service. It defines
 * the API endpoints, associates them with their handlers, and applies
 * standard middleware.
 *
 * @dependencies
 * - net/http: Standard Go library for HTTP functionality.
 * - github.com/go-chi/chi/v5: A lightweight and idiomatic router for Go.
 */

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes creates and returns a new router for the anti-fraud service.
func Routes(h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Add standard middleware for logging, panic recovery, and timeouts.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", h.HealthHandler)
	r.Get("/accounts/{accountID}/daily-total", h.GetDailyTotalHandler)

	return r
}
