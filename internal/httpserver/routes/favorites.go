package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/favtube/internal/httpserver/deps"
	"github.com/MrSnakeDoc/favtube/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/favtube/internal/httpserver/mw"
)

func init() { Register(registerFavorites) }

func registerFavorites(r chi.Router, d deps.Deps) {
	// One limiter shared by every mutating endpoint.
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.RateBurst,
		RefillPerIPPerMin: d.RatePerMin,
		MaxEntries:        10_000,
		TrustProxy:        d.TrustProxy,
		Logger:            d.Logger,
	})

	r.Group(func(r chi.Router) {
		r.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))

		r.Get("/api/favorites", handlers.ListFavorites(d))
		r.With(limit).Post("/api/favorites", handlers.AddFavorite(d))
		r.With(limit).Delete("/api/favorites", handlers.ClearFavorites(d))
		r.With(limit).Delete("/api/favorites/{id}", handlers.RemoveFavorite(d))
	})
}
