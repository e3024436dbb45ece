package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/MrSnakeDoc/favtube/internal/domain"
	"github.com/MrSnakeDoc/favtube/internal/httpserver/deps"
	"github.com/MrSnakeDoc/favtube/internal/logger"
)

// Resolve previews what adding q would store, without saving anything.
func Resolve(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if query == "" {
			writeError(w, r, http.StatusBadRequest, "missing query parameter q")
			return
		}

		id, ok := domain.ResolveVideoID(query)
		if !ok {
			d.Logger.Debug("resolve found no video id", logger.String("query", query))
			writeError(w, r, http.StatusNotFound, msgInvalidInput)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, resolveResponse{
			ID:           string(id),
			URL:          domain.CanonicalURL(id),
			IsShort:      domain.IsShortInput(query),
			ThumbnailURL: domain.ThumbnailURL(id),
			EmbedURL:     domain.EmbedURL(id),
		})
	}
}
