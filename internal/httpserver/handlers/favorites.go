package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/MrSnakeDoc/favtube/internal/domain"
	"github.com/MrSnakeDoc/favtube/internal/httpserver/deps"
	"github.com/MrSnakeDoc/favtube/internal/logger"
)

// ListFavorites returns the collection, newest first.
func ListFavorites(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		render.Status(r, http.StatusOK)
		render.JSON(w, r, toFavoritesResponse(d.Favorites.Collection()))
	}
}

// AddFavorite resolves the submitted input and saves it.
func AddFavorite(d deps.Deps) http.HandlerFunc {
	validate := d.Validate
	if validate == nil {
		validate = validator.New()
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req addFavoriteRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			if errors.Is(err, io.EOF) {
				writeError(w, r, http.StatusBadRequest, "empty request body")
				return
			}
			writeError(w, r, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := validate.Struct(req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, validationErrorResponse(err))
			return
		}

		fav, res, err := d.Favorites.Add(r.Context(), req.Input)
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, r, http.StatusUnprocessableEntity, msgInvalidInput)
			return
		case errors.Is(err, domain.ErrDuplicateEntry):
			writeError(w, r, http.StatusConflict, msgDuplicate)
			return
		case err != nil:
			d.Logger.Error("failed to add favorite", logger.Error(err))
			writeError(w, r, http.StatusInternalServerError, "server error")
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, addFavoriteResponse{
			favoriteResponse: toFavoriteResponse(fav),
			Persisted:        res.Persisted,
		})
	}
}

// RemoveFavorite drops one favorite. Unknown ids leave the collection as is.
func RemoveFavorite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := domain.VideoID(chi.URLParam(r, "id"))
		res := d.Favorites.Remove(r.Context(), id)

		resp := toFavoritesResponse(res.Collection)
		resp.Persisted = &res.Persisted
		render.Status(r, http.StatusOK)
		render.JSON(w, r, resp)
	}
}

// ClearFavorites empties the collection. It requires ?confirm=true.
func ClearFavorites(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
		if !confirmed {
			writeError(w, r, http.StatusBadRequest, "clearing all favorites requires confirm=true")
			return
		}

		res := d.Favorites.Clear(r.Context())

		resp := toFavoritesResponse(res.Collection)
		resp.Persisted = &res.Persisted
		render.Status(r, http.StatusOK)
		render.JSON(w, r, resp)
	}
}
