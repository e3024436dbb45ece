package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/MrSnakeDoc/favtube/internal/domain"
)

const statusError = "error"

// Messages shown to users, matching the wording of the web client.
const (
	msgInvalidInput = "Invalid YouTube URL or ID"
	msgDuplicate    = "Video already added"
)

type addFavoriteRequest struct {
	Input string `json:"input" validate:"required,max=2048"`
}

type favoriteResponse struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	AddedAt      int64  `json:"addedAt"`
	IsShort      bool   `json:"isShort"`
	ThumbnailURL string `json:"thumbnailUrl"`
	EmbedURL     string `json:"embedUrl"`
}

func toFavoriteResponse(f domain.Favorite) favoriteResponse {
	return favoriteResponse{
		ID:           string(f.ID),
		URL:          f.URL,
		AddedAt:      f.AddedAt.UnixMilli(),
		IsShort:      f.IsShort,
		ThumbnailURL: domain.ThumbnailURL(f.ID),
		EmbedURL:     domain.EmbedURL(f.ID),
	}
}

type addFavoriteResponse struct {
	favoriteResponse
	Persisted bool `json:"persisted"`
}

type favoritesResponse struct {
	Count     int                `json:"count"`
	Items     []favoriteResponse `json:"items"`
	Persisted *bool              `json:"persisted,omitempty"`
}

func toFavoritesResponse(c domain.Collection) favoritesResponse {
	items := c.Items()
	resp := favoritesResponse{
		Count: len(items),
		Items: make([]favoriteResponse, 0, len(items)),
	}
	for _, f := range items {
		resp.Items = append(resp.Items, toFavoriteResponse(f))
	}
	return resp
}

type resolveResponse struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	IsShort      bool   `json:"isShort"`
	ThumbnailURL string `json:"thumbnailUrl"`
	EmbedURL     string `json:"embedUrl"`
}

type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Errors  []validationError `json:"errors,omitempty"`
}

func messageForTag(tag string) string {
	switch tag {
	case "required":
		return "this field is required"
	case "max":
		return "value is too long"
	default:
		return "invalid value"
	}
}

func validationErrorResponse(err error) errorResponse {
	resp := errorResponse{
		Status:  statusError,
		Message: "validation error",
	}

	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		for _, e := range errs {
			resp.Errors = append(resp.Errors, validationError{
				Field:   e.Field(),
				Message: messageForTag(e.Tag()),
			})
		}
	}
	return resp
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Status: statusError, Message: message})
}
