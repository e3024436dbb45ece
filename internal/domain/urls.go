package domain

import "fmt"

const (
	watchURLFormat     = "https://www.youtube.com/watch?v=%s"
	thumbnailURLFormat = "https://img.youtube.com/vi/%s/hqdefault.jpg"
	embedURLFormat     = "https://www.youtube.com/embed/%s?rel=0&playsinline=1&autoplay=1"
)

// CanonicalURL returns the watch URL stored with every favorite.
func CanonicalURL(id VideoID) string {
	return fmt.Sprintf(watchURLFormat, id)
}

// ThumbnailURL returns the high quality thumbnail for id.
func ThumbnailURL(id VideoID) string {
	return fmt.Sprintf(thumbnailURLFormat, id)
}

// EmbedURL returns the player URL. Autoplay only works after a user gesture,
// so callers insert it once the user asked to play.
func EmbedURL(id VideoID) string {
	return fmt.Sprintf(embedURLFormat, id)
}
