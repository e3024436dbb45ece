package domain

import (
	"net/url"
	"regexp"
	"strings"
)

// VideoID is YouTube's 11-character opaque video identifier.
// Equality is exact string equality.
type VideoID string

// VideoIDLength is the exact length of every valid VideoID.
const VideoIDLength = 11

var (
	// validVideoID matches a whole candidate, never a substring.
	validVideoID = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

	// videoIDRun finds the leftmost 11-character window of the ID alphabet.
	videoIDRun = regexp.MustCompile(`[A-Za-z0-9_-]{11}`)

	// shortsSegment is used when the input cannot be parsed as a URL.
	shortsSegment = regexp.MustCompile(`(?i)(^|/)shorts($|/)`)
)

// idPathMarkers are path segments whose following segment holds the ID.
// Example: /shorts/<id>, /embed/<id>, /v/<id>
var idPathMarkers = map[string]bool{
	"shorts": true,
	"embed":  true,
	"v":      true,
}

// IsValidVideoID reports whether s is exactly one VideoID.
func IsValidVideoID(s string) bool {
	return validVideoID.MatchString(s)
}

// ResolveVideoID extracts a VideoID from arbitrary user input.
// Accepted forms:
//   - "dQw4w9WgXcQ" (bare ID)
//   - "https://youtu.be/dQw4w9WgXcQ"
//   - "youtube.com/watch?v=dQw4w9WgXcQ" (scheme optional)
//   - "https://youtube.com/shorts/dQw4w9WgXcQ?feature=share"
//   - "https://youtube.com/embed/dQw4w9WgXcQ", ".../v/dQw4w9WgXcQ"
//   - any text containing an 11-character run of the ID alphabet
//
// The strategies run in that order and the first match wins.
// ok is false when nothing matched. It never panics.
func ResolveVideoID(input string) (id VideoID, ok bool) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", false
	}

	// Bare ID fast path
	if IsValidVideoID(s) {
		return VideoID(s), true
	}

	if u, err := parseLooseURL(s); err == nil {
		if id, ok := idFromURL(u); ok {
			return id, true
		}
	}

	return scanVideoID(s)
}

// idFromURL applies the URL-specific strategies to an already parsed URL.
func idFromURL(u *url.URL) (VideoID, bool) {
	parts := pathSegments(u)

	// youtu.be/<id>
	if strings.Contains(strings.ToLower(u.Hostname()), "youtu.be") {
		if len(parts) > 0 && IsValidVideoID(parts[0]) {
			return VideoID(parts[0]), true
		}
	}

	// /shorts/<id>, /embed/<id>, /v/<id>
	for i, part := range parts {
		if !idPathMarkers[part] || i+1 >= len(parts) {
			continue
		}
		if candidate := parts[i+1]; IsValidVideoID(candidate) {
			return VideoID(candidate), true
		}
	}

	// watch?v=<id>
	if v := u.Query().Get("v"); v != "" && IsValidVideoID(v) {
		return VideoID(v), true
	}

	return "", false
}

// scanVideoID returns the first 11-character window of the ID alphabet in s.
// A longer run yields its first 11 characters.
func scanVideoID(s string) (VideoID, bool) {
	m := videoIDRun.FindString(s)
	if m == "" {
		return "", false
	}
	return VideoID(m), true
}

// IsShortInput reports whether raw input points at a YouTube Shorts URL.
// It is a best-effort classification of the raw input and defaults
// to false.
func IsShortInput(raw string) bool {
	s := strings.TrimSpace(raw)
	if s == "" {
		return false
	}

	u, err := parseLooseURL(s)
	if err != nil {
		return shortsSegment.MatchString(s)
	}
	return strings.Contains(strings.ToLower(u.EscapedPath()), "/shorts/")
}

// parseLooseURL parses s as an absolute URL, assuming https when s does
// not already start with a scheme.
func parseLooseURL(s string) (*url.URL, error) {
	if !strings.HasPrefix(s, "http") {
		s = "https://" + s
	}
	return url.Parse(s)
}

// pathSegments returns the non-empty, still-escaped path segments of u.
func pathSegments(u *url.URL) []string {
	raw := strings.Split(u.EscapedPath(), "/")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
