package domain

import (
	"errors"
	"time"
)

var (
	// ErrInvalidInput is returned by Add when no VideoID can be resolved.
	ErrInvalidInput = errors.New("invalid YouTube URL or ID")

	// ErrDuplicateEntry is returned by Add when the VideoID is already saved.
	ErrDuplicateEntry = errors.New("video already added")
)

// Favorite is a saved video.
type Favorite struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the unique key within a Collection.
	ID VideoID

	// URL is always CanonicalURL(ID), never the user input.
	URL string

	// ─────────────────────────────
	// Metadata (set once at insertion)
	// ─────────────────────────────

	// AddedAt has millisecond precision, matching the persisted form.
	AddedAt time.Time

	// IsShort classifies the raw input, not the canonical URL.
	IsShort bool
}

// NewFavorite builds the entry stored for id.
func NewFavorite(id VideoID, isShort bool, addedAt time.Time) Favorite {
	return Favorite{
		ID:      id,
		URL:     CanonicalURL(id),
		AddedAt: time.UnixMilli(addedAt.UnixMilli()),
		IsShort: isShort,
	}
}

// Collection is an ordered, newest-first list of favorites with unique IDs.
//
// A Collection is a value: Add, Remove and Clear return a new Collection
// and never modify the receiver. The zero value is an empty collection.
type Collection struct {
	items []Favorite
}

// NewCollection builds a collection from favorites ordered newest-first.
// Entries with an invalid ID and later duplicates are dropped.
func NewCollection(favorites []Favorite) Collection {
	items := make([]Favorite, 0, len(favorites))
	seen := make(map[VideoID]bool, len(favorites))
	for _, f := range favorites {
		if !IsValidVideoID(string(f.ID)) || seen[f.ID] {
			continue
		}
		seen[f.ID] = true
		items = append(items, f)
	}
	return Collection{items: items}
}

// Len returns the number of favorites.
func (c Collection) Len() int { return len(c.items) }

// IsEmpty reports whether the collection holds no favorites.
func (c Collection) IsEmpty() bool { return len(c.items) == 0 }

// Items returns a copy of the favorites, newest first.
func (c Collection) Items() []Favorite {
	out := make([]Favorite, len(c.items))
	copy(out, c.items)
	return out
}

// Get returns the favorite with the given id.
func (c Collection) Get(id VideoID) (Favorite, bool) {
	for _, f := range c.items {
		if f.ID == id {
			return f, true
		}
	}
	return Favorite{}, false
}

// Contains reports whether id is already saved.
func (c Collection) Contains(id VideoID) bool {
	_, ok := c.Get(id)
	return ok
}

// Add resolves rawInput and prepends the resulting favorite.
// On error the receiver is returned unchanged along with ErrInvalidInput
// or ErrDuplicateEntry.
func (c Collection) Add(rawInput string, now time.Time) (Collection, Favorite, error) {
	id, ok := ResolveVideoID(rawInput)
	if !ok {
		return c, Favorite{}, ErrInvalidInput
	}
	if c.Contains(id) {
		return c, Favorite{}, ErrDuplicateEntry
	}

	fav := NewFavorite(id, IsShortInput(rawInput), now)

	items := make([]Favorite, 0, len(c.items)+1)
	items = append(items, fav)
	items = append(items, c.items...)

	return Collection{items: items}, fav, nil
}

// Remove drops the favorite with the given id. Removing an unknown id
// returns an equal collection.
func (c Collection) Remove(id VideoID) Collection {
	items := make([]Favorite, 0, len(c.items))
	for _, f := range c.items {
		if f.ID != id {
			items = append(items, f)
		}
	}
	return Collection{items: items}
}

// Clear returns an empty collection. Asking the user for confirmation is
// up to the caller.
func Clear() Collection {
	return Collection{}
}
