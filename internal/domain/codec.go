package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// favoriteRecord is the persisted shape of a Favorite.
// addedAt is an epoch timestamp in milliseconds.
type favoriteRecord struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	AddedAt int64  `json:"addedAt"`
	IsShort bool   `json:"isShort"`
}

// MarshalJSON encodes a favorite in its persisted form.
func (f Favorite) MarshalJSON() ([]byte, error) {
	return json.Marshal(favoriteRecord{
		ID:      string(f.ID),
		URL:     f.URL,
		AddedAt: f.AddedAt.UnixMilli(),
		IsShort: f.IsShort,
	})
}

// UnmarshalJSON decodes a favorite from its persisted form.
func (f *Favorite) UnmarshalJSON(data []byte) error {
	var rec favoriteRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	*f = Favorite{
		ID:      VideoID(rec.ID),
		URL:     rec.URL,
		AddedAt: time.UnixMilli(rec.AddedAt),
		IsShort: rec.IsShort,
	}
	return nil
}

// MarshalJSON encodes the collection as a JSON array, newest first.
func (c Collection) MarshalJSON() ([]byte, error) {
	if c.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.items)
}

// UnmarshalJSON decodes a JSON array of favorites.
// null decodes to an empty collection.
func (c *Collection) UnmarshalJSON(data []byte) error {
	var items []Favorite
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*c = NewCollection(items)
	return nil
}

// EncodeCollection serializes c into the blob handed to persistence.
func EncodeCollection(c Collection) ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode favorites: %w", err)
	}
	return data, nil
}

// DecodeCollection parses a persisted blob. An empty blob is an empty
// collection; a malformed one is an error the caller may log and treat as
// empty.
func DecodeCollection(blob []byte) (Collection, error) {
	if len(bytes.TrimSpace(blob)) == 0 {
		return Collection{}, nil
	}

	var c Collection
	if err := json.Unmarshal(blob, &c); err != nil {
		return Collection{}, fmt.Errorf("failed to decode favorites: %w", err)
	}
	return c, nil
}
