package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var baseTime = time.Date(2025, 3, 14, 15, 9, 26, 535_000_000, time.UTC)

func mustAdd(t *testing.T, c Collection, input string, now time.Time) Collection {
	t.Helper()
	next, _, err := c.Add(input, now)
	if err != nil {
		t.Fatalf("Add(%q) error = %v", input, err)
	}
	return next
}

func TestCollectionAddScenario(t *testing.T) {
	c, fav, err := Collection{}.Add(rickID, baseTime)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	want := []Favorite{{
		ID:      rickID,
		URL:     "https://www.youtube.com/watch?v=" + rickID,
		AddedAt: baseTime,
		IsShort: false,
	}}

	if diff := cmp.Diff(want, c.Items()); diff != "" {
		t.Errorf("Add() collection mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want[0], fav); diff != "" {
		t.Errorf("Add() favorite mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectionAddShorts(t *testing.T) {
	c := mustAdd(t, Collection{}, "https://youtube.com/shorts/"+rickID+"?feature=share", baseTime)

	fav, ok := c.Get(rickID)
	if !ok {
		t.Fatal("Get() did not find added favorite")
	}
	if !fav.IsShort {
		t.Error("IsShort = false, want true for shorts input")
	}
	if fav.URL != CanonicalURL(rickID) {
		t.Errorf("URL = %q, want canonical watch url", fav.URL)
	}
}

func TestCollectionAddInvalidInput(t *testing.T) {
	start := mustAdd(t, Collection{}, rickID, baseTime)

	for _, input := range []string{"", "   ", "too-short", "https://www.youtube.com/watch?v=SHORTID123"} {
		got, _, err := start.Add(input, baseTime)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Add(%q) error = %v, want ErrInvalidInput", input, err)
		}
		if diff := cmp.Diff(start.Items(), got.Items()); diff != "" {
			t.Errorf("Add(%q) changed collection on error (-want +got):\n%s", input, diff)
		}
	}
}

func TestCollectionAddDuplicate(t *testing.T) {
	input := "https://youtu.be/" + rickID

	first := mustAdd(t, Collection{}, input, baseTime)

	second, _, err := first.Add(input, baseTime.Add(time.Minute))
	if !errors.Is(err, ErrDuplicateEntry) {
		t.Fatalf("second Add() error = %v, want ErrDuplicateEntry", err)
	}
	if diff := cmp.Diff(first.Items(), second.Items()); diff != "" {
		t.Errorf("duplicate Add() changed collection (-want +got):\n%s", diff)
	}

	// A different spelling of the same video is still a duplicate.
	_, _, err = first.Add("https://www.youtube.com/watch?v="+rickID, baseTime)
	if !errors.Is(err, ErrDuplicateEntry) {
		t.Errorf("Add(watch url) error = %v, want ErrDuplicateEntry", err)
	}
}

func TestCollectionAddNewestFirst(t *testing.T) {
	c := mustAdd(t, Collection{}, "https://youtu.be/aaaaaaaaaaa", baseTime)
	c = mustAdd(t, c, "https://youtu.be/bbbbbbbbbbb", baseTime.Add(time.Second))
	c = mustAdd(t, c, "ccccccccccc", baseTime.Add(2*time.Second))

	got := make([]VideoID, 0, c.Len())
	for _, f := range c.Items() {
		got = append(got, f.ID)
	}

	want := []VideoID{"ccccccccccc", "bbbbbbbbbbb", "aaaaaaaaaaa"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectionAddDoesNotMutateReceiver(t *testing.T) {
	a := mustAdd(t, Collection{}, "aaaaaaaaaaa", baseTime)
	b := mustAdd(t, a, "bbbbbbbbbbb", baseTime)

	if a.Len() != 1 {
		t.Errorf("receiver Len() = %d after Add, want 1", a.Len())
	}
	if b.Len() != 2 {
		t.Errorf("result Len() = %d, want 2", b.Len())
	}
}

func TestCollectionAddTruncatesToMillis(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 123_456_789, time.UTC)
	_, fav, err := Collection{}.Add(rickID, now)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if !fav.AddedAt.Equal(now.Truncate(time.Millisecond)) {
		t.Errorf("AddedAt = %v, want %v", fav.AddedAt, now.Truncate(time.Millisecond))
	}
}

func TestCollectionRemove(t *testing.T) {
	c := mustAdd(t, Collection{}, "aaaaaaaaaaa", baseTime)
	c = mustAdd(t, c, "bbbbbbbbbbb", baseTime)
	c = mustAdd(t, c, "ccccccccccc", baseTime)

	t.Run("existing id", func(t *testing.T) {
		got := c.Remove("bbbbbbbbbbb")
		if got.Len() != 2 {
			t.Fatalf("Len() = %d, want 2", got.Len())
		}
		if got.Contains("bbbbbbbbbbb") {
			t.Error("removed id still present")
		}
		if c.Len() != 3 {
			t.Errorf("receiver Len() = %d after Remove, want 3", c.Len())
		}
		items := got.Items()
		if items[0].ID != "ccccccccccc" || items[1].ID != "aaaaaaaaaaa" {
			t.Errorf("order after Remove = [%s %s], want [ccccccccccc aaaaaaaaaaa]", items[0].ID, items[1].ID)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		got := c.Remove("zzzzzzzzzzz")
		if diff := cmp.Diff(c.Items(), got.Items()); diff != "" {
			t.Errorf("Remove(missing) changed collection (-want +got):\n%s", diff)
		}
	})

	t.Run("empty collection", func(t *testing.T) {
		got := Collection{}.Remove(rickID)
		if !got.IsEmpty() {
			t.Errorf("Remove on empty returned %d items", got.Len())
		}
	})
}

func TestClear(t *testing.T) {
	c := mustAdd(t, Collection{}, rickID, baseTime)
	if cleared := Clear(); !cleared.IsEmpty() {
		t.Errorf("Clear() Len() = %d, want 0", cleared.Len())
	}
	if c.Len() != 1 {
		t.Errorf("Clear() affected an existing collection")
	}
}

func TestNewCollectionDropsInvalidAndDuplicates(t *testing.T) {
	c := NewCollection([]Favorite{
		NewFavorite("aaaaaaaaaaa", false, baseTime),
		NewFavorite("bad", false, baseTime),
		NewFavorite("aaaaaaaaaaa", true, baseTime),
		NewFavorite("bbbbbbbbbbb", true, baseTime),
	})

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	first, _ := c.Get("aaaaaaaaaaa")
	if first.IsShort {
		t.Error("duplicate replaced the first entry, want first occurrence kept")
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	c := mustAdd(t, Collection{}, rickID, baseTime)
	items := c.Items()
	items[0].ID = "mutatedmutat"

	if _, ok := c.Get(rickID); !ok {
		t.Error("mutating Items() result changed the collection")
	}
}
