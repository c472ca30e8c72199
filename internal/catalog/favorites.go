package catalog

import (
	"sort"
	"strconv"
	"strings"
)

// Favorites is the set of hearted product ids for one browsing session.
// It is never persisted; pages carry it in their own form state.
type Favorites struct {
	ids map[int]struct{}
}

// NewFavorites builds a set from ids.
func NewFavorites(ids ...int) Favorites {
	f := Favorites{ids: make(map[int]struct{}, len(ids))}
	for _, id := range ids {
		f.ids[id] = struct{}{}
	}
	return f
}

// ParseFavorites decodes a comma separated id list, ignoring junk.
func ParseFavorites(raw string) Favorites {
	f := NewFavorites()
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		f.ids[id] = struct{}{}
	}
	return f
}

// Has reports whether id is hearted.
func (f Favorites) Has(id int) bool {
	_, ok := f.ids[id]
	return ok
}

// Len returns the number of hearted ids.
func (f Favorites) Len() int { return len(f.ids) }

// Toggle flips membership of id and reports the new state.
func (f *Favorites) Toggle(id int) bool {
	if f.ids == nil {
		f.ids = map[int]struct{}{}
	}
	if _, ok := f.ids[id]; ok {
		delete(f.ids, id)
		return false
	}
	f.ids[id] = struct{}{}
	return true
}

// IDs returns the hearted ids in ascending order.
func (f Favorites) IDs() []int {
	out := make([]int, 0, len(f.ids))
	for id := range f.ids {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Encode is the inverse of ParseFavorites.
func (f Favorites) Encode() string {
	ids := f.IDs()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
