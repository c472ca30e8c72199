package catalog

import (
	"strconv"
	"strings"
)

// AllCategories is the pseudo category id that clears the selection.
const AllCategories = "all"

// Selection is the ordered set of selected category ids. The zero value
// selects nothing, which means "show everything".
type Selection struct {
	ids []int
}

// NewSelection builds a selection from ids, dropping duplicates.
func NewSelection(ids ...int) Selection {
	var s Selection
	for _, id := range ids {
		if !s.Has(id) {
			s.ids = append(s.ids, id)
		}
	}
	return s
}

// ParseSelection reads category ids from query values. Unparseable entries
// are ignored; "all" anywhere clears the selection.
func ParseSelection(values []string) Selection {
	var ids []int
	for _, raw := range values {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if strings.EqualFold(part, AllCategories) {
				return Selection{}
			}
			id, err := strconv.Atoi(part)
			if err != nil {
				continue
			}
			ids = append(ids, id)
		}
	}
	return NewSelection(ids...)
}

// Empty reports whether no category is selected.
func (s Selection) Empty() bool { return len(s.ids) == 0 }

// Has reports whether id is selected.
func (s Selection) Has(id int) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// IDs returns a copy of the selected ids in selection order.
func (s Selection) IDs() []int {
	out := make([]int, len(s.ids))
	copy(out, s.ids)
	return out
}

// Toggle deselects id if selected, otherwise appends it.
func (s Selection) Toggle(id int) Selection {
	if !s.Has(id) {
		next := make([]int, 0, len(s.ids)+1)
		next = append(next, s.ids...)
		return Selection{ids: append(next, id)}
	}
	next := make([]int, 0, len(s.ids))
	for _, v := range s.ids {
		if v != id {
			next = append(next, v)
		}
	}
	return Selection{ids: next}
}

// ToggleAll returns the empty selection.
func (s Selection) ToggleAll() Selection { return Selection{} }

// Values encodes the selection as query values.
func (s Selection) Values() []string {
	out := make([]string, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, strconv.Itoa(id))
	}
	return out
}

// FilterProducts projects the product list for a selection. An empty
// selection returns all unchanged. Otherwise the products of each selected
// category are concatenated in category order; a product listed under two
// selected categories appears twice.
func FilterProducts(sel Selection, categories []Category, all []Product) []Product {
	if sel.Empty() {
		return all
	}
	out := []Product{}
	for _, c := range categories {
		if sel.Has(c.ID) {
			out = append(out, c.Products...)
		}
	}
	return out
}
