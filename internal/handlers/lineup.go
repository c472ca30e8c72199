package handlers

import (
	"net/url"
	"strconv"

	"finitefield.org/catalog-web/internal/catalog"
)

// CategoryChip is one filter toggle.
type CategoryChip struct {
	ID       int
	Name     string
	Selected bool
	// Query is the lineup query that results from clicking the chip.
	Query string
}

// GridView is the filterable product grid with hearts.
type GridView struct {
	Chips       []CategoryChip
	AllSelected bool
	AllQuery    string
	Cards       []ProductCard
	Selection   []string
	Favorites   string
}

// BuildGrid filters products by sel and marks hearted cards.
func BuildGrid(cards Cards, categories []catalog.Category, sel catalog.Selection, favorites catalog.Favorites) GridView {
	all := catalog.AllProducts(categories)
	products := catalog.FilterProducts(sel, categories, all)
	favs := favorites.Encode()

	chips := make([]CategoryChip, 0, len(categories))
	for _, c := range categories {
		chips = append(chips, CategoryChip{
			ID:       c.ID,
			Name:     c.Name,
			Selected: sel.Has(c.ID),
			Query:    LineupQuery(sel.Toggle(c.ID), favs),
		})
	}
	return GridView{
		Chips:       chips,
		AllSelected: sel.Empty(),
		AllQuery:    LineupQuery(sel.ToggleAll(), favs),
		Cards:       cards.List(products, favorites),
		Selection:   sel.Values(),
		Favorites:   favs,
	}
}

// ApplyToggle applies a single "toggle" query value to sel: "all" clears,
// an id flips membership, anything else is ignored.
func ApplyToggle(sel catalog.Selection, toggle string) catalog.Selection {
	if toggle == "" {
		return sel
	}
	if toggle == catalog.AllCategories {
		return sel.ToggleAll()
	}
	id, err := strconv.Atoi(toggle)
	if err != nil {
		return sel
	}
	return sel.Toggle(id)
}

// LineupQuery encodes a selection and favorites as /details query values.
func LineupQuery(sel catalog.Selection, favs string) string {
	q := url.Values{}
	ids := sel.Values()
	if len(ids) == 0 {
		q.Set("cat", catalog.AllCategories)
	}
	for _, id := range ids {
		q.Add("cat", id)
	}
	if favs != "" {
		q.Set("fav", favs)
	}
	return q.Encode()
}
