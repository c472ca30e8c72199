package handlers

import (
	"strconv"

	"finitefield.org/catalog-web/internal/catalog"
	"finitefield.org/catalog-web/internal/format"
	"finitefield.org/catalog-web/internal/imageurl"
)

// ProductCard is one product tile in rails and grids.
type ProductCard struct {
	ID       int
	Slug     string
	Href     string
	Title    string
	Brand    string
	Price    string
	ImageURL string
	HasImage bool
	Alt      string
	Hearted  bool
}

// Cards projects products onto card view models.
type Cards struct {
	Resolver imageurl.Resolver
	Brand    string
}

// Card builds one card. Products without a resolvable image get HasImage
// false and render their title in place of the picture.
func (c Cards) Card(p catalog.Product, favorites catalog.Favorites) ProductCard {
	url, ok := c.Resolver.Card(p.Images)
	alt := p.Title
	if len(p.Images) > 0 {
		alt = p.Images[0].Alt(p.Title)
	}
	return ProductCard{
		ID:       p.ID,
		Slug:     p.Slug,
		Href:     "/product/" + p.Slug,
		Title:    p.Title,
		Brand:    c.Brand,
		Price:    format.Price(p.Price, p.Currency),
		ImageURL: url,
		HasImage: ok,
		Alt:      alt,
		Hearted:  favorites.Has(p.ID),
	}
}

// List builds cards for every product in order.
func (c Cards) List(products []catalog.Product, favorites catalog.Favorites) []ProductCard {
	out := make([]ProductCard, 0, len(products))
	for _, p := range products {
		out = append(out, c.Card(p, favorites))
	}
	return out
}

// Key is a stable DOM id for a card; duplicated products in a filtered grid
// get distinct keys by position.
func (pc ProductCard) Key(pos int) string {
	return "product-" + strconv.Itoa(pc.ID) + "-" + strconv.Itoa(pos)
}
