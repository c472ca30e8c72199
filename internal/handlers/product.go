package handlers

import (
	"strings"

	"finitefield.org/catalog-web/internal/catalog"
	"finitefield.org/catalog-web/internal/format"
	"finitefield.org/catalog-web/internal/richtext"
)

// BuildProduct projects a product onto the detail view. images is the
// already built carousel; selectedSize must match one of the product sizes
// to be marked.
func BuildProduct(p catalog.Product, renderer *richtext.Renderer, images CarouselView, selectedSize string, favorites catalog.Favorites) ProductView {
	view := ProductView{
		ID:          p.ID,
		Slug:        p.Slug,
		Title:       p.Title,
		Series:      strings.ToUpper(p.Series),
		IsNew:       p.IsNew,
		ReleaseDate: p.ReleaseDate,
		Price:       format.Price(p.Price, p.Currency),
		Images:      images,
		Hearted:     favorites.Has(p.ID),
	}
	if p.Category != nil {
		view.Category = strings.ToUpper(p.Category.Name)
	}
	for _, s := range p.Sizes {
		label := strings.TrimSpace(s.Size)
		if label == "" {
			continue
		}
		opt := SizeOption{Label: label, Selected: label == selectedSize}
		if opt.Selected {
			view.SelectedSize = label
		}
		view.Sizes = append(view.Sizes, opt)
	}
	if renderer != nil {
		view.DescriptionHTML = renderer.HTML(p.Description)
	}
	return view
}
