// Package handlers holds the view models rendered by the storefront templates
// and the builders that project catalog data onto them.
package handlers

import (
	"finitefield.org/catalog-web/internal/nav"
	"finitefield.org/catalog-web/internal/seo"
)

// Content template names selected by the base layout.
const (
	PageHome     = "home"
	PageLineup   = "lineup"
	PageProduct  = "product"
	PageNotFound = "notfound"
)

// PageData is the view model for every full page using the shared layout.
type PageData struct {
	Page  string
	Lang  string
	Brand string
	SEO   seo.Meta

	Path        string
	Nav         []nav.RenderedItem
	Footer      []nav.FooterColumn
	Breadcrumbs []nav.Crumb
	CSRFToken   string
	Year        int

	// Exactly one payload is set, matching Page.
	Home    *HomeView
	Lineup  *LineupView
	Product *ProductView
}

// HomeView is the landing page: hero banner plus the recommended rail.
type HomeView struct {
	BannerURL   string
	BannerAlt   string
	HeroTitle   string
	Recommended RailView
}

// LineupView is the /details page.
type LineupView struct {
	BannerURL string
	Grid      GridView
	Gallery   CarouselView
}

// ProductView is the product detail page.
type ProductView struct {
	ID              int
	Slug            string
	Title           string
	Category        string
	Series          string
	IsNew           bool
	ReleaseDate     string
	Price           string
	Sizes           []SizeOption
	SelectedSize    string
	DescriptionHTML any
	Images          CarouselView
	Hearted         bool
}

// SizeOption is one size button.
type SizeOption struct {
	Label    string
	Selected bool
}
