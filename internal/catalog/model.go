package catalog

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Image format names used by the content API.
const (
	FormatThumbnail = "thumbnail"
	FormatSmall     = "small"
	FormatMedium    = "medium"
	FormatLarge     = "large"
)

const (
	untitledProduct = "Untitled Product"
	defaultCurrency = "USD"
)

// Format is a single rendition of an image.
type Format struct {
	URL string
}

// ImageVariant is an uploaded image plus its optional renditions keyed by format name.
type ImageVariant struct {
	ID              int
	URL             string
	Name            string
	AlternativeText string
	Caption         string
	Formats         map[string]Format
}

// FormatURL returns the URL of the named rendition, or "" when it is absent.
func (v ImageVariant) FormatURL(name string) string {
	if v.Formats == nil {
		return ""
	}
	return strings.TrimSpace(v.Formats[name].URL)
}

// Alt picks the best available alternative text for the image.
func (v ImageVariant) Alt(fallback string) string {
	for _, s := range []string{v.AlternativeText, v.Name, v.Caption} {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return fallback
}

// CategoryRef is the category summary attached to a product.
type CategoryRef struct {
	ID   int
	Name string
	Slug string
}

// Size is a selectable product size.
type Size struct {
	ID   int
	Size string
}

// Span is an inline run of description text.
type Span struct {
	Text string
}

// Block is one rich-text description block (paragraph, heading, list...).
type Block struct {
	Type     string
	Level    int
	Children []Span
}

// Text joins the block's spans with single spaces.
func (b Block) Text() string {
	parts := make([]string, 0, len(b.Children))
	for _, c := range b.Children {
		if t := strings.TrimSpace(c.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// Product is a catalog item.
type Product struct {
	ID          int
	Slug        string
	Title       string
	Price       decimal.Decimal
	Currency    string
	Images      []ImageVariant
	Category    *CategoryRef
	Sizes       []Size
	Description []Block
	Series      string
	IsNew       bool
	ReleaseDate string
	UpdatedAt   time.Time
}

// Normalize fills in the defaults applied to partially populated API records.
func (p Product) Normalize() Product {
	p.Slug = strings.TrimSpace(p.Slug)
	if p.Slug == "" {
		p.Slug = "product-" + strconv.Itoa(p.ID)
	}
	if strings.TrimSpace(p.Title) == "" {
		p.Title = untitledProduct
	}
	if p.Currency == "" {
		p.Currency = defaultCurrency
	}
	if p.Images == nil {
		p.Images = []ImageVariant{}
	}
	return p
}

// DescriptionText flattens the description blocks into one string.
func (p Product) DescriptionText() string {
	parts := make([]string, 0, len(p.Description))
	for _, b := range p.Description {
		if t := b.Text(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// Category groups products under a display name.
type Category struct {
	ID       int
	Name     string
	Slug     string
	Products []Product
}

// Gallery is a named set of carousel images.
type Gallery struct {
	ID     int
	Images []ImageVariant
}

// AllProducts flattens categories into one list in category order.
func AllProducts(categories []Category) []Product {
	var out []Product
	for _, c := range categories {
		out = append(out, c.Products...)
	}
	if out == nil {
		out = []Product{}
	}
	return out
}

// FindBySlug returns the product whose slug matches exactly.
func FindBySlug(products []Product, slug string) (Product, bool) {
	for _, p := range products {
		if p.Slug == slug {
			return p, true
		}
	}
	return Product{}, false
}
