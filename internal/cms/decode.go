package cms

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"finitefield.org/catalog-web/internal/catalog"
)

type rawFormat struct {
	URL string `json:"url"`
}

type rawImage struct {
	ID              int                  `json:"id"`
	URL             string               `json:"url"`
	Name            string               `json:"name"`
	AlternativeText string               `json:"alternativeText"`
	Caption         string               `json:"caption"`
	Formats         map[string]rawFormat `json:"formats"`
}

type rawCategoryRef struct {
	ID   int    `json:"id"`
	Name string `json:"Name"`
	Slug string `json:"slug"`
}

type rawSize struct {
	ID   int    `json:"id"`
	Size string `json:"size"`
}

type rawSpan struct {
	Text string `json:"text"`
}

type rawBlock struct {
	Type     string    `json:"type"`
	Level    int       `json:"level"`
	Children []rawSpan `json:"children"`
}

type rawProduct struct {
	ID          int             `json:"id"`
	Slug        string          `json:"slug"`
	Title       string          `json:"title"`
	Price       json.RawMessage `json:"price"`
	Images      []rawImage      `json:"images"`
	Catagory    *rawCategoryRef `json:"catagory"`
	Sizes       []rawSize       `json:"size"`
	Description []rawBlock      `json:"Description"`
	Series      string          `json:"series"`
	IsNew       bool            `json:"isNew"`
	ReleaseDate string          `json:"releaseDate"`
	UpdatedAt   string          `json:"updatedAt"`
}

type rawCategory struct {
	ID       int          `json:"id"`
	Name     string       `json:"Name"`
	Slug     string       `json:"slug"`
	Products []rawProduct `json:"products"`
}

type rawGallery struct {
	ID      int        `json:"id"`
	Carosel []rawImage `json:"carosel"`
}

func decodeProducts(body []byte) (any, error) {
	raws, err := decodeEnvelope[rawProduct](body)
	if err != nil {
		return nil, err
	}
	out := make([]catalog.Product, 0, len(raws))
	for _, r := range raws {
		out = append(out, r.product())
	}
	return out, nil
}

func decodeCategories(body []byte) (any, error) {
	raws, err := decodeEnvelope[rawCategory](body)
	if err != nil {
		return nil, err
	}
	out := make([]catalog.Category, 0, len(raws))
	for _, r := range raws {
		c := catalog.Category{ID: r.ID, Name: r.Name, Slug: r.Slug, Products: make([]catalog.Product, 0, len(r.Products))}
		for _, p := range r.Products {
			c.Products = append(c.Products, p.product())
		}
		out = append(out, c)
	}
	return out, nil
}

func decodeGalleries(body []byte) (any, error) {
	raws, err := decodeEnvelope[rawGallery](body)
	if err != nil {
		return nil, err
	}
	out := make([]catalog.Gallery, 0, len(raws))
	for _, r := range raws {
		g := catalog.Gallery{ID: r.ID, Images: make([]catalog.ImageVariant, 0, len(r.Carosel))}
		for _, img := range r.Carosel {
			g.Images = append(g.Images, img.variant())
		}
		out = append(out, g)
	}
	return out, nil
}

func (r rawProduct) product() catalog.Product {
	p := catalog.Product{
		ID:          r.ID,
		Slug:        r.Slug,
		Title:       r.Title,
		Price:       parsePrice(r.Price),
		Series:      strings.TrimSpace(r.Series),
		IsNew:       r.IsNew,
		ReleaseDate: strings.TrimSpace(r.ReleaseDate),
		UpdatedAt:   parseTime(r.UpdatedAt),
	}
	for _, img := range r.Images {
		p.Images = append(p.Images, img.variant())
	}
	if r.Catagory != nil {
		p.Category = &catalog.CategoryRef{ID: r.Catagory.ID, Name: r.Catagory.Name, Slug: r.Catagory.Slug}
	}
	for _, s := range r.Sizes {
		p.Sizes = append(p.Sizes, catalog.Size{ID: s.ID, Size: s.Size})
	}
	for _, b := range r.Description {
		block := catalog.Block{Type: b.Type, Level: b.Level}
		for _, span := range b.Children {
			block.Children = append(block.Children, catalog.Span{Text: span.Text})
		}
		p.Description = append(p.Description, block)
	}
	return p.Normalize()
}

func (r rawImage) variant() catalog.ImageVariant {
	v := catalog.ImageVariant{
		ID:              r.ID,
		URL:             r.URL,
		Name:            r.Name,
		AlternativeText: r.AlternativeText,
		Caption:         r.Caption,
	}
	if len(r.Formats) > 0 {
		v.Formats = make(map[string]catalog.Format, len(r.Formats))
		for name, f := range r.Formats {
			v.Formats[name] = catalog.Format{URL: f.URL}
		}
	}
	return v
}

// parsePrice accepts both quoted and bare numbers; anything else is zero.
func parsePrice(raw json.RawMessage) decimal.Decimal {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if s == "" || s == "null" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseTime(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
