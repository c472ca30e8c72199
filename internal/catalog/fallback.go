package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed fallback.yaml
var fallbackYAML []byte

type fallbackFile struct {
	Products   []fallbackProduct  `yaml:"products"`
	Categories []fallbackCategory `yaml:"categories"`
	Gallery    []fallbackImage    `yaml:"gallery"`
	Banner     string             `yaml:"banner"`
}

type fallbackProduct struct {
	ID          int               `yaml:"id"`
	Slug        string            `yaml:"slug"`
	Title       string            `yaml:"title"`
	Price       string            `yaml:"price"`
	Category    *fallbackCategory `yaml:"category"`
	Sizes       []struct {
		ID   int    `yaml:"id"`
		Size string `yaml:"size"`
	} `yaml:"sizes"`
	Series      string `yaml:"series"`
	IsNew       bool   `yaml:"is_new"`
	ReleaseDate string `yaml:"release_date"`
	Description []struct {
		Type     string `yaml:"type"`
		Children []struct {
			Text string `yaml:"text"`
		} `yaml:"children"`
	} `yaml:"description"`
	Images []fallbackImage `yaml:"images"`
}

type fallbackCategory struct {
	ID       int      `yaml:"id"`
	Name     string   `yaml:"name"`
	Slug     string   `yaml:"slug"`
	Products []string `yaml:"products"`
}

type fallbackImage struct {
	ID              int               `yaml:"id"`
	URL             string            `yaml:"url"`
	Name            string            `yaml:"name"`
	AlternativeText string            `yaml:"alternative_text"`
	Caption         string            `yaml:"caption"`
	Formats         map[string]string `yaml:"formats"`
}

type fallbackData struct {
	products   []Product
	categories []Category
	gallery    []ImageVariant
	banner     string
}

var (
	fallbackOnce sync.Once
	fallback     fallbackData
	fallbackErr  error
)

func loadFallback() (fallbackData, error) {
	fallbackOnce.Do(func() {
		fallback, fallbackErr = parseFallback(fallbackYAML)
	})
	return fallback, fallbackErr
}

func parseFallback(raw []byte) (fallbackData, error) {
	var file fallbackFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fallbackData{}, fmt.Errorf("catalog: parse fallback: %w", err)
	}
	data := fallbackData{banner: file.Banner}
	bySlug := make(map[string]Product, len(file.Products))
	for _, fp := range file.Products {
		price, err := decimal.NewFromString(fp.Price)
		if err != nil {
			return fallbackData{}, fmt.Errorf("catalog: fallback price for %s: %w", fp.Slug, err)
		}
		p := Product{
			ID:          fp.ID,
			Slug:        fp.Slug,
			Title:       fp.Title,
			Price:       price,
			Series:      fp.Series,
			IsNew:       fp.IsNew,
			ReleaseDate: fp.ReleaseDate,
		}
		if fp.Category != nil {
			p.Category = &CategoryRef{ID: fp.Category.ID, Name: fp.Category.Name, Slug: fp.Category.Slug}
		}
		for _, s := range fp.Sizes {
			p.Sizes = append(p.Sizes, Size{ID: s.ID, Size: s.Size})
		}
		for _, b := range fp.Description {
			block := Block{Type: b.Type}
			for _, c := range b.Children {
				block.Children = append(block.Children, Span{Text: c.Text})
			}
			p.Description = append(p.Description, block)
		}
		for _, img := range fp.Images {
			p.Images = append(p.Images, img.variant())
		}
		p = p.Normalize()
		data.products = append(data.products, p)
		bySlug[p.Slug] = p
	}
	for _, fc := range file.Categories {
		c := Category{ID: fc.ID, Name: fc.Name, Slug: fc.Slug, Products: []Product{}}
		for _, slug := range fc.Products {
			p, ok := bySlug[slug]
			if !ok {
				return fallbackData{}, fmt.Errorf("catalog: fallback category %q references unknown product %q", fc.Name, slug)
			}
			c.Products = append(c.Products, p)
		}
		data.categories = append(data.categories, c)
	}
	for _, img := range file.Gallery {
		data.gallery = append(data.gallery, img.variant())
	}
	return data, nil
}

func (fi fallbackImage) variant() ImageVariant {
	v := ImageVariant{
		ID:              fi.ID,
		URL:             fi.URL,
		Name:            fi.Name,
		AlternativeText: fi.AlternativeText,
		Caption:         fi.Caption,
	}
	if len(fi.Formats) > 0 {
		v.Formats = make(map[string]Format, len(fi.Formats))
		for name, u := range fi.Formats {
			v.Formats[name] = Format{URL: u}
		}
	}
	return v
}

func mustFallback() fallbackData {
	data, err := loadFallback()
	if err != nil {
		panic(err)
	}
	return data
}

// FallbackProducts returns a fresh copy of the built-in product list.
func FallbackProducts() []Product {
	return cloneProducts(mustFallback().products)
}

// FallbackCategories returns a fresh copy of the built-in categories.
func FallbackCategories() []Category {
	src := mustFallback().categories
	out := make([]Category, len(src))
	for i, c := range src {
		c.Products = cloneProducts(c.Products)
		out[i] = c
	}
	return out
}

// FallbackGallery returns a fresh copy of the built-in gallery images.
func FallbackGallery() []ImageVariant {
	return cloneImages(mustFallback().gallery)
}

// FallbackBanner returns the local hero banner path.
func FallbackBanner() string {
	return mustFallback().banner
}

func cloneProducts(src []Product) []Product {
	out := make([]Product, len(src))
	for i, p := range src {
		out[i] = CloneProduct(p)
	}
	return out
}

// CloneProduct deep-copies a product so callers may not alias shared slices.
func CloneProduct(p Product) Product {
	cp := p
	cp.Images = cloneImages(p.Images)
	if p.Category != nil {
		c := *p.Category
		cp.Category = &c
	}
	if p.Sizes != nil {
		cp.Sizes = append([]Size(nil), p.Sizes...)
	}
	if p.Description != nil {
		cp.Description = make([]Block, len(p.Description))
		for i, b := range p.Description {
			b.Children = append([]Span(nil), b.Children...)
			cp.Description[i] = b
		}
	}
	return cp
}

func cloneImages(src []ImageVariant) []ImageVariant {
	if src == nil {
		return []ImageVariant{}
	}
	out := make([]ImageVariant, len(src))
	for i, v := range src {
		if v.Formats != nil {
			f := make(map[string]Format, len(v.Formats))
			for k, val := range v.Formats {
				f[k] = val
			}
			v.Formats = f
		}
		out[i] = v
	}
	return out
}
