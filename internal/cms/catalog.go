package cms

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"finitefield.org/catalog-web/internal/catalog"
	"finitefield.org/catalog-web/internal/imageurl"
)

// bannerAsset identifies the hero banner among the gallery uploads.
const bannerAsset = "gav01_1920x612_1_8a973f6ebb.avif"

// Products lists every product. Remote failures are logged and replaced by
// the built-in catalog, so the result is never nil.
func (c *Client) Products(ctx context.Context) []catalog.Product {
	products, _ := c.ProductsWithSource(ctx)
	return products
}

// ProductsWithSource is Products that also reports whether the built-in
// catalog was substituted, so pages can offer an inline retry.
func (c *Client) ProductsWithSource(ctx context.Context) ([]catalog.Product, bool) {
	v, err := c.load(ctx, productsPath, decodeProducts)
	if err != nil {
		c.warnFallback("products", err)
		return catalog.FallbackProducts(), true
	}
	return cloneProducts(v.([]catalog.Product)), false
}

// Categories lists every category with its products.
func (c *Client) Categories(ctx context.Context) []catalog.Category {
	v, err := c.load(ctx, categoriesPath, decodeCategories)
	if err != nil {
		c.warnFallback("categories", err)
		return catalog.FallbackCategories()
	}
	src := v.([]catalog.Category)
	out := make([]catalog.Category, len(src))
	for i, cat := range src {
		cat.Products = cloneProducts(cat.Products)
		out[i] = cat
	}
	return out
}

// ProductBySlug finds one product. When the API is down only the built-in
// products resolve.
func (c *Client) ProductBySlug(ctx context.Context, slug string) (catalog.Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return catalog.Product{}, ErrNotFound
	}
	p, ok := catalog.FindBySlug(c.Products(ctx), slug)
	if !ok {
		return catalog.Product{}, ErrNotFound
	}
	return p, nil
}

// Slugs lists product slugs for the sitemap.
func (c *Client) Slugs(ctx context.Context) []string {
	products := c.Products(ctx)
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Slug)
	}
	return out
}

func (c *Client) galleries(ctx context.Context) ([]catalog.Gallery, error) {
	v, err := c.load(ctx, galleriesPath, decodeGalleries)
	if err != nil {
		return nil, err
	}
	return v.([]catalog.Gallery), nil
}

// GalleryImages returns the first gallery's carousel images.
func (c *Client) GalleryImages(ctx context.Context) []catalog.ImageVariant {
	galleries, err := c.galleries(ctx)
	if err != nil {
		c.warnFallback("gallery", err)
		return catalog.FallbackGallery()
	}
	if len(galleries) == 0 {
		return []catalog.ImageVariant{}
	}
	return cloneImages(galleries[0].Images)
}

// Banner returns the hero banner URL, preferring the dedicated upload in any
// gallery and falling back to the local banner.
func (c *Client) Banner(ctx context.Context) string {
	galleries, err := c.galleries(ctx)
	if err != nil {
		c.warnFallback("banner", err)
		return catalog.FallbackBanner()
	}
	resolver := imageurl.New(c.baseURL, "")
	for _, g := range galleries {
		for _, img := range g.Images {
			if !strings.Contains(img.URL, bannerAsset) {
				continue
			}
			if u, ok := resolver.Original(img); ok {
				return u
			}
		}
	}
	return catalog.FallbackBanner()
}

// Lineup is everything the lineup page shows.
type Lineup struct {
	Categories []catalog.Category
	Gallery    []catalog.ImageVariant
	Banner     string
}

// Lineup loads categories, gallery and banner concurrently. Fetch failures
// fall back to built-in data; the only error is ctx ending before the loads
// finish.
func (c *Client) Lineup(ctx context.Context) (Lineup, error) {
	var out Lineup
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out.Categories = c.Categories(gctx)
		return gctx.Err()
	})
	g.Go(func() error {
		out.Gallery = c.GalleryImages(gctx)
		return gctx.Err()
	})
	g.Go(func() error {
		out.Banner = c.Banner(gctx)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return Lineup{}, err
	}
	return out, nil
}

func cloneProducts(src []catalog.Product) []catalog.Product {
	out := make([]catalog.Product, len(src))
	for i, p := range src {
		out[i] = catalog.CloneProduct(p)
	}
	return out
}

func cloneImages(src []catalog.ImageVariant) []catalog.ImageVariant {
	return catalog.CloneProduct(catalog.Product{Images: src}).Images
}
