// Package imageurl turns content API image descriptors into renderable URLs.
package imageurl

import (
	"strings"

	"finitefield.org/catalog-web/internal/catalog"
)

// DefaultPlaceholder is served from the public assets directory.
const DefaultPlaceholder = "/assets/placeholder.svg"

const localAssetPrefix = "/assets/"

// Card priority favours bandwidth-friendly renditions for grids and rails.
var cardPriority = []string{catalog.FormatMedium, catalog.FormatSmall, catalog.FormatThumbnail}

// Detail priority favours fidelity for the product detail view.
var detailPriority = []string{catalog.FormatLarge, catalog.FormatMedium, catalog.FormatSmall, catalog.FormatThumbnail}

// Resolver normalizes image URLs against the content API base URL.
type Resolver struct {
	baseURL     string
	placeholder string
}

// New builds a Resolver. An empty placeholder selects DefaultPlaceholder.
func New(baseURL, placeholder string) Resolver {
	placeholder = strings.TrimSpace(placeholder)
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	return Resolver{
		baseURL:     strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		placeholder: placeholder,
	}
}

// BaseURL returns the configured base URL without a trailing slash.
func (r Resolver) BaseURL() string { return r.baseURL }

// Placeholder returns the placeholder image URL.
func (r Resolver) Placeholder() string { return r.placeholder }

// Card resolves the primary image of a list for cards and rails. It reports
// false when there is nothing to show so callers can render a text stand-in.
func (r Resolver) Card(images []catalog.ImageVariant) (string, bool) {
	if len(images) == 0 {
		return "", false
	}
	return r.Absolute(pick(images[0], cardPriority))
}

// Detail resolves one image for the product detail view. It always returns
// something renderable, falling back to the placeholder.
func (r Resolver) Detail(image *catalog.ImageVariant) string {
	if image == nil {
		return r.placeholder
	}
	return r.OrPlaceholder(r.Absolute(pick(*image, detailPriority)))
}

// Original resolves the image's own URL, ignoring renditions.
func (r Resolver) Original(image catalog.ImageVariant) (string, bool) {
	return r.Absolute(image.URL)
}

// Absolute normalizes raw: absolute http(s) URLs and local assets pass
// through unchanged, CMS paths are joined onto the base URL. It reports false
// when raw is empty or when a CMS path cannot be resolved without a base URL.
func (r Resolver) Absolute(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return "", false
	case strings.HasPrefix(raw, "http"):
		return raw, true
	case IsLocal(raw):
		return raw, true
	case r.baseURL == "":
		return "", false
	case strings.HasPrefix(raw, "/"):
		return r.baseURL + raw, true
	default:
		return r.baseURL + "/" + raw, true
	}
}

// OrPlaceholder returns url when ok, otherwise the placeholder.
func (r Resolver) OrPlaceholder(url string, ok bool) string {
	if !ok || url == "" {
		return r.placeholder
	}
	return url
}

// IsLocal reports whether raw points at an asset served by this site.
func IsLocal(raw string) bool {
	return strings.Contains(raw, "/placeholder.svg") || strings.HasPrefix(raw, localAssetPrefix)
}

func pick(v catalog.ImageVariant, priority []string) string {
	for _, name := range priority {
		if u := v.FormatURL(name); u != "" {
			return u
		}
	}
	return strings.TrimSpace(v.URL)
}
