// Package seo builds page metadata, schema.org JSON-LD and the sitemap.
package seo

import (
	"strings"

	"finitefield.org/catalog-web/internal/richtext"
)

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
}

type Twitter struct {
	Card  string
	Image string
}

// Meta is everything the base layout renders into <head>.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Twitter     Twitter
	// Extra is rendered as <meta property=key content=value>.
	Extra  map[string]string
	JSONLD []string
}

// ProductDescription returns the description text capped for meta tags, or a
// generated line when the product has no description.
func ProductDescription(text, title, brand string) string {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return title + " - Premium " + brand + " timepiece"
	}
	return richtext.Truncate(text, richtext.MetaDescriptionLimit)
}

// Absolute joins a site-relative path onto siteURL.
func Absolute(siteURL, p string) string {
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	siteURL = strings.TrimRight(siteURL, "/")
	if p == "" || p == "/" {
		return siteURL
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return siteURL + p
}
