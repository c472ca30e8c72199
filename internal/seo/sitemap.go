package seo

import (
	"encoding/xml"
	"time"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// SitemapURL is one <url> entry.
type SitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float64 `xml:"priority"`
}

// URLSet is the sitemap document root.
type URLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapProduct is the per-product input to Sitemap.
type SitemapProduct struct {
	Slug      string
	UpdatedAt time.Time
}

// Sitemap lists the home page (1.0, daily), the lineup page (0.9, weekly) and
// every product page (0.8, weekly). Products without an update time are
// stamped with now.
func Sitemap(siteURL string, products []SitemapProduct, now time.Time) URLSet {
	stamp := func(t time.Time) string {
		if t.IsZero() {
			t = now
		}
		return t.UTC().Format(time.RFC3339)
	}
	set := URLSet{
		Xmlns: sitemapNS,
		URLs: []SitemapURL{
			{Loc: Absolute(siteURL, "/"), LastMod: stamp(now), ChangeFreq: "daily", Priority: 1.0},
			{Loc: Absolute(siteURL, "/details"), LastMod: stamp(now), ChangeFreq: "weekly", Priority: 0.9},
		},
	}
	for _, p := range products {
		set.URLs = append(set.URLs, SitemapURL{
			Loc:        Absolute(siteURL, "/product/"+p.Slug),
			LastMod:    stamp(p.UpdatedAt),
			ChangeFreq: "weekly",
			Priority:   0.8,
		})
	}
	return set
}

// Marshal renders the sitemap with the XML declaration.
func (s URLSet) Marshal() ([]byte, error) {
	body, err := xml.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
