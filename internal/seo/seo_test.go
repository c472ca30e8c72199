package seo

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestProductDescription(t *testing.T) {
	t.Parallel()

	require.Equal(t, "X - Premium G-SHOCK timepiece", ProductDescription("  ", "X", "G-SHOCK"))
	require.Equal(t, "short text", ProductDescription("short\n text", "X", "G-SHOCK"))

	long := strings.Repeat("a", 200)
	require.Len(t, []rune(ProductDescription(long, "X", "G-SHOCK")), 160)
}

func TestAbsolute(t *testing.T) {
	t.Parallel()

	require.Equal(t, "https://shop.example.com", Absolute("https://shop.example.com/", "/"))
	require.Equal(t, "https://shop.example.com/details", Absolute("https://shop.example.com", "details"))
	require.Equal(t, "https://cdn.example.com/a.png", Absolute("https://shop.example.com", "https://cdn.example.com/a.png"))
}

func TestProductSchema(t *testing.T) {
	t.Parallel()

	raw := JSON(Product(ProductInput{
		Name:     "GAV01A-8A Silver G-SHOCK",
		URL:      "http://localhost:8080/product/GAV01A-8A-Silver",
		Brand:    "G-SHOCK",
		Category: "Men's Watches",
		Price:    "299.99",
		InStock:  true,
	}))
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	require.Equal(t, "Product", got["@type"])
	require.Equal(t, "GAV01A-8A Silver G-SHOCK", got["description"], "name stands in for a missing description")
	require.Equal(t, []any{}, got["image"])
	require.Equal(t, map[string]any{"@type": "Brand", "name": "G-SHOCK"}, got["brand"])

	offer := got["offers"].(map[string]any)
	require.Equal(t, "299.99", offer["price"])
	require.Equal(t, "USD", offer["priceCurrency"])
	require.Equal(t, "https://schema.org/InStock", offer["availability"])
	require.Equal(t, "http://localhost:8080/product/GAV01A-8A-Silver", offer["url"])
}

func TestBreadcrumbList(t *testing.T) {
	t.Parallel()

	list := BreadcrumbList([]BreadcrumbItem{{Name: "Home", Item: "https://x"}, {Name: "Watch"}})
	items := list["itemListElement"].([]map[string]any)
	require.Len(t, items, 2)
	require.Equal(t, 2, items[1]["position"])
	require.NotContains(t, items[1], "item")
}

func TestSitemap(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	updated := time.Date(2024, 4, 2, 8, 30, 0, 0, time.UTC)
	set := Sitemap("https://shop.example.com", []SitemapProduct{
		{Slug: "GAV01A-8A-Silver", UpdatedAt: updated},
		{Slug: "product-9"},
	}, now)
	body, err := set.Marshal()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(body), "<?xml"))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	require.NoError(t, err)
	urls := doc.Find("url")
	require.Equal(t, 4, urls.Length())

	locs := urls.Find("loc").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	require.Equal(t, []string{
		"https://shop.example.com",
		"https://shop.example.com/details",
		"https://shop.example.com/product/GAV01A-8A-Silver",
		"https://shop.example.com/product/product-9",
	}, locs)

	prios := urls.Find("priority").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	require.Equal(t, []string{"1", "0.9", "0.8", "0.8"}, prios)

	freqs := urls.Find("changefreq").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	require.Equal(t, []string{"daily", "weekly", "weekly", "weekly"}, freqs)

	mods := urls.Find("lastmod").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	require.Equal(t, "2024-04-02T08:30:00Z", mods[2])
	require.Equal(t, "2024-05-01T12:00:00Z", mods[3])
}
