package seo

import (
	"encoding/json"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Organization returns a minimal Organization schema.
func Organization(name, url, logoURL string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if logoURL != "" {
		m["logo"] = logoURL
	}
	return m
}

// WebSite returns a minimal WebSite schema.
func WebSite(name, url string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		entry := map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
		}
		if it.Item != "" {
			entry["item"] = it.Item
		}
		el = append(el, entry)
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// ProductInput carries the fields of a Product schema.
type ProductInput struct {
	Name        string
	Description string
	URL         string
	Images      []string
	Brand       string
	Category    string
	SKU         string
	Price       string
	Currency    string
	InStock     bool
}

// Product returns a schema.org Product with Brand and Offer.
func Product(in ProductInput) map[string]any {
	desc := in.Description
	if desc == "" {
		desc = in.Name
	}
	images := in.Images
	if images == nil {
		images = []string{}
	}
	m := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "Product",
		"name":        in.Name,
		"description": desc,
		"image":       images,
	}
	if in.Brand != "" {
		m["brand"] = map[string]any{"@type": "Brand", "name": in.Brand}
	}
	if in.Category != "" {
		m["category"] = in.Category
	}
	if in.SKU != "" {
		m["sku"] = in.SKU
	}
	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}
	offer := map[string]any{
		"@type":         "Offer",
		"price":         in.Price,
		"priceCurrency": currency,
	}
	if in.InStock {
		offer["availability"] = "https://schema.org/InStock"
	}
	if in.URL != "" {
		offer["url"] = in.URL
		m["url"] = in.URL
	}
	m["offers"] = offer
	return m
}
