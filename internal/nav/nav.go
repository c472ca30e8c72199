// Package nav defines the storefront header, footer and breadcrumb structure.
package nav

import (
	"path"
	"strings"
)

// Item represents a top-level navigation item.
type Item struct {
	Path     string // e.g. "/men"
	LabelKey string // i18n key, e.g. "nav.men"
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href     string
	LabelKey string
	Active   bool
}

// Crumb represents a breadcrumb entry. If LabelKey is empty, use Label.
// An empty Href renders as plain text.
type Crumb struct {
	Href     string
	LabelKey string
	Label    string
	Active   bool
}

// Main is the header navigation.
var Main = []Item{
	{Path: "/new-featured", LabelKey: "nav.new_featured"},
	{Path: "/best-sellers", LabelKey: "nav.best_sellers"},
	{Path: "/iconic-styles", LabelKey: "nav.iconic_styles"},
	{Path: "/men", LabelKey: "nav.men"},
	{Path: "/women", LabelKey: "nav.women"},
	{Path: "/sale", LabelKey: "nav.sale"},
	{Path: "/about-gshock", LabelKey: "nav.about"},
	{Path: "/find-a-store", LabelKey: "nav.find_store"},
}

// FooterColumn is one titled link list in the footer.
type FooterColumn struct {
	TitleKey string
	Links    []string
}

// Footer lists the collections shown in the site footer.
var Footer = []FooterColumn{
	{TitleKey: "footer.men", Links: []string{"MR-G", "MT-G", "G-STEEL", "Master of G - Collection", "G-SHOCK MOVE", "Digital", "Analog-Digital", "Limited Models"}},
	{TitleKey: "footer.women", Links: []string{"Women", "G-MS Watches", "BABY-G"}},
	{TitleKey: "footer.categories", Links: []string{"Type", "Collection", "Watches"}},
	{TitleKey: "footer.support", Links: []string{"Where to Buy", "Customer Support", "Manuals", "Product Registration", "Affiliates", "G-SHOCK Points Program", "Daylight Savings Time", "Military Discount"}},
}

// Build renders navigation items with active state given the current path.
func Build(currentPath string) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Href:     it.Path,
			LabelKey: it.LabelKey,
			Active:   isActive(it.Path, currentPath),
		})
	}
	return items
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	return currentPath == itemPath || strings.HasPrefix(currentPath, itemPath+"/")
}

// Breadcrumbs builds breadcrumb entries from the current path, starting at
// Home and title-casing deeper segments.
func Breadcrumbs(currentPath string) []Crumb {
	if currentPath == "" {
		currentPath = "/"
	}
	crumbs := []Crumb{{Href: "/", LabelKey: "nav.home", Active: currentPath == "/"}}
	if currentPath == "/" {
		return crumbs
	}

	clean := path.Clean(currentPath)
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")
	href := ""
	for i, seg := range parts {
		if seg == "" {
			continue
		}
		href += "/" + seg
		crumbs = append(crumbs, Crumb{
			Href:     href,
			LabelKey: sectionKey(href),
			Label:    titleFromSegment(seg),
			Active:   i == len(parts)-1,
		})
	}
	return crumbs
}

// ProductBreadcrumbs is Home / Category / Title. The category is shown as
// text because categories have no page of their own.
func ProductBreadcrumbs(categoryName, title, slug string) []Crumb {
	crumbs := []Crumb{{Href: "/", LabelKey: "nav.home"}}
	if categoryName != "" {
		crumbs = append(crumbs, Crumb{Label: categoryName})
	}
	return append(crumbs, Crumb{Href: "/product/" + slug, Label: title, Active: true})
}

func sectionKey(href string) string {
	if href == "/details" {
		return "nav.details"
	}
	for _, it := range Main {
		if it.Path == href {
			return it.LabelKey
		}
	}
	return ""
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	s := strings.ReplaceAll(seg, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}
