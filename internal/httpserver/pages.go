package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"finitefield.org/catalog-web/internal/carousel"
	"finitefield.org/catalog-web/internal/catalog"
	"finitefield.org/catalog-web/internal/cms"
	"finitefield.org/catalog-web/internal/format"
	"finitefield.org/catalog-web/internal/handlers"
	mw "finitefield.org/catalog-web/internal/middleware"
	"finitefield.org/catalog-web/internal/nav"
	"finitefield.org/catalog-web/internal/observability"
	"finitefield.org/catalog-web/internal/seo"
)

// basePage fills the layout fields shared by every page.
func (s *server) basePage(r *http.Request, page string) handlers.PageData {
	path := r.URL.Path
	lang := mw.Lang(r)
	return handlers.PageData{
		Page:  page,
		Lang:  lang,
		Brand: s.cfg.Brand,
		SEO: seo.Meta{
			Title:     s.cfg.Brand,
			Canonical: seo.Absolute(s.cfg.SiteURL, path),
			OG: seo.OpenGraph{
				Title:    s.cfg.Brand,
				Type:     "website",
				URL:      seo.Absolute(s.cfg.SiteURL, path),
				SiteName: s.cfg.Brand,
			},
			Twitter: seo.Twitter{Card: "summary_large_image"},
		},
		Path:        path,
		Nav:         nav.Build(path),
		Footer:      nav.Footer,
		Breadcrumbs: nav.Breadcrumbs(path),
		CSRFToken:   mw.CSRFToken(r),
		Year:        s.now().Year(),
	}
}

func (s *server) home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var (
		products []catalog.Product
		fallback bool
		banner   string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		products, fallback = s.cms.ProductsWithSource(gctx)
		return gctx.Err()
	})
	g.Go(func() error {
		banner = s.cms.Banner(gctx)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		// client went away; nobody to render for
		observability.FromContext(ctx).Debug("home aborted", zap.Error(err))
		return
	}

	data := s.basePage(r, handlers.PageHome)
	data.Breadcrumbs = nil
	data.SEO.Description = s.bundle.T(data.Lang, "lineup.headline")
	data.SEO.OG.Description = data.SEO.Description
	data.SEO.OG.Image = seo.Absolute(s.cfg.SiteURL, banner)
	data.SEO.JSONLD = []string{
		seo.JSON(seo.Organization(s.cfg.Brand, seo.Absolute(s.cfg.SiteURL, "/"), "")),
		seo.JSON(seo.WebSite(s.cfg.Brand, seo.Absolute(s.cfg.SiteURL, "/"))),
	}
	data.Home = &handlers.HomeView{
		BannerURL:   banner,
		BannerAlt:   s.cfg.Brand + " " + s.bundle.T(data.Lang, "lineup.banner_alt"),
		HeroTitle:   s.bundle.T(data.Lang, "home.hero"),
		Recommended: s.rail(products, fallback),
	}
	s.views.render(w, r, http.StatusOK, "base", data)
}

func (s *server) rail(products []catalog.Product, fallback bool) handlers.RailView {
	cards := s.cards.List(products, catalog.Favorites{})
	return handlers.RailView{
		Cards:    cards,
		Fallback: fallback,
		Retry:    fallback || len(cards) == 0,
		Controls: handlers.NewRailControls(0, 0, 0, s.cfg.Carousel.RailStep, len(cards)),
	}
}

func (s *server) lineup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	content, err := s.cms.Lineup(ctx)
	if err != nil {
		observability.FromContext(ctx).Debug("lineup aborted", zap.Error(err))
		return
	}
	q := r.URL.Query()
	sel := handlers.ApplyToggle(catalog.ParseSelection(q["cat"]), q.Get("toggle"))
	favs := catalog.ParseFavorites(q.Get("fav"))

	data := s.basePage(r, handlers.PageLineup)
	data.SEO.Title = s.bundle.T(data.Lang, "nav.details") + " | " + s.cfg.Brand
	data.SEO.OG.Title = data.SEO.Title
	data.SEO.Description = s.bundle.T(data.Lang, "lineup.intro")
	data.SEO.OG.Description = data.SEO.Description
	data.SEO.OG.Image = seo.Absolute(s.cfg.SiteURL, content.Banner)
	data.Lineup = &handlers.LineupView{
		BannerURL: content.Banner,
		Grid:      handlers.BuildGrid(s.cards, content.Categories, sel, favs),
		Gallery:   s.galleryCarousel(content.Gallery, s.startSnapshot(0), false),
	}
	s.views.render(w, r, http.StatusOK, "base", data)
}

func (s *server) product(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")
	p, err := s.cms.ProductBySlug(ctx, slug)
	if errors.Is(err, cms.ErrNotFound) {
		s.notFound(w, r)
		return
	}
	if err != nil {
		observability.FromContext(ctx).Error("product load failed", zap.String("slug", slug), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	q := r.URL.Query()
	images := s.productCarousel(p, s.startSnapshot(0), false)
	view := handlers.BuildProduct(p, s.rich, images, q.Get("size"), catalog.ParseFavorites(q.Get("fav")))

	data := s.basePage(r, handlers.PageProduct)
	categoryName := ""
	if p.Category != nil {
		categoryName = p.Category.Name
	}
	data.Breadcrumbs = nav.ProductBreadcrumbs(categoryName, p.Title, p.Slug)
	data.Product = &view
	s.productSEO(&data, p, categoryName)
	s.views.render(w, r, http.StatusOK, "base", data)
}

func (s *server) productSEO(data *handlers.PageData, p catalog.Product, categoryName string) {
	site := s.cfg.SiteURL
	pageURL := seo.Absolute(site, "/product/"+p.Slug)
	images := make([]string, 0, len(p.Images))
	for i := range p.Images {
		images = append(images, seo.Absolute(site, s.resolver.Detail(&p.Images[i])))
	}
	desc := seo.ProductDescription(s.rich.Summary(p.Description, 0), p.Title, s.cfg.Brand)

	data.SEO.Title = p.Title + " | " + s.cfg.Brand
	data.SEO.Description = desc
	data.SEO.Canonical = pageURL
	data.SEO.OG.Title = p.Title
	data.SEO.OG.Description = desc
	data.SEO.OG.Type = "product"
	data.SEO.OG.URL = pageURL
	if len(images) > 0 {
		data.SEO.OG.Image = images[0]
		data.SEO.Twitter.Image = images[0]
	}
	data.SEO.Extra = map[string]string{
		"product:price:amount":   format.Amount(p.Price),
		"product:price:currency": p.Currency,
	}

	crumbs := []seo.BreadcrumbItem{{Name: s.bundle.T(data.Lang, "nav.home"), Item: seo.Absolute(site, "/")}}
	if categoryName != "" {
		crumbs = append(crumbs, seo.BreadcrumbItem{Name: categoryName})
	}
	crumbs = append(crumbs, seo.BreadcrumbItem{Name: p.Title, Item: pageURL})

	data.SEO.JSONLD = []string{
		seo.JSON(seo.Product(seo.ProductInput{
			Name:        p.Title,
			Description: desc,
			URL:         pageURL,
			Images:      images,
			Brand:       s.cfg.Brand,
			Category:    categoryName,
			SKU:         p.Slug,
			Price:       format.Amount(p.Price),
			Currency:    p.Currency,
			InStock:     true,
		})),
		seo.JSON(seo.BreadcrumbList(crumbs)),
	}
}

func (s *server) notFound(w http.ResponseWriter, r *http.Request) {
	data := s.basePage(r, handlers.PageNotFound)
	data.Breadcrumbs = nil
	data.SEO.Title = s.bundle.T(data.Lang, "notfound.title") + " | " + s.cfg.Brand
	data.SEO.Robots = "noindex"
	data.SEO.Canonical = ""
	data.SEO.OG = seo.OpenGraph{}
	data.SEO.Twitter = seo.Twitter{}
	s.views.render(w, r, http.StatusNotFound, "base", data)
}

func (s *server) sitemap(w http.ResponseWriter, r *http.Request) {
	products := s.cms.Products(r.Context())
	entries := make([]seo.SitemapProduct, 0, len(products))
	for _, p := range products {
		if strings.TrimSpace(p.Slug) == "" {
			continue
		}
		entries = append(entries, seo.SitemapProduct{Slug: p.Slug, UpdatedAt: p.UpdatedAt})
	}
	body, err := seo.Sitemap(s.cfg.SiteURL, entries, s.now()).Marshal()
	if err != nil {
		observability.FromContext(r.Context()).Error("sitemap marshal failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(body)
}

func (s *server) startSnapshot(cursor int) carousel.Snapshot {
	return carousel.Snapshot{Cursor: cursor, Target: cursor, Visible: true}
}
