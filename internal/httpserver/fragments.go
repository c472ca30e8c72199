package httpserver

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"finitefield.org/catalog-web/internal/carousel"
	"finitefield.org/catalog-web/internal/catalog"
	"finitefield.org/catalog-web/internal/handlers"
	mw "finitefield.org/catalog-web/internal/middleware"
)

const (
	galleryCarouselID = "lineup-gallery"
	productCarouselID = "product-images"
)

// fragment renders a partial template around payload.
func (s *server) fragment(w http.ResponseWriter, r *http.Request, name string, payload any) {
	frag := handlers.NewFragment(mw.Lang(r), mw.CSRFToken(r), s.cfg.Brand, payload)
	s.views.render(w, r, http.StatusOK, name, frag)
}

// fragRecommended re-fetches the rail, bypassing the response cache.
func (s *server) fragRecommended(w http.ResponseWriter, r *http.Request) {
	s.cms.Invalidate()
	products, fallback := s.cms.ProductsWithSource(r.Context())
	s.fragment(w, r, "rail", s.rail(products, fallback))
}

// fragRail answers a rail button press or a scroll report with new button state.
func (s *server) fragRail(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	offset := queryInt(q, "offset", 0)
	content := queryInt(q, "content", 0)
	viewport := queryInt(q, "viewport", 0)
	step := queryInt(q, "step", s.cfg.Carousel.RailStep)
	items := len(s.cms.Products(r.Context()))

	var controls handlers.RailControls
	if dir := carousel.ParseDirection(q.Get("dir")); dir != carousel.DirectionNone {
		controls = handlers.StepRail(offset, content, viewport, step, items, dir)
	} else {
		controls = handlers.NewRailControls(offset, content, viewport, step, items)
	}
	s.fragment(w, r, "rail_controls", controls)
}

func (s *server) fragLineup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sel := handlers.ApplyToggle(catalog.ParseSelection(q["cat"]), q.Get("toggle"))
	favs := catalog.ParseFavorites(q.Get("fav"))
	grid := handlers.BuildGrid(s.cards, s.cms.Categories(r.Context()), sel, favs)
	mw.PushURL(w, "/details?"+handlers.LineupQuery(sel, favs.Encode()))
	s.fragment(w, r, "grid", grid)
}

// fragFavorites toggles one heart. The favorites set travels in the form and
// is never stored server side.
func (s *server) fragFavorites(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(r.PostForm.Get("id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	favs := catalog.ParseFavorites(r.PostForm.Get("fav"))
	favs.Toggle(id)

	if r.PostForm.Get("view") == "product" {
		p, err := s.cms.ProductBySlug(r.Context(), r.PostForm.Get("slug"))
		if err != nil || p.ID != id {
			http.Error(w, "unknown product", http.StatusNotFound)
			return
		}
		view := handlers.BuildProduct(p, nil, handlers.CarouselView{}, "", favs)
		s.fragment(w, r, "wishlist", view)
		return
	}

	sel := catalog.ParseSelection(r.PostForm["cat"])
	grid := handlers.BuildGrid(s.cards, s.cms.Categories(r.Context()), sel, favs)
	s.fragment(w, r, "grid", grid)
}

func (s *server) fragGallery(w http.ResponseWriter, r *http.Request) {
	images := s.cms.GalleryImages(r.Context())
	snap := handlers.ApplyStep(len(images), s.parseStep(r.URL.Query()))
	s.fragment(w, r, "carousel", s.galleryCarousel(images, snap, false))
}

// fragProductImage steps the detail carousel. errored=1 reports that the
// current image failed to load: the cursor stays and the placeholder is shown.
func (s *server) fragProductImage(w http.ResponseWriter, r *http.Request) {
	p, err := s.cms.ProductBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		http.Error(w, "unknown product", http.StatusNotFound)
		return
	}
	q := r.URL.Query()
	if q.Get("errored") == "1" {
		cursor := queryInt(q, "i", 0)
		if cursor < 0 || cursor >= len(p.Images) {
			cursor = 0
		}
		s.fragment(w, r, "carousel", s.productCarousel(p, s.startSnapshot(cursor), true))
		return
	}
	snap := handlers.ApplyStep(len(p.Images), s.parseStep(q))
	s.fragment(w, r, "carousel", s.productCarousel(p, snap, false))
}

func (s *server) galleryCarousel(images []catalog.ImageVariant, snap carousel.Snapshot, errored bool) handlers.CarouselView {
	return handlers.BuildCarousel(handlers.KindGallery, images, snap, s.resolver, handlers.CarouselOptions{
		ID:             galleryCarouselID,
		StepURL:        "/frag/gallery",
		StreamURL:      "/details/gallery/stream",
		Transition:     s.cfg.Carousel.Transition,
		AutoAdvance:    s.cfg.Carousel.AutoAdvance,
		SwipeThreshold: s.cfg.Carousel.SwipeThreshold,
		Errored:        errored,
	})
}

func (s *server) productCarousel(p catalog.Product, snap carousel.Snapshot, errored bool) handlers.CarouselView {
	slug := url.PathEscape(p.Slug)
	return handlers.BuildCarousel(handlers.KindProduct, p.Images, snap, s.resolver, handlers.CarouselOptions{
		ID:             productCarouselID,
		Title:          p.Title,
		StepURL:        "/frag/product/" + slug + "/image",
		StreamURL:      "/product/" + slug + "/images/stream",
		Transition:     s.cfg.Carousel.Transition,
		AutoAdvance:    s.cfg.Carousel.AutoAdvance,
		SwipeThreshold: s.cfg.Carousel.SwipeThreshold,
		Errored:        errored,
	})
}

// parseStep reads i, dir, to and the sx/ex swipe pair.
func (s *server) parseStep(q url.Values) handlers.CarouselStep {
	step := handlers.CarouselStep{
		Index: queryInt(q, "i", 0),
		Dir:   carousel.ParseDirection(q.Get("dir")),
		To:    -1,
	}
	if q.Has("to") {
		step.To = queryInt(q, "to", -1)
	}
	sx, errStart := strconv.ParseFloat(q.Get("sx"), 64)
	ex, errEnd := strconv.ParseFloat(q.Get("ex"), 64)
	if errStart == nil && errEnd == nil {
		step.Swipe = true
		step.SwipeStart = sx
		step.SwipeEnd = ex
		step.SwipeThreshold = float64(s.cfg.Carousel.SwipeThreshold)
	}
	return step
}

func queryInt(q url.Values, key string, fallback int) int {
	v, err := strconv.Atoi(q.Get(key))
	if err != nil {
		return fallback
	}
	return v
}
