package handlers

// Fragment is the data passed to partial templates, both when embedded in a
// page and when served alone to htmx. Exactly one payload is set.
type Fragment struct {
	Lang      string
	CSRFToken string
	Brand     string

	Rail     *RailView
	Controls *RailControls
	Grid     *GridView
	Carousel *CarouselView
	Product  *ProductView
}

// NewFragment wraps payload for a partial. Unknown payload types leave every
// payload field nil.
func NewFragment(lang, csrf, brand string, payload any) Fragment {
	f := Fragment{Lang: lang, CSRFToken: csrf, Brand: brand}
	switch v := payload.(type) {
	case RailView:
		f.Rail = &v
	case *RailView:
		f.Rail = v
	case RailControls:
		f.Controls = &v
	case *RailControls:
		f.Controls = v
	case GridView:
		f.Grid = &v
	case *GridView:
		f.Grid = v
	case CarouselView:
		f.Carousel = &v
	case *CarouselView:
		f.Carousel = v
	case ProductView:
		f.Product = &v
	case *ProductView:
		f.Product = v
	}
	return f
}
