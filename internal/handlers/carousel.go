package handlers

import (
	"strconv"
	"time"

	"finitefield.org/catalog-web/internal/carousel"
	"finitefield.org/catalog-web/internal/catalog"
	"finitefield.org/catalog-web/internal/imageurl"
)

// CarouselKind selects how slide URLs are resolved.
type CarouselKind int

const (
	// KindGallery shows original uploads (lineup gallery).
	KindGallery CarouselKind = iota
	// KindProduct prefers large renditions and shows thumbnails.
	KindProduct
)

// Slide is one carousel item.
type Slide struct {
	Index    int
	URL      string
	ThumbURL string
	Alt      string
	Active   bool
}

// CarouselView is the state of a fading image carousel.
type CarouselView struct {
	ID        string
	Title     string
	Slides    []Slide
	Current   Slide
	Cursor    int
	Length    int
	PrevIndex int
	NextIndex int
	Visible   bool
	Empty     bool
	Multiple  bool
	Errored   bool

	StepURL        string
	StreamURL      string
	TransitionMS   int64
	AutoAdvanceMS  int64
	SwipeThreshold int
}

// CarouselOptions carries the URLs and timings rendered into the widget.
type CarouselOptions struct {
	ID             string
	Title          string
	StepURL        string
	StreamURL      string
	Transition     time.Duration
	AutoAdvance    time.Duration
	SwipeThreshold int
	// Errored marks the current image as failed to load; it is swapped for
	// the placeholder and not retried.
	Errored bool
}

// BuildCarousel renders images at the navigator snapshot.
func BuildCarousel(kind CarouselKind, images []catalog.ImageVariant, snap carousel.Snapshot, resolver imageurl.Resolver, opts CarouselOptions) CarouselView {
	view := CarouselView{
		ID:             opts.ID,
		Title:          opts.Title,
		Length:         len(images),
		Empty:          len(images) == 0,
		Multiple:       len(images) > 1,
		Visible:        snap.Visible,
		StepURL:        opts.StepURL,
		StreamURL:      opts.StreamURL,
		TransitionMS:   opts.Transition.Milliseconds(),
		AutoAdvanceMS:  opts.AutoAdvance.Milliseconds(),
		SwipeThreshold: opts.SwipeThreshold,
	}
	if view.Empty {
		view.Visible = true
		return view
	}
	cursor := snap.Cursor
	if cursor < 0 || cursor >= len(images) {
		cursor = 0
	}
	view.Cursor = cursor
	view.PrevIndex = carousel.Prev(cursor, len(images))
	view.NextIndex = carousel.Next(cursor, len(images))

	view.Slides = make([]Slide, len(images))
	for i, img := range images {
		s := Slide{
			Index:  i,
			Alt:    img.Alt(altFallback(opts.Title, i)),
			Active: i == cursor,
		}
		switch kind {
		case KindProduct:
			img := img
			s.URL = resolver.Detail(&img)
			s.ThumbURL = resolver.OrPlaceholder(resolver.Card([]catalog.ImageVariant{img}))
		default:
			s.URL = resolver.OrPlaceholder(resolver.Original(img))
		}
		view.Slides[i] = s
	}
	if opts.Errored {
		view.Errored = true
		view.Slides[cursor].URL = resolver.Placeholder()
	}
	view.Current = view.Slides[cursor]
	return view
}

func altFallback(title string, i int) string {
	if title != "" {
		return title + " image " + strconv.Itoa(i+1)
	}
	return "Carousel image " + strconv.Itoa(i+1)
}

// CarouselStep is a single user interaction with a carousel fragment.
type CarouselStep struct {
	// Index is the cursor the client is showing.
	Index int
	Dir   carousel.Direction
	// To is a dot/thumbnail jump target; negative means none.
	To int
	// Swipe, when set, derives Dir from the touch start and end.
	Swipe          bool
	SwipeStart     float64
	SwipeEnd       float64
	SwipeThreshold float64
}

// ApplyStep runs one interaction through a navigator and returns where it
// lands. The navigator commits immediately; the hide/reveal halves are left
// to the client's CSS transition.
func ApplyStep(length int, step CarouselStep) carousel.Snapshot {
	start := step.Index
	if start < 0 || start >= length {
		start = 0
	}
	nav := carousel.New(length, carousel.WithStart(start), carousel.WithTransitionDelay(0))
	defer nav.Close()

	switch {
	case step.To >= 0:
		_ = nav.JumpTo(step.To)
	case step.Swipe:
		g := carousel.NewGesture(step.SwipeThreshold)
		g.Start(step.SwipeStart)
		g.Move(step.SwipeEnd)
		nav.Step(g.End())
	default:
		nav.Step(step.Dir)
	}
	return nav.Snapshot()
}
