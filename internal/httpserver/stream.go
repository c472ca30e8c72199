package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"finitefield.org/catalog-web/internal/carousel"
	"finitefield.org/catalog-web/internal/observability"
)

// Stream event names. A step emits hide when the current image starts fading
// out and show once the new cursor is committed.
const (
	eventHide = "hide"
	eventShow = "show"
)

type streamEvent struct {
	Cursor    int    `json:"cursor"`
	Target    int    `json:"target"`
	Direction string `json:"direction"`
}

func (s *server) galleryStream(w http.ResponseWriter, r *http.Request) {
	images := s.cms.GalleryImages(r.Context())
	s.streamCarousel(w, r, len(images))
}

func (s *server) productStream(w http.ResponseWriter, r *http.Request) {
	p, err := s.cms.ProductBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		http.Error(w, "unknown product", http.StatusNotFound)
		return
	}
	s.streamCarousel(w, r, len(p.Images))
}

// streamCarousel runs one auto-advancing navigator for the lifetime of the
// connection and forwards its transitions as server-sent events. With
// auto-advance disabled or fewer than two images there is nothing to stream.
func (s *server) streamCarousel(w http.ResponseWriter, r *http.Request, length int) {
	if s.cfg.Carousel.AutoAdvance <= 0 || length < 2 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	ctx := r.Context()
	logger := observability.FromContext(ctx)
	rc := http.NewResponseController(w)
	// the server WriteTimeout would otherwise cut the stream
	_ = rc.SetWriteDeadline(time.Time{})

	start := queryInt(r.URL.Query(), "i", 0)
	if start < 0 || start >= length {
		start = 0
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		logger.Warn("stream flush unsupported", zap.Error(err))
		return
	}

	changes := newSnapshotQueue(16)
	nav := carousel.New(length,
		carousel.WithStart(start),
		carousel.WithTransitionDelay(s.cfg.Carousel.Transition),
		carousel.WithAutoAdvance(s.cfg.Carousel.AutoAdvance),
		carousel.WithOnChange(changes.offer),
	)
	defer nav.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case snap := <-changes.ch:
			name := eventShow
			if !snap.Visible {
				name = eventHide
			}
			if err := writeEvent(w, name, streamEvent{Cursor: snap.Cursor, Target: snap.Target, Direction: snap.Direction.String()}); err != nil {
				logger.Debug("stream closed", zap.Error(err))
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}

// snapshotQueue buffers navigator changes for a slow writer. offer never
// blocks: when the buffer is full the oldest unread snapshot is dropped, so
// the writer may skip intermediate events but always ends on the newest state.
type snapshotQueue struct {
	ch chan carousel.Snapshot
}

func newSnapshotQueue(size int) *snapshotQueue {
	return &snapshotQueue{ch: make(chan carousel.Snapshot, size)}
}

// offer must have a single caller at a time; the navigator calls it under
// its lock.
func (q *snapshotQueue) offer(snap carousel.Snapshot) {
	select {
	case q.ch <- snap:
		return
	default:
	}
	select {
	case <-q.ch:
	default:
	}
	q.ch <- snap
}

func writeEvent(w http.ResponseWriter, name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
	return err
}
