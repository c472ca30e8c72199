package cms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"finitefield.org/catalog-web/internal/catalog"
)

const productsJSON = `{"data":[
 {"id":11,"slug":"GA-2100-1A","title":"GA-2100 Carbon","price":"99.5",
  "images":[{"id":1,"url":"/uploads/ga.png","formats":{"medium":{"url":"/uploads/medium_ga.png"},"large":{"url":"/uploads/large_ga.png"}}}],
  "catagory":{"id":3,"Name":"Classics"},
  "size":[{"id":1,"size":"M"}],
  "Description":[{"type":"paragraph","children":[{"text":"Octagonal bezel."}]}],
  "series":"2100","isNew":true,"releaseDate":"2023-05-01","updatedAt":"2024-01-02T03:04:05.000Z"},
 {"id":12,"title":"","price":120}
]}`

const categoriesJSON = `{"data":[
 {"id":3,"Name":"Classics","products":[{"id":11,"slug":"GA-2100-1A","title":"GA-2100 Carbon","price":"99.5","images":[]}]}
]}`

const galleriesJSON = `{"data":[
 {"id":1,"carosel":[
   {"id":7,"url":"/uploads/gav01_1920x612_1_8a973f6ebb.avif","name":"banner"},
   {"id":8,"url":"https://cdn.example.com/shot.jpg","alternativeText":"shot"}
 ]},
 {"id":2,"carosel":[{"id":9,"url":"/uploads/other.jpg"}]}
]}`

type fakeAPI struct {
	mu     sync.Mutex
	status int
	hits   map[string]int
	bodies map[string]string
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	api := &fakeAPI{
		status: http.StatusOK,
		hits:   map[string]int{},
		bodies: map[string]string{
			"/api/products":   productsJSON,
			"/api/catagories": categoriesJSON,
			"/api/galleries/": galleriesJSON,
		},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.mu.Lock()
		defer api.mu.Unlock()
		api.hits[r.URL.Path]++
		if api.status != http.StatusOK {
			w.WriteHeader(api.status)
			return
		}
		body, ok := api.bodies[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return api, srv
}

func (a *fakeAPI) setStatus(code int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.status = code
}

func (a *fakeAPI) hitCount(path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hits[path]
}

func TestProductsDecodesContentAPI(t *testing.T) {
	t.Parallel()

	_, srv := newFakeAPI(t)
	client := NewClient(srv.URL)

	products := client.Products(context.Background())
	require.Len(t, products, 2)

	p := products[0]
	require.Equal(t, "GA-2100-1A", p.Slug)
	require.Equal(t, "99.5", p.Price.String())
	require.Equal(t, "/uploads/medium_ga.png", p.Images[0].FormatURL(catalog.FormatMedium))
	require.NotNil(t, p.Category)
	require.Equal(t, "Classics", p.Category.Name)
	require.Equal(t, []catalog.Size{{ID: 1, Size: "M"}}, p.Sizes)
	require.Equal(t, "Octagonal bezel.", p.DescriptionText())
	require.True(t, p.IsNew)
	require.Equal(t, 2024, p.UpdatedAt.Year())

	// Missing fields take their defaults.
	require.Equal(t, "product-12", products[1].Slug)
	require.Equal(t, "Untitled Product", products[1].Title)
	require.Equal(t, "120", products[1].Price.String())
	require.NotNil(t, products[1].Images)
}

func TestProductsFallsBackOnServerError(t *testing.T) {
	t.Parallel()

	api, srv := newFakeAPI(t)
	api.setStatus(http.StatusInternalServerError)

	core, logs := observer.New(zapcore.WarnLevel)
	client := NewClient(srv.URL, WithLogger(zap.New(core)))

	products := client.Products(context.Background())
	require.Len(t, products, 4)
	require.Equal(t, "GAV01A-8A-Silver", products[0].Slug)

	warned := logs.FilterMessage("cms fetch failed; serving built-in catalog").All()
	require.Len(t, warned, 1)
	require.Contains(t, warned[0].ContextMap()["error"], "status 500")
}

func TestProductsFallsBackOnTransportError(t *testing.T) {
	t.Parallel()

	_, srv := newFakeAPI(t)
	url := srv.URL
	srv.Close()

	client := NewClient(url, WithTimeout(time.Second))
	require.Len(t, client.Products(context.Background()), 4)
}

func TestProductsFallsBackOnMalformedPayload(t *testing.T) {
	t.Parallel()

	api, srv := newFakeAPI(t)
	api.mu.Lock()
	api.bodies["/api/products"] = `{"data": [`
	api.mu.Unlock()

	client := NewClient(srv.URL)
	require.Len(t, client.Products(context.Background()), 4)
}

func TestEmptyBaseURLServesBuiltInCatalog(t *testing.T) {
	t.Parallel()

	client := NewClient("  ")
	require.Len(t, client.Products(context.Background()), 4)
	require.Len(t, client.Categories(context.Background()), 2)
	require.Len(t, client.GalleryImages(context.Background()), 3)
	require.Equal(t, "/assets/banner.svg", client.Banner(context.Background()))
}

func TestResponsesAreCachedForRevalidateWindow(t *testing.T) {
	t.Parallel()

	api, srv := newFakeAPI(t)
	var now atomic.Int64
	now.Store(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).UnixNano())
	clock := func() time.Time { return time.Unix(0, now.Load()) }

	client := NewClient(srv.URL, WithRevalidate(time.Hour), WithNow(clock))
	ctx := context.Background()

	client.Products(ctx)
	client.Products(ctx)
	require.Equal(t, 1, api.hitCount("/api/products"))

	now.Add(int64(time.Hour))
	client.Products(ctx)
	require.Equal(t, 2, api.hitCount("/api/products"))

	client.Invalidate()
	client.Products(ctx)
	require.Equal(t, 3, api.hitCount("/api/products"))
}

func TestCachedProductsAreIndependentCopies(t *testing.T) {
	t.Parallel()

	_, srv := newFakeAPI(t)
	client := NewClient(srv.URL)
	ctx := context.Background()

	first := client.Products(ctx)
	first[0].Title = "mutated"
	first[0].Images[0].Formats[catalog.FormatMedium] = catalog.Format{URL: "mutated"}

	second := client.Products(ctx)
	require.Equal(t, "GA-2100 Carbon", second[0].Title)
	require.Equal(t, "/uploads/medium_ga.png", second[0].Images[0].FormatURL(catalog.FormatMedium))
}

func TestFailuresAreNotCached(t *testing.T) {
	t.Parallel()

	api, srv := newFakeAPI(t)
	api.setStatus(http.StatusBadGateway)
	client := NewClient(srv.URL)
	ctx := context.Background()

	require.Len(t, client.Products(ctx), 4)
	api.setStatus(http.StatusOK)
	require.Len(t, client.Products(ctx), 2)
}

func TestProductBySlug(t *testing.T) {
	t.Parallel()

	api, srv := newFakeAPI(t)
	client := NewClient(srv.URL, WithRevalidate(0))
	ctx := context.Background()

	p, err := client.ProductBySlug(ctx, "GA-2100-1A")
	require.NoError(t, err)
	require.Equal(t, 11, p.ID)

	_, err = client.ProductBySlug(ctx, "nonexistent-slug")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = client.ProductBySlug(ctx, " ")
	require.ErrorIs(t, err, ErrNotFound)

	// With the API down only the built-in products resolve.
	api.setStatus(http.StatusInternalServerError)
	p, err = client.ProductBySlug(ctx, "GAV01A-8A-Silver")
	require.NoError(t, err)
	require.Equal(t, "GAV01A-8A Silver G-SHOCK", p.Title)

	_, err = client.ProductBySlug(ctx, "GA-2100-1A")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = client.ProductBySlug(ctx, "nonexistent-slug")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGalleryAndBanner(t *testing.T) {
	t.Parallel()

	api, srv := newFakeAPI(t)
	client := NewClient(srv.URL)
	ctx := context.Background()

	images := client.GalleryImages(ctx)
	require.Len(t, images, 2)
	require.Equal(t, "shot", images[1].Alt(""))

	require.Equal(t, srv.URL+"/uploads/gav01_1920x612_1_8a973f6ebb.avif", client.Banner(ctx))
	require.Equal(t, 1, api.hitCount("/api/galleries/"))
}

func TestBannerWithoutDedicatedUploadUsesLocalBanner(t *testing.T) {
	t.Parallel()

	api, srv := newFakeAPI(t)
	api.mu.Lock()
	api.bodies["/api/galleries/"] = `{"data":[{"id":1,"carosel":[{"id":1,"url":"/uploads/a.jpg"}]}]}`
	api.mu.Unlock()

	client := NewClient(srv.URL)
	require.Equal(t, "/assets/banner.svg", client.Banner(context.Background()))
}

func TestGalleryEmptyResponse(t *testing.T) {
	t.Parallel()

	api, srv := newFakeAPI(t)
	api.mu.Lock()
	api.bodies["/api/galleries/"] = `{"data":[]}`
	api.mu.Unlock()

	client := NewClient(srv.URL)
	images := client.GalleryImages(context.Background())
	require.NotNil(t, images)
	require.Empty(t, images)
}

func TestLineupWithAPIDown(t *testing.T) {
	t.Parallel()

	api, srv := newFakeAPI(t)
	api.setStatus(http.StatusServiceUnavailable)
	client := NewClient(srv.URL)

	lineup, err := client.Lineup(context.Background())
	require.NoError(t, err)
	require.Len(t, lineup.Categories, 2)
	require.Len(t, lineup.Gallery, 3)
	require.Equal(t, "/assets/banner.svg", lineup.Banner)
}

func TestLineupSharesGalleryFetch(t *testing.T) {
	t.Parallel()

	api, srv := newFakeAPI(t)
	client := NewClient(srv.URL)

	lineup, err := client.Lineup(context.Background())
	require.NoError(t, err)
	require.Len(t, lineup.Categories, 1)
	require.True(t, strings.HasSuffix(lineup.Banner, ".avif"))
	require.LessOrEqual(t, api.hitCount("/api/galleries/"), 2)
}

func TestSlugs(t *testing.T) {
	t.Parallel()

	_, srv := newFakeAPI(t)
	client := NewClient(srv.URL)
	require.Equal(t, []string{"GA-2100-1A", "product-12"}, client.Slugs(context.Background()))
}

func TestProductsWithSourceReportsFallback(t *testing.T) {
	t.Parallel()

	api, srv := newFakeAPI(t)
	client := NewClient(srv.URL, WithRevalidate(0))

	products, fallback := client.ProductsWithSource(context.Background())
	require.False(t, fallback)
	require.Len(t, products, 2)

	api.setStatus(http.StatusBadGateway)
	products, fallback = client.ProductsWithSource(context.Background())
	require.True(t, fallback)
	require.Len(t, products, 4)
}

func TestSharedFetchSurvivesLeaderCancel(t *testing.T) {
	t.Parallel()

	arrived := make(chan struct{}, 4)
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		arrived <- struct{}{}
		<-release
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(productsJSON))
	}))
	t.Cleanup(srv.Close)
	client := NewClient(srv.URL)

	leaderCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	leaderDone := make(chan bool, 1)
	go func() {
		_, fallback := client.ProductsWithSource(leaderCtx)
		leaderDone <- fallback
	}()
	<-arrived

	type result struct {
		products []catalog.Product
		fallback bool
	}
	followerDone := make(chan result, 1)
	go func() {
		p, fallback := client.ProductsWithSource(context.Background())
		followerDone <- result{p, fallback}
	}()
	time.Sleep(50 * time.Millisecond)

	cancel()
	close(release)

	got := <-followerDone
	require.False(t, got.fallback)
	require.Len(t, got.products, 2)
	<-leaderDone
}

func TestLineupReportsCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient("").Lineup(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
