package imageurl

import (
	"testing"

	"github.com/stretchr/testify/require"

	"finitefield.org/catalog-web/internal/catalog"
)

const base = "https://cms.example.com"

func variant(url string, formats map[string]string) catalog.ImageVariant {
	v := catalog.ImageVariant{URL: url}
	if formats != nil {
		v.Formats = map[string]catalog.Format{}
		for k, u := range formats {
			v.Formats[k] = catalog.Format{URL: u}
		}
	}
	return v
}

func TestCardPriority(t *testing.T) {
	t.Parallel()

	r := New(base, "")
	tests := []struct {
		name    string
		formats map[string]string
		want    string
	}{
		{"medium wins", map[string]string{"thumbnail": "/t.jpg", "small": "/s.jpg", "medium": "/m.jpg", "large": "/l.jpg"}, base + "/m.jpg"},
		{"small next", map[string]string{"thumbnail": "/t.jpg", "small": "/s.jpg"}, base + "/s.jpg"},
		{"thumbnail next", map[string]string{"thumbnail": "/t.jpg"}, base + "/t.jpg"},
		{"bare url last", nil, base + "/orig.jpg"},
		{"empty format ignored", map[string]string{"medium": "  "}, base + "/orig.jpg"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := r.Card([]catalog.ImageVariant{variant("/orig.jpg", tt.formats)})
			require.True(t, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestCardUsesFirstImageOnly(t *testing.T) {
	t.Parallel()

	r := New(base, "")
	images := []catalog.ImageVariant{
		variant("/first.jpg", nil),
		variant("/second.jpg", map[string]string{"medium": "/second-m.jpg"}),
	}
	got, ok := r.Card(images)
	require.True(t, ok)
	require.Equal(t, base+"/first.jpg", got)
}

func TestCardEmptyList(t *testing.T) {
	t.Parallel()

	r := New(base, "")
	got, ok := r.Card(nil)
	require.False(t, ok)
	require.Empty(t, got)
	require.Equal(t, DefaultPlaceholder, r.OrPlaceholder(got, ok))
}

func TestCardIsPure(t *testing.T) {
	t.Parallel()

	r := New(base, "")
	images := []catalog.ImageVariant{variant("/a.jpg", map[string]string{"small": "/a-s.jpg"})}
	first, _ := r.Card(images)
	for i := 0; i < 5; i++ {
		again, _ := r.Card(images)
		require.Equal(t, first, again)
	}
}

func TestDetailPriority(t *testing.T) {
	t.Parallel()

	r := New(base, "")
	v := variant("/orig.jpg", map[string]string{"thumbnail": "/t.jpg", "small": "/s.jpg", "medium": "/m.jpg", "large": "/l.jpg"})
	require.Equal(t, base+"/l.jpg", r.Detail(&v))

	v = variant("/orig.jpg", map[string]string{"thumbnail": "/t.jpg", "small": "/s.jpg", "medium": "/m.jpg"})
	require.Equal(t, base+"/m.jpg", r.Detail(&v))

	require.Equal(t, DefaultPlaceholder, r.Detail(nil))
	empty := variant("", nil)
	require.Equal(t, DefaultPlaceholder, r.Detail(&empty))
}

func TestAbsolute(t *testing.T) {
	t.Parallel()

	r := New(base+"/", "")
	cases := map[string]struct {
		want string
		ok   bool
	}{
		"https://media.example.com/x.avif":         {"https://media.example.com/x.avif", true},
		"http://media.example.com/x.png":           {"http://media.example.com/x.png", true},
		"/uploads/x.png":                           {base + "/uploads/x.png", true},
		"uploads/x.png":                            {base + "/uploads/x.png", true},
		"/assets/placeholder.svg?height=1&width=1": {"/assets/placeholder.svg?height=1&width=1", true},
		"/placeholder.svg?height=400&width=400":    {"/placeholder.svg?height=400&width=400", true},
		"":                                         {"", false},
	}
	for raw, want := range cases {
		got, ok := r.Absolute(raw)
		require.Equal(t, want.ok, ok, raw)
		require.Equal(t, want.want, got, raw)
	}
}

func TestAbsoluteWithoutBaseURLDegradesToPlaceholder(t *testing.T) {
	t.Parallel()

	r := New("", "/assets/missing.svg")
	got, ok := r.Absolute("/uploads/x.png")
	require.False(t, ok)
	require.Equal(t, "/assets/missing.svg", r.OrPlaceholder(got, ok))

	got, ok = r.Absolute("https://cdn.example.com/x.png")
	require.True(t, ok)
	require.Equal(t, "https://cdn.example.com/x.png", got)
}
