package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func slugs(products []Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Slug
	}
	return out
}

func TestFilterProductsEmptySelectionReturnsAll(t *testing.T) {
	t.Parallel()

	categories := FallbackCategories()
	all := FallbackProducts()

	got := FilterProducts(Selection{}, categories, all)
	if diff := cmp.Diff(slugs(all), slugs(got)); diff != "" {
		t.Fatalf("empty selection changed the list (-want +got):\n%s", diff)
	}
	require.Len(t, got, 4)
}

func TestFilterProductsConcatenatesInCategoryOrder(t *testing.T) {
	t.Parallel()

	categories := FallbackCategories()
	all := AllProducts(categories)

	got := FilterProducts(NewSelection(2, 1), categories, all)
	want := []string{"GAV01A-8A-Silver", "GAV01B-1A-Black", "GAV01C-3A-Gold"}
	if diff := cmp.Diff(want, slugs(got)); diff != "" {
		t.Fatalf("unexpected filter result (-want +got):\n%s", diff)
	}

	got = FilterProducts(NewSelection(2), categories, all)
	require.Equal(t, []string{"GAV01C-3A-Gold"}, slugs(got))
}

func TestFilterProductsKeepsDuplicatesAcrossCategories(t *testing.T) {
	t.Parallel()

	shared := Product{ID: 9, Slug: "shared"}
	categories := []Category{
		{ID: 1, Name: "A", Products: []Product{shared}},
		{ID: 2, Name: "B", Products: []Product{shared, {ID: 10, Slug: "only-b"}}},
	}
	got := FilterProducts(NewSelection(1, 2), categories, AllProducts(categories))
	require.Equal(t, []string{"shared", "shared", "only-b"}, slugs(got))
}

func TestFilterProductsUnknownCategoryYieldsEmpty(t *testing.T) {
	t.Parallel()

	got := FilterProducts(NewSelection(42), FallbackCategories(), FallbackProducts())
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestSelectionToggleIsInvolutive(t *testing.T) {
	t.Parallel()

	start := NewSelection(3, 1)
	for _, id := range []int{1, 2, 3, 7} {
		got := start.Toggle(id).Toggle(id)
		require.ElementsMatch(t, start.IDs(), got.IDs(), "toggle %d twice", id)
	}
	// Toggle must not mutate the receiver.
	_ = start.Toggle(5)
	require.Equal(t, []int{3, 1}, start.IDs())
}

func TestSelectionToggleAllClears(t *testing.T) {
	t.Parallel()

	sel := NewSelection(1, 2).ToggleAll()
	require.True(t, sel.Empty())
	require.Empty(t, sel.Values())
}

func TestParseSelection(t *testing.T) {
	t.Parallel()

	sel := ParseSelection([]string{"2", "1,2", "x", " 3 "})
	require.Equal(t, []int{2, 1, 3}, sel.IDs())
	require.Equal(t, []string{"2", "1", "3"}, sel.Values())

	require.True(t, ParseSelection([]string{"1", "all"}).Empty())
	require.True(t, ParseSelection(nil).Empty())
}

func TestFavoritesToggleIsInvolutive(t *testing.T) {
	t.Parallel()

	favs := NewFavorites(4, 2)
	require.True(t, favs.Toggle(1))
	require.False(t, favs.Toggle(1))
	require.Equal(t, []int{2, 4}, favs.IDs())

	require.False(t, favs.Toggle(2))
	require.True(t, favs.Toggle(2))
	require.Equal(t, []int{2, 4}, favs.IDs())
}

func TestFavoritesZeroValueToggle(t *testing.T) {
	t.Parallel()

	var favs Favorites
	require.False(t, favs.Has(1))
	require.True(t, favs.Toggle(1))
	require.True(t, favs.Has(1))
	require.Equal(t, 1, favs.Len())
}

func TestFavoritesEncodeRoundTrip(t *testing.T) {
	t.Parallel()

	favs := ParseFavorites("3, 1,oops,,3")
	require.Equal(t, "1,3", favs.Encode())
	require.Equal(t, favs.IDs(), ParseFavorites(favs.Encode()).IDs())
}

func TestFallbackDataset(t *testing.T) {
	t.Parallel()

	products := FallbackProducts()
	require.Len(t, products, 4)
	require.Equal(t, "GAV01A-8A-Silver", products[0].Slug)
	require.Equal(t, "299.99", products[0].Price.StringFixed(2))
	require.Equal(t, "/assets/placeholder.svg?height=400&width=400", products[0].Images[0].FormatURL(FormatMedium))
	require.Len(t, products[0].Images, 2)
	require.NotEmpty(t, products[0].DescriptionText())

	categories := FallbackCategories()
	require.Len(t, categories, 2)
	require.Len(t, AllProducts(categories), 3)

	require.Len(t, FallbackGallery(), 3)
	require.Equal(t, "/assets/banner.svg", FallbackBanner())
}

func TestFallbackReturnsIndependentCopies(t *testing.T) {
	t.Parallel()

	first := FallbackProducts()
	first[0].Title = "mutated"
	first[0].Images[0].Formats[FormatMedium] = Format{URL: "mutated"}

	second := FallbackProducts()
	require.Equal(t, "GAV01A-8A Silver G-SHOCK", second[0].Title)
	require.NotEqual(t, "mutated", second[0].Images[0].FormatURL(FormatMedium))
}

func TestProductNormalize(t *testing.T) {
	t.Parallel()

	p := Product{ID: 7}.Normalize()
	require.Equal(t, "product-7", p.Slug)
	require.Equal(t, "Untitled Product", p.Title)
	require.Equal(t, "0", p.Price.String())
	require.Equal(t, "USD", p.Currency)
	require.NotNil(t, p.Images)
}

func TestFindBySlug(t *testing.T) {
	t.Parallel()

	p, ok := FindBySlug(FallbackProducts(), "GAV01C-3A-Gold")
	require.True(t, ok)
	require.Equal(t, 3, p.ID)

	_, ok = FindBySlug(FallbackProducts(), "nonexistent-slug")
	require.False(t, ok)
}
