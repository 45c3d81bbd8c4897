package catalog_test

import (
	"testing"

	"storefront-service/catalog"
	"storefront-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(products []models.Product) []int64 {
	out := make([]int64, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func wide() catalog.Filters {
	return catalog.Filters{PriceRange: catalog.PriceRange{Min: 0, Max: 1_000_000}}
}

func TestDeriveView_PriceFilterUsesFinalPrice(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "A", Price: 4000, Discount: 20}, // 3200
		{ID: 2, Name: "B", Price: 3000},               // 3000, boundary
		{ID: 3, Name: "C", Price: 3500},               // 3500
		{ID: 4, Name: "D", Price: 4000, Discount: 25}, // 3000, boundary after discount
		{ID: 5, Name: "E", Price: 1999},
	}
	view := catalog.DeriveView(products, catalog.Filters{PriceRange: catalog.PriceRange{Min: 2000, Max: 3000}}, "", catalog.SortNewest)

	assert.Equal(t, []int64{2, 4}, ids(view))
}

func TestDeriveView_SearchMatchesNameDescriptionCategory(t *testing.T) {
	products := []models.Product{
		{ID: 8, Name: "Rose de Grasse", Price: 3200},
		{ID: 10, Name: "Jasmin de Nuit", Description: "Notes de ROSE et de jasmin", Price: 2800},
		{ID: 11, Name: "Santal", Category: "Parfums Boisés", Price: 3500},
		{ID: 12, Name: "Oud", Category: "Roses anciennes", Price: 3500},
	}
	view := catalog.DeriveView(products, wide(), "rose", catalog.SortNewest)

	assert.Equal(t, []int64{8, 10, 12}, ids(view))
}

func TestDeriveView_EmptyQueryKeepsAll(t *testing.T) {
	products := catalog.Fallback()
	view := catalog.DeriveView(products, wide(), "", catalog.SortNewest)
	assert.Len(t, view, len(products))
}

func TestDeriveView_QueryIsNotTrimmed(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "Rose de Grasse", Price: 3200},
		{ID: 2, Name: "Roseraie", Price: 3200},
	}
	assert.Equal(t, []int64{1}, ids(catalog.DeriveView(products, wide(), "ROSE ", catalog.SortNewest)))
	assert.Equal(t, []int64{1, 2}, ids(catalog.DeriveView(products, wide(), "rose", catalog.SortNewest)))
	assert.Empty(t, catalog.DeriveView(products, wide(), "   ", catalog.SortNewest))
}

func TestDeriveView_SortPriceLow(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "Half off", Price: 3000, Discount: 50},
		{ID: 2, Name: "Plain", Price: 1000},
	}
	view := catalog.DeriveView(products, wide(), "", catalog.SortPriceLow)
	assert.Equal(t, []int64{2, 1}, ids(view))
}

func TestDeriveView_SortPriceHighIsStable(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "A", Price: 2000},
		{ID: 2, Name: "B", Price: 5000},
		{ID: 3, Name: "C", Price: 2000},
	}
	view := catalog.DeriveView(products, wide(), "", catalog.SortPriceHigh)
	assert.Equal(t, []int64{2, 1, 3}, ids(view))
}

func TestDeriveView_SortNameIsCaseAndAccentAware(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "Vétiver Élégance", Price: 3100},
		{ID: 2, Name: "ambre", Price: 3800},
		{ID: 3, Name: "Éclat", Price: 2000},
		{ID: 4, Name: "Oud", Price: 3500},
	}
	view := catalog.DeriveView(products, wide(), "", catalog.SortName)
	assert.Equal(t, []int64{2, 3, 4, 1}, ids(view))
}

func TestDeriveView_NewestKeepsInputOrder(t *testing.T) {
	products := []models.Product{{ID: 3, Price: 2000}, {ID: 1, Price: 2000}, {ID: 2, Price: 2000}}
	view := catalog.DeriveView(products, wide(), "", catalog.SortNewest)
	assert.Equal(t, []int64{3, 1, 2}, ids(view))
}

func TestDeriveView_DoesNotMutateInput(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "B", Price: 5000},
		{ID: 2, Name: "A", Price: 500},
		{ID: 3, Name: "C", Price: 2000},
	}
	before := append([]models.Product(nil), products...)

	_ = catalog.DeriveView(products, catalog.DefaultPriceRangeFilters(), "a", catalog.SortName)
	assert.Equal(t, before, products)
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, catalog.SortName, catalog.ParseSortKey("name"))
	assert.Equal(t, catalog.SortPriceLow, catalog.ParseSortKey("price-low"))
	assert.Equal(t, catalog.SortPriceHigh, catalog.ParseSortKey("price-high"))
	assert.Equal(t, catalog.SortNewest, catalog.ParseSortKey(""))
	assert.Equal(t, catalog.SortNewest, catalog.ParseSortKey("popularity"))
}

func TestPriceRange_Clamping(t *testing.T) {
	r := catalog.DefaultPriceRange()
	assert.Equal(t, catalog.PriceRange{Min: 1000, Max: 50000}, r)

	r = r.WithMin(60000)
	assert.Equal(t, int64(50000), r.Min)

	r = catalog.DefaultPriceRange().WithMax(500)
	assert.Equal(t, int64(1000), r.Max)

	r = catalog.DefaultPriceRange().WithMin(2000).WithMax(3000)
	assert.Equal(t, catalog.PriceRange{Min: 2000, Max: 3000}, r)
}

func TestResolvePriceRange(t *testing.T) {
	p := func(v int64) *int64 { return &v }

	assert.Equal(t, catalog.DefaultPriceRange(), catalog.ResolvePriceRange(nil, nil))
	assert.Equal(t, catalog.PriceRange{Min: 60000, Max: 80000}, catalog.ResolvePriceRange(p(60000), p(80000)))
	assert.Equal(t, catalog.PriceRange{Min: 2000, Max: 5000}, catalog.ResolvePriceRange(p(5000), p(2000)))
	assert.Equal(t, catalog.PriceRange{Min: 60000, Max: 60000}, catalog.ResolvePriceRange(p(60000), nil))
	assert.Equal(t, catalog.PriceRange{Min: 500, Max: 500}, catalog.ResolvePriceRange(nil, p(500)))
	assert.Equal(t, catalog.PriceRange{Min: 1000, Max: 3000}, catalog.ResolvePriceRange(nil, p(3000)))
}

func TestFallback(t *testing.T) {
	products := catalog.Fallback()
	require.Len(t, products, 18)
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "Parfum Classique", products[0].Name)

	products[0].Name = "changed"
	assert.Equal(t, "Parfum Classique", catalog.Fallback()[0].Name)

	for _, p := range products {
		_, err := models.DecodeProduct(models.ProductRecordFromProduct(p))
		assert.NoError(t, err, "fallback product %d", p.ID)
	}
}

func TestFindByIDAndRelated(t *testing.T) {
	products := catalog.Fallback()

	rose, ok := catalog.FindByID(products, 8)
	require.True(t, ok)
	related := catalog.Related(products, rose, 4)
	assert.Equal(t, []int64{10, 17}, ids(related))

	_, ok = catalog.FindByID(products, 999)
	assert.False(t, ok)
}

func TestNewArrivals(t *testing.T) {
	for _, p := range catalog.NewArrivals(catalog.Fallback()) {
		assert.True(t, p.IsNew)
	}
	assert.Len(t, catalog.NewArrivals(catalog.Fallback()), 9)
}
