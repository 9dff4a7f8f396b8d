package viewmodels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/kidstore/app/models"
)

func snapshot() []models.Product {
	return []models.Product{
		{ID: "1", Name: "Giày thể thao", Category: "shoes", Brand: "Bitis", Unit: "đôi", RetailPrice: 250000},
		{ID: "2", Name: "Áo thun bé gái", Category: "clothing", Brand: "YODY", Unit: "cái", RetailPrice: 120000},
		{ID: "3", Name: "Đồ chơi xếp hình", Category: "toys", Brand: "LEGO", Unit: "bộ", RetailPrice: 890000},
		{ID: "4", Name: "Dép quai ngang", Category: "shoes", Brand: "Bitis", Unit: "đôi", RetailPrice: 95000},
	}
}

func names(ps []models.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func TestApplyFilter(t *testing.T) {
	l := NewProductList(snapshot())

	l.ApplyFilter("bitis")
	assert.Equal(t, []string{"Giày thể thao", "Dép quai ngang"}, names(l.Visible()))
	assert.Equal(t, 4, l.Total(), "filtering never shrinks the full set")

	// Empty query restores everything.
	l.ApplyFilter("  ")
	assert.Len(t, l.Visible(), 4)

	// No match leaves an empty visible set, full set intact.
	l.ApplyFilter("nonexistent")
	assert.Empty(t, l.Visible())
	assert.Equal(t, 4, l.Total())
}

func TestFilterCategory(t *testing.T) {
	l := NewProductList(snapshot())

	l.FilterCategory("shoes")
	assert.Len(t, l.Visible(), 2)

	// "all" restores the full set after any narrowing.
	l.FilterCategory(CategoryAll)
	assert.Len(t, l.Visible(), 4)

	// Case-insensitive substring match.
	l.FilterCategory("SHO")
	assert.Len(t, l.Visible(), 2)
}

func TestSort(t *testing.T) {
	l := NewProductList(snapshot())

	l.Sort(SortByRetailPrice, false)
	assert.Equal(t, []string{"Dép quai ngang", "Áo thun bé gái", "Giày thể thao", "Đồ chơi xếp hình"}, names(l.Visible()))

	l.Sort(SortByRetailPrice, true)
	assert.Equal(t, "Đồ chơi xếp hình", l.Visible()[0].Name)

	// Vietnamese collation: Đ sorts after D, not at the ASCII tail.
	l.Sort(SortByName, false)
	got := names(l.Visible())
	assert.Equal(t, []string{"Áo thun bé gái", "Dép quai ngang", "Đồ chơi xếp hình", "Giày thể thao"}, got)

	// Unknown column keeps the current order.
	before := names(l.Visible())
	l.Sort(SortColumn("bogus"), false)
	assert.Equal(t, before, names(l.Visible()))
}

func TestSortIsStable(t *testing.T) {
	l := NewProductList([]models.Product{
		{ID: "a", Name: "Một", RetailPrice: 100},
		{ID: "b", Name: "Hai", RetailPrice: 100},
		{ID: "c", Name: "Ba", RetailPrice: 100},
	})

	l.Sort(SortByRetailPrice, false)
	assert.Equal(t, []string{"a", "b", "c"}, []string{l.Visible()[0].ID, l.Visible()[1].ID, l.Visible()[2].ID})
}

func TestReassignUnit(t *testing.T) {
	l := NewProductList(snapshot())
	l.FilterCategory("shoes")

	ok := l.ReassignUnit("1", "hộp")
	require.True(t, ok)

	// Both sets reflect the new unit.
	assert.Equal(t, "hộp", l.Visible()[0].Unit)
	l.FilterCategory(CategoryAll)
	for _, p := range l.Visible() {
		if p.ID == "1" {
			assert.Equal(t, "hộp", p.Unit)
		}
	}

	assert.False(t, l.ReassignUnit("missing", "kg"))
}
