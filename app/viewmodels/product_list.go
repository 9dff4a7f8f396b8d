// Package viewmodels holds the in-memory query state behind the product list:
// a full catalog snapshot plus a visible subset shaped by search, category
// filter and sorting. Filters are non-destructive; the full set is always
// retained so a cleared filter restores everything.
package viewmodels

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/shashiranjanraj/kidstore/app/models"
	"github.com/shashiranjanraj/kidstore/pkg/collection"
)

// SortColumn is the closed set of sortable columns.
type SortColumn string

const (
	SortByName           SortColumn = "name"
	SortByCategory       SortColumn = "category"
	SortByBrand          SortColumn = "brand"
	SortByUnit           SortColumn = "unit"
	SortByImportPrice    SortColumn = "importPrice"
	SortByWholesalePrice SortColumn = "wholesalePrice"
	SortByRetailPrice    SortColumn = "retailPrice"
	SortByStockAlert     SortColumn = "stockAlert"
)

// CategoryAll is the sentinel that restores the unfiltered set.
const CategoryAll = "all"

// ProductList is the list view-model. Not safe for concurrent use; each
// request builds its own from a snapshot.
type ProductList struct {
	full     []models.Product
	visible  []models.Product
	collator *collate.Collator
}

// NewProductList builds a view-model over a catalog snapshot. Both the full
// and visible sets start as the snapshot.
func NewProductList(snapshot []models.Product) *ProductList {
	visible := make([]models.Product, len(snapshot))
	copy(visible, snapshot)
	return &ProductList{
		full:     snapshot,
		visible:  visible,
		collator: collate.New(language.Vietnamese),
	}
}

// Visible returns the currently visible products.
func (l *ProductList) Visible() []models.Product { return l.visible }

// Total returns the size of the full snapshot.
func (l *ProductList) Total() int { return len(l.full) }

// ApplyFilter narrows the visible set to products matching the free-text
// query across the searchable display fields. An empty query restores the
// full set.
func (l *ProductList) ApplyFilter(query string) {
	q := strings.ToLower(strings.TrimSpace(query))
	l.visible = collection.Filter(l.full, func(p models.Product) bool {
		return p.MatchesSearch(q)
	})
}

// FilterCategory narrows the visible set by category. The sentinel "all"
// restores the full set; any other value matches case-insensitively as a
// substring of the product category.
func (l *ProductList) FilterCategory(category string) {
	c := strings.ToLower(strings.TrimSpace(category))
	if c == "" || c == CategoryAll {
		l.visible = make([]models.Product, len(l.full))
		copy(l.visible, l.full)
		return
	}
	l.visible = collection.Filter(l.full, func(p models.Product) bool {
		return strings.Contains(strings.ToLower(p.Category), c)
	})
}

// Sort orders the visible set by the given column. String columns compare
// with a Vietnamese collator; price and stock columns compare numerically.
// An unknown column leaves the order untouched. The sort is stable.
func (l *ProductList) Sort(col SortColumn, desc bool) {
	less, ok := l.lessFunc(col)
	if !ok {
		return
	}
	if desc {
		asc := less
		less = func(a, b models.Product) bool { return asc(b, a) }
	}
	collection.SortBy(l.visible, less)
}

// lessFunc maps a sort column to its typed comparison.
func (l *ProductList) lessFunc(col SortColumn) (func(a, b models.Product) bool, bool) {
	strLess := func(get func(models.Product) string) func(a, b models.Product) bool {
		return func(a, b models.Product) bool {
			return l.collator.CompareString(get(a), get(b)) < 0
		}
	}
	numLess := func(get func(models.Product) float64) func(a, b models.Product) bool {
		return func(a, b models.Product) bool { return get(a) < get(b) }
	}

	switch col {
	case SortByName:
		return strLess(func(p models.Product) string { return p.Name }), true
	case SortByCategory:
		return strLess(func(p models.Product) string { return p.Category }), true
	case SortByBrand:
		return strLess(func(p models.Product) string { return p.Brand }), true
	case SortByUnit:
		return strLess(func(p models.Product) string { return p.Unit }), true
	case SortByImportPrice:
		return numLess(func(p models.Product) float64 { return p.ImportPrice }), true
	case SortByWholesalePrice:
		return numLess(func(p models.Product) float64 { return p.WholesalePrice }), true
	case SortByRetailPrice:
		return numLess(func(p models.Product) float64 { return p.RetailPrice }), true
	case SortByStockAlert:
		return numLess(func(p models.Product) float64 { return float64(p.StockAlert) }), true
	default:
		return nil, false
	}
}

// ReassignUnit changes the unit of a single product in both the full and
// visible sets. Returns false when the id is not present. Persistence happens
// upstream; this only keeps the in-memory view consistent.
func (l *ProductList) ReassignUnit(id, unit string) bool {
	found := false
	for i := range l.full {
		if l.full[i].ID == id {
			l.full[i].Unit = unit
			found = true
		}
	}
	for i := range l.visible {
		if l.visible[i].ID == id {
			l.visible[i].Unit = unit
		}
	}
	return found
}
