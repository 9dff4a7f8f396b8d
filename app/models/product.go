package models

import "strings"

// Product is a document in the `products` collection. ID carries the
// store-assigned document identity; it is never stored inside the document
// itself, so it is excluded from BSON marshalling and projected back from
// `_id` on reads.
type Product struct {
	ID             string  `bson:"-"                        json:"id,omitempty"`
	Name           string  `bson:"name"                     json:"name"           validate:"required,min=3,max=100"`
	Category       string  `bson:"category"                 json:"category"       validate:"required"`
	Brand          string  `bson:"brand,omitempty"          json:"brand,omitempty"`
	Location       string  `bson:"location,omitempty"       json:"location,omitempty"`
	HasVariants    bool    `bson:"hasVariants"              json:"hasVariants"`
	ImportPrice    float64 `bson:"importPrice"              json:"importPrice"    validate:"gte=0"`
	Unit           string  `bson:"unit"                     json:"unit"           validate:"required"`
	WholesalePrice float64 `bson:"wholesalePrice"           json:"wholesalePrice" validate:"gte=0"`
	Barcode        string  `bson:"barcode,omitempty"        json:"barcode,omitempty" validate:"nullable,digits_between=8,13"`
	RetailPrice    float64 `bson:"retailPrice"              json:"retailPrice"    validate:"gte=0"`
	StockAlert     int     `bson:"stockAlert"               json:"stockAlert"     validate:"gte=0"`
	AllowSelling   bool    `bson:"allowSelling"             json:"allowSelling"`
	FastSell       bool    `bson:"fastSell"                 json:"fastSell"`
	Image          string  `bson:"image,omitempty"          json:"image,omitempty"`
}

// Category is one entry of the fixed category set.
type Category struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Categories returns the fixed product category set.
func Categories() []Category {
	return []Category{
		{Value: "shoes", Label: "Giày dép cho bé"},
		{Value: "clothing", Label: "Quần áo trẻ em"},
		{Value: "accessories", Label: "Phụ kiện bé"},
		{Value: "toys", Label: "Đồ chơi"},
		{Value: "books", Label: "Sách trẻ em"},
		{Value: "food", Label: "Thực phẩm cho bé"},
		{Value: "sports", Label: "Đồ thể thao"},
		{Value: "electronics", Label: "Đồ điện tử"},
	}
}

// IsCategory reports whether value belongs to the fixed category set.
func IsCategory(value string) bool {
	for _, c := range Categories() {
		if c.Value == value {
			return true
		}
	}
	return false
}

// Units returns the suggested unit set. The unit field itself is free-form;
// these are only offered as completions in the form.
func Units() []string {
	return []string{
		"cái", "chiếc", "đôi", "bộ", "hộp", "chai", "túi", "gói",
		"kg", "gram", "lít", "ml", "mét", "cm", "tờ", "cuốn",
	}
}

// MatchesSearch reports whether the product matches a free-text query.
// The query is expected to be pre-lowercased and trimmed by the caller.
func (p Product) MatchesSearch(query string) bool {
	if query == "" {
		return true
	}
	for _, field := range []string{p.Name, p.Barcode, p.Category, p.Brand, p.Unit} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
