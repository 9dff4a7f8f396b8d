package validate_test

import (
	"testing"

	"github.com/shashiranjanraj/kidstore/pkg/validate"
)

type productInput struct {
	Name       string  `json:"name"       validate:"required,min=3,max=100"`
	Category   string  `json:"category"   validate:"required,in=shoes,clothing,toys"`
	Unit       string  `json:"unit"       validate:"required"`
	Barcode    string  `json:"barcode"    validate:"nullable,digits_between=8,13"`
	Price      float64 `json:"price"      validate:"gte=0"`
	StockAlert int     `json:"stockAlert" validate:"gte=0,integer"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(productInput{
		Name:       "Giày thể thao",
		Category:   "shoes",
		Unit:       "đôi",
		Barcode:    "", // nullable — allowed to be empty
		Price:      50000,
		StockAlert: 10,
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(productInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["name"]; !ok {
		t.Error("expected name to be required")
	}
	if _, ok := errs["category"]; !ok {
		t.Error("expected category to be required")
	}
}

func TestMinLength(t *testing.T) {
	errs := validate.Struct(productInput{Name: "ab", Category: "shoes", Unit: "đôi"})
	if _, ok := errs["name"]; !ok {
		t.Error("expected two-character name to fail min=3")
	}
}

func TestInRule(t *testing.T) {
	errs := validate.Struct(productInput{Name: "Váy bé gái", Category: "furniture", Unit: "cái"})
	if _, ok := errs["category"]; !ok {
		t.Error("expected unknown category to fail the in rule")
	}
}

func TestDigitsBetween(t *testing.T) {
	base := productInput{Name: "Váy bé gái", Category: "clothing", Unit: "cái"}

	base.Barcode = "12345678"
	if errs := validate.Struct(base); validate.HasErrors(errs) {
		t.Errorf("expected 8-digit barcode to pass, got: %v", errs)
	}

	base.Barcode = "1234567"
	if errs := validate.Struct(base); !validate.HasErrors(errs) {
		t.Error("expected 7-digit barcode to fail")
	}

	base.Barcode = "12345678901234"
	if errs := validate.Struct(base); !validate.HasErrors(errs) {
		t.Error("expected 14-digit barcode to fail")
	}

	base.Barcode = "12345abc"
	if errs := validate.Struct(base); !validate.HasErrors(errs) {
		t.Error("expected non-numeric barcode to fail")
	}
}

func TestNumericBounds(t *testing.T) {
	errs := validate.Struct(productInput{Name: "Bóng đá mini", Category: "toys", Unit: "cái", Price: -5})
	if _, ok := errs["price"]; !ok {
		t.Error("expected negative price to fail gte=0")
	}
}
