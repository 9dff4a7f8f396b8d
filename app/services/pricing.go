package services

import "math"

// PriceValidation is the outcome of checking the three price relationships.
// Errors holds every violated rule, in a fixed order, so the caller can join
// them into a single message.
type PriceValidation struct {
	IsValid bool
	Errors  []string
}

// SuggestedPrices are advisory selling prices derived from the import price.
type SuggestedPrices struct {
	Wholesale float64 `json:"wholesalePrice"`
	Retail    float64 `json:"retailPrice"`
}

// ValidatePriceRelationships checks the three ordering rules between the
// import, wholesale and retail prices. All three checks run independently;
// a form with several violations reports all of them at once.
func ValidatePriceRelationships(importPrice, wholesalePrice, retailPrice float64) PriceValidation {
	var errs []string

	if wholesalePrice < importPrice {
		errs = append(errs, "Wholesale price should not be less than import price")
	}
	if retailPrice < wholesalePrice {
		errs = append(errs, "Retail price should not be less than wholesale price")
	}
	if retailPrice < importPrice {
		errs = append(errs, "Retail price should not be less than import price")
	}

	return PriceValidation{IsValid: len(errs) == 0, Errors: errs}
}

// CalculateSuggestedPrices derives advisory wholesale and retail prices from
// the import price using the standard 20% / 40% markups. The results are
// suggestions only; nothing enforces them on the stored record.
func CalculateSuggestedPrices(importPrice float64) SuggestedPrices {
	return SuggestedPrices{
		Wholesale: math.Round(importPrice * 1.2),
		Retail:    math.Round(importPrice * 1.4),
	}
}
