package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePriceRelationships(t *testing.T) {
	tests := []struct {
		name       string
		imp, ws, rt float64
		wantErrors []string
	}{
		{
			name: "ascending prices are valid",
			imp:  100, ws: 120, rt: 150,
			wantErrors: nil,
		},
		{
			name: "equal prices are valid",
			imp:  100, ws: 100, rt: 100,
			wantErrors: nil,
		},
		{
			name: "all zero is valid",
			imp:  0, ws: 0, rt: 0,
			wantErrors: nil,
		},
		{
			name: "wholesale below import",
			imp:  100, ws: 80, rt: 120,
			wantErrors: []string{
				"Wholesale price should not be less than import price",
			},
		},
		{
			name: "retail below wholesale",
			imp:  100, ws: 150, rt: 120,
			wantErrors: []string{
				"Retail price should not be less than wholesale price",
			},
		},
		{
			name: "retail below import only",
			imp:  100, ws: 100, rt: 90,
			wantErrors: []string{
				"Retail price should not be less than wholesale price",
				"Retail price should not be less than import price",
			},
		},
		{
			name: "every rule violated",
			imp:  100, ws: 50, rt: 20,
			wantErrors: []string{
				"Wholesale price should not be less than import price",
				"Retail price should not be less than wholesale price",
				"Retail price should not be less than import price",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidatePriceRelationships(tt.imp, tt.ws, tt.rt)
			assert.Equal(t, len(tt.wantErrors) == 0, got.IsValid)
			assert.Equal(t, tt.wantErrors, got.Errors)
		})
	}
}

func TestCalculateSuggestedPrices(t *testing.T) {
	got := CalculateSuggestedPrices(100)
	assert.Equal(t, 120.0, got.Wholesale)
	assert.Equal(t, 140.0, got.Retail)

	// Rounding to the nearest whole unit.
	got = CalculateSuggestedPrices(99)
	assert.Equal(t, 119.0, got.Wholesale) // 118.8 → 119
	assert.Equal(t, 139.0, got.Retail)    // 138.6 → 139

	got = CalculateSuggestedPrices(0)
	assert.Equal(t, 0.0, got.Wholesale)
	assert.Equal(t, 0.0, got.Retail)
}
