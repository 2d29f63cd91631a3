// Package nutrition resolves natural-language food queries into per-item
// macro data.
package nutrition

import (
	"context"
	"strings"
)

// Food is a single per-item nutrient record. The JSON names follow the
// Nutritionix natural/nutrients response; missing numbers decode as zero.
type Food struct {
	Name              string  `json:"food_name"`
	Calories          float64 `json:"nf_calories"`
	Protein           float64 `json:"nf_protein"`
	TotalFat          float64 `json:"nf_total_fat"`
	TotalCarbohydrate float64 `json:"nf_total_carbohydrate"`
	DietaryFiber      float64 `json:"nf_dietary_fiber"`
}

// Provider looks up nutrient records for a comma-joined list of food names.
type Provider interface {
	Lookup(ctx context.Context, query string) ([]Food, error)
}

func checkQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return &InvalidInputError{Query: query, Reason: "query cannot be empty"}
	}
	return nil
}
