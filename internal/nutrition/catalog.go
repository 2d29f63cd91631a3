package nutrition

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/pageza/healthcoach/backend/internal/model"
)

// CatalogProvider answers lookups from the local foods table instead of
// calling Nutritionix.
type CatalogProvider struct {
	db *gorm.DB
}

// NewCatalogProvider creates a provider backed by db
func NewCatalogProvider(db *gorm.DB) *CatalogProvider {
	return &CatalogProvider{db: db}
}

// Lookup returns one record per known name in query order. Unknown names are
// skipped; a query with no known names fails like Nutritionix does (404).
func (p *CatalogProvider) Lookup(ctx context.Context, query string) ([]Food, error) {
	if err := checkQuery(query); err != nil {
		return nil, err
	}

	var names []string
	for _, part := range strings.Split(query, ",") {
		if name := model.NormalizeFoodName(part); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, &InvalidInputError{Query: query, Reason: "query contains no food names"}
	}

	var rows []model.Food
	if err := p.db.WithContext(ctx).Where("name IN ?", names).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query food catalog: %w", err)
	}

	byName := make(map[string]model.Food, len(rows))
	for _, row := range rows {
		byName[row.Name] = row
	}

	foods := make([]Food, 0, len(names))
	for _, name := range names {
		row, ok := byName[name]
		if !ok {
			continue
		}
		foods = append(foods, Food{
			Name:              row.Name,
			Calories:          row.Calories,
			Protein:           row.Protein,
			TotalFat:          row.Fat,
			TotalCarbohydrate: row.Carbs,
			DietaryFiber:      row.Fiber,
		})
	}

	if len(foods) == 0 {
		return nil, &UpstreamError{
			StatusCode: http.StatusNotFound,
			Body:       "We couldn't match any of your foods",
		}
	}

	return foods, nil
}
