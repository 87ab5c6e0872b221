package usecase

import (
	"github.com/noon/backend/internal/domain"
	"github.com/noon/backend/internal/infrastructure/openfoodfacts"
)

// Aggregate flattens per-term results into food items, in dispatch order.
// Failed terms contribute nothing. The same product surfaced by several
// terms appears once per term.
func Aggregate(results []TermResult) []domain.FoodItem {
	total := 0
	for _, r := range results {
		total += len(r.Products)
	}

	items := make([]domain.FoodItem, 0, total)
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		items = append(items, openfoodfacts.MapToFoodItems(r.Products)...)
	}
	return items
}
