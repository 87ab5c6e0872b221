package openfoodfacts

import (
	"strings"

	"github.com/noon/backend/internal/domain"
)

// MapToFoodItem converts an Open Food Facts product to a FoodItem.
// A missing or blank name becomes domain.UnknownProductName and each
// missing nutrient becomes domain.Unavailable.
func MapToFoodItem(product *domain.OFFProduct) domain.FoodItem {
	item := domain.FoodItem{
		Name:     domain.UnknownProductName,
		Calories: domain.Unavailable,
		Proteins: domain.Unavailable,
		Carbs:    domain.Unavailable,
		Fats:     domain.Unavailable,
	}
	if product == nil {
		return item
	}

	if product.ProductName != nil && strings.TrimSpace(*product.ProductName) != "" {
		item.Name = *product.ProductName
	}

	if n := product.Nutriments; n != nil {
		item.Calories = n.EnergyKcal100g
		item.Proteins = n.Proteins100g
		item.Carbs = n.Carbohydrates100g
		item.Fats = n.Fat100g
	}

	return item
}

// MapToFoodItems converts products in order
func MapToFoodItems(products []domain.OFFProduct) []domain.FoodItem {
	items := make([]domain.FoodItem, 0, len(products))
	for i := range products {
		items = append(items, MapToFoodItem(&products[i]))
	}
	return items
}
