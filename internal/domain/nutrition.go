package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// UnavailableSentinel is written in place of a nutrient value the provider did not report
const UnavailableSentinel = "N/A"

// UnknownProductName replaces a missing product name
const UnknownProductName = "Unknown Product"

// Nutrient is a per-100g nutrient value that may be unavailable.
// It encodes to a JSON number, or to UnavailableSentinel when absent.
type Nutrient struct {
	Value     float64
	Available bool
}

// NutrientOf returns an available nutrient holding v
func NutrientOf(v float64) Nutrient {
	return Nutrient{Value: v, Available: true}
}

// Unavailable is the nutrient used when the provider has no value
var Unavailable = Nutrient{}

func (n Nutrient) String() string {
	if !n.Available {
		return UnavailableSentinel
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

// MarshalJSON implements json.Marshaler
func (n Nutrient) MarshalJSON() ([]byte, error) {
	if !n.Available {
		return json.Marshal(UnavailableSentinel)
	}
	return json.Marshal(n.Value)
}

// UnmarshalJSON accepts numbers and numeric strings. Anything else, including
// null and the sentinel, decodes to Unavailable rather than failing, since
// provider payloads are user-contributed and loosely typed.
func (n *Nutrient) UnmarshalJSON(data []byte) error {
	*n = Unavailable

	if isNull(data) {
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*n = NutrientOf(num)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*n = NutrientOf(v)
		}
	}
	return nil
}

// FoodItem is a normalized nutrition record returned by a search
type FoodItem struct {
	Name     string   `json:"name"`
	Calories Nutrient `json:"calories"`
	Proteins Nutrient `json:"proteins"`
	Carbs    Nutrient `json:"carbs"`
	Fats     Nutrient `json:"fats"`
}

// OFFNutriments holds the per-100g nutrient fields of an Open Food Facts product
type OFFNutriments struct {
	EnergyKcal100g    Nutrient `json:"energy-kcal_100g"`
	Proteins100g      Nutrient `json:"proteins_100g"`
	Carbohydrates100g Nutrient `json:"carbohydrates_100g"`
	Fat100g           Nutrient `json:"fat_100g"`
}

// OFFProduct is a single product from the Open Food Facts search API.
// Every field is optional.
type OFFProduct struct {
	ProductName *string        `json:"product_name,omitempty"`
	Nutriments  *OFFNutriments `json:"nutriments,omitempty"`
}

// UnmarshalJSON decodes one product record leniently. A non-string name
// leaves ProductName nil and a nutriments value that is not an object leaves
// Nutriments nil, so one odd record never fails the whole page.
func (p *OFFProduct) UnmarshalJSON(data []byte) error {
	*p = OFFProduct{}

	var raw struct {
		ProductName json.RawMessage `json:"product_name"`
		Nutriments  json.RawMessage `json:"nutriments"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	var name string
	if !isNull(raw.ProductName) && json.Unmarshal(raw.ProductName, &name) == nil {
		p.ProductName = &name
	}

	if !isNull(raw.Nutriments) {
		var nutriments OFFNutriments
		if json.Unmarshal(raw.Nutriments, &nutriments) == nil {
			p.Nutriments = &nutriments
		}
	}
	return nil
}

// OFFSearchResponse represents the response from the Open Food Facts search API
type OFFSearchResponse struct {
	Products []OFFProduct `json:"products"`
}

func isNull(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) == 0 || bytes.Equal(data, []byte("null"))
}
