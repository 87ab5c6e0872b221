package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/noon/backend/internal/calculator"
	"github.com/noon/backend/internal/domain"
)

const (
	serviceName    = "noon-backend"
	serviceVersion = "1.0.0"
)

// FoodSearcher runs the food query pipeline
type FoodSearcher interface {
	Search(ctx context.Context, raw string) []domain.FoodItem
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	searcher FoodSearcher
}

// NewHandler creates a new HTTP handler. searcher must be non-nil.
func NewHandler(searcher FoodSearcher) *Handler {
	return &Handler{searcher: searcher}
}

// SearchResponse is the body of a food search
type SearchResponse struct {
	Query string            `json:"query"`
	Count int               `json:"count"`
	Items []domain.FoodItem `json:"items"`
}

// CalculatorRequest carries body metrics
type CalculatorRequest struct {
	WeightKg      float64 `json:"weight_kg" binding:"required,gt=0"`
	HeightCm      float64 `json:"height_cm" binding:"required,gt=0"`
	Age           float64 `json:"age" binding:"gte=0,lte=150"`
	Gender        string  `json:"gender"`
	ActivityLevel string  `json:"activity_level"`
}

// CalculatorResponse carries the derived values
type CalculatorResponse struct {
	BMI                float64 `json:"bmi"`
	BMICategory        string  `json:"bmi_category"`
	BMR                float64 `json:"bmr"`
	ActivityMultiplier float64 `json:"activity_multiplier"`
	CalorieNeeds       float64 `json:"calorie_needs"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}

// SearchFoods handles GET /foods/search?q=<term>. Blank queries return an
// empty list; provider failures never surface as errors.
func (h *Handler) SearchFoods(c *gin.Context) {
	query := c.Query("q")
	items := h.searcher.Search(c.Request.Context(), query)

	c.JSON(http.StatusOK, SearchResponse{
		Query: query,
		Count: len(items),
		Items: items,
	})
}

// Calculate handles POST /calculator
func (h *Handler) Calculate(c *gin.Context) {
	var req CalculatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   domain.ErrInvalidRequest.Error(),
			"details": err.Error(),
		})
		return
	}

	activity := calculator.ActivityLevel(req.ActivityLevel)
	result := calculator.Calculate(calculator.Metrics{
		WeightKg: req.WeightKg,
		HeightCm: req.HeightCm,
		Age:      req.Age,
		Gender:   calculator.Gender(req.Gender),
		Activity: activity,
	})

	c.JSON(http.StatusOK, CalculatorResponse{
		BMI:                result.BMI,
		BMICategory:        calculator.BMICategory(result.BMI),
		BMR:                result.BMR,
		ActivityMultiplier: activity.Multiplier(),
		CalorieNeeds:       result.CalorieNeeds,
	})
}
