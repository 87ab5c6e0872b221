package usecase

import (
	"errors"
	"testing"

	"github.com/noon/backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	results := []TermResult{
		{Term: "apple", Products: []domain.OFFProduct{product("Gala", 52), {}}},
		{Term: "Malus pumila", Err: errors.New("timeout")},
		{Term: "orchard apple tree", Products: []domain.OFFProduct{product("Gala", 52)}},
	}

	items := Aggregate(results)

	assert.Equal(t, []string{"Gala", domain.UnknownProductName, "Gala"}, names(items))
	for _, it := range items {
		assert.NotEmpty(t, it.Name)
	}
	assert.Equal(t, domain.Unavailable, items[1].Calories)
}

func TestAggregate_Empty(t *testing.T) {
	items := Aggregate(nil)

	assert.NotNil(t, items)
	assert.Empty(t, items)
}
