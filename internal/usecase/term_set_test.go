package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildTermSet(t *testing.T) {
	t.Run("contains corrected term without synonyms", func(t *testing.T) {
		set := BuildTermSet("apple", nil)

		assert.Equal(t, 1, set.Cardinality())
		assert.True(t, set.Contains("apple"))
	})

	t.Run("collapses duplicates and skips blanks", func(t *testing.T) {
		set := BuildTermSet("milk", []string{"milk", "Milk", " ", "Milk River", "Milk"})

		assert.Equal(t, 3, set.Cardinality())
		assert.True(t, set.Contains("milk", "Milk", "Milk River"))
	})
}

func TestOrderTerms(t *testing.T) {
	set := BuildTermSet("potato", []string{"tater", "spud", "Irish potato", "potato"})

	assert.Equal(t, []string{"potato", "Irish potato", "spud", "tater"}, OrderTerms(set, "potato", 0))
	assert.Equal(t, []string{"potato", "Irish potato", "spud"}, OrderTerms(set, "potato", 2))
	assert.Equal(t, []string{"potato"}, OrderTerms(BuildTermSet("potato", nil), "potato", 3))
}
