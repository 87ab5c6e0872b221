package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultLexicon(t *testing.T) *Lexicon {
	t.Helper()
	l, err := Default()
	require.NoError(t, err)
	return l
}

func TestDefault(t *testing.T) {
	l := newDefaultLexicon(t)
	assert.Greater(t, l.Size(), 50)
}

func TestSynonyms(t *testing.T) {
	l := newDefaultLexicon(t)

	tests := []struct {
		name string
		term string
		want []string
	}{
		{
			name: "multi-word lemmas rendered with spaces",
			term: "apple",
			want: []string{"Malus pumila", "apple", "orchard apple tree"},
		},
		{
			name: "case-insensitive lookup keeps stored case",
			term: "MILK",
			want: []string{"Milk", "Milk River", "milk"},
		},
		{
			name: "plural falls back to singular",
			term: "potatoes",
			want: []string{"Irish potato", "murphy", "potato", "spud", "tater", "white potato"},
		},
		{
			name: "multi-word term",
			term: "peanut butter",
			want: []string{"peanut butter"},
		},
		{
			name: "unknown term",
			term: "xyzzy",
			want: []string{},
		},
		{
			name: "blank term",
			term: "   ",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.Synonyms(tt.term))
		})
	}
}

func TestSynonyms_UniqueAcrossSenses(t *testing.T) {
	l := newDefaultLexicon(t)

	got := l.Synonyms("banana")

	assert.Equal(t, []string{"banana", "banana tree"}, got)
}

func TestSynsets_OrderedBySense(t *testing.T) {
	l := newDefaultLexicon(t)

	syns := l.Synsets("corn")

	require.Len(t, syns, 2)
	assert.Equal(t, "corn.n.03", syns[0].ID)
	assert.Equal(t, "corn.n.01", syns[1].ID)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("synsets: [}"))
	assert.Error(t, err)

	_, err = Parse([]byte("synsets:\n  - id: empty.n.01\n    lemmas: []\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("synsets:\n  - id: blank.n.01\n    lemmas: ['  ']\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synsets.yaml")
	data := []byte("synsets:\n  - id: kale.n.01\n    lemmas: [kale, borecole, Brassica_oleracea_acephala]\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	l, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Brassica oleracea acephala", "borecole", "kale"}, l.Synonyms("Kale"))

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestBaseForms(t *testing.T) {
	assert.Contains(t, baseForms("peaches"), "peach")
	assert.Contains(t, baseForms("berries"), "berry")
	assert.Contains(t, baseForms("tomatoes"), "tomato")
	assert.Contains(t, baseForms("apples"), "apple")
	assert.Empty(t, baseForms("us"))
}
