// Package lexicon is an in-memory lexical knowledge base of sense-grouped
// food terms used to expand a search term into related terms.
package lexicon

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"gopkg.in/yaml.v3"
)

//go:embed synsets.yaml
var defaultSynsets []byte

// Synset is one sense: a group of lemmas that share a meaning
type Synset struct {
	ID     string   `yaml:"id"`
	Lemmas []string `yaml:"lemmas"`
}

type document struct {
	Synsets []Synset `yaml:"synsets"`
}

// Lexicon is safe for concurrent reads after construction
type Lexicon struct {
	synsets []Synset
	// lowercase lemma -> synset indices, ascending
	index map[string][]int
}

// Default parses the embedded synset file
func Default() (*Lexicon, error) {
	return Parse(defaultSynsets)
}

// Load parses a synset file from disk
func Load(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	return Parse(data)
}

// Parse builds a Lexicon from YAML
func Parse(data []byte) (*Lexicon, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode lexicon: %w", err)
	}

	l := &Lexicon{
		synsets: doc.Synsets,
		index:   make(map[string][]int),
	}
	for i, syn := range doc.Synsets {
		if len(syn.Lemmas) == 0 {
			return nil, fmt.Errorf("synset %q has no lemmas", syn.ID)
		}
		seen := mapset.NewThreadUnsafeSet[string]()
		for _, lemma := range syn.Lemmas {
			key := lookupKey(lemma)
			if key == "" {
				return nil, fmt.Errorf("synset %q has an empty lemma", syn.ID)
			}
			if seen.Add(key) {
				l.index[key] = append(l.index[key], i)
			}
		}
	}

	return l, nil
}

// Size returns the number of synsets
func (l *Lexicon) Size() int {
	return len(l.synsets)
}

// Synsets returns every sense of term, trying simple plural base forms
// when the surface form is unknown.
func (l *Lexicon) Synsets(term string) []Synset {
	key := lookupKey(term)
	if key == "" {
		return nil
	}

	found := mapset.NewThreadUnsafeSet[int]()
	for _, form := range append([]string{key}, baseForms(key)...) {
		for _, i := range l.index[form] {
			found.Add(i)
		}
	}

	ids := found.ToSlice()
	sort.Ints(ids)

	out := make([]Synset, 0, len(ids))
	for _, i := range ids {
		out = append(out, l.synsets[i])
	}
	return out
}

// Synonyms implements domain.SynonymExpander. It returns every lemma of every
// sense of term, with '_' rendered as a space, without duplicates. The term's
// own lemma is included. Unknown terms return an empty slice.
func (l *Lexicon) Synonyms(term string) []string {
	related := mapset.NewThreadUnsafeSet[string]()
	for _, syn := range l.Synsets(term) {
		for _, lemma := range syn.Lemmas {
			related.Add(displayForm(lemma))
		}
	}

	out := related.ToSlice()
	sort.Strings(out)
	return out
}

func lookupKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(strings.ReplaceAll(s, "_", " ")), "_"))
}

func displayForm(lemma string) string {
	return strings.ReplaceAll(lemma, "_", " ")
}

// noun suffix rules, longest first
var pluralRules = []struct {
	suffix, replacement string
}{
	{"ches", "ch"},
	{"shes", "sh"},
	{"ies", "y"},
	{"ses", "s"},
	{"xes", "x"},
	{"zes", "z"},
	{"oes", "o"},
	{"s", ""},
}

// baseForms returns candidate singular forms of a plural noun
func baseForms(word string) []string {
	var forms []string
	for _, rule := range pluralRules {
		if strings.HasSuffix(word, rule.suffix) && len(word) > len(rule.suffix)+1 {
			forms = append(forms, strings.TrimSuffix(word, rule.suffix)+rule.replacement)
		}
	}
	return forms
}
