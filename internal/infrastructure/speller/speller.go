// Package speller corrects misspelled query words against a word-frequency
// dictionary using Damerau-Levenshtein (optimal string alignment) distance.
package speller

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultMaxEditDistance matches the usual two-edit window of frequency-based correctors
const DefaultMaxEditDistance = 2

//go:embed words.txt
var defaultDictionary string

// Speller is safe for concurrent use after construction
type Speller struct {
	words       map[string]int
	vocabulary  []string
	maxDistance int
}

// NewDefault builds a Speller from the embedded dictionary
func NewDefault(maxDistance int) (*Speller, error) {
	return New(strings.NewReader(defaultDictionary), maxDistance)
}

// Load builds a Speller from a dictionary file
func Load(path string, maxDistance int) (*Speller, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()

	return New(f, maxDistance)
}

// New reads a dictionary of "<word> <count>" lines. Blank lines and lines
// starting with '#' are ignored; a missing count means 1.
func New(r io.Reader, maxDistance int) (*Speller, error) {
	if maxDistance < 0 {
		return nil, fmt.Errorf("max edit distance must be >= 0, got %d", maxDistance)
	}

	words := make(map[string]int)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		count := 1
		if len(fields) > 1 {
			n, err := strconv.Atoi(fields[1])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("dictionary line %d: invalid count %q", lineNo, fields[1])
			}
			count = n
		}
		words[fold(fields[0])] += count
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}

	vocabulary := make([]string, 0, len(words))
	for w := range words {
		vocabulary = append(vocabulary, w)
	}
	sort.Strings(vocabulary)

	return &Speller{
		words:       words,
		vocabulary:  vocabulary,
		maxDistance: maxDistance,
	}, nil
}

// Size returns the number of dictionary words
func (s *Speller) Size() int {
	return len(s.words)
}

// Known reports whether word is in the dictionary
func (s *Speller) Known(word string) bool {
	_, ok := s.words[fold(word)]
	return ok
}

// Correct corrects each whitespace-separated word of term independently and
// joins the result with single spaces. Words it cannot improve are kept.
func (s *Speller) Correct(term string) string {
	words := strings.Fields(term)
	if len(words) == 0 {
		return term
	}

	for i, w := range words {
		words[i] = s.correctWord(w)
	}
	return strings.Join(words, " ")
}

func (s *Speller) correctWord(word string) string {
	if !isAlphabetic(word) {
		return word
	}

	key := fold(word)
	if _, ok := s.words[key]; ok {
		return word
	}

	best, ok := s.bestCandidate(key)
	if !ok {
		return word
	}
	return matchCase(word, best)
}

// bestCandidate ranks dictionary words within maxDistance by distance,
// then frequency, then lexically.
func (s *Speller) bestCandidate(key string) (string, bool) {
	var (
		best      string
		bestDist  = s.maxDistance + 1
		bestCount = -1
	)

	keyLen := utf8.RuneCountInString(key)
	for _, candidate := range s.vocabulary {
		diff := utf8.RuneCountInString(candidate) - keyLen
		if diff > s.maxDistance || -diff > s.maxDistance {
			continue
		}

		dist := edlib.OSADamerauLevenshteinDistance(key, candidate)
		if dist > s.maxDistance {
			continue
		}

		count := s.words[candidate]
		if dist < bestDist || (dist == bestDist && count > bestCount) {
			best, bestDist, bestCount = candidate, dist, count
		}
	}

	return best, bestCount >= 0
}

// fold lowercases and strips diacritics
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

func isAlphabetic(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

// matchCase carries a leading capital or all-caps spelling over to the correction
func matchCase(original, corrected string) string {
	if strings.ToUpper(original) == original && utf8.RuneCountInString(original) > 1 {
		return strings.ToUpper(corrected)
	}

	first, _ := utf8.DecodeRuneInString(original)
	if unicode.IsUpper(first) {
		r, size := utf8.DecodeRuneInString(corrected)
		return string(unicode.ToUpper(r)) + corrected[size:]
	}
	return corrected
}
