package validation

import (
	"regexp"
	"slices"
	"strings"
)

// DefaultSimilarityThreshold is the word-overlap ratio a candidate must exceed to
// confirm the input. Hand-tuned; re-check against production traffic before changing.
const DefaultSimilarityThreshold = 0.6

// abbreviations maps whole words to the short form the provider uses.
var abbreviations = map[string]string{
	"road":     "rd",
	"street":   "st",
	"avenue":   "ave",
	"mountain": "mtn",
}

var (
	punctuationPattern  = regexp.MustCompile(`[.,]`)
	abbreviationPattern = compileAbbreviationPattern(abbreviations)
)

func compileAbbreviationPattern(words map[string]string) *regexp.Regexp {
	keys := make([]string, 0, len(words))
	for k := range words {
		keys = append(keys, regexp.QuoteMeta(k))
	}
	slices.Sort(keys)
	return regexp.MustCompile(`\b(` + strings.Join(keys, "|") + `)\b`)
}

// Verdict is the comparator's decision about an input and a candidate.
type Verdict int

const (
	// VerdictCorrected means the candidate differs enough to be a suggestion only.
	VerdictCorrected Verdict = iota
	// VerdictValidated means the candidate confirms the input.
	VerdictValidated
)

func (v Verdict) String() string {
	if v == VerdictValidated {
		return "validated"
	}
	return "corrected"
}

// Comparator decides whether a candidate's formatted address confirms the user's input.
type Comparator struct {
	threshold float64
}

// NewComparator returns a comparator using threshold. Values outside (0, 1) fall back
// to DefaultSimilarityThreshold.
func NewComparator(threshold float64) Comparator {
	if threshold <= 0 || threshold >= 1 {
		threshold = DefaultSimilarityThreshold
	}
	return Comparator{threshold: threshold}
}

// Threshold returns the similarity ratio the comparator must exceed.
func (c Comparator) Threshold() float64 {
	return c.threshold
}

// Compare normalizes both strings and reports whether they are equal or share
// more than the threshold of their distinct words.
func (c Comparator) Compare(input, candidate string) Verdict {
	a, b := Normalize(input), Normalize(candidate)
	if a == b {
		return VerdictValidated
	}
	if similarity(a, b) > c.threshold {
		return VerdictValidated
	}
	return VerdictCorrected
}

// Normalize lowercases s, drops periods and commas, abbreviates common street words
// and collapses whitespace. Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = punctuationPattern.ReplaceAllString(s, "")
	s = abbreviationPattern.ReplaceAllStringFunc(s, func(word string) string {
		return abbreviations[word]
	})
	return strings.Join(strings.Fields(s), " ")
}

// Similarity returns the share of distinct words two addresses have in common,
// relative to the larger word set.
func Similarity(a, b string) float64 {
	return similarity(Normalize(a), Normalize(b))
}

func similarity(a, b string) float64 {
	wordsA, wordsB := wordSet(a), wordSet(b)
	denominator := max(len(wordsA), len(wordsB))
	if denominator == 0 {
		return 0
	}

	shared := 0
	for word := range wordsA {
		if _, ok := wordsB[word]; ok {
			shared++
		}
	}
	return float64(shared) / float64(denominator)
}

func wordSet(s string) map[string]struct{} {
	words := strings.Split(s, " ")
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}
