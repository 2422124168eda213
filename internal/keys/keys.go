// Package keys implements the key builder: turning a query string into
// the short prefix keys a posting-list index is keyed by, including
// adjacent-token join variants that absorb whitespace mistakes.
package keys

import (
	"sort"
	"strings"

	"github.com/eci-voterfind/voterfind/internal/devnorm"
)

// Default prefix lengths per index family.
const (
	PrefixLenStrict = 3
	PrefixLenExact  = 2
	PrefixLenLoose  = 2
)

// prefix returns the first p codepoints of s, or all of s if it has fewer.
func prefix(s string, p int) string {
	runes := []rune(s)
	if len(runes) <= p {
		return s
	}
	return string(runes[:p])
}

// mergeAdjacent returns the token list with tokens[i] and tokens[i+1]
// concatenated into a single token, joined as a string with single spaces
// between the remaining tokens.
func mergeAdjacent(tokens []string, i int) string {
	parts := make([]string, 0, len(tokens)-1)
	parts = append(parts, tokens[:i]...)
	parts = append(parts, tokens[i]+tokens[i+1])
	parts = append(parts, tokens[i+2:]...)
	return strings.Join(parts, " ")
}

// Build tokenizes query with norm, then emits a deduplicated, sorted set of
// prefix keys: one per token, plus join-variant prefixes when the query has
// 2 or more tokens. For 4 or more tokens, join-variant strings are
// additionally collapsed to remove inner spaces before prefixing — note
// that for n>=4, every adjacent-pair-merge variant then collapses to the
// same spaceless string as the full join; intermediate contiguous spans
// are intentionally not enumerated.
func Build(norm func(string) string, p int, query string) []string {
	tokens := devnorm.Tokenize(norm, query)
	if len(tokens) == 0 {
		return nil
	}

	set := make(map[string]bool)
	for _, tok := range tokens {
		set[prefix(tok, p)] = true
	}

	n := len(tokens)
	if n >= 2 {
		for i := 0; i < n-1; i++ {
			variant := mergeAdjacent(tokens, i)
			if n >= 4 {
				variant = strings.ReplaceAll(variant, " ", "")
			}
			set[prefix(variant, p)] = true
		}
		full := strings.Join(tokens, "")
		set[prefix(full, p)] = true
	}

	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// BuildStrict, BuildExact and BuildLoose build keys for each index family
// using that family's normalizer and default prefix length.
func BuildStrict(query string) []string { return Build(devnorm.NormStrict, PrefixLenStrict, query) }
func BuildExact(query string) []string  { return Build(devnorm.NormExact, PrefixLenExact, query) }
func BuildLoose(query string) []string  { return Build(devnorm.NormLoose, PrefixLenLoose, query) }
