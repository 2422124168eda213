package entity

import (
	"sort"

	"github.com/eci-voterfind/voterfind/internal/devnorm"
)

type vocabEntry struct {
	s     string
	runes []rune
}

// vocabulary is the entity vocabulary derived once at startup as the union
// of every token appearing in the phonetic/visual group lists, plus
// independent vowels and the Devanagari numerals. Sorted by descending
// codepoint length so Segment can try longest match first.
var vocabulary = buildVocabulary()

func buildVocabulary() []vocabEntry {
	seen := make(map[string]bool)
	var entries []vocabEntry

	add := func(s string) {
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		entries = append(entries, vocabEntry{s: s, runes: []rune(s)})
	}

	for _, g := range stripGroupLiterals(phoneticGroups) {
		for _, tok := range g {
			add(tok)
		}
	}
	for _, groups := range [][][]string{visualP0Groups, visualP1Groups, visualP2Groups} {
		for _, g := range stripGroupLiterals(groups) {
			for _, tok := range g {
				add(tok)
			}
		}
	}
	for _, v := range independentVowels {
		add(v)
	}
	for _, n := range numerals {
		add(n)
	}

	sort.Slice(entries, func(i, j int) bool {
		if len(entries[i].runes) != len(entries[j].runes) {
			return len(entries[i].runes) > len(entries[j].runes)
		}
		return entries[i].s < entries[j].s
	})
	return entries
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Segment splits word into a sequence of maximal entities drawn from the
// curated vocabulary, greedy longest-match from left to right; any
// codepoint that matches no vocabulary entity becomes a singleton entity.
// Segment is deterministic and total: for any string s,
// concatenating Segment(devnorm.StripMarks(s)) reproduces
// devnorm.StripMarks(s), since every branch consumes at least one
// codepoint and emits it verbatim.
//
// Callers are expected to pass already mark-stripped text (see
// devnorm.StripMarks); Segment does not strip marks itself so that it can
// also be used on already-normalized inner substrings without re-running
// normalization.
func Segment(word string) []string {
	runes := []rune(word)
	var out []string
	i := 0
	for i < len(runes) {
		matched := false
		for _, voc := range vocabulary {
			n := len(voc.runes)
			if n == 0 || i+n > len(runes) {
				continue
			}
			if runesEqual(runes[i:i+n], voc.runes) {
				out = append(out, voc.s)
				i += n
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, string(runes[i]))
			i++
		}
	}
	return out
}

// SegmentStripped is a convenience that strips marks before segmenting,
// matching the invocation pattern compareFull uses on each word.
func SegmentStripped(word string) []string {
	return Segment(devnorm.StripMarks(word))
}

// IsMatraLike reports whether an entity (as produced by Segment) is a
// single-codepoint vowel sign.
func IsMatraLike(e string) bool {
	runes := []rune(e)
	if len(runes) != 1 {
		return false
	}
	return devnorm.IsMatra(runes[0])
}

// SafeGraphemeCount is a malformed-input safety helper: it counts grapheme
// clusters (via uax29) rather than raw codepoints, so a query-length check
// (cmd/server's maxQueryGraphemes guard) can distinguish a genuinely long string
// from one rune-count inflated by combining marks riding on very few base
// characters — the kind of input a naive codepoint count would
// over-penalize. It plays no role in segmentation or scoring; see
// entity_test.go and DESIGN.md.
func SafeGraphemeCount(s string) int {
	return graphemeCount(s)
}
