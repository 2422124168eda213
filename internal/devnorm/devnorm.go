// Package devnorm implements the three parallel normalized representations
// a name field is compared under: strict, exact and loose. All functions
// are pure and total — empty input maps to empty output, there is no
// failure mode.
package devnorm

import (
	"strings"
	"unicode"
)

// combining marks stripped by StripMarks: candrabindu, anusvara, visarga,
// nukta, virama. These five are removed wholesale; vowel signs (matras) are
// not in this set and survive into the strict/exact/loose forms.
const (
	candrabindu = 'ँ'
	anusvara    = 'ं'
	visarga     = 'ः'
	nukta       = '़'
	virama      = '्'
)

func isCombiningMark(r rune) bool {
	switch r {
	case candrabindu, anusvara, visarga, nukta, virama:
		return true
	default:
		return false
	}
}

// nbsp is the non-breaking space codepoint NormStrict folds to a regular
// space before collapsing whitespace runs.
const nbsp = ' '

// danda and double danda are Devanagari sentence punctuation, stripped like
// any other punctuation by NormStrict.
const (
	danda       = '।'
	doubleDanda = '॥'
)

func isStrippedPunct(r rune) bool {
	if r == danda || r == doubleDanda {
		return true
	}
	if unicode.IsPunct(r) || unicode.IsSymbol(r) {
		return true
	}
	return false
}

// NormStrict collapses whitespace and strips punctuation: NBSP -> space,
// trim, a fixed punctuation class -> space, then runs of whitespace
// collapse to one. It never fails and is idempotent.
func NormStrict(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := false
	for _, r := range s {
		if r == nbsp {
			r = ' '
		}
		switch {
		case isStrippedPunct(r):
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		default:
			b.WriteRune(r)
			lastSpace = false
		}
	}
	return strings.TrimSpace(b.String())
}

// StripMarks removes the five combining marks (candrabindu, anusvara,
// visarga, nukta, virama) from s and collapses the resulting whitespace.
// Segmentation (package entity) always operates on StripMarks output, never
// on raw text, so that the segmentation-totality invariant
// (concat(segment(StripMarks(s))) == StripMarks(s)) holds for any input.
func StripMarks(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isCombiningMark(r) {
			continue
		}
		b.WriteRune(r)
	}
	return NormStrict(b.String())
}

// CountMarks counts combining marks present in NormStrict(s). It is used by
// the ranker to penalize the aggregate number of dropped nasalization/nukta
// marks between a query word and a candidate word.
func CountMarks(s string) int {
	n := 0
	for _, r := range NormStrict(s) {
		if isCombiningMark(r) {
			n++
		}
	}
	return n
}

// vowelBucket maps every independent vowel and vowel sign (matra) this
// engine recognizes to one of the 7 symbols {A,I,U,E,O,R,L}: short/long
// pairs of the same vowel sound fold to a single bucket, exactly mirroring
// the PHONETIC vowel-pair groups in package entity.
var vowelBucket = map[rune]byte{
	// independent vowels
	'अ': 'A', 'आ': 'A',
	'इ': 'I', 'ई': 'I',
	'उ': 'U', 'ऊ': 'U',
	'ऋ': 'R', 'ॠ': 'R',
	'ऌ': 'L', 'ॡ': 'L',
	'ए': 'E', 'ऐ': 'E',
	'ओ': 'O', 'औ': 'O',
	// matras (vowel signs)
	'ा': 'A',
	'ि': 'I', 'ी': 'I',
	'ु': 'U', 'ू': 'U',
	'ृ': 'R', 'ॄ': 'R',
	'ॢ': 'L', 'ॣ': 'L',
	'े': 'E', 'ै': 'E',
	'ो': 'O', 'ौ': 'O',
}

// matraRunes are the vowel signs (matras) — as opposed to independent
// vowels — recognized by this engine. A matra is always a single codepoint
// that attaches to a preceding consonant; package entity classifies a
// segmented entity as "matra-like" by checking IsMatra.
var matraRunes = map[rune]bool{
	'ा': true,
	'ि': true, 'ी': true,
	'ु': true, 'ू': true,
	'ृ': true, 'ॄ': true,
	'ॢ': true, 'ॣ': true,
	'े': true, 'ै': true,
	'ो': true, 'ौ': true,
}

// IsMatra reports whether r is a single-codepoint vowel sign.
func IsMatra(r rune) bool {
	return matraRunes[r]
}

// NormExact applies StripMarks and then folds every independent vowel and
// matra to its 7-symbol vowel bucket {A,I,U,E,O,R,L}.
func NormExact(s string) string {
	stripped := StripMarks(s)
	if stripped == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if bucket, ok := vowelBucket[r]; ok {
			b.WriteByte(bucket)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ConfusableGroups is the canonical, build-time-fixed set of visually
// confusable consonant groups NormLoose folds over — fixed rather than
// inferred at runtime, so the fold is stable across a query and its
// index. This repo fixes the ["क","र","ख"]-style variant. Package entity
// reuses this exact data as its VISUAL_P0 relation so the loose-index fold
// and the ranker's visual-substitution scoring stay consistent with each
// other, per DESIGN.md.
var ConfusableGroups = [][]rune{
	{'क', 'र', 'ख'},
	{'ढ', 'ध'},
	{'भ', 'म'},
}

var confusableRepresentative = buildConfusableMap(ConfusableGroups)

func buildConfusableMap(groups [][]rune) map[rune]rune {
	m := make(map[rune]rune)
	for _, g := range groups {
		rep := g[0]
		for _, r := range g {
			m[r] = rep
		}
	}
	return m
}

// NormLoose applies NormExact, then the रव -> ख digraph rewrite, then the
// confusable-consonant fold (ConfusableGroups). The digraph rewrite runs
// first so the literal र+व sequence is caught before either character could
// be folded into a different group's representative.
func NormLoose(s string) string {
	exact := NormExact(s)
	if exact == "" {
		return ""
	}
	rewritten := strings.ReplaceAll(exact, "रव", "ख")
	var b strings.Builder
	b.Grow(len(rewritten))
	for _, r := range rewritten {
		if rep, ok := confusableRepresentative[r]; ok {
			b.WriteRune(rep)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Tokenize applies norm to s and splits the result on whitespace.
func Tokenize(norm func(string) string, s string) []string {
	normed := norm(s)
	if normed == "" {
		return nil
	}
	return strings.Fields(normed)
}
