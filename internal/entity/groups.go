package entity

import "github.com/eci-voterfind/voterfind/internal/devnorm"

// Group literals are written as they would appear in raw text — including
// halant/virama where a conjunct is intended — and stripped of combining
// marks at init time via devnorm.StripMarks before being added to the
// vocabulary or the substitution relations. That stripping is what lets a
// group like {"ज्ञ", "ग्य"} contribute the two-codepoint entities "जञ" and
// "गय": the literal conjunct collapses to a plain consonant pair once its
// virama is removed, exactly as it would in a query or candidate word that
// has already gone through StripMarks.

// phoneticGroups: entities considered to sound alike — क/ख, the six
// dental/retroflex stops, ब/भ/व, स/श/ष — plus the short/long vowel pairs
// also used by devnorm's vowel-bucket fold, plus two multi-codepoint
// conjunct confusions common in hurried handwriting and OCR.
var phoneticGroups = [][]string{
	{"क", "ख"},
	{"ड", "ढ", "द", "ध", "त", "थ"},
	{"ब", "भ", "व"},
	{"स", "श", "ष"},
	{"अ", "आ"},
	{"इ", "ई"},
	{"उ", "ऊ"},
	{"ऋ", "ॠ"},
	{"ऌ", "ॡ"},
	{"ए", "ऐ"},
	{"ओ", "औ"},
	{"ज्ञ", "ग्य"},
	{"क्ष", "क्श"},
}

// visualP0Groups is devnorm.ConfusableGroups reinterpreted as entities —
// the strongest visual-confusability tier, and the same data the loose
// index fold uses (see devnorm.NormLoose).
var visualP0Groups = runeGroupsToStrings(devnorm.ConfusableGroups)

// visualP1Groups: a weaker visual-confusability tier — shapes that share a
// base glyph but differ in a stroke a tired eye or a poor scan can miss.
var visualP1Groups = [][]string{
	{"ट", "ठ"},
	{"प", "फ"},
	{"च", "छ"},
	{"घ", "ध"},
}

// visualP2Groups: the weakest tier — plausible but less common confusions,
// typically between characters sharing only a silhouette.
var visualP2Groups = [][]string{
	{"न", "म"},
	{"ह", "य"},
	{"ऱ", "र"},
	{"ळ", "ल"},
}

func runeGroupsToStrings(groups [][]rune) [][]string {
	out := make([][]string, len(groups))
	for i, g := range groups {
		row := make([]string, len(g))
		for j, r := range g {
			row[j] = string(r)
		}
		out[i] = row
	}
	return out
}

// numerals is the small set of Devanagari digits the entity vocabulary
// always contains.
var numerals = []string{"०", "१", "२", "३", "४", "५", "६", "७", "८", "९"}

// independentVowels are added to the vocabulary even though most already
// appear in phoneticGroups.
var independentVowels = []string{"अ", "आ", "इ", "ई", "उ", "ऊ", "ऋ", "ॠ", "ऌ", "ॡ", "ए", "ऐ", "ओ", "औ"}

func stripGroupLiterals(groups [][]string) [][]string {
	out := make([][]string, len(groups))
	for i, g := range groups {
		row := make([]string, len(g))
		for j, tok := range g {
			row[j] = devnorm.StripMarks(tok)
		}
		out[i] = row
	}
	return out
}
