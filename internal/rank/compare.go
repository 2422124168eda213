package rank

import (
	"github.com/eci-voterfind/voterfind/internal/devnorm"
	"github.com/eci-voterfind/voterfind/internal/entity"
)

// wordCompare is the tally produced by comparing one query word against
// one candidate word: how many consonant mismatches of each equivalence
// class occurred, how many matra mismatches, and the resulting typeBucket.
type wordCompare struct {
	OK              bool
	ConMismatches   int
	MatraMismatches int
	TypeBucket      int
	Phonetic        int
	VisualP0        int
	VisualP1        int
	VisualP2        int
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// typeBucket summarizes which equivalence classes contributed to a word's
// consonant mismatches: 0 with no consonant mismatches or only phonetic
// substitutions, 1/2/3 when exactly one visual tier was used, 4 when more
// than one visual tier contributed.
func typeBucket(phonetic, visualP0, visualP1, visualP2, conMismatches int) int {
	if conMismatches == 0 {
		return 0
	}
	kinds := 0
	if visualP0 > 0 {
		kinds++
	}
	if visualP1 > 0 {
		kinds++
	}
	if visualP2 > 0 {
		kinds++
	}
	switch {
	case kinds > 1:
		return 4
	case visualP0 > 0:
		return 1
	case visualP1 > 0:
		return 2
	case visualP2 > 0:
		return 3
	default:
		// Only phonetic substitutions contributed.
		return 0
	}
}

// compareFull implements the word-level FULL comparison: entity sequences
// must be the same length and align one-for-one, with mismatches falling
// in an allowed equivalence class and the per-word consonant-mismatch cap
// respected.
func compareFull(qWord, cWord string, allowSubs bool, maxConPerWord int) wordCompare {
	marksDiff := absInt(devnorm.CountMarks(qWord) - devnorm.CountMarks(cWord))
	qEnt := entity.Segment(devnorm.StripMarks(qWord))
	cEnt := entity.Segment(devnorm.StripMarks(cWord))
	if len(qEnt) != len(cEnt) {
		return wordCompare{}
	}

	var conMismatches, matraMismatches, phonetic, vp0, vp1, vp2 int
	for i := range qEnt {
		a, b := qEnt[i], cEnt[i]
		if a == b {
			continue
		}
		if entity.IsMatraLike(a) || entity.IsMatraLike(b) {
			matraMismatches++
			continue
		}
		if !allowSubs {
			return wordCompare{}
		}
		switch entity.Subst(a, b) {
		case entity.Other:
			return wordCompare{}
		case entity.Phonetic:
			phonetic++
		case entity.VisualP0:
			vp0++
		case entity.VisualP1:
			vp1++
		case entity.VisualP2:
			vp2++
		}
		conMismatches++
	}
	matraMismatches += marksDiff
	if conMismatches > maxConPerWord {
		return wordCompare{}
	}

	return wordCompare{
		OK:              true,
		ConMismatches:   conMismatches,
		MatraMismatches: matraMismatches,
		TypeBucket:      typeBucket(phonetic, vp0, vp1, vp2, conMismatches),
		Phonetic:        phonetic,
		VisualP0:        vp0,
		VisualP1:        vp1,
		VisualP2:        vp2,
	}
}

// prefixFallbackResult adds the PF family's extra output: how many
// trailing candidate entities ("suffix slop") were left unaligned.
type prefixFallbackResult struct {
	wordCompare
	ExtraSuffix int
}

// comparePrefixFallback implements the PF word comparison: applies only
// to 2- or 3-entity query words, aligns on the prefix, and caps both the
// suffix slop and the substitution count.
func comparePrefixFallback(qWord, cWord string, cfg Config) (prefixFallbackResult, bool) {
	qEnt := entity.Segment(devnorm.StripMarks(qWord))
	qLen := len(qEnt)
	maxSubs, applies := cfg.pfMaxSubs(qLen)
	if !applies {
		return prefixFallbackResult{}, false
	}

	cEnt := entity.Segment(devnorm.StripMarks(cWord))
	cLen := len(cEnt)
	extraSuffix := cLen - qLen
	if extraSuffix < 0 || extraSuffix > cfg.PFMaxExtraSuffixPerWord {
		return prefixFallbackResult{}, false
	}

	marksDiff := absInt(devnorm.CountMarks(qWord) - devnorm.CountMarks(cWord))
	var conMismatches, matraMismatches, phonetic, vp0, vp1, vp2 int
	for i := 0; i < qLen; i++ {
		a, b := qEnt[i], cEnt[i]
		if a == b {
			continue
		}
		if entity.IsMatraLike(a) || entity.IsMatraLike(b) {
			matraMismatches++
			continue
		}
		switch entity.Subst(a, b) {
		case entity.Other:
			return prefixFallbackResult{}, false
		case entity.Phonetic:
			phonetic++
		case entity.VisualP0:
			vp0++
		case entity.VisualP1:
			vp1++
		case entity.VisualP2:
			vp2++
		}
		conMismatches++
	}
	if conMismatches > maxSubs {
		return prefixFallbackResult{}, false
	}
	matraMismatches += marksDiff

	return prefixFallbackResult{
		wordCompare: wordCompare{
			OK:              true,
			ConMismatches:   conMismatches,
			MatraMismatches: matraMismatches,
			TypeBucket:      typeBucket(phonetic, vp0, vp1, vp2, conMismatches),
			Phonetic:        phonetic,
			VisualP0:        vp0,
			VisualP1:        vp1,
			VisualP2:        vp2,
		},
		ExtraSuffix: extraSuffix,
	}, true
}

// addOutsideResult adds the AO family's extra outputs: the entity
// addition count and the count of substitutions that fell outside every
// phonetic/visual relation (these are the "outside" substitutions).
type addOutsideResult struct {
	wordCompare
	Additions   int
	OutsideSubs int
}

// compareAddOutside implements the AO word comparison: the lowest-fidelity
// family, admitting entity additions and a capped number of
// otherwise-disqualifying substitutions.
func compareAddOutside(qWord, cWord string, cfg Config) (addOutsideResult, bool) {
	qEnt := entity.Segment(devnorm.StripMarks(qWord))
	cEnt := entity.Segment(devnorm.StripMarks(cWord))
	qLen, cLen := len(qEnt), len(cEnt)
	if cLen < qLen {
		return addOutsideResult{}, false
	}
	additions := cLen - qLen
	outsideCap := cfg.outsideCap(qLen)

	marksDiff := absInt(devnorm.CountMarks(qWord) - devnorm.CountMarks(cWord))
	var conMismatches, matraMismatches, outside, phonetic, vp0, vp1, vp2 int
	for i := 0; i < qLen; i++ {
		a, b := qEnt[i], cEnt[i]
		if a == b {
			continue
		}
		if entity.IsMatraLike(a) || entity.IsMatraLike(b) {
			matraMismatches++
			continue
		}
		switch entity.Subst(a, b) {
		case entity.Phonetic:
			phonetic++
			conMismatches++
		case entity.VisualP0:
			vp0++
			conMismatches++
		case entity.VisualP1:
			vp1++
			conMismatches++
		case entity.VisualP2:
			vp2++
			conMismatches++
		default:
			outside++
		}
	}
	if outside > outsideCap {
		return addOutsideResult{}, false
	}
	matraMismatches += marksDiff

	return addOutsideResult{
		wordCompare: wordCompare{
			OK:              true,
			ConMismatches:   conMismatches,
			MatraMismatches: matraMismatches,
			TypeBucket:      typeBucket(phonetic, vp0, vp1, vp2, conMismatches),
			Phonetic:        phonetic,
			VisualP0:        vp0,
			VisualP1:        vp1,
			VisualP2:        vp2,
		},
		Additions:   additions,
		OutsideSubs: outside,
	}, true
}
