package rank

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokens(s string) []string { return strings.Fields(s) }

func TestCompareFullIdentityLaw(t *testing.T) {
	w := compareFull("राम", "राम", true, 4)
	require.True(t, w.OK)
	assert.Equal(t, 0, w.ConMismatches)
	assert.Equal(t, 0, w.MatraMismatches)
	assert.Equal(t, 0, w.TypeBucket)
}

func TestCompareAddOutsideIdentityLaw(t *testing.T) {
	cfg := DefaultConfig()
	res, ok := compareAddOutside("राम", "राम", cfg)
	require.True(t, ok)
	assert.Equal(t, 0, res.Additions)
	assert.Equal(t, 0, res.OutsideSubs)
	assert.Equal(t, 0, res.TypeBucket)
}

// An exact match on "राम" wins outright over candidates that only contain
// it as part of a longer token sequence.
func TestScenario1ExactBeatsLongerCandidates(t *testing.T) {
	cfg := DefaultConfig()
	q := tokens("राम")

	rowA := Score(q, tokens("राम कुमार"), 100, cfg)
	rowB := Score(q, tokens("राम"), 200, cfg)
	rowC := Score(q, tokens("रामलाल शर्मा"), 300, cfg)

	require.True(t, rowA.OK)
	require.True(t, rowB.OK)
	assert.Equal(t, int64(ModeExact), rowA.Key[0])
	assert.Equal(t, int64(ModeExact), rowB.Key[0])
	assert.True(t, Less(rowB.Key, rowA.Key), "single-token exact candidate should outrank a longer one sharing the same first token")
	if rowC.OK {
		assert.True(t, Less(rowB.Key, rowC.Key))
		assert.True(t, Less(rowA.Key, rowC.Key))
	}
}

// A genuine word-by-word typo (क<->ख phonetic substitution in the second
// word) takes the TYPO_FULL path — an exact prefix match would short-circuit
// through scoreExact before the typo families are ever tried.
func TestScenario2FullBeatsPFAndAO(t *testing.T) {
	cfg := DefaultConfig()
	full := Score(tokens("राम कुमार"), tokens("राम खुमार सिंह"), 1, cfg)
	require.True(t, full.OK)
	assert.Equal(t, int64(ModeTypo), full.Key[0])
	assert.Equal(t, int64(FamilyFull), full.Key[1])
}

// A single matra added makes FULL fail (entity count mismatch) but AO
// succeed with additions=1.
func TestScenario3MatraAdditionFallsToAO(t *testing.T) {
	cfg := DefaultConfig()
	res := Score(tokens("राम"), tokens("रामा"), 7, cfg)
	require.True(t, res.OK)
	assert.Equal(t, int64(ModeTypo), res.Key[0])
	assert.Equal(t, int64(FamilyAO), res.Key[1])
}

// A single phonetic substitution (ब<->व) yields FULL bucket 0 with one
// consonant mismatch.
func TestScenario5PhoneticSubstitution(t *testing.T) {
	w := compareFull("बाला", "वाला", true, 4)
	require.True(t, w.OK)
	assert.Equal(t, 1, w.ConMismatches)
	assert.Equal(t, 0, w.TypeBucket)
}

// A truncated second word ("ति" for "तिर्की") fails FULL on entity-count
// mismatch and PF on suffix slop (3 extra entities > 2), but AO admits it
// with additions=3 and no outside substitutions.
func TestScenario4TruncatedWordFallsToAO(t *testing.T) {
	cfg := DefaultConfig()
	res := Score(tokens("ईसिडोर ति"), tokens("ईसिडोर तिर्की"), 3, cfg)
	require.True(t, res.OK)
	assert.Equal(t, int64(ModeTypo), res.Key[0])
	assert.Equal(t, int64(FamilyAO), res.Key[1])
	assert.Equal(t, int64(0), res.Key[2], "no outside substitutions")
	assert.Equal(t, int64(3), res.Key[3], "word 2 contributes 3 additions")
}

// Among otherwise-identical exact matches, a smaller suffix count wins;
// among 1-word exact matches, TOKEN < JOIN2 < FULLJOIN.
func TestSuffixAndKindMonotonicity(t *testing.T) {
	cfg := DefaultConfig()
	q := tokens("राम कुमार")

	short := Score(q, tokens("राम कुमार सिंह"), 1, cfg)
	long := Score(q, tokens("राम कुमार सिंह यादव"), 1, cfg)
	require.True(t, short.OK)
	require.True(t, long.OK)
	assert.True(t, Less(short.Key, long.Key))

	tokenMatch := Score(tokens("रामकुमार"), tokens("रामकुमार सिंह"), 1, cfg)
	joinMatch := Score(tokens("रामकुमार"), tokens("राम कुमार सिंह"), 1, cfg)
	require.True(t, tokenMatch.OK)
	require.True(t, joinMatch.OK)
	assert.Equal(t, int64(KindToken), tokenMatch.Key[2])
	assert.Equal(t, int64(KindJoin2), joinMatch.Key[2])
	assert.True(t, Less(tokenMatch.Key, joinMatch.Key))
}

// Five consonant substitutions in one word exceed the per-word cap of 4,
// disqualifying FULL even though each substitution alone is admissible.
func TestPerWordConsonantCap(t *testing.T) {
	w := compareFull("डडडडड", "धधधधध", true, 4)
	assert.False(t, w.OK)
	w = compareFull("डडडड", "धधधध", true, 4)
	assert.True(t, w.OK)
}

func TestExactOnlySuppressesTypoFamilies(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExactOnly = true
	res := Score(tokens("राम"), tokens("रामा"), 7, cfg)
	assert.False(t, res.OK)
}

func TestKeyCompareModeOrdering(t *testing.T) {
	exactKey := Key{ModeExact, 0, 0, 0, 0, 1, 1}
	typoKey := Key{ModeTypo, FamilyFull, 0, 0, 0, 1, 1}
	assert.True(t, Less(exactKey, typoKey))
}

func TestBestPrefersVoterOnTie(t *testing.T) {
	k := Key{ModeExact, 0, 0, 0, 0, 1, 5}
	voter := Result{OK: true, Key: k, Detail: "voter"}
	relative := Result{OK: true, Key: append(Key{}, k...), Detail: "relative"}
	got := Best(voter, relative)
	assert.Equal(t, "voter", got.Detail)
}

func TestBestSkipsDisqualifiedField(t *testing.T) {
	ok := Result{OK: true, Key: Key{ModeExact, 0, 0, 0, 0, 1, 5}, Detail: "voter"}
	bad := Result{OK: false}
	assert.Equal(t, "voter", Best(bad, ok).Detail)
	assert.Equal(t, "voter", Best(ok, bad).Detail)
}
