package candidate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eci-voterfind/voterfind/internal/keys"
	"github.com/eci-voterfind/voterfind/internal/store"
)

const testAC = "AC01"

func TestGenerateFullMatchSetsAndHit(t *testing.T) {
	ms := store.NewMemStore()
	query := "राम कुमार"
	strictKeys := keys.BuildStrict(query)
	require.NotEmpty(t, strictKeys)
	for _, k := range strictKeys {
		ms.Index(testAC, "strict_voter", k, 1)
	}

	set, err := Generate(context.Background(), ms, testAC, query, ScopeVoter, true)
	require.NoError(t, err)
	meta, ok := set[1]
	require.True(t, ok)
	assert.Equal(t, len(strictKeys), meta.StrictVoterHits)
	assert.True(t, meta.StrictVoterAndHit)
}

func TestGeneratePartialMatchNotAndHit(t *testing.T) {
	ms := store.NewMemStore()
	query := "राम कुमार"
	strictKeys := keys.BuildStrict(query)
	require.True(t, len(strictKeys) > 1)
	ms.Index(testAC, "strict_voter", strictKeys[0], 2)

	set, err := Generate(context.Background(), ms, testAC, query, ScopeVoter, true)
	require.NoError(t, err)
	meta, ok := set[2]
	require.True(t, ok)
	assert.Equal(t, 1, meta.StrictVoterHits)
	assert.False(t, meta.StrictVoterAndHit)
}

func TestGenerateExactOnlySkipsLooseFamily(t *testing.T) {
	ms := store.NewMemStore()
	query := "राम"
	ms.Index(testAC, "loose_voter", query, 9)

	set, err := Generate(context.Background(), ms, testAC, query, ScopeVoter, true)
	require.NoError(t, err)
	assert.NotContains(t, set, uint64(9))
}

func TestGenerateAnywhereQueriesBothTargets(t *testing.T) {
	ms := store.NewMemStore()
	query := "राम"
	strictKeys := keys.BuildStrict(query)
	for _, k := range strictKeys {
		ms.Index(testAC, "strict_voter", k, 1)
		ms.Index(testAC, "strict_relative", k, 2)
	}

	set, err := Generate(context.Background(), ms, testAC, query, ScopeAnywhere, true)
	require.NoError(t, err)
	assert.Contains(t, set, uint64(1))
	assert.Contains(t, set, uint64(2))
	assert.True(t, set[1].StrictVoterAndHit)
	assert.True(t, set[2].StrictRelativeAndHit)
}

func TestGenerateUnknownACPropagatesError(t *testing.T) {
	ms := store.NewMemStore()
	_, err := Generate(context.Background(), ms, "UNKNOWN", "राम", ScopeVoter, true)
	assert.ErrorIs(t, err, store.ErrUnknownAC)
}

func TestGenerateWithParamsHonorsPrefixLength(t *testing.T) {
	ms := store.NewMemStore()
	// Index under a 2-codepoint strict key; the default strict resolution
	// (3) would never look this key up.
	ms.Index(testAC, "strict_voter", "रा", 4)

	params := DefaultParams()
	params.PrefixLenStrict = 2

	set, err := GenerateWithParams(context.Background(), ms, testAC, "रामलाल", ScopeVoter, true, params)
	require.NoError(t, err)
	assert.Contains(t, set, uint64(4))

	set, err = Generate(context.Background(), ms, testAC, "रामलाल", ScopeVoter, true)
	require.NoError(t, err)
	assert.NotContains(t, set, uint64(4))
}

func TestRowIDsSortedAscending(t *testing.T) {
	set := Set{5: {}, 1: {}, 3: {}}
	assert.Equal(t, []uint64{1, 3, 5}, set.RowIDs())
}
