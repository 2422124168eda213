package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eci-voterfind/voterfind/internal/keys"
)

func TestSeedRowIndexesAllSixFamilies(t *testing.T) {
	ms := NewMemStore()
	row := ScoreRow{RowID: 7, VoterNameRaw: "राम कुमार", RelativeNameRaw: "श्याम लाल", SerialNo: 3}
	ms.SeedRow("AC01", row)

	strictKeys := keys.BuildStrict(row.VoterNameRaw)
	require.NotEmpty(t, strictKeys)
	entries, err := ms.Lookup(context.Background(), "strict_voter", "AC01", strictKeys)
	require.NoError(t, err)
	assert.Len(t, entries, len(strictKeys))

	relKeys := keys.BuildLoose(row.RelativeNameRaw)
	require.NotEmpty(t, relKeys)
	entries, err = ms.Lookup(context.Background(), "loose_relative", "AC01", relKeys)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)

	others := map[string][]string{
		"exact_voter":     keys.BuildExact(row.VoterNameRaw),
		"loose_voter":     keys.BuildLoose(row.VoterNameRaw),
		"strict_relative": keys.BuildStrict(row.RelativeNameRaw),
		"exact_relative":  keys.BuildExact(row.RelativeNameRaw),
	}
	for family, famKeys := range others {
		entries, err = ms.Lookup(context.Background(), family, "AC01", famKeys)
		require.NoError(t, err)
		assert.NotEmpty(t, entries, "family %s", family)
	}
}

func TestPutRowNormalizesNameFields(t *testing.T) {
	ms := NewMemStore()
	ms.PutRow("AC01", ScoreRow{RowID: 1, VoterNameRaw: " राम   कुमार। ", SerialNo: 1})

	rows, err := ms.FetchScore(context.Background(), "AC01", []uint64{1})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "राम कुमार", rows[0].VoterNameNorm)
}

func TestLookupUnknownAC(t *testing.T) {
	ms := NewMemStore()
	_, err := ms.Lookup(context.Background(), "strict_voter", "NOPE", []string{"k"})
	assert.ErrorIs(t, err, ErrUnknownAC)
}
