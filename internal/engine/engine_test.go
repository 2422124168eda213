package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eci-voterfind/voterfind/internal/candidate"
	"github.com/eci-voterfind/voterfind/internal/keys"
	"github.com/eci-voterfind/voterfind/internal/rank"
	"github.com/eci-voterfind/voterfind/internal/store"
)

func seedVoter(t *testing.T, ms *store.MemStore, ac string, row store.ScoreRow) {
	t.Helper()
	ms.PutRow(ac, row)
	for _, k := range keys.BuildStrict(row.VoterNameRaw) {
		ms.Index(ac, "strict_voter", k, row.RowID)
	}
	for _, k := range keys.BuildExact(row.VoterNameRaw) {
		ms.Index(ac, "exact_voter", k, row.RowID)
	}
}

func TestSearchReturnsExactMatchFirst(t *testing.T) {
	ms := store.NewMemStore()
	seedVoter(t, ms, "AC01", store.ScoreRow{RowID: 1, VoterNameRaw: "राम कुमार", SerialNo: 10})
	seedVoter(t, ms, "AC01", store.ScoreRow{RowID: 2, VoterNameRaw: "राम", SerialNo: 20})

	e := New(ms, rank.DefaultConfig())
	rows, errs, err := e.Search(context.Background(), "राम", []string{"AC01"}, candidate.ScopeVoter, nil)
	require.NoError(t, err)
	assert.Empty(t, errs)
	require.NotEmpty(t, rows)
	assert.Equal(t, uint64(2), rows[0].Row.RowID)
}

func TestSearchReportsProgress(t *testing.T) {
	ms := store.NewMemStore()
	seedVoter(t, ms, "AC01", store.ScoreRow{RowID: 1, VoterNameRaw: "राम", SerialNo: 1})

	e := New(ms, rank.DefaultConfig())
	var phases []string
	progress := func(phase string, done, total, candidates int) {
		phases = append(phases, phase)
	}
	_, _, err := e.Search(context.Background(), "राम", []string{"AC01"}, candidate.ScopeVoter, progress)
	require.NoError(t, err)
	assert.Contains(t, phases, "candidates")
	assert.Contains(t, phases, "rank")
}

func TestSearchCollectsPerACError(t *testing.T) {
	ms := store.NewMemStore()
	seedVoter(t, ms, "AC01", store.ScoreRow{RowID: 1, VoterNameRaw: "राम", SerialNo: 1})

	e := New(ms, rank.DefaultConfig())
	_, errs, err := e.Search(context.Background(), "राम", []string{"AC01", "UNKNOWN"}, candidate.ScopeVoter, nil)
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "UNKNOWN", errs[0].AC)
}

func TestSearchEmptyQueryReturnsNothing(t *testing.T) {
	ms := store.NewMemStore()
	e := New(ms, rank.DefaultConfig())
	rows, errs, err := e.Search(context.Background(), "   ", []string{"AC01"}, candidate.ScopeVoter, nil)
	require.NoError(t, err)
	assert.Nil(t, rows)
	assert.Nil(t, errs)
}

func TestSearchRespectsCancellation(t *testing.T) {
	ms := store.NewMemStore()
	seedVoter(t, ms, "AC01", store.ScoreRow{RowID: 1, VoterNameRaw: "राम", SerialNo: 1})

	e := New(ms, rank.DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := e.Search(ctx, "राम", []string{"AC01"}, candidate.ScopeVoter, nil)
	assert.Error(t, err)
}
