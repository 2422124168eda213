package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/eci-voterfind/voterfind/internal/candidate"
	"github.com/eci-voterfind/voterfind/internal/rank"
)

// TestSearchSurfacesTransientLookupError exercises the mocked IndexStore
// path: a transient I/O failure on one AC's lookup must not abort the
// whole request — it is collected as an ACError and the request
// otherwise completes.
func TestSearchSurfacesTransientLookupError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	idx := NewMockIndexStore(ctrl)
	rows := NewMockRowStore(ctrl)
	backend := mockBackend{MockIndexStore: idx, MockRowStore: rows}

	wantErr := errors.New("connection reset")
	idx.EXPECT().
		Lookup(gomock.Any(), gomock.Any(), "AC01", gomock.Any()).
		Return(nil, wantErr).
		AnyTimes()

	e := New(backend, rank.DefaultConfig())
	_, errs, err := e.Search(context.Background(), "राम", []string{"AC01"}, candidate.ScopeVoter, nil)
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "AC01", errs[0].AC)
	assert.ErrorIs(t, errs[0].Err, wantErr)
}
