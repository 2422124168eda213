// Package store defines the engine's external collaborators: the
// posting-list index and the row store. The core only ever consumes these
// two interfaces; how a concrete backend persists data is out of the
// core's scope. Two concrete backends live alongside the interfaces: an
// in-memory one for tests and demos (memstore.go) and an embedded-database
// one (bboltstore.go) for anything that wants a realistic read-only
// snapshot on disk.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/eci-voterfind/voterfind/internal/devnorm"
)

// ErrUnknownAC is a permanent store error: the request completes with
// whatever partial results other ACs already produced, plus this
// indicator for the AC that failed.
var ErrUnknownAC = errors.New("store: unknown assembly constituency")

// TransientError wraps a retriable I/O failure. The engine does not retry
// internally; it propagates this to the caller.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("store: transient failure during %s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// PostingEntry is one row returned by an index lookup: the key that
// matched, the opaque row_ids blob, and a companion count the blob encoder
// may or may not have populated accurately.
type PostingEntry struct {
	Key  string
	Blob []byte
	N    int
}

// IndexStore abstracts the six posting-list indexes ({strict, exact,
// loose} x {voter, relative}). Family is one of "strict_voter",
// "exact_voter", "loose_voter", "strict_relative", "exact_relative",
// "loose_relative". Lookup is scoped to a single AC; the caller (package
// candidate) is responsible for chunking very large key lists.
type IndexStore interface {
	Lookup(ctx context.Context, family, ac string, keys []string) ([]PostingEntry, error)
}

// ScoreRow is the fixed record type consumed by the ranker. Display
// records (the wider set of UI columns) are out of the core's scope and
// are not modeled here. VoterNameNorm and RelativeNameNorm hold the
// NormStrict form of the corresponding raw field, precomputed once at
// write time by NormalizeRow rather than recomputed on every query; the
// ranker tokenizes these directly instead of re-normalizing the raw name
// on each scoreRow call.
type ScoreRow struct {
	RowID            uint64
	VoterNameRaw     string
	RelativeNameRaw  string
	VoterNameNorm    string
	RelativeNameNorm string
	SerialNo         int64
}

// NormalizeRow fills VoterNameNorm and RelativeNameNorm from the raw
// fields. Backends call this once before persisting a row so the engine
// never has to re-derive normalized tokens from raw text on the query
// path.
func NormalizeRow(row ScoreRow) ScoreRow {
	row.VoterNameNorm = devnorm.NormStrict(row.VoterNameRaw)
	row.RelativeNameNorm = devnorm.NormStrict(row.RelativeNameRaw)
	return row
}

// RowStore abstracts row fetch by (ac, row_id list), "score" mode only —
// the core never requests "display" mode.
type RowStore interface {
	FetchScore(ctx context.Context, ac string, rowIDs []uint64) ([]ScoreRow, error)
}
