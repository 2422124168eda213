package store

import (
	"context"
	"encoding/binary"
	"sort"
	"sync"

	"github.com/eci-voterfind/voterfind/internal/keys"
)

// MemStore is an in-memory IndexStore + RowStore: a map guarded by a
// single mutex, built for tests and small demos rather than production
// scale. Posting lists are always encoded as packed little-endian uint64
// arrays — the simplest of the encodings the candidate decoder supports.
type MemStore struct {
	mu       sync.RWMutex
	postings map[string]map[string][]uint64 // ac -> "family|key" -> row_ids
	rows     map[string]map[uint64]ScoreRow // ac -> row_id -> row
	knownACs map[string]bool
}

// NewMemStore returns an empty MemStore. Use Index and PutRow to seed it.
func NewMemStore() *MemStore {
	return &MemStore{
		postings: make(map[string]map[string][]uint64),
		rows:     make(map[string]map[uint64]ScoreRow),
		knownACs: make(map[string]bool),
	}
}

func postingKey(family, key string) string { return family + "|" + key }

// Index registers that key, under the given family and ac, matches
// rowID. Row IDs accumulate and are kept sorted for deterministic tests.
func (m *MemStore) Index(ac, family, key string, rowID uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.knownACs[ac] = true
	if m.postings[ac] == nil {
		m.postings[ac] = make(map[string][]uint64)
	}
	pk := postingKey(family, key)
	ids := m.postings[ac][pk]
	for _, id := range ids {
		if id == rowID {
			return
		}
	}
	ids = append(ids, rowID)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	m.postings[ac][pk] = ids
}

// PutRow registers a row's score-mode fields under ac, normalizing the
// voter/relative name fields before storing.
func (m *MemStore) PutRow(ac string, row ScoreRow) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.knownACs[ac] = true
	if m.rows[ac] == nil {
		m.rows[ac] = make(map[uint64]ScoreRow)
	}
	m.rows[ac][row.RowID] = NormalizeRow(row)
}

// SeedRow stores row under ac and indexes both name fields under all six
// posting-list families, deriving the same prefix keys the offline loader
// derives when building a snapshot. An empty name field contributes no
// keys.
func (m *MemStore) SeedRow(ac string, row ScoreRow) {
	m.PutRow(ac, row)
	index := func(target, name string) {
		for _, k := range keys.BuildStrict(name) {
			m.Index(ac, "strict_"+target, k, row.RowID)
		}
		for _, k := range keys.BuildExact(name) {
			m.Index(ac, "exact_"+target, k, row.RowID)
		}
		for _, k := range keys.BuildLoose(name) {
			m.Index(ac, "loose_"+target, k, row.RowID)
		}
	}
	index("voter", row.VoterNameRaw)
	index("relative", row.RelativeNameRaw)
}

func encodePacked(ids []uint64) []byte {
	blob := make([]byte, len(ids)*8)
	for i, id := range ids {
		binary.LittleEndian.PutUint64(blob[i*8:], id)
	}
	return blob
}

// Lookup implements IndexStore.
func (m *MemStore) Lookup(ctx context.Context, family, ac string, keyList []string) ([]PostingEntry, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.knownACs[ac] {
		return nil, ErrUnknownAC
	}

	var out []PostingEntry
	for _, key := range keyList {
		ids := m.postings[ac][postingKey(family, key)]
		if len(ids) == 0 {
			continue
		}
		out = append(out, PostingEntry{Key: key, Blob: encodePacked(ids), N: len(ids)})
	}
	return out, nil
}

// FetchScore implements RowStore.
func (m *MemStore) FetchScore(ctx context.Context, ac string, rowIDs []uint64) ([]ScoreRow, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.knownACs[ac] {
		return nil, ErrUnknownAC
	}

	out := make([]ScoreRow, 0, len(rowIDs))
	for _, id := range rowIDs {
		if row, ok := m.rows[ac][id]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}
