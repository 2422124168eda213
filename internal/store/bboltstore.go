package store

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"
)

// BoltStore is a read-mostly IndexStore + RowStore backed by a bbolt
// database: one top-level bucket per AC, with a nested bucket per index
// family holding key -> row_ids-blob entries, and a nested "rows" bucket
// holding row_id -> JSON-encoded ScoreRow. This is the shape a syncindex
// snapshot pull (package ops) produces on disk.
type BoltStore struct {
	db *bbolt.DB
}

// OpenBoltStore opens (or creates) the bbolt database at path in
// read-write mode; callers that only ever query a synced snapshot may
// prefer OpenBoltStoreReadOnly.
func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("store: open bbolt db: %w", err)
	}
	return &BoltStore{db: db}, nil
}

// OpenBoltStoreReadOnly opens path without taking the writer lock,
// suitable for a process that only serves queries against a snapshot
// another process maintains.
func OpenBoltStoreReadOnly(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("store: open bbolt db read-only: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error { return s.db.Close() }

var rowsBucketName = []byte("rows")

func familyBucketName(family string) []byte { return []byte("idx_" + family) }

// Lookup implements IndexStore.
func (s *BoltStore) Lookup(ctx context.Context, family, ac string, keys []string) ([]PostingEntry, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var out []PostingEntry
	err := s.db.View(func(tx *bbolt.Tx) error {
		acBucket := tx.Bucket([]byte(ac))
		if acBucket == nil {
			return ErrUnknownAC
		}
		famBucket := acBucket.Bucket(familyBucketName(family))
		if famBucket == nil {
			return nil
		}
		for _, key := range keys {
			blob := famBucket.Get([]byte(key))
			if blob == nil {
				continue
			}
			n := binary.LittleEndian.Uint32(blob[:4])
			out = append(out, PostingEntry{Key: key, Blob: append([]byte(nil), blob[4:]...), N: int(n)})
		}
		return nil
	})
	if err != nil {
		if err == ErrUnknownAC {
			return nil, ErrUnknownAC
		}
		return nil, &TransientError{Op: "bbolt lookup " + family, Err: err}
	}
	return out, nil
}

// FetchScore implements RowStore.
func (s *BoltStore) FetchScore(ctx context.Context, ac string, rowIDs []uint64) ([]ScoreRow, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	out := make([]ScoreRow, 0, len(rowIDs))
	err := s.db.View(func(tx *bbolt.Tx) error {
		acBucket := tx.Bucket([]byte(ac))
		if acBucket == nil {
			return ErrUnknownAC
		}
		rows := acBucket.Bucket(rowsBucketName)
		if rows == nil {
			return nil
		}
		for _, id := range rowIDs {
			key := make([]byte, 8)
			binary.BigEndian.PutUint64(key, id)
			raw := rows.Get(key)
			if raw == nil {
				continue
			}
			var row ScoreRow
			if err := json.Unmarshal(raw, &row); err != nil {
				continue
			}
			out = append(out, row)
		}
		return nil
	})
	if err != nil {
		if err == ErrUnknownAC {
			return nil, ErrUnknownAC
		}
		return nil, &TransientError{Op: "bbolt fetch score", Err: err}
	}
	return out, nil
}

// PutRowForTest and PutPostingForTest let tests seed a bbolt snapshot
// without reaching into bucket layout details.
func (s *BoltStore) PutRowForTest(ac string, row ScoreRow) error {
	raw, err := json.Marshal(NormalizeRow(row))
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		acBucket, err := tx.CreateBucketIfNotExists([]byte(ac))
		if err != nil {
			return err
		}
		rows, err := acBucket.CreateBucketIfNotExists(rowsBucketName)
		if err != nil {
			return err
		}
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, row.RowID)
		return rows.Put(key, raw)
	})
}

func (s *BoltStore) PutPostingForTest(ac, family, key string, blob []byte, n int) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		acBucket, err := tx.CreateBucketIfNotExists([]byte(ac))
		if err != nil {
			return err
		}
		fam, err := acBucket.CreateBucketIfNotExists(familyBucketName(family))
		if err != nil {
			return err
		}
		header := make([]byte, 4)
		binary.LittleEndian.PutUint32(header, uint32(n))
		return fam.Put([]byte(key), append(header, blob...))
	})
}
