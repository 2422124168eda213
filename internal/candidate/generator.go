// Package candidate implements the candidate generator: it turns a query
// into the six prefix-key index lookups, merges the resulting posting
// lists into a deduplicated row_id set, and records per-row, per-index
// hit metadata the ranker later consumes.
package candidate

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/eci-voterfind/voterfind/internal/devnorm"
	"github.com/eci-voterfind/voterfind/internal/keys"
	"github.com/eci-voterfind/voterfind/internal/store"
)

// Scope controls which of the voter-name and relative-name index families
// participate in a search.
type Scope int

const (
	ScopeVoter Scope = iota
	ScopeRelative
	ScopeAnywhere
)

// Resource limits: a single query contributes at most this many keys to
// any one index, and lookups against the store are chunked so no single
// call exceeds the underlying KV store's bound-parameter limit.
const (
	MaxKeysPerIndex = 200
	MaxKeysPerCall  = 900
)

// Params carries the key-builder resolutions per index family — the
// indexing resolutions the posting lists were built at. The zero value is
// not usable; call DefaultParams.
type Params struct {
	PrefixLenStrict int
	PrefixLenExact  int
	PrefixLenLoose  int
}

// DefaultParams returns the documented defaults (3/2/2).
func DefaultParams() Params {
	return Params{
		PrefixLenStrict: keys.PrefixLenStrict,
		PrefixLenExact:  keys.PrefixLenExact,
		PrefixLenLoose:  keys.PrefixLenLoose,
	}
}

// forFamily resolves an index family name to its normalizer and prefix
// length.
func (p Params) forFamily(name string) (func(string) string, int) {
	switch {
	case strings.HasPrefix(name, "strict_"):
		return devnorm.NormStrict, p.PrefixLenStrict
	case strings.HasPrefix(name, "exact_"):
		return devnorm.NormExact, p.PrefixLenExact
	default:
		return devnorm.NormLoose, p.PrefixLenLoose
	}
}

// Meta carries, for one candidate row, the twelve per-index counters the
// ranker uses to decide how strong a match it is: a hit count and an
// and_hit flag (every key queried against that index matched this row)
// for each of the six families.
type Meta struct {
	StrictVoterHits, ExactVoterHits, LooseVoterHits                int
	StrictVoterAndHit, ExactVoterAndHit, LooseVoterAndHit          bool
	StrictRelativeHits, ExactRelativeHits, LooseRelativeHits       int
	StrictRelativeAndHit, ExactRelativeAndHit, LooseRelativeAndHit bool
}

// Set maps a matched row_id to its accumulated hit metadata.
type Set map[uint64]*Meta

func (s Set) ensure(id uint64) *Meta {
	m, ok := s[id]
	if !ok {
		m = &Meta{}
		s[id] = m
	}
	return m
}

// slot picks, for one family, the pair of pointers (hit counter, and_hit
// flag) on m that the family's results should be written into.
func slot(m *Meta, familyName string) (*int, *bool) {
	switch familyName {
	case "strict_voter":
		return &m.StrictVoterHits, &m.StrictVoterAndHit
	case "exact_voter":
		return &m.ExactVoterHits, &m.ExactVoterAndHit
	case "loose_voter":
		return &m.LooseVoterHits, &m.LooseVoterAndHit
	case "strict_relative":
		return &m.StrictRelativeHits, &m.StrictRelativeAndHit
	case "exact_relative":
		return &m.ExactRelativeHits, &m.ExactRelativeAndHit
	case "loose_relative":
		return &m.LooseRelativeHits, &m.LooseRelativeAndHit
	}
	panic("candidate: unknown index family " + familyName)
}

// activeFamilies returns the index families to query for a given scope and
// exactOnly setting: exactOnly suppresses the loose family.
func activeFamilies(scope Scope, exactOnly bool) []string {
	var targets []string
	if scope == ScopeVoter || scope == ScopeAnywhere {
		targets = append(targets, "voter")
	}
	if scope == ScopeRelative || scope == ScopeAnywhere {
		targets = append(targets, "relative")
	}

	var out []string
	for _, target := range targets {
		out = append(out, "strict_"+target, "exact_"+target)
		if !exactOnly {
			out = append(out, "loose_"+target)
		}
	}
	return out
}

// chunk splits keyList into slices of at most MaxKeysPerCall elements.
func chunk(keyList []string) [][]string {
	if len(keyList) == 0 {
		return nil
	}
	var out [][]string
	for len(keyList) > MaxKeysPerCall {
		out = append(out, keyList[:MaxKeysPerCall])
		keyList = keyList[MaxKeysPerCall:]
	}
	return append(out, keyList)
}

// Generate runs the candidate generation step against idx for one AC. It
// queries every index family activeFamilies selects, decodes and merges
// their posting lists, and returns the union of matched row IDs with the
// per-family hit metadata the ranker needs.
//
// A decode failure on a single posting entry is logged and skipped rather than
// failing the whole query (the malformed key simply contributes nothing);
// a store error for the family's lookup is returned to the caller, since
// it signals a problem broader than one key.
func Generate(ctx context.Context, idx store.IndexStore, ac, query string, scope Scope, exactOnly bool) (Set, error) {
	return GenerateWithParams(ctx, idx, ac, query, scope, exactOnly, DefaultParams())
}

// GenerateWithParams is Generate with explicit key-builder resolutions,
// for callers whose posting lists were built at non-default prefix
// lengths.
func GenerateWithParams(ctx context.Context, idx store.IndexStore, ac, query string, scope Scope, exactOnly bool, params Params) (Set, error) {
	set := make(Set)

	for _, familyName := range activeFamilies(scope, exactOnly) {
		norm, plen := params.forFamily(familyName)
		keyList := keys.Build(norm, plen, query)
		if len(keyList) == 0 {
			continue
		}
		if len(keyList) > MaxKeysPerIndex {
			sort.Strings(keyList)
			keyList = keyList[:MaxKeysPerIndex]
		}
		totalKeys := len(keyList)

		hits := make(map[uint64]int)
		for _, part := range chunk(keyList) {
			entries, err := idx.Lookup(ctx, familyName, ac, part)
			if err != nil {
				return nil, fmt.Errorf("candidate: lookup %s: %w", familyName, err)
			}
			for _, entry := range entries {
				ids, derr := DecodeRowIDs(entry.Blob, entry.N)
				if derr != nil {
					log.Printf("[candidate] %s ac=%s key=%q: %v", familyName, ac, entry.Key, derr)
					continue
				}
				seen := make(map[uint64]bool, len(ids))
				for _, id := range ids {
					if seen[id] {
						continue
					}
					seen[id] = true
					hits[id]++
				}
			}
		}

		for id, count := range hits {
			m := set.ensure(id)
			hitPtr, andPtr := slot(m, familyName)
			*hitPtr = count
			*andPtr = count == totalKeys
		}
	}

	return set, nil
}

// RowIDs returns the candidate set's row IDs in ascending order, the
// deterministic iteration order the ranker and the rest of the pipeline
// rely on: ties are broken by stable, input-independent keys, never by
// map iteration order.
func (s Set) RowIDs() []uint64 {
	out := make([]uint64, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
