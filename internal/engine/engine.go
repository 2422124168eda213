// Package engine implements the request-scoped orchestration: per-AC
// bounded fan-out over candidate generation, row fetch and ranking, a
// sequential reduction to one bit-identical-ordered result, and
// cooperative cancellation.
package engine

import (
	"context"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/eci-voterfind/voterfind/internal/candidate"
	"github.com/eci-voterfind/voterfind/internal/devnorm"
	"github.com/eci-voterfind/voterfind/internal/rank"
	"github.com/eci-voterfind/voterfind/internal/store"
)

// ProgressFunc reports search progress for external throttling/UI: phase
// is "candidates" while ACs are completing and "rank" for the final
// reduction; done/total describe the AC fan-out; candidates is the
// running candidate-row count across completed ACs.
type ProgressFunc func(phase string, done, total, candidates int)

// RankedRow is one scored result row, ready for display once joined
// against a row store's "display" mode (out of this engine's scope).
type RankedRow struct {
	AC     string
	Row    store.ScoreRow
	Key    rank.Key
	Detail string
}

// ACError records a per-AC failure that did not abort the whole request:
// the request completes with whatever partial results were already
// produced from other ACs, plus a per-AC error indicator.
type ACError struct {
	AC  string
	Err error
}

// Engine ties the candidate generator and ranker to a concrete backend.
type Engine struct {
	Backend     Backend
	Config      rank.Config
	Prefix      candidate.Params // key-builder resolutions; zero value means defaults
	Concurrency int              // bounded per-AC fan-out width; <=0 means runtime.NumCPU()
}

// New builds an Engine against backend using cfg for ranking policy.
func New(backend Backend, cfg rank.Config) *Engine {
	return &Engine{Backend: backend, Config: cfg}
}

func (e *Engine) concurrency() int {
	if e.Concurrency > 0 {
		return e.Concurrency
	}
	return runtime.NumCPU()
}

func (e *Engine) prefixParams() candidate.Params {
	if e.Prefix == (candidate.Params{}) {
		return candidate.DefaultParams()
	}
	return e.Prefix
}

// acResult is what one AC's worker produces before the final reduction.
type acResult struct {
	rows []RankedRow
	err  *ACError
}

// Search runs one query across acs, scoring scope's field(s), and returns
// a deterministically ordered result vector. Errors from individual ACs
// are collected, not fatal; cancellation via ctx aborts in-flight work and
// returns promptly with whatever has been produced so far discarded (the
// caller is expected to have tripped ctx, not the engine itself).
func (e *Engine) Search(ctx context.Context, queryText string, acs []string, scope candidate.Scope, progress ProgressFunc) ([]RankedRow, []ACError, error) {
	qTokens := devnorm.Tokenize(devnorm.NormStrict, queryText)
	if len(qTokens) == 0 {
		return nil, nil, nil
	}

	sem := make(chan struct{}, e.concurrency())
	var wg sync.WaitGroup
	results := make([]acResult, len(acs))

	var done int32
	var candidateTotal int32
	var mu sync.Mutex
	report := func(phase string) {
		if progress == nil {
			return
		}
		mu.Lock()
		d, c := int(done), int(candidateTotal)
		mu.Unlock()
		progress(phase, d, len(acs), c)
	}

	for i, ac := range acs {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(i int, ac string) {
			defer wg.Done()
			defer func() { <-sem }()

			rows, n, err := e.searchOneAC(ctx, ac, qTokens, scope)

			mu.Lock()
			done++
			candidateTotal += int32(n)
			mu.Unlock()
			report("candidates")

			if err != nil {
				results[i] = acResult{err: &ACError{AC: ac, Err: err}}
				return
			}
			results[i] = acResult{rows: rows}
		}(i, ac)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var out []RankedRow
	var errs []ACError
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, *r.err)
			continue
		}
		out = append(out, r.rows...)
	}

	sort.Slice(out, func(i, j int) bool {
		c := rank.Compare(out[i].Key, out[j].Key)
		if c != 0 {
			return c < 0
		}
		if out[i].Row.SerialNo != out[j].Row.SerialNo {
			return out[i].Row.SerialNo < out[j].Row.SerialNo
		}
		return out[i].Row.RowID < out[j].Row.RowID
	})

	report("rank")
	return out, errs, nil
}

// searchOneAC runs candidate generation, row fetch, and scoring for a
// single AC. It is the unit of work the per-AC fan-out schedules.
func (e *Engine) searchOneAC(ctx context.Context, ac string, qTokens []string, scope candidate.Scope) ([]RankedRow, int, error) {
	queryText := joinTokens(qTokens)
	candSet, err := candidate.GenerateWithParams(ctx, e.Backend, ac, queryText, scope, e.Config.ExactOnly, e.prefixParams())
	if err != nil {
		return nil, 0, err
	}
	rowIDs := candSet.RowIDs()
	if len(rowIDs) == 0 {
		return nil, 0, nil
	}

	rows, err := e.Backend.FetchScore(ctx, ac, rowIDs)
	if err != nil {
		return nil, len(rowIDs), err
	}

	out := make([]RankedRow, 0, len(rows))
	for _, row := range rows {
		select {
		case <-ctx.Done():
			return out, len(rowIDs), ctx.Err()
		default:
		}

		res, ok := e.scoreRow(qTokens, row, scope)
		if !ok {
			continue
		}
		out = append(out, RankedRow{AC: ac, Row: row, Key: res.Key, Detail: res.Detail})
	}
	return out, len(rowIDs), nil
}

// scoreRow scores one row against the query under scope, choosing
// whichever of the voter/relative fields qualifies with the smaller key,
// with ties favoring the voter field. It tokenizes the row's precomputed
// Norm fields directly rather than re-normalizing the raw fields, falling
// back to an on-the-fly NormStrict only for a row a backend populated
// without going through store.NormalizeRow.
func (e *Engine) scoreRow(qTokens []string, row store.ScoreRow, scope candidate.Scope) (rank.Result, bool) {
	tokenize := func(norm, raw string) []string {
		if norm == "" && raw != "" {
			norm = devnorm.NormStrict(raw)
		}
		if norm == "" {
			return nil
		}
		return strings.Fields(norm)
	}

	var voter, relative rank.Result
	if scope == candidate.ScopeVoter || scope == candidate.ScopeAnywhere {
		cTokens := tokenize(row.VoterNameNorm, row.VoterNameRaw)
		voter = rank.Score(qTokens, cTokens, int64(row.SerialNo), e.Config)
	}
	if scope == candidate.ScopeRelative || scope == candidate.ScopeAnywhere {
		cTokens := tokenize(row.RelativeNameNorm, row.RelativeNameRaw)
		relative = rank.Score(qTokens, cTokens, int64(row.SerialNo), e.Config)
	}
	best := rank.Best(voter, relative)
	return best, best.OK
}

func joinTokens(tokens []string) string {
	out := ""
	for i, t := range tokens {
		if i > 0 {
			out += " "
		}
		out += t
	}
	return out
}
