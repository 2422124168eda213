package rank

// target is one candidate string the single-token EXACT scenario checks
// for string equality against the query.
type target struct {
	str  string
	kind int
	pos  int
	span int
}

// buildTargets enumerates every token, every adjacent 2-token
// concatenation, and (if there are 2 or more tokens) the full
// concatenation of a candidate's token sequence.
func buildTargets(cTokens []string) []target {
	n := len(cTokens)
	targets := make([]target, 0, 2*n)
	for i, tok := range cTokens {
		targets = append(targets, target{str: tok, kind: KindToken, pos: i, span: 1})
	}
	for i := 0; i < n-1; i++ {
		targets = append(targets, target{str: cTokens[i] + cTokens[i+1], kind: KindJoin2, pos: i, span: 2})
	}
	if n >= 2 {
		full := ""
		for _, tok := range cTokens {
			full += tok
		}
		targets = append(targets, target{str: full, kind: KindFullJoin, pos: 0, span: n})
	}
	return targets
}

// betterTarget reports whether a sorts before b by (kindRank, position,
// span) ascending.
func betterTarget(a, b target) bool {
	if a.kind != b.kind {
		return a.kind < b.kind
	}
	if a.pos != b.pos {
		return a.pos < b.pos
	}
	return a.span < b.span
}

// scoreExactSingleWord handles the single-token EXACT path. It first looks
// for any exact-match target (token, 2-join, or full join); failing that
// it falls back to a bare first-token match. The fallback branch is, by
// construction, only ever reached when no target matched — since the
// candidate's first token is itself a TOKEN-kind target, a first-token
// match is always also caught by the target search. The two paths are
// kept separate rather than collapsed, since they carry distinct scenario
// ids in the key.
func scoreExactSingleWord(qWord string, cTokens []string, serial int64) (Key, string, bool) {
	totalWords := int64(len(cTokens))

	targets := buildTargets(cTokens)
	var best *target
	for i := range targets {
		if targets[i].str != qWord {
			continue
		}
		if best == nil || betterTarget(targets[i], *best) {
			t := targets[i]
			best = &t
		}
	}
	if best != nil {
		suffixCount := int64(len(cTokens) - (best.pos + best.span))
		key := Key{ModeExact, ScenarioTargetMatch, int64(best.kind), int64(best.pos), suffixCount, totalWords, serial}
		return key, "exact target match", true
	}

	if len(cTokens) > 0 && cTokens[0] == qWord {
		suffixCount := int64(len(cTokens) - 1)
		key := Key{ModeExact, ScenarioFirstToken, KindToken, 0, suffixCount, totalWords, serial}
		return key, "exact first-token match", true
	}

	return nil, "", false
}

// scoreExactMultiWord handles the multi-token EXACT path: the query's
// tokens must match the candidate's leading tokens elementwise.
func scoreExactMultiWord(qTokens, cTokens []string, serial int64) (Key, string, bool) {
	if len(cTokens) < len(qTokens) {
		return nil, "", false
	}
	for i, q := range qTokens {
		if cTokens[i] != q {
			return nil, "", false
		}
	}
	suffixCount := int64(len(cTokens) - len(qTokens))
	totalWords := int64(len(cTokens))
	key := Key{ModeExact, ScenarioMultiPrefix, 0, 0, suffixCount, totalWords, serial}
	return key, "exact multi-word prefix match", true
}

// scoreExact dispatches to the single- or multi-token EXACT scenario.
func scoreExact(qTokens, cTokens []string, serial int64) (Key, string, bool) {
	if len(qTokens) == 1 {
		return scoreExactSingleWord(qTokens[0], cTokens, serial)
	}
	return scoreExactMultiWord(qTokens, cTokens, serial)
}
