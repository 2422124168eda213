package rank

// scoreSingleWordTypo handles the 1-word-query carve-out: rather than the
// multi-word FULL/PF/AO pipeline, a single-word query is compared against
// every TOKEN/JOIN2/FULLJOIN target of the candidate (the same targets the
// EXACT scenario builds), keeping the minimum key, and falls through to AO
// targets if no target passes FULL. PF does not participate here — only
// FULL and AO apply to a single-word query.
func scoreSingleWordTypo(qWord string, cTokens []string, cfg Config, serial int64) (Key, string, bool) {
	targets := buildTargets(cTokens)
	totalWords := int64(len(cTokens))

	var best *Key
	var bestDetail string
	consider := func(key Key, detail string) {
		if best == nil || Less(key, *best) {
			k := key
			best = &k
			bestDetail = detail
		}
	}

	for _, t := range targets {
		w := compareFull(qWord, t.str, true, cfg.MaxConPerWord)
		if !w.OK {
			continue
		}
		bucket := typingBucket([]bool{w.ConMismatches > 0})
		suffixCount := int64(len(cTokens) - (t.pos + t.span))
		consider(Key{ModeTypo, FamilyFull, bucket, severity(w), suffixCount, totalWords, serial}, "typo full single-word match")
	}
	if best != nil {
		return *best, bestDetail, true
	}

	for _, t := range targets {
		res, ok := compareAddOutside(qWord, t.str, cfg)
		if !ok {
			continue
		}
		suffixCount := int64(len(cTokens) - (t.pos + t.span))
		key := Key{
			ModeTypo, FamilyAO,
			int64(res.OutsideSubs), int64(res.Additions),
			int64(res.TypeBucket), int64(res.MatraMismatches),
			suffixCount, totalWords, serial,
		}
		consider(key, "typo add/outside single-word match")
	}
	if best != nil {
		return *best, bestDetail, true
	}
	return nil, "", false
}

// Score compares a query's token list against one candidate field's token
// list and returns either a disqualification or the field's best ranking
// key. qTokens and cTokens must already be segmented into Devanagari words
// (whitespace-split, not entity-segmented — entity segmentation happens
// per word inside the word-level comparators).
func Score(qTokens, cTokens []string, serial int64, cfg Config) Result {
	if len(qTokens) == 0 || len(cTokens) == 0 {
		return Result{OK: false}
	}

	if key, detail, ok := scoreExact(qTokens, cTokens, serial); ok {
		return Result{OK: true, Key: key, Detail: detail}
	}
	if cfg.ExactOnly {
		return Result{OK: false}
	}

	if len(qTokens) == 1 {
		if key, detail, ok := scoreSingleWordTypo(qTokens[0], cTokens, cfg, serial); ok {
			return Result{OK: true, Key: key, Detail: detail}
		}
		return Result{OK: false}
	}

	if key, detail, ok := scoreMultiWord(qTokens, cTokens, cfg, serial); ok {
		return Result{OK: true, Key: key, Detail: detail}
	}
	return Result{OK: false}
}

// Best returns whichever of a and b has the smaller (better) key,
// preferring a on a tie — used to break anywhere-scope ties in favor of
// the voter field by always passing the voter-field result as a.
func Best(a, b Result) Result {
	if !a.OK {
		return b
	}
	if !b.OK {
		return a
	}
	if Compare(b.Key, a.Key) < 0 {
		return b
	}
	return a
}
