package rank

// wordWeight gives earlier query words more influence over a multi-word
// TYPO key's position-weighted sums: weight decreases by one per word
// position, so the first word's contribution dominates. k is the total
// word count; i is the word's 0-based index.
func wordWeight(i, k int) int64 {
	return int64(k - i)
}

// totalConCap returns the cap on the sum of per-word consonant mismatches
// across a multi-word FULL match.
func totalConCap(cfg Config, k int) int {
	if k == 2 {
		return cfg.MaxConTotal2W
	}
	return cfg.MaxConTotal3PlusW
}

// typingBucket derives the small "which positions mismatched" bucket the
// multi-word FULL key uses ahead of the finer-grained severity sum. Each of
// the first three query words is its own bit, earlier words
// occupying more significant bits so that a mismatch on an earlier word is
// never hidden by a later one; words past the third share the third bit,
// since the severity sum (not the bucket) carries the fine-grained
// distinction from there.
func typingBucket(mismatched []bool) int64 {
	top := len(mismatched) - 1
	if top > 2 {
		top = 2
	}
	var bucket int64
	for i, m := range mismatched {
		if !m {
			continue
		}
		pos := i
		if pos > top {
			pos = top
		}
		bucket |= 1 << uint(top-pos)
	}
	return bucket
}

// severity folds one word's consonant-mismatch count, typeBucket and
// matra-mismatch count into a single ordered number, weighted so that
// consonant mismatches dominate type bucket, which dominates matra count.
func severity(w wordCompare) int64 {
	return int64(w.ConMismatches)*1_000_000 + int64(w.TypeBucket)*10_000 + int64(w.MatraMismatches)
}

// scoreMultiWordFull is the highest-fidelity multi-word TYPO family: every
// query word must pass compareFull, and the total consonant-mismatch cap
// must hold.
func scoreMultiWordFull(qTokens, cTokens []string, cfg Config, serial int64) (Key, string, bool) {
	k := len(qTokens)
	words := make([]wordCompare, k)
	mismatched := make([]bool, k)
	var totalCon int
	var severitySum int64
	for i, q := range qTokens {
		w := compareFull(q, cTokens[i], true, cfg.MaxConPerWord)
		if !w.OK {
			return nil, "", false
		}
		words[i] = w
		mismatched[i] = w.ConMismatches > 0
		totalCon += w.ConMismatches
		severitySum += severity(w)
	}
	if k >= 2 && totalCon > totalConCap(cfg, k) {
		return nil, "", false
	}

	bucket := typingBucket(mismatched)
	suffixCount := int64(len(cTokens) - k)
	key := Key{ModeTypo, FamilyFull, bucket, severitySum, suffixCount, int64(len(cTokens)), serial}
	return key, "typo full word-by-word match", true
}

// scoreMultiWordPF is the second-tier multi-word TYPO family: every word
// must pass the prefix-fallback comparison.
func scoreMultiWordPF(qTokens, cTokens []string, cfg Config, serial int64) (Key, string, bool) {
	k := len(qTokens)
	var subsSum, typeSum, matraSum, extraSum int64
	for i, q := range qTokens {
		res, ok := comparePrefixFallback(q, cTokens[i], cfg)
		if !ok {
			return nil, "", false
		}
		weight := wordWeight(i, k)
		subsSum += weight * int64(res.ConMismatches)
		typeSum += weight * int64(res.TypeBucket)
		matraSum += weight * int64(res.MatraMismatches)
		extraSum += weight * int64(cfg.PFGlobalExtraMultiplier) * int64(res.ExtraSuffix)
	}
	suffixCount := int64(len(cTokens) - k)
	key := Key{ModeTypo, FamilyPF, subsSum, typeSum, matraSum, extraSum, suffixCount, int64(len(cTokens)), serial}
	return key, "typo prefix-fallback match", true
}

// scoreMultiWordAO is the lowest-fidelity multi-word TYPO family: every
// word must pass the add/outside comparison; the first word's addition
// count counts double and is capped separately.
func scoreMultiWordAO(qTokens, cTokens []string, cfg Config, serial int64) (Key, string, bool) {
	k := len(qTokens)
	var outsideTotal, addTotal, typeSum, matraSum int64
	for i, q := range qTokens {
		res, ok := compareAddOutside(q, cTokens[i], cfg)
		if !ok {
			return nil, "", false
		}
		if i == 0 {
			if res.Additions > cfg.AddFirstWordMaxAddInMulti {
				return nil, "", false
			}
			addTotal += 2 * int64(res.Additions)
		} else {
			addTotal += int64(res.Additions)
		}
		outsideTotal += int64(res.OutsideSubs)
		weight := wordWeight(i, k)
		typeSum += weight * int64(res.TypeBucket)
		matraSum += weight * int64(res.MatraMismatches)
	}
	suffixCount := int64(len(cTokens) - k)
	key := Key{ModeTypo, FamilyAO, outsideTotal, addTotal, typeSum, matraSum, suffixCount, int64(len(cTokens)), serial}
	return key, "typo add/outside match", true
}

// scoreMultiWord tries FULL, then PF, then AO, in decreasing order of
// fidelity, returning the first family that qualifies.
func scoreMultiWord(qTokens, cTokens []string, cfg Config, serial int64) (Key, string, bool) {
	if len(cTokens) < len(qTokens) {
		return nil, "", false
	}
	cHead := cTokens[:len(qTokens)]

	if key, detail, ok := scoreMultiWordFull(qTokens, cHead, cfg, serial); ok {
		return applySuffix(key, cTokens, qTokens), detail, true
	}
	if !cfg.ExactOnly {
		if key, detail, ok := scoreMultiWordPF(qTokens, cHead, cfg, serial); ok {
			return applySuffix(key, cTokens, qTokens), detail, true
		}
		if key, detail, ok := scoreMultiWordAO(qTokens, cHead, cfg, serial); ok {
			return applySuffix(key, cTokens, qTokens), detail, true
		}
	}
	return nil, "", false
}

// applySuffix corrects the suffixCount and totalWords elements (indices
// len-3 and len-2: every key shape ends ..., suffixCount, totalWords,
// serial) of a key built against cHead, the candidate's aligned prefix,
// so they reflect the full candidate token count rather than the aligned
// slice's length.
func applySuffix(key Key, cTokens, qTokens []string) Key {
	out := make(Key, len(key))
	copy(out, key)
	out[len(out)-3] = int64(len(cTokens) - len(qTokens))
	out[len(out)-2] = int64(len(cTokens))
	return out
}
