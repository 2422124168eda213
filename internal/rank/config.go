package rank

// Config bundles the ranker's tunables. Zero-value Config is not usable;
// call DefaultConfig for the documented defaults.
type Config struct {
	ExactOnly bool

	MaxConPerWord     int
	MaxConTotal2W     int
	MaxConTotal3PlusW int

	PFMaxSubsFor2W          int
	PFMaxSubsFor3W          int
	PFMaxExtraSuffixPerWord int
	PFGlobalExtraMultiplier int

	AddFirstWordMaxAddInMulti int
	OutsideCapsByQLen         map[int]int
}

// DefaultConfig returns the documented engine-wide defaults.
func DefaultConfig() Config {
	return Config{
		MaxConPerWord:             4,
		MaxConTotal2W:             5,
		MaxConTotal3PlusW:         7,
		PFMaxSubsFor2W:            1,
		PFMaxSubsFor3W:            2,
		PFMaxExtraSuffixPerWord:   2,
		PFGlobalExtraMultiplier:   2,
		AddFirstWordMaxAddInMulti: 2,
		OutsideCapsByQLen:         defaultOutsideCaps(),
	}
}

// defaultOutsideCaps builds the AO outside-substitution cap table: 0 for
// |q|<=2, 1 for |q|=3, 2 for |q| in [4,8], 3 for |q|>=9, keyed by
// query-entity length.
func defaultOutsideCaps() map[int]int {
	caps := make(map[int]int)
	for n := 0; n <= 2; n++ {
		caps[n] = 0
	}
	caps[3] = 1
	for n := 4; n <= 8; n++ {
		caps[n] = 2
	}
	return caps
}

// outsideCap looks up the AO outside-substitution cap for a query word of
// qLen entities, falling back to the highest named band for longer words.
func (c Config) outsideCap(qLen int) int {
	if v, ok := c.OutsideCapsByQLen[qLen]; ok {
		return v
	}
	if qLen >= 9 {
		return 3
	}
	if qLen >= 4 {
		return 2
	}
	if qLen == 3 {
		return 1
	}
	return 0
}

// pfMaxSubs returns the PF substitution cap for a 2- or 3-entity query word.
func (c Config) pfMaxSubs(qLen int) (int, bool) {
	switch qLen {
	case 2:
		return c.PFMaxSubsFor2W, true
	case 3:
		return c.PFMaxSubsFor3W, true
	default:
		return 0, false
	}
}
