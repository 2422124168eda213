package entity

// SubstType classifies how two entities relate, in order of decreasing
// preference. Subst always returns the strongest relation that holds
// between a and b.
type SubstType int

const (
	// Exact means a == b.
	Exact SubstType = iota
	// Phonetic means a and b are considered to sound alike.
	Phonetic
	// VisualP0 is the strongest visual-confusability tier.
	VisualP0
	// VisualP1 is the middle visual-confusability tier.
	VisualP1
	// VisualP2 is the weakest visual-confusability tier.
	VisualP2
	// Other means none of the above relations hold.
	Other
)

func (t SubstType) String() string {
	switch t {
	case Exact:
		return "EXACT"
	case Phonetic:
		return "PHONETIC"
	case VisualP0:
		return "VISUAL_P0"
	case VisualP1:
		return "VISUAL_P1"
	case VisualP2:
		return "VISUAL_P2"
	default:
		return "OTHER"
	}
}

// relation is a set of entities where any two members are considered
// equivalent, built once at startup from a curated group list.
type relation map[string]map[string]bool

func buildRelation(groups [][]string) relation {
	r := make(relation)
	for _, g := range groups {
		for _, a := range g {
			if r[a] == nil {
				r[a] = make(map[string]bool)
			}
			for _, b := range g {
				if a == b {
					continue
				}
				r[a][b] = true
			}
		}
	}
	return r
}

func (r relation) holds(a, b string) bool {
	peers, ok := r[a]
	if !ok {
		return false
	}
	return peers[b]
}

var (
	phoneticRelation = buildRelation(stripGroupLiterals(phoneticGroups))
	visualP0Relation = buildRelation(stripGroupLiterals(visualP0Groups))
	visualP1Relation = buildRelation(stripGroupLiterals(visualP1Groups))
	visualP2Relation = buildRelation(stripGroupLiterals(visualP2Groups))
)

// Subst returns, in order of preference, Exact (a==b), Phonetic,
// VisualP0, VisualP1, VisualP2, else Other.
func Subst(a, b string) SubstType {
	if a == b {
		return Exact
	}
	switch {
	case phoneticRelation.holds(a, b):
		return Phonetic
	case visualP0Relation.holds(a, b):
		return VisualP0
	case visualP1Relation.holds(a, b):
		return VisualP1
	case visualP2Relation.holds(a, b):
		return VisualP2
	default:
		return Other
	}
}
