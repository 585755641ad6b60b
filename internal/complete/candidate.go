package complete

import "sort"

// Candidate is one completion suggestion
type Candidate struct {
	Value       string
	Description string
	Weight      int
}

// sortByWeight orders candidates by ascending weight, preserving
// declared order among equal weights.
func sortByWeight(cands []Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Weight < cands[j].Weight
	})
}

// hasPrefix is the single prefix predicate for the whole package, so
// case handling stays consistent between flag matching and value
// filtering.
func hasPrefix(s, prefix string, fold bool) bool {
	if len(prefix) > len(s) {
		return false
	}
	if !fold {
		return s[:len(prefix)] == prefix
	}
	return equalFold(s[:len(prefix)], prefix)
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
