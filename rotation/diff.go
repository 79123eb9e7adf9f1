package rotation

// Difference is the change between two rotations of a single pool.
type Difference struct {
	Added   []string `json:"added"`
	Removed []string `json:"removed"`
}

// Empty reports whether nothing was added or removed.
func (d Difference) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}

// Diff computes current minus previous (Added) and previous minus current
// (Removed). Membership is exact string equality. A nil previous list means
// every current entry is new. Entries repeated within one list are reported
// once, in first-seen order.
func Diff(previous, current []string) Difference {
	prev := toSet(previous)
	cur := toSet(current)

	return Difference{
		Added:   minus(current, prev),
		Removed: minus(previous, cur),
	}
}

func toSet(list []string) map[string]struct{} {
	set := make(map[string]struct{}, len(list))
	for _, s := range list {
		set[s] = struct{}{}
	}
	return set
}

// minus returns the entries of list not present in exclude.
func minus(list []string, exclude map[string]struct{}) []string {
	out := []string{}
	seen := make(map[string]struct{}, len(list))
	for _, s := range list {
		if _, skip := exclude[s]; skip {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
