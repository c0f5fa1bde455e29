package common

// IsEmpty returns true if the slice is empty.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// First returns the first element of the slice and true, or the zero value and false if empty.
func First[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[0], true
}

// Unique returns the elements of s without repetitions, keeping the first
// occurrence of each.
func Unique[S ~[]E, E comparable](s S) S {
	seen := make(map[E]struct{}, len(s))
	out := make(S, 0, len(s))

	for _, e := range s {
		if _, ok := seen[e]; ok {
			continue
		}

		seen[e] = struct{}{}
		out = append(out, e)
	}

	return out
}

// Window clamps the pagination window [offset, offset+count) to a sequence
// of length total and returns its bounds. Arguments must not be negative.
func Window(total, offset, count int) (lo, hi int) {
	lo = min(offset, total)
	hi = lo + min(count, total-lo)

	return lo, hi
}
