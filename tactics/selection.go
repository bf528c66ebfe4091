package tactics

// scored pairs a candidate with its value. Candidates are kept in the order
// they were produced so that selection is reproducible.
type scored[T any] struct {
	candidate T
	score     float64
}

// best reduces candidates to the one with the greatest score. Comparison is
// strictly greater-than, so on a tie the candidate seen first wins.
func best[T any](candidates []scored[T]) (T, float64, bool) {
	if len(candidates) == 0 {
		var zero T
		return zero, 0, false
	}
	win := candidates[0]
	for _, c := range candidates[1:] {
		if c.score > win.score {
			win = c
		}
	}
	return win.candidate, win.score, true
}
