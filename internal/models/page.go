package models

// Page is a zero-based offset window over an ordered result set.
type Page struct {
	From int
	Size int
}

// Bounds clamps the window to a result set of length n. An offset past the
// end yields an empty range, not an error.
func (p Page) Bounds(n int) (int, int) {
	lo := p.From
	if lo < 0 {
		lo = 0
	}
	if lo > n {
		return n, n
	}
	if p.Size <= 0 {
		return lo, n
	}
	hi := lo + p.Size
	if hi > n {
		hi = n
	}
	return lo, hi
}
