package apted

// arena is a grow-on-demand contiguous buffer with stack-discipline
// allocation for the rows used by the children alignment DP. Allocating a
// row returns a slice view into the backing array; deallocate(n) releases
// the most recently allocated n floats, allowing the next allocation to
// reuse that space. Rows are strictly per-pair-call and owned by the
// caller, matching the memory discipline the engine requires.
type arena struct {
	buf []float64
	top int
}

func newArena() *arena {
	return &arena{buf: make([]float64, 0, 256)}
}

// allocate returns a zeroed slice of length n carved from the arena.
func (a *arena) allocate(n int) []float64 {
	if a.top+n > len(a.buf) {
		grown := make([]float64, a.top+n)
		copy(grown, a.buf)
		a.buf = grown
	}
	row := a.buf[a.top : a.top+n : a.top+n]
	for i := range row {
		row[i] = 0
	}
	a.top += n
	return row
}

// deallocate releases the most recently allocated n floats.
func (a *arena) deallocate(n int) {
	a.top -= n
	if a.top < 0 {
		a.top = 0
	}
}
