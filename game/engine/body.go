package engine

// body is a ring buffer of cells, head at logical index 0
type body struct {
	cells []Cell
	start int
	n     int
}

func newBody(capacity int) *body {
	if capacity < 4 {
		capacity = 4
	}
	return &body{cells: make([]Cell, capacity)}
}

func (b *body) len() int {
	return b.n
}

// at returns the i-th cell counted from the head
func (b *body) at(i int) Cell {
	return b.cells[(b.start+i)%len(b.cells)]
}

func (b *body) pushFront(c Cell) {
	b.ensure(b.n + 1)
	b.start = (b.start - 1 + len(b.cells)) % len(b.cells)
	b.cells[b.start] = c
	b.n++
}

func (b *body) pushBack(c Cell) {
	b.ensure(b.n + 1)
	b.cells[(b.start+b.n)%len(b.cells)] = c
	b.n++
}

func (b *body) popBack() Cell {
	i := (b.start + b.n - 1) % len(b.cells)
	c := b.cells[i]
	b.n--
	return c
}

// ensure grows the backing array by doubling, unrolling the ring so the
// head lands at index 0
func (b *body) ensure(size int) {
	if size <= len(b.cells) {
		return
	}
	capacity := len(b.cells) * 2
	for capacity < size {
		capacity *= 2
	}
	grown := make([]Cell, capacity)
	for i := 0; i < b.n; i++ {
		grown[i] = b.at(i)
	}
	b.cells = grown
	b.start = 0
}

// slice copies the cells head first
func (b *body) slice() []Cell {
	out := make([]Cell, b.n)
	for i := 0; i < b.n; i++ {
		out[i] = b.at(i)
	}
	return out
}
