package model

// Brush paints cells along a drag gesture.
//
// The value painted is fixed when the gesture starts: dragging from a dead
// cell activates cells, dragging from a live one clears them. Moves are
// joined with a rasterized line so fast drags don't skip cells.
type Brush struct {
	sim      *Simulation
	active   bool
	activate bool
	lastRow  int
	lastCol  int
}

// NewBrush returns a brush painting on sim
func NewBrush(sim *Simulation) *Brush {
	return &Brush{sim: sim}
}

// clamp pulls a coordinate onto the board, the way a pointer past the edge maps to the edge cell
func (b *Brush) clamp(row, col int) (int, int) {
	grid := b.sim.State().Grid
	return min(max(row, 0), grid.Rows()-1), min(max(col, 0), grid.Cols()-1)
}

// Begin starts a gesture at (row, col) and paints that cell
func (b *Brush) Begin(row, col int) error {
	row, col = b.clamp(row, col)
	alive, err := b.sim.State().Grid.Get(row, col)
	if err != nil {
		return err
	}
	b.active = true
	b.activate = !alive
	b.lastRow, b.lastCol = row, col
	return b.paint(row, col)
}

// MoveTo extends the gesture to (row, col), painting every cell on the way.
// Without a gesture in progress it starts one.
func (b *Brush) MoveTo(row, col int) error {
	if !b.active {
		return b.Begin(row, col)
	}
	row, col = b.clamp(row, col)
	if row == b.lastRow && col == b.lastCol {
		return nil
	}
	var err error
	Line(b.lastRow, b.lastCol, row, col, func(r, c int) {
		if err == nil {
			err = b.paint(r, c)
		}
	})
	b.lastRow, b.lastCol = row, col
	return err
}

// End finishes the gesture
func (b *Brush) End() {
	b.active = false
}

func (b *Brush) paint(row, col int) error {
	if b.activate {
		return b.sim.ActivateCell(row, col)
	}
	return b.sim.DeactivateCell(row, col)
}

// Line visits every cell on the Bresenham line from (r0, c0) to (r1, c1), both ends included
func Line(r0, c0, r1, c1 int, visit func(row, col int)) {
	dr := abs(r1 - r0)
	dc := -abs(c1 - c0)
	stepR, stepC := 1, 1
	if r0 > r1 {
		stepR = -1
	}
	if c0 > c1 {
		stepC = -1
	}

	err := dr + dc
	r, c := r0, c0
	for {
		visit(r, c)
		if r == r1 && c == c1 {
			return
		}
		e2 := 2 * err
		if e2 >= dc {
			err += dc
			r += stepR
		}
		if e2 <= dr {
			err += dr
			c += stepC
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
