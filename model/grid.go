package model

import (
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-gol-engine/rules"
)

var (
	// ErrInvalidDimension is returned when a grid is built with non-positive rows or cols
	ErrInvalidDimension = errors.New("invalid grid dimension")
	// ErrOutOfBounds is returned when a coordinate falls outside the grid
	ErrOutOfBounds = errors.New("cell out of bounds")
)

const (
	textAlive = '#'
	textDead  = '.'
)

// Grid is a fixed-size board of cells stored row-major. A Grid is never
// modified after construction; edits and generation steps return new grids.
type Grid struct {
	rows  int
	cols  int
	cells []bool
}

// NewGrid creates a grid with the given dimensions, calling init once per cell in row-major order.
// A nil init leaves every cell dead.
func NewGrid(rows, cols int, init func(row, col int) bool) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimension, "%dx%d", rows, cols)
	}
	g := &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]bool, rows*cols),
	}
	if init != nil {
		for row := range rows {
			for col := range cols {
				g.cells[row*cols+col] = init(row, col)
			}
		}
	}
	return g, nil
}

// NewEmptyGrid creates a grid with every cell dead
func NewEmptyGrid(rows, cols int) (*Grid, error) {
	return NewGrid(rows, cols, nil)
}

// Rows returns the number of rows of the grid
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns of the grid
func (g *Grid) Cols() int {
	return g.cols
}

// InBounds reports whether (row, col) addresses a cell of the grid
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

func (g *Grid) index(row, col int) (int, error) {
	if !g.InBounds(row, col) {
		return 0, errors.Wrapf(ErrOutOfBounds, "(%d,%d) in %dx%d grid", row, col, g.rows, g.cols)
	}
	return row*g.cols + col, nil
}

// Get returns the state of a cell
func (g *Grid) Get(row, col int) (bool, error) {
	i, err := g.index(row, col)
	if err != nil {
		return false, err
	}
	return g.cells[i], nil
}

// WithCell returns a copy of the grid with the cell at (row, col) set to the given value.
// The receiver is left untouched.
func (g *Grid) WithCell(row, col int, alive bool) (*Grid, error) {
	i, err := g.index(row, col)
	if err != nil {
		return nil, err
	}
	next := g.clone()
	next.cells[i] = alive
	return next, nil
}

func (g *Grid) clone() *Grid {
	cells := make([]bool, len(g.cells))
	copy(cells, g.cells)
	return &Grid{rows: g.rows, cols: g.cols, cells: cells}
}

// CountWhere counts the cells matching pred
func (g *Grid) CountWhere(pred func(alive bool) bool) (count int) {
	for _, alive := range g.cells {
		if pred(alive) {
			count++
		}
	}
	return
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() int {
	return g.CountWhere(func(alive bool) bool { return alive })
}

// Equals reports whether both grids have the same dimensions and the same cells.
// Grids of different sizes are simply not equal.
func (g *Grid) Equals(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// CountNeighbors counts the living cells around (row, col). Cells past the
// edge of the grid don't count; there is no wraparound.
func (g *Grid) CountNeighbors(row, col int) int {
	count := 0

	minRow := max(0, row-1)
	maxRow := min(g.rows-1, row+1)
	minCol := max(0, col-1)
	maxCol := min(g.cols-1, col+1)

	for r := minRow; r <= maxRow; r++ {
		for c := minCol; c <= maxCol; c++ {
			if r == row && c == col {
				continue
			}
			if g.cells[r*g.cols+c] {
				count++
			}
		}
	}

	return count
}

// NextGeneration calculates the next generation. Every cell is evaluated
// against the receiver, so update order doesn't matter.
func (g *Grid) NextGeneration() *Grid {
	next := &Grid{rows: g.rows, cols: g.cols, cells: make([]bool, len(g.cells))}
	g.stepRows(next, 0, g.rows)
	return next
}

// NextGenerationParallel calculates the next generation splitting rows across workers.
// A workers value <= 0 uses one worker per CPU. The result is identical to NextGeneration.
func (g *Grid) NextGenerationParallel(workers int) *Grid {
	next := &Grid{rows: g.rows, cols: g.cols, cells: make([]bool, len(g.cells))}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	var (
		eg            errgroup.Group
		rowsPerWorker = (g.rows + workers - 1) / workers // Ceiling division
	)

	for i := range workers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, g.rows)
		)
		if startRow >= g.rows {
			break
		}

		eg.Go(func() error {
			g.stepRows(next, startRow, endRow)
			return nil
		})
	}

	// workers never fail
	_ = eg.Wait()

	return next
}

// stepRows writes rows [startRow, endRow) of the next generation into next
func (g *Grid) stepRows(next *Grid, startRow, endRow int) {
	for row := startRow; row < endRow; row++ {
		for col := range g.cols {
			i := row*g.cols + col
			next.cells[i] = rules.ApplyConwayRules(g.CountNeighbors(row, col), g.cells[i])
		}
	}
}

// String renders the grid one row per line, '#' for alive and '.' for dead
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.rows * (g.cols + 1))
	for row := range g.rows {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := range g.cols {
			if g.cells[row*g.cols+col] {
				sb.WriteByte(textAlive)
			} else {
				sb.WriteByte(textDead)
			}
		}
	}
	return sb.String()
}
