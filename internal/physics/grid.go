package physics

import "math"

// SpatialGrid is a uniform bucket grid used as a broad phase for circle
// collision checks. Bodies are inserted by center and an integer key; a
// query visits the 3x3 block of cells around a point, wrapping at the
// world edges.
//
// The cell size must be at least the largest distance at which two bodies
// can collide, otherwise a query can miss candidates.
type SpatialGrid struct {
	invCellSize float64
	cols        int
	rows        int
	cells       [][]int
}

// NewSpatialGrid creates a grid covering worldW x worldH.
func NewSpatialGrid(worldW, worldH, cellSize float64) *SpatialGrid {
	g := &SpatialGrid{}
	g.Reset(worldW, worldH, cellSize)
	return g
}

// Reset resizes the grid and drops every entry.
func (g *SpatialGrid) Reset(worldW, worldH, cellSize float64) {
	if cellSize <= 0 {
		cellSize = 1
	}
	cols := max(int(math.Ceil(worldW/cellSize)), 1)
	rows := max(int(math.Ceil(worldH/cellSize)), 1)

	g.invCellSize = 1 / cellSize
	if cols*rows != len(g.cells) {
		g.cells = make([][]int, cols*rows)
	} else {
		g.Clear()
	}
	g.cols = cols
	g.rows = rows
}

// Clear empties every cell, keeping the backing arrays.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert files key under the cell containing (x, y).
func (g *SpatialGrid) Insert(x, y float64, key int) {
	col, row := g.cell(x, y)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], key)
}

// QueryAround calls fn for every key in the 3x3 neighbourhood of (x, y).
// Iteration stops early when fn returns true. On grids narrower than three
// cells a key may be visited more than once.
func (g *SpatialGrid) QueryAround(x, y float64, fn func(key int) bool) {
	col, row := g.cell(x, y)

	for dr := -1; dr <= 1; dr++ {
		r := (row + dr + g.rows) % g.rows
		for dc := -1; dc <= 1; dc++ {
			c := (col + dc + g.cols) % g.cols
			for _, key := range g.cells[r*g.cols+c] {
				if fn(key) {
					return
				}
			}
		}
	}
}

// cell maps world coordinates to a cell, clamping out-of-range points to
// the border cells.
func (g *SpatialGrid) cell(x, y float64) (col, row int) {
	col = min(max(int(math.Floor(x*g.invCellSize)), 0), g.cols-1)
	row = min(max(int(math.Floor(y*g.invCellSize)), 0), g.rows-1)
	return col, row
}
