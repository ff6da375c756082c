package hex

// Grid is the static shape of a hexagonal board: every cell within radius
// steps of the origin. A grid is immutable once built and is shared by all
// maps and game states that use it.
type Grid struct {
	radius    int
	cells     []Cell
	index     map[Cell]int
	neighbors [][NumDirections]int // -1 when the neighbor is off the grid
	rays      [][NumDirections][]Cell
}

// Axis is a bidirectional line through a cell: the outward ray in one
// direction and the outward ray in the exact opposite direction. Neither
// ray contains the cell itself.
type Axis struct {
	Forward  []Cell
	Backward []Cell
}

// NewGrid builds a hexagonal grid with the given radius. A radius of 0 is a
// single cell; negative radii are treated as 0.
func NewGrid(radius int) *Grid {
	radius = max(radius, 0)
	g := &Grid{
		radius: radius,
		index:  make(map[Cell]int),
	}
	for q := -radius; q <= radius; q++ {
		for r := -radius; r <= radius; r++ {
			c := Cell{Q: q, R: r}
			if Distance(c, Cell{}) <= radius {
				g.index[c] = len(g.cells)
				g.cells = append(g.cells, c)
			}
		}
	}

	g.neighbors = make([][NumDirections]int, len(g.cells))
	for i, c := range g.cells {
		for d := Direction(0); d < NumDirections; d++ {
			if j, ok := g.index[c.Neighbor(d)]; ok {
				g.neighbors[i][d] = j
			} else {
				g.neighbors[i][d] = -1
			}
		}
	}

	g.rays = make([][NumDirections][]Cell, len(g.cells))
	for i, c := range g.cells {
		for d := Direction(0); d < NumDirections; d++ {
			for next, ok := g.Neighbor(c, d); ok; next, ok = g.Neighbor(next, d) {
				g.rays[i][d] = append(g.rays[i][d], next)
			}
		}
	}
	return g
}

// Radius returns the radius the grid was built with.
func (g *Grid) Radius() int {
	return g.radius
}

// Len returns the number of cells on the grid.
func (g *Grid) Len() int {
	return len(g.cells)
}

// Cells returns every cell in iteration order (q ascending, then r).
// The returned slice must not be modified.
func (g *Grid) Cells() []Cell {
	return g.cells
}

// CouldContain reports whether c lies on the grid.
func (g *Grid) CouldContain(c Cell) bool {
	_, ok := g.index[c]
	return ok
}

// Index returns the position of c in iteration order.
func (g *Grid) Index(c Cell) (int, bool) {
	i, ok := g.index[c]
	return i, ok
}

// Neighbor returns the on-grid neighbor of c in direction d.
func (g *Grid) Neighbor(c Cell, d Direction) (Cell, bool) {
	i, ok := g.index[c]
	if !ok {
		return Cell{}, false
	}
	j := g.neighbors[i][d.Normalize()]
	if j < 0 {
		return Cell{}, false
	}
	return g.cells[j], true
}

// Ray returns the cells outward from c in direction d up to the edge of the
// grid. c itself is excluded. Rays are computed once per grid; the returned
// slice must not be modified.
func (g *Grid) Ray(c Cell, d Direction) []Cell {
	i, ok := g.index[c]
	if !ok {
		return nil
	}
	return g.rays[i][d.Normalize()]
}

// Axes returns the three bidirectional lines through c, pairing directions
// d and d+3 for d in East, NorthEast, NorthWest.
func (g *Grid) Axes(c Cell) [3]Axis {
	var axes [3]Axis
	for d := Direction(0); d < 3; d++ {
		axes[d] = Axis{
			Forward:  g.Ray(c, d),
			Backward: g.Ray(c, d.Opposite()),
		}
	}
	return axes
}
