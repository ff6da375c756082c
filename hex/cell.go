// Package hex provides the hexagonal board geometry: axial cells, the six
// neighbor directions, bounded grids and an occupancy map over a grid.
package hex

import (
	"fmt"
	"strconv"
	"strings"
)

// Cell is a position on the grid in axial coordinates. The third cube
// coordinate is derived: s = -q - r.
type Cell struct {
	Q int `json:"q" yaml:"q"`
	R int `json:"r" yaml:"r"`
}

// S returns the implicit third cube coordinate.
func (c Cell) S() int {
	return -c.Q - c.R
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Q, c.R)
}

// ParseCell reads a cell written as "q,r" or "(q,r)".
func ParseCell(s string) (Cell, error) {
	body := strings.TrimSpace(s)
	body = strings.TrimSuffix(strings.TrimPrefix(body, "("), ")")
	qs, rs, ok := strings.Cut(body, ",")
	if !ok {
		return Cell{}, fmt.Errorf("invalid cell %q: want q,r", s)
	}
	q, err := strconv.Atoi(strings.TrimSpace(qs))
	if err != nil {
		return Cell{}, fmt.Errorf("invalid cell %q: %w", s, err)
	}
	r, err := strconv.Atoi(strings.TrimSpace(rs))
	if err != nil {
		return Cell{}, fmt.Errorf("invalid cell %q: %w", s, err)
	}
	return Cell{Q: q, R: r}, nil
}

// Direction indexes the six neighbor offsets. Arithmetic is modulo 6, so
// Direction(i+1) is always the next direction counter-clockwise.
type Direction int

const (
	East Direction = iota
	NorthEast
	NorthWest
	West
	SouthWest
	SouthEast
)

// NumDirections is the number of neighbors of a cell.
const NumDirections = 6

var offsets = [NumDirections]Cell{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Normalize maps any integer direction onto 0..5.
func (d Direction) Normalize() Direction {
	d %= NumDirections
	if d < 0 {
		d += NumDirections
	}
	return d
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return (d + 3).Normalize()
}

// Neighbor returns the adjacent cell in direction d, which may lie off any grid.
func (c Cell) Neighbor(d Direction) Cell {
	o := offsets[d.Normalize()]
	return Cell{Q: c.Q + o.Q, R: c.R + o.R}
}

// Distance returns the number of steps between two cells.
func Distance(a, b Cell) int {
	return max(abs(a.Q-b.Q), abs(a.R-b.R), abs(a.S()-b.S()))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
