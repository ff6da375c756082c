package hex

import (
	"errors"
	"fmt"
)

// ErrOffGrid is returned when a cell outside the grid is written.
var ErrOffGrid = errors.New("cell is not on the grid")

// Map assigns values to cells of a grid. Storage is indexed by the grid's
// iteration order so copies are two slice copies.
type Map[T any] struct {
	grid     *Grid
	values   []T
	occupied []bool
	count    int
}

// NewMap returns an empty map over g.
func NewMap[T any](g *Grid) *Map[T] {
	return &Map[T]{
		grid:     g,
		values:   make([]T, g.Len()),
		occupied: make([]bool, g.Len()),
	}
}

// Grid returns the shape the map is bounded to.
func (m *Map[T]) Grid() *Grid {
	return m.grid
}

// Get returns the value at c, if any.
func (m *Map[T]) Get(c Cell) (T, bool) {
	var zero T
	i, ok := m.grid.Index(c)
	if !ok || !m.occupied[i] {
		return zero, false
	}
	return m.values[i], true
}

// Contains reports whether c holds a value.
func (m *Map[T]) Contains(c Cell) bool {
	i, ok := m.grid.Index(c)
	return ok && m.occupied[i]
}

// CouldContain reports whether c is on the grid, regardless of occupancy.
func (m *Map[T]) CouldContain(c Cell) bool {
	return m.grid.CouldContain(c)
}

// IsEmpty reports whether c is on the grid and holds no value.
func (m *Map[T]) IsEmpty(c Cell) bool {
	i, ok := m.grid.Index(c)
	return ok && !m.occupied[i]
}

// Insert stores v at c, replacing any previous value.
func (m *Map[T]) Insert(c Cell, v T) error {
	i, ok := m.grid.Index(c)
	if !ok {
		return fmt.Errorf("insert %s: %w", c, ErrOffGrid)
	}
	if !m.occupied[i] {
		m.occupied[i] = true
		m.count++
	}
	m.values[i] = v
	return nil
}

// Len returns the number of occupied cells.
func (m *Map[T]) Len() int {
	return m.count
}

// IsFull reports whether every cell of the grid is occupied.
func (m *Map[T]) IsFull() bool {
	return m.count == m.grid.Len()
}

// Occupied returns the occupied cells in grid order.
func (m *Map[T]) Occupied() []Cell {
	cells := make([]Cell, 0, m.count)
	for i, ok := range m.occupied {
		if ok {
			cells = append(cells, m.grid.cells[i])
		}
	}
	return cells
}

// Empty returns the unoccupied cells in grid order.
func (m *Map[T]) Empty() []Cell {
	cells := make([]Cell, 0, m.grid.Len()-m.count)
	for i, ok := range m.occupied {
		if !ok {
			cells = append(cells, m.grid.cells[i])
		}
	}
	return cells
}

// Clone returns an independent copy sharing only the immutable grid.
func (m *Map[T]) Clone() *Map[T] {
	values := make([]T, len(m.values))
	copy(values, m.values)
	occupied := make([]bool, len(m.occupied))
	copy(occupied, m.occupied)
	return &Map[T]{
		grid:     m.grid,
		values:   values,
		occupied: occupied,
		count:    m.count,
	}
}
