package board

import (
	"fmt"

	errs "gamey/internal/errors"
)

// Coordinates is the barycentric identity of a cell: X+Y+Z == size-1.
type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// directions lists the six hexagonal steps: one axis gains, another loses.
var directions = []Coordinates{
	{-1, 1, 0}, {-1, 0, 1},
	{1, -1, 0}, {0, -1, 1},
	{1, 0, -1}, {0, 1, -1},
}

// FromGrid maps a display position (row from the apex, column within the row)
// to barycentric coordinates.
//
//	FromGrid(0, 0, 3) -> (2,0,0)  apex
//	FromGrid(2, 0, 3) -> (0,0,2)  bottom left
//	FromGrid(2, 2, 3) -> (0,2,0)  bottom right
func FromGrid(row, col, size int) (Coordinates, error) {
	if size < 1 || row < 0 || row >= size || col < 0 || col > row {
		return Coordinates{}, fmt.Errorf("%w: row %d col %d on size %d", errs.ErrInvalidCoordinate, row, col, size)
	}
	return Coordinates{X: size - 1 - row, Y: col, Z: row - col}, nil
}

// Grid is the inverse of FromGrid.
func (c Coordinates) Grid(size int) (row, col int) {
	return size - 1 - c.X, c.Y
}

// InBounds reports whether c names a cell of a board of the given size.
func (c Coordinates) InBounds(size int) bool {
	return c.X >= 0 && c.Y >= 0 && c.Z >= 0 && c.X+c.Y+c.Z == size-1
}

// Neighbors returns the in-board cells adjacent to c. Edge and corner cells
// have fewer than six.
func (c Coordinates) Neighbors(size int) []Coordinates {
	result := make([]Coordinates, 0, len(directions))
	for _, d := range directions {
		n := Coordinates{X: c.X + d.X, Y: c.Y + d.Y, Z: c.Z + d.Z}
		if n.InBounds(size) {
			result = append(result, n)
		}
	}
	return result
}

func (c Coordinates) TouchesA() bool { return c.X == 0 }
func (c Coordinates) TouchesB() bool { return c.Y == 0 }
func (c Coordinates) TouchesC() bool { return c.Z == 0 }

func (c Coordinates) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// CellCount is the triangular number of cells on a board of the given size.
func CellCount(size int) int {
	return size * (size + 1) / 2
}

// index is the row-major position of c, apex first.
func (c Coordinates) index(size int) int {
	row, col := c.Grid(size)
	return row*(row+1)/2 + col
}

// AllCoords enumerates the cells of a board in row-major order from the apex.
func AllCoords(size int) []Coordinates {
	coords := make([]Coordinates, 0, CellCount(size))
	for row := 0; row < size; row++ {
		for col := 0; col <= row; col++ {
			coords = append(coords, Coordinates{X: size - 1 - row, Y: col, Z: row - col})
		}
	}
	return coords
}
