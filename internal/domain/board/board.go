package board

import (
	"fmt"

	errs "gamey/internal/errors"
)

// Player is a player index: Blue (0) moves first, Red (1) second.
type Player int

const (
	Blue Player = 0
	Red  Player = 1
)

func (p Player) Other() Player {
	return 1 - p
}

func (p Player) Valid() bool {
	return p == Blue || p == Red
}

// Cell is the occupancy of one board cell.
type Cell int8

const Empty Cell = -1

// OwnedBy returns the cell value for a stone of p.
func OwnedBy(p Player) Cell {
	return Cell(p)
}

// Owner returns the player holding the cell, ok is false for Empty.
func (c Cell) Owner() (Player, bool) {
	if c == Empty {
		return 0, false
	}
	return Player(c), true
}

type Status int

const (
	Ongoing Status = iota
	Finished
)

func (s Status) String() string {
	if s == Finished {
		return "finished"
	}
	return "ongoing"
}

// State is an immutable snapshot of a game. Turn is meaningless once
// Status is Finished; Winner is meaningless while Ongoing.
type State struct {
	size   int
	turn   Player
	status Status
	winner Player
	cells  []Cell
}

// New returns an empty board of the given size with Blue to move.
func New(size int) (State, error) {
	if size < 1 {
		return State{}, fmt.Errorf("%w: board size %d", errs.ErrInvalidCoordinate, size)
	}
	cells := make([]Cell, CellCount(size))
	for i := range cells {
		cells[i] = Empty
	}
	return State{size: size, turn: Blue, cells: cells}, nil
}

// Restore builds an ongoing State from raw occupancy in row-major order
// (see AllCoords). It validates structure only, never game legality.
func Restore(size int, turn Player, cells []Cell) (State, error) {
	if size < 1 {
		return State{}, fmt.Errorf("%w: board size %d", errs.ErrInvalidCoordinate, size)
	}
	if !turn.Valid() {
		return State{}, fmt.Errorf("%w: turn %d", errs.ErrInvalidCoordinate, turn)
	}
	if len(cells) != CellCount(size) {
		return State{}, fmt.Errorf("%w: %d cells for size %d", errs.ErrCellOutOfBounds, len(cells), size)
	}
	own := make([]Cell, len(cells))
	for i, c := range cells {
		if c != Empty && !Player(c).Valid() {
			return State{}, fmt.Errorf("%w: cell %d holds %d", errs.ErrInvalidCoordinate, i, c)
		}
		own[i] = c
	}
	return State{size: size, turn: turn, cells: own}, nil
}

func (s State) Size() int      { return s.size }
func (s State) Turn() Player   { return s.turn }
func (s State) Status() Status { return s.status }
func (s State) Finished() bool { return s.status == Finished }

// Winner reports the winning player, ok is false while the game is ongoing.
func (s State) Winner() (Player, bool) {
	if s.status != Finished {
		return 0, false
	}
	return s.winner, true
}

// At returns the occupancy of c. Out-of-bounds coordinates read as Empty.
func (s State) At(c Coordinates) Cell {
	if !c.InBounds(s.size) {
		return Empty
	}
	return s.cells[c.index(s.size)]
}

// Cells returns a copy of the occupancy in row-major order.
func (s State) Cells() []Cell {
	out := make([]Cell, len(s.cells))
	copy(out, s.cells)
	return out
}

// Occupied counts filled cells.
func (s State) Occupied() int {
	n := 0
	for _, c := range s.cells {
		if c != Empty {
			n++
		}
	}
	return n
}

// OwnedBy lists the cells held by p.
func (s State) OwnedBy(p Player) []Coordinates {
	var owned []Coordinates
	for _, c := range AllCoords(s.size) {
		if s.cells[c.index(s.size)] == OwnedBy(p) {
			owned = append(owned, c)
		}
	}
	return owned
}

// EmptyCells lists the cells still free, row-major.
func (s State) EmptyCells() []Coordinates {
	var free []Coordinates
	for _, c := range AllCoords(s.size) {
		if s.cells[c.index(s.size)] == Empty {
			free = append(free, c)
		}
	}
	return free
}

// Equal compares two snapshots cell by cell.
func (s State) Equal(o State) bool {
	if s.size != o.size || s.turn != o.turn || s.status != o.status {
		return false
	}
	if s.status == Finished && s.winner != o.winner {
		return false
	}
	if len(s.cells) != len(o.cells) {
		return false
	}
	for i := range s.cells {
		if s.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

func (s State) clone() State {
	cp := s
	cp.cells = make([]Cell, len(s.cells))
	copy(cp.cells, s.cells)
	return cp
}
