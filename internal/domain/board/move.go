package board

import (
	"fmt"

	errs "gamey/internal/errors"
)

// Outcome is the result of an accepted move.
type Outcome struct {
	Status Status
	// Winner is set only when Status is Finished.
	Winner Player
}

// NextPlayer returns whose move follows, ok is false once the game is over.
func (s State) NextPlayer() (Player, bool) {
	if s.status == Finished {
		return 0, false
	}
	return s.turn, true
}

// Resume settles a state rebuilt from raw occupancy (see Restore): if either
// player already connects all three sides the state becomes Finished with
// that winner. The player who moved last is checked first.
func Resume(s State) State {
	if s.status == Finished {
		return s
	}
	for _, p := range []Player{s.turn.Other(), s.turn} {
		if HasWon(s.size, s.OwnedBy(p)) {
			done := s.clone()
			done.status = Finished
			done.winner = p
			return done
		}
	}
	return s
}

// ApplyMove places a stone for the player to move at c and returns the
// resulting snapshot. s itself is never modified; on error the returned
// state is s.
func (s State) ApplyMove(c Coordinates) (State, Outcome, error) {
	if s.status == Finished {
		return s, Outcome{Status: Finished, Winner: s.winner}, errs.ErrGameAlreadyFinished
	}
	if !c.InBounds(s.size) {
		return s, Outcome{}, fmt.Errorf("%w: %s on size %d", errs.ErrCellOutOfBounds, c, s.size)
	}
	if s.cells[c.index(s.size)] != Empty {
		return s, Outcome{}, fmt.Errorf("%w: %s", errs.ErrCellOccupied, c)
	}

	next := s.clone()
	mover := s.turn
	next.cells[c.index(s.size)] = OwnedBy(mover)

	if HasWon(next.size, next.OwnedBy(mover)) {
		next.status = Finished
		next.winner = mover
		return next, Outcome{Status: Finished, Winner: mover}, nil
	}

	next.turn = mover.Other()
	return next, Outcome{Status: Ongoing}, nil
}
