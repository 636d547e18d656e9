package game

import (
	"fmt"

	"go.uber.org/zap"

	"gamey/internal/domain/board"
	"gamey/internal/domain/game"
	"gamey/internal/domain/yen"
	errs "gamey/internal/errors"
)

// GameUseCase plays single moves on positions sent by the client. It keeps
// no state: everything it needs arrives in the YEN.
type GameUseCase struct {
	log         *zap.SugaredLogger
	defaultSize int
}

func NewGameUseCase(log *zap.SugaredLogger, defaultSize int) *GameUseCase {
	return &GameUseCase{log: log, defaultSize: defaultSize}
}

func (g *GameUseCase) NewGame(req game.NewGameRequest) (yen.YEN, error) {
	size := req.Size
	if size == 0 {
		size = g.defaultSize
	}
	if err := CheckBoardSize(size); err != nil {
		return yen.YEN{}, err
	}
	return yen.Empty(size)
}

func CheckBoardSize(size int) error {
	if size < 1 || size > game.MaxBoardSize {
		return fmt.Errorf("%w: board size %d not in 1..%d", errs.ErrInvalidCoordinate, size, game.MaxBoardSize)
	}
	return nil
}

func (g *GameUseCase) Move(req game.MoveRequest) (game.MoveResponse, error) {
	snap, err := yen.Decode(req.YEN)
	if err != nil {
		return game.MoveResponse{}, err
	}

	// a position that is already won takes no more moves
	next, outcome, err := board.Resume(snap.State).ApplyMove(req.Coordinates())
	if err != nil {
		return game.MoveResponse{}, err
	}
	if winner, ok := next.Winner(); ok {
		g.log.Infow("game finished", "size", next.Size(), "winner", int(winner), "status", outcome.Status.String())
	}

	return game.NewMoveResponse(yen.Snapshot{State: next, Players: snap.Players}), nil
}
