package game

import (
	"gamey/internal/domain/board"
	"gamey/internal/domain/yen"
)

const (
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"
)

// MaxBoardSize bounds boards created by the server.
const MaxBoardSize = 100

// @name MoveRequest
type MoveRequest struct {
	YEN yen.YEN `json:"yen"`
	X   int     `json:"x"`
	Y   int     `json:"y"`
	Z   int     `json:"z"`
}

func (m MoveRequest) Coordinates() board.Coordinates {
	return board.Coordinates{X: m.X, Y: m.Y, Z: m.Z}
}

// @name MoveResponse
type MoveResponse struct {
	YEN        yen.YEN `json:"yen"`
	Status     string  `json:"status"`
	Winner     *int    `json:"winner"`
	NextPlayer *int    `json:"next_player"`
}

// @name NewGameRequest
type NewGameRequest struct {
	Size int `json:"size"`
}

// @name BotChooseResponse
type BotChooseResponse struct {
	ApiVersion string            `json:"api_version"`
	BotID      string            `json:"bot_id"`
	Coords     board.Coordinates `json:"coords"`
}

// NewMoveResponse describes s in the wire shape the web client expects.
func NewMoveResponse(snap yen.Snapshot) MoveResponse {
	resp := MoveResponse{YEN: yen.Encode(snap), Status: StatusOngoing}
	if winner, ok := snap.State.Winner(); ok {
		w := int(winner)
		resp.Status = StatusFinished
		resp.Winner = &w
		return resp
	}
	next := int(snap.State.Turn())
	resp.NextPlayer = &next
	return resp
}
