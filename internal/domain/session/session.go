package session

import (
	"time"

	"gamey/internal/domain/board"
	"gamey/internal/domain/yen"
)

const (
	ModeLocal = "local"
	ModeBot   = "bot"
)

// BotPlayer is the seat a bot takes in bot mode; the human opens as Blue.
const BotPlayer = board.Red

// Session is one live game kept by the server between moves.
type Session struct {
	ID         string              `json:"id"`
	Mode       string              `json:"mode"`
	BotID      string              `json:"bot_id,omitempty"`
	YEN        yen.YEN             `json:"yen"`
	Status     string              `json:"status"`
	Winner     *int                `json:"winner"`
	NextPlayer *int                `json:"next_player"`
	Moves      []board.Coordinates `json:"moves"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// @name CreateSessionRequest
type CreateSessionRequest struct {
	Mode  string `json:"mode"`
	Size  int    `json:"size"`
	BotID string `json:"bot_id,omitempty"`
}

// @name SessionMoveRequest
type SessionMoveRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

func (m SessionMoveRequest) Coordinates() board.Coordinates {
	return board.Coordinates{X: m.X, Y: m.Y, Z: m.Z}
}
