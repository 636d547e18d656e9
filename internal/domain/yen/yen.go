// Package yen implements the Y Exchange Notation used to ship game state
// between the web client, the move service and the bots.
//
//	{"size":3,"turn":0,"players":["B","R"],"layout":"B/.R/..."}
//
// Row r of the layout (counted from the apex) has r+1 characters, each a
// player label or '.' for an empty cell.
package yen

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"gamey/internal/domain/board"
	errs "gamey/internal/errors"
)

const (
	emptyMark = "."
	rowSep    = "/"
)

// DefaultPlayers are the labels the web client uses for Blue and Red.
var DefaultPlayers = [2]string{"B", "R"}

type YEN struct {
	Size    int      `json:"size"`
	Turn    int      `json:"turn"`
	Players []string `json:"players"`
	Layout  string   `json:"layout"`
}

// Snapshot is a decoded YEN: the board plus the labels it was written with.
type Snapshot struct {
	State   board.State
	Players [2]string
}

// Empty returns the YEN of a fresh game of the given size.
func Empty(size int) (YEN, error) {
	s, err := board.New(size)
	if err != nil {
		return YEN{}, err
	}
	return Encode(Snapshot{State: s, Players: DefaultPlayers}), nil
}

// Decode validates the structure of y and rebuilds the board. It never runs
// the win check, so the result is always an ongoing state.
func Decode(y YEN) (Snapshot, error) {
	if y.Size < 1 {
		return Snapshot{}, malformed("size must be at least 1, got %d", y.Size)
	}
	if y.Turn != int(board.Blue) && y.Turn != int(board.Red) {
		return Snapshot{}, malformed("turn must be 0 or 1, got %d", y.Turn)
	}
	players, err := decodePlayers(y.Players)
	if err != nil {
		return Snapshot{}, err
	}

	rows := strings.Split(y.Layout, rowSep)
	if len(rows) != y.Size {
		return Snapshot{}, malformed("expected %d rows, got %d", y.Size, len(rows))
	}

	cells := make([]board.Cell, 0, board.CellCount(y.Size))
	for r, row := range rows {
		if utf8.RuneCountInString(row) != r+1 {
			return Snapshot{}, malformed("row %d has %d cells, want %d", r, utf8.RuneCountInString(row), r+1)
		}
		for col, ch := range []rune(row) {
			switch string(ch) {
			case emptyMark:
				cells = append(cells, board.Empty)
			case players[0]:
				cells = append(cells, board.OwnedBy(board.Blue))
			case players[1]:
				cells = append(cells, board.OwnedBy(board.Red))
			default:
				return Snapshot{}, malformed("unknown symbol %q at row %d col %d", ch, r, col)
			}
		}
	}

	s, err := board.Restore(y.Size, board.Player(y.Turn), cells)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", errs.ErrMalformedLayout, err)
	}
	return Snapshot{State: s, Players: players}, nil
}

func decodePlayers(labels []string) ([2]string, error) {
	var players [2]string
	if len(labels) != 2 {
		return players, malformed("expected 2 players, got %d", len(labels))
	}
	for i, l := range labels {
		if utf8.RuneCountInString(l) != 1 || l == emptyMark || l == rowSep {
			return players, malformed("invalid player label %q", l)
		}
		players[i] = l
	}
	if players[0] == players[1] {
		return players, malformed("duplicate player label %q", players[0])
	}
	return players, nil
}

// Encode writes s back to YEN. Encoding a decoded value reproduces the input.
func Encode(s Snapshot) YEN {
	players := s.Players
	if players[0] == "" || players[1] == "" {
		players = DefaultPlayers
	}
	size := s.State.Size()

	var sb strings.Builder
	sb.Grow(board.CellCount(size) + size)
	for row := 0; row < size; row++ {
		if row > 0 {
			sb.WriteString(rowSep)
		}
		for col := 0; col <= row; col++ {
			c, _ := board.FromGrid(row, col, size)
			if owner, ok := s.State.At(c).Owner(); ok {
				sb.WriteString(players[owner])
			} else {
				sb.WriteString(emptyMark)
			}
		}
	}

	return YEN{
		Size:    size,
		Turn:    int(s.State.Turn()),
		Players: []string{players[0], players[1]},
		Layout:  sb.String(),
	}
}

// Parse decodes the JSON text form.
func Parse(data []byte) (Snapshot, error) {
	var y YEN
	if err := json.Unmarshal(data, &y); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", errs.ErrMalformedLayout, err)
	}
	return Decode(y)
}

// Marshal encodes s to the JSON text form.
func Marshal(s Snapshot) ([]byte, error) {
	return json.Marshal(Encode(s))
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errs.ErrMalformedLayout}, args...)...)
}
