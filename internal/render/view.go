// Package render derives the display sent to the client from a game: the
// status line, the board laid out as three rows of three cells, the list of
// rewind entries and the restart flag. It holds no state of its own.
package render

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

const (
	boardRows    = 3
	boardColumns = 3
)

// Cell - a single display unit: its board index and the mark occupying it,
// empty when nothing was played there.
type Cell struct {
	Index int    `json:"index"`
	Mark  string `json:"mark,omitempty"`
}

// Row - three cells; row r covers board cells [3r, 3r+2].
type Row [boardColumns]Cell

// Entry - one clickable history item for a played round.
type Entry struct {
	Round int    `json:"round"`
	Label string `json:"label"`
}

// View is the full display atom re-derived after every action.
type View struct {
	Status     string         `json:"status"`
	Rows       [boardRows]Row `json:"rows"`
	History    []Entry        `json:"history"`
	CanRestart bool           `json:"can_restart"`
}

// NewView - renders the given game. History carries one entry per played
// round only, so a client offering just the listed entries can never rewind
// into an unplayed round.
func NewView(game *entity.Game) *View {
	view := &View{
		Status:     game.Status(),
		CanRestart: game.IsGameOver(),
	}

	for row := 0; row < boardRows; row++ {
		for column := 0; column < boardColumns; column++ {
			index := row*boardColumns + column
			view.Rows[row][column] = Cell{Index: index, Mark: game.Board[index]}
		}
	}

	for round, snapshot := range game.History {
		if snapshot == nil {
			continue
		}
		view.History = append(view.History, Entry{
			Round: round,
			Label: fmt.Sprintf("Back to move %d", round),
		})
	}

	return view
}
