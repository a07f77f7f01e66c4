package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
)

const (
	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""

	// BoardCells - total cells on the board; also the number of rounds a game can last.
	BoardCells = 9
)

const (
	StatusDraw       = "draw"
	winnerPrefix     = "winner: "
	nextPlayerPrefix = "next player: "
)

var (
	ErrInvalidCell  = errors.New("invalid cell index")
	ErrInvalidRound = errors.New("invalid round index")

	WinCombos = [][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

// Board - 9 cells, index i maps to row i/3 and column i%3.
type Board [BoardCells]string

// Game holds the full state of a session's game: the current board, the
// number of rounds played and one snapshot per played round. Snapshot i is
// the board as it was before move i; a nil slot means round i has not been
// played or was invalidated by a rewind. Turn, winner and status are always
// derived, never stored.
type Game struct {
	ID      string             `json:"id"`
	Board   Board              `json:"board"`
	Round   int                `json:"round"`
	History [BoardCells]*Board `json:"history"`
}

func NewGame(id string) *Game {
	return &Game{
		ID: id,
	}
}

// PlayerTurn - whose mark goes next: X on even rounds, O on odd.
func (that *Game) PlayerTurn() string {
	if that.Round%2 == 0 {
		return PlayerX
	}
	return PlayerO
}

// Winner - checks the eight win combos in a fixed order and returns the mark
// of the first complete one, or EmptyCell if there is no winner.
func (that *Game) Winner() string {
	for _, combo := range WinCombos {
		a, b, c := that.Board[combo[0]], that.Board[combo[1]], that.Board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	return EmptyCell
}

func (that *Game) IsGameOver() bool {
	return that.Round >= BoardCells || that.Winner() != EmptyCell
}

// Status - display status derived from the board and round counter.
func (that *Game) Status() string {
	if winner := that.Winner(); winner != EmptyCell {
		return winnerPrefix + winner
	}

	if that.Round >= BoardCells {
		return StatusDraw
	}

	return nextPlayerPrefix + that.PlayerTurn()
}

// MakeMove - plays the current player's mark into the given cell. A click on
// an occupied cell or on a finished game is absorbed without any state
// change; only an out-of-range cell is an error.
func (that *Game) MakeMove(cell int) error {
	if cell < 0 || cell >= len(that.Board) {
		return fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}

	if that.Board[cell] != EmptyCell || that.Winner() != EmptyCell {
		return nil
	}

	snapshot := that.Board
	that.History[that.Round] = &snapshot

	that.Board[cell] = that.PlayerTurn()
	that.Round++

	return nil
}

// RewindTo - restores the board to the snapshot taken before the given round
// was played and invalidates that round and everything after it.
func (that *Game) RewindTo(round int) error {
	if round < 0 || round >= len(that.History) {
		return fmt.Errorf("%w: round %d", ErrInvalidRound, round)
	}

	snapshot := that.History[round]
	if snapshot == nil {
		return fmt.Errorf("%w: round %d", apperror.ErrRoundNotPlayed, round)
	}

	that.Board = *snapshot
	that.Round = round

	for i := round; i < len(that.History); i++ {
		that.History[i] = nil
	}

	return nil
}

// Reset - returns the game to its start state from any prior state.
func (that *Game) Reset() {
	that.Board = Board{}
	that.Round = 0
	that.History = [BoardCells]*Board{}
}
