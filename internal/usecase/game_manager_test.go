package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *GameManager {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(func() { mr.Close() })

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gameRepo := repository.NewGameRepository(client, time.Hour)

	return NewGameManager(logger, gameRepo)
}

func TestGameManager_GetOrCreateGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a fresh game for an unknown session", func(t *testing.T) {
		manager := newTestManager(t)

		// When: a session asks for its game the first time
		game, err := manager.GetOrCreateGame(ctx, "session-1")

		// Then: a brand new game is stored under the session ID
		require.NoError(t, err)
		assert.Equal(t, "session-1", game.ID)
		assert.Equal(t, 0, game.Round)
		assert.Equal(t, entity.Board{}, game.Board)
	})

	t.Run("Returns the stored game on subsequent calls", func(t *testing.T) {
		manager := newTestManager(t)

		// Given: a session with one move played
		_, err := manager.MakeTurn(ctx, "session-1", 4)
		require.NoError(t, err)

		// When: the session asks for its game again
		game, err := manager.GetOrCreateGame(ctx, "session-1")

		// Then: the played state comes back
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, game.Board[4])
		assert.Equal(t, 1, game.Round)
	})
}

func TestGameManager_MakeTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Persists each move", func(t *testing.T) {
		manager := newTestManager(t)

		// When: two moves are played in separate calls
		_, err := manager.MakeTurn(ctx, "session-1", 0)
		require.NoError(t, err)
		game, err := manager.MakeTurn(ctx, "session-1", 3)
		require.NoError(t, err)

		// Then: both moves and both snapshots survive the round-trips
		assert.Equal(t, entity.PlayerX, game.Board[0])
		assert.Equal(t, entity.PlayerO, game.Board[3])
		assert.NotNil(t, game.History[0])
		assert.NotNil(t, game.History[1])
	})

	t.Run("Absorbs a click on an occupied cell", func(t *testing.T) {
		manager := newTestManager(t)

		// Given: cell 0 already taken
		_, err := manager.MakeTurn(ctx, "session-1", 0)
		require.NoError(t, err)

		// When: the same cell is clicked again
		game, err := manager.MakeTurn(ctx, "session-1", 0)

		// Then: no error and the state is unchanged
		require.NoError(t, err)
		assert.Equal(t, 1, game.Round)
		assert.Equal(t, entity.PlayerX, game.Board[0])
	})

	t.Run("Rejects an out-of-range cell", func(t *testing.T) {
		manager := newTestManager(t)

		// When: a cell outside the board is clicked
		_, err := manager.MakeTurn(ctx, "session-1", 42)

		// Then: the contract violation surfaces
		assert.ErrorIs(t, err, entity.ErrInvalidCell)
	})
}

func TestGameManager_Rewind(t *testing.T) {
	ctx := context.Background()

	t.Run("Rewinds and persists the rewound state", func(t *testing.T) {
		manager := newTestManager(t)

		// Given: X wins with moves 0,3,1,4,2
		for _, cell := range []int{0, 3, 1, 4, 2} {
			_, err := manager.MakeTurn(ctx, "session-1", cell)
			require.NoError(t, err)
		}

		// When: rewinding to round 2
		_, err := manager.Rewind(ctx, "session-1", 2)
		require.NoError(t, err)

		// Then: the stored game reflects the rewound state
		game, err := manager.GetOrCreateGame(ctx, "session-1")
		require.NoError(t, err)
		assert.Equal(t, 2, game.Round)
		assert.Equal(t, entity.PlayerX, game.Board[0])
		assert.Equal(t, entity.PlayerO, game.Board[3])
		assert.Equal(t, entity.EmptyCell, game.Board[1])
		assert.False(t, game.IsGameOver())
	})

	t.Run("Rejects rewinding into an unplayed round", func(t *testing.T) {
		manager := newTestManager(t)

		// Given: a single move
		_, err := manager.MakeTurn(ctx, "session-1", 0)
		require.NoError(t, err)

		// When: rewinding past the played rounds
		_, err = manager.Rewind(ctx, "session-1", 7)

		// Then: the call is rejected
		assert.ErrorIs(t, err, apperror.ErrRoundNotPlayed)
	})
}

func TestGameManager_Restart(t *testing.T) {
	ctx := context.Background()

	t.Run("Resets a finished game", func(t *testing.T) {
		manager := newTestManager(t)

		// Given: a finished game
		for _, cell := range []int{0, 3, 1, 4, 2} {
			_, err := manager.MakeTurn(ctx, "session-1", cell)
			require.NoError(t, err)
		}

		// When: restarting
		game, err := manager.Restart(ctx, "session-1")

		// Then: the game is back at its start state
		require.NoError(t, err)
		assert.Equal(t, entity.Board{}, game.Board)
		assert.Equal(t, 0, game.Round)
		assert.Equal(t, [entity.BoardCells]*entity.Board{}, game.History)
	})

	t.Run("Rejects restarting a running game", func(t *testing.T) {
		manager := newTestManager(t)

		// Given: a game in progress
		_, err := manager.MakeTurn(ctx, "session-1", 0)
		require.NoError(t, err)

		// When: restarting early
		_, err = manager.Restart(ctx, "session-1")

		// Then: the call is rejected
		assert.ErrorIs(t, err, apperror.ErrGameNotFinished)
	})
}
