package repository

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTTL = time.Hour

func TestGameRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage, testTTL)

	// Given: a new game for a session
	game := entity.NewGame("123")

	// When: CreateOrUpdate is called
	err := gameRepo.CreateOrUpdate(ctx, game)

	// Then: no error should be returned, and game is stored
	require.NoError(t, err)
}

func TestGameRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, testTTL)

		// Given: a game with two moves played and history recorded
		game := entity.NewGame("123")
		require.NoError(t, game.MakeMove(0))
		require.NoError(t, game.MakeMove(3))

		err := gameRepo.CreateOrUpdate(ctx, game)
		require.NoError(t, err)

		// When: GetByID is called with existing ID
		retrievedGame, err := gameRepo.GetByID(ctx, game.ID)

		// Then: the retrieved game matches, snapshots included
		require.NoError(t, err)
		require.Equal(t, game.ID, retrievedGame.ID)
		require.Equal(t, game.Board, retrievedGame.Board)
		require.Equal(t, game.Round, retrievedGame.Round)
		require.Equal(t, game.History, retrievedGame.History)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, testTTL)

		nonExistentGameID := "9999999"

		// When: GetByID is called with non-existent ID
		retrievedGame, err := gameRepo.GetByID(ctx, nonExistentGameID)

		// Then: an ErrGameNotFound error should be returned
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrGameNotFound)
		assert.Nil(t, retrievedGame)
	})
}

func TestGameRepository_DeleteByID(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage, testTTL)

	// Given: a stored game
	game := entity.NewGame("123")

	err := gameRepo.CreateOrUpdate(ctx, game)
	require.NoError(t, err)

	// When: DeleteByID is called with existing ID
	err = gameRepo.DeleteByID(ctx, game.ID)

	// Then: no error should be returned and the game is gone
	require.NoError(t, err)

	_, err = gameRepo.GetByID(ctx, game.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrGameNotFound)
}
