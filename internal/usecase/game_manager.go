package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
}

// GameManager orchestrates one game per session between transport, engine
// and store. Every mutation loads the session's game, applies the engine
// operation and writes the result back.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger: logger,

		gameRepo: gameRepo,
	}
}

// GetOrCreateGame - returns the session's game, starting a fresh one when
// the session has none yet.
func (that *GameManager) GetOrCreateGame(ctx context.Context, sessionID string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, sessionID)
	if errors.Is(err, apperror.ErrGameNotFound) {
		return that.createGame(ctx, sessionID)
	}

	if err != nil {
		return nil, fmt.Errorf("failed get game by id: %w", err)
	}

	return game, nil
}

func (that *GameManager) MakeTurn(ctx context.Context, sessionID string, cell int) (*entity.Game, error) {
	game, err := that.GetOrCreateGame(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed get game: %w", err)
	}

	if err = game.MakeMove(cell); err != nil {
		return nil, fmt.Errorf("failed make turn: %w", err)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed update game: %w", err)
	}

	return game, nil
}

func (that *GameManager) Rewind(ctx context.Context, sessionID string, round int) (*entity.Game, error) {
	game, err := that.GetOrCreateGame(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed get game: %w", err)
	}

	if err = game.RewindTo(round); err != nil {
		return nil, fmt.Errorf("failed rewind game: %w", err)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed update game: %w", err)
	}

	return game, nil
}

// Restart - resets a finished game. A running game cannot be restarted, the
// same rule that keeps the restart control hidden until game over.
func (that *GameManager) Restart(ctx context.Context, sessionID string) (*entity.Game, error) {
	game, err := that.GetOrCreateGame(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed get game: %w", err)
	}

	if !game.IsGameOver() {
		return nil, apperror.ErrGameNotFinished
	}

	game.Reset()

	if err = that.updateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed update game: %w", err)
	}

	return game, nil
}

func (that *GameManager) createGame(ctx context.Context, sessionID string) (*entity.Game, error) {
	log := that.logger.With("method", "createGame")

	newGame := entity.NewGame(sessionID)

	if err := that.gameRepo.CreateOrUpdate(ctx, newGame); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	log.Info("started new game", "sessionID", sessionID)

	return newGame, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
