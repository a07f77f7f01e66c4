package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

type GameRepository interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbGame struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGameRepository - a session-keyed store of live games. Every write
// refreshes the TTL, so a game lives exactly as long as its session stays
// active and expires with it.
func NewGameRepository(client *redis.Client, ttl time.Duration) GameRepository {
	return &dbGame{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbGame) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	gameKey := "game:" + game.ID
	if err = that.client.Set(ctx, gameKey, gameJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	gameKey := "game:" + id

	response, err := that.client.Get(ctx, gameKey).Result()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	var existingGame entity.Game
	if err = json.Unmarshal([]byte(response), &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func (that *dbGame) DeleteByID(ctx context.Context, id string) error {
	gameKey := "game:" + id

	if err := that.client.Del(ctx, gameKey).Err(); err != nil {
		return fmt.Errorf("failed to delete game by ID: %w", err)
	}

	return nil
}
