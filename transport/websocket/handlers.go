package websocket

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/render"
)

func (that *Server) handleConnect(_ context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleConnect")

	var payloadReq Payload

	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}

	player := payloadReq.Player
	if player == nil || player.ID == "" {
		player = &Player{ID: pkg.GenerateNewSessionID()}
		log.Info("registered new player", "playerID", player.ID)
	} else {
		log.Info("player connected", "playerID", player.ID)
	}

	payloadResp := Payload{
		Player: player,
	}

	if err := that.sendMessage(bufrw, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

func (that *Server) handleGameState(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleGameState")

	payloadReq, err := that.unmarshalPayload(msg, bufrw)
	if err != nil || payloadReq == nil {
		return err
	}

	game, err := that.uGame.GetOrCreateGame(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to get or create game", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to get the game")
	}

	return that.sendGameResponse(bufrw, msg.Action, payloadReq.Player, game)
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleGameTurn")

	payloadReq, err := that.unmarshalPayload(msg, bufrw)
	if err != nil || payloadReq == nil {
		return err
	}

	if payloadReq.Cell == nil {
		log.Error("Cell is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "Cell is required")
	}

	game, err := that.uGame.MakeTurn(ctx, payloadReq.Player.ID, *payloadReq.Cell)
	if err != nil {
		log.Error("failed to make turn", "cell", *payloadReq.Cell, "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, err.Error())
	}

	return that.sendGameResponse(bufrw, msg.Action, payloadReq.Player, game)
}

func (that *Server) handleGameRewind(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleGameRewind")

	payloadReq, err := that.unmarshalPayload(msg, bufrw)
	if err != nil || payloadReq == nil {
		return err
	}

	if payloadReq.Round == nil {
		log.Error("Round is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "Round is required")
	}

	game, err := that.uGame.Rewind(ctx, payloadReq.Player.ID, *payloadReq.Round)
	if err != nil {
		log.Error("failed to rewind game", "round", *payloadReq.Round, "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, err.Error())
	}

	return that.sendGameResponse(bufrw, msg.Action, payloadReq.Player, game)
}

func (that *Server) handleGameRestart(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleGameRestart")

	payloadReq, err := that.unmarshalPayload(msg, bufrw)
	if err != nil || payloadReq == nil {
		return err
	}

	game, err := that.uGame.Restart(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to restart game", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, err.Error())
	}

	return that.sendGameResponse(bufrw, msg.Action, payloadReq.Player, game)
}

// unmarshalPayload - decodes the payload and requires a player identity. A
// nil payload with a nil error means the error response was already sent.
func (that *Server) unmarshalPayload(msg *Message, bufrw *bufio.ReadWriter) (*Payload, error) {
	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Player == nil || payloadReq.Player.ID == "" {
		that.logger.Error("Player is missing in payload", "action", msg.Action)
		return nil, that.sendErrorResponse(bufrw, msg.Action, "Player is required")
	}

	return &payloadReq, nil
}

// sendGameResponse - answers an action with the freshly rendered view.
func (that *Server) sendGameResponse(bufrw *bufio.ReadWriter, action string, player *Player, game *entity.Game) error {
	payload := Payload{
		Player: player,
		Game:   render.NewView(game),
	}

	if err := that.sendMessage(bufrw, action, payload); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}
