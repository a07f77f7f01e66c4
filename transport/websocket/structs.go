package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/render"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Player holds the session identity the client presents with every action.
type Player struct {
	ID string `json:"id"`
}

// Payload is the request and response body of every action. Cell and Round
// are pointers so that cell 0 and round 0 stay distinguishable from a missing
// field.
type Payload struct {
	Player *Player      `json:"player,omitempty"`
	Game   *render.View `json:"game,omitempty"`
	Cell   *int         `json:"cell,omitempty"`
	Round  *int         `json:"round,omitempty"`
	Error  string       `json:"error,omitempty"`
}

// frame represents a WebSocket frame and its metadata.
type frame struct {
	isFin   bool   // whether this frame is the last one of the message
	opCode  byte   // operation code describing the payload type
	length  uint64 // payload length
	payload []byte // the frame payload
}
