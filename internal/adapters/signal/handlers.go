package signal

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/NileshMete/Charcha/internal/core"
	"github.com/NileshMete/Charcha/internal/domain"
)

var validate = validator.New()

type addUserPayload struct {
	Name string `json:"name" validate:"required,max=36"`
}

type joinRoomPayload struct {
	RoomID string `json:"roomId" validate:"required,max=64"`
}

type newMessagePayload struct {
	Message string `json:"message" validate:"required,max=500"`
}

// decode unmarshals a payload and runs its validate tags. Shape
// problems get an error event back; sequencing problems do not.
func (ctl *ChatWSController) decode(c *WsSignalConn, data []byte, v any) bool {
	if err := json.Unmarshal(data, v); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad payload")
		ctl.sendError(c, "bad_payload")
		return false
	}
	if err := validate.Struct(v); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("invalid payload")
		ctl.sendError(c, "invalid_payload")
		return false
	}
	return true
}

func (ctl *ChatWSController) handleAddUser(sid core.SessionID, c *WsSignalConn, data []byte) {
	var p addUserPayload
	if !ctl.decode(c, data, &p) {
		return
	}
	ack, err := ctl.Coord.Register(sid, p.Name)
	if err != nil {
		ctl.sendError(c, err.Error())
		return
	}
	if ack == nil {
		// already registered, first name wins
		return
	}
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("name", p.Name).Msg("user added")
	ctl.sendJSON(c, ack)
}

func (ctl *ChatWSController) handleJoinRoom(sid core.SessionID, c *WsSignalConn, data []byte) {
	var p joinRoomPayload
	if !ctl.decode(c, data, &p) {
		return
	}
	ack, err := ctl.Coord.Join(sid, p.RoomID)
	if err != nil {
		ctl.sendError(c, err.Error())
		return
	}
	if ack == nil {
		return
	}
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room", ack.RoomID).Msg("room joined")
	ctl.sendJSON(c, ack)
}

func (ctl *ChatWSController) handleNewMessage(sid core.SessionID, c *WsSignalConn, data []byte) {
	var p newMessagePayload
	if !ctl.decode(c, data, &p) {
		return
	}
	if !ctl.limiter.Allow(sid) {
		ctl.sendError(c, "rate_limited")
		return
	}
	if err := ctl.Coord.Message(sid, p.Message); err != nil {
		if err == domain.ErrMessageEmpty || err == domain.ErrMessageTooLong {
			ctl.sendError(c, err.Error())
			return
		}
		log.Error().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("message")
	}
}
