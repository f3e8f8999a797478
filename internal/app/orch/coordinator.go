// Package orch hosts the session coordinator: the per-connection state
// machine (unregistered -> registered -> in a room) that validates each
// inbound event against the connection's lifecycle, mutates the
// registry and room directory, and fans events out to the right subset
// of connections.
package orch

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/NileshMete/Charcha/internal/app"
	"github.com/NileshMete/Charcha/internal/core"
	"github.com/NileshMete/Charcha/internal/domain"
)

type Coordinator struct {
	Registry *app.Registry
	Rooms    core.RoomDirectory
	Policy   app.Policy

	// Now stamps outgoing messages; overridable in tests.
	Now func() time.Time
}

func NewCoordinator(reg *app.Registry, rooms core.RoomDirectory, policy app.Policy) *Coordinator {
	return &Coordinator{
		Registry: reg,
		Rooms:    rooms,
		Policy:   policy,
		Now:      time.Now,
	}
}

// Register handles "add user". Valid only while the connection is
// unregistered; a second attempt is a no-op and gets no reply, the
// first name wins. Invalid names are reported back to the caller.
func (o *Coordinator) Register(sid core.SessionID, name string) (*core.LoginAck, error) {
	if _, ok := o.Registry.UserOf(sid); ok {
		log.Warn().Str("module", "orch").Str("sid", string(sid)).Msg("register ignored, already registered")
		return nil, nil
	}
	user, err := domain.NewUser(name)
	if err != nil {
		return nil, err
	}
	if !o.Registry.Register(sid, user) {
		log.Warn().Str("module", "orch").Str("sid", string(sid)).Msg("register ignored, unknown or raced connection")
		return nil, nil
	}
	return &core.LoginAck{Type: core.EventLogin, UserCount: o.Registry.ActiveUsers()}, nil
}

// Message handles "new message". Outside a room the message is silently
// dropped; delivery is best-effort by design. The timestamp is assigned
// here, never taken from the sender.
func (o *Coordinator) Message(sid core.SessionID, text string) error {
	user, room, ok := o.inRoom(sid)
	if !ok {
		log.Warn().Str("module", "orch").Str("sid", string(sid)).Msg("message dropped, not in a room")
		return nil
	}
	if err := domain.ValidateMessageText(text); err != nil {
		return err
	}
	o.broadcast(room, sid, core.MessageEvent{
		Type:      core.EventNewMessage,
		Username:  user.Username,
		Message:   text,
		Timestamp: o.Now().UTC(),
	})
	return nil
}

// Typing and StopTyping relay transient composing signals. No state is
// kept; quiescence expiry is the client's timer, not ours.
func (o *Coordinator) Typing(sid core.SessionID) {
	o.typingEvent(sid, core.EventTyping)
}

func (o *Coordinator) StopTyping(sid core.SessionID) {
	o.typingEvent(sid, core.EventStopTyping)
}

func (o *Coordinator) typingEvent(sid core.SessionID, event string) {
	user, room, ok := o.inRoom(sid)
	if !ok {
		log.Warn().Str("module", "orch").Str("sid", string(sid)).Str("event", event).Msg("typing event dropped, not in a room")
		return
	}
	o.broadcast(room, sid, core.TypingEvent{Type: event, Username: user.Username})
}

// inRoom resolves the registered user and the current room in one shot.
func (o *Coordinator) inRoom(sid core.SessionID) (*domain.User, core.RoomService, bool) {
	user, ok := o.Registry.UserOf(sid)
	if !ok {
		return nil, nil, false
	}
	name, ok := o.Registry.RoomOf(sid)
	if !ok {
		return nil, nil, false
	}
	room, ok := o.Rooms.Get(name)
	if !ok {
		return nil, nil, false
	}
	return user, room, true
}

// broadcast marshals the event, fans it out to the room minus the
// sender, and applies the backpressure policy to dropped members.
func (o *Coordinator) broadcast(room core.RoomService, from core.SessionID, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("broadcast marshal")
		return
	}
	res := room.Broadcast(from, core.Frame(b))
	if o.Policy == nil {
		return
	}
	for _, slow := range res.Dropped {
		switch o.Policy.OnBackPressure(room, slow) {
		case app.KickMember:
			log.Warn().Str("module", "orch").Str("sid", string(slow)).Msg("kicking slow member")
			// Cancel stops the pumps, closing the transport unblocks
			// the reader right away instead of at the pong deadline.
			o.Registry.Cancel(slow)
			if sess, ok := o.Registry.SessionOf(slow); ok {
				sess.Signal().Close()
			}
			o.Disconnect(slow)
		case app.MarkSlow, app.DropFrame, app.NoAction:
		}
	}
}
