package orch

import (
	"github.com/rs/zerolog/log"

	"github.com/NileshMete/Charcha/internal/core"
	"github.com/NileshMete/Charcha/internal/domain"
)

// Join handles "join room". Valid once registered. A connection holds
// at most one room, so joining while in another room leaves that room
// first: its remaining members see "user left room" before anyone in
// the target room sees "user joined room".
func (o *Coordinator) Join(sid core.SessionID, roomID string) (*core.RoomJoinedAck, error) {
	user, ok := o.Registry.UserOf(sid)
	if !ok {
		log.Warn().Str("module", "orch").Str("sid", string(sid)).Msg("join dropped, not registered")
		return nil, nil
	}
	name, err := domain.NewRoomName(roomID)
	if err != nil {
		return nil, err
	}

	o.leaveCurrent(sid, user)

	sess, ok := o.Registry.SessionOf(sid)
	if !ok {
		return nil, nil
	}
	room := o.Rooms.GetOrCreate(name)
	room.AddMember(sid, sess)
	o.Registry.UpdateRoom(sid, name)
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room", string(name)).Msg("joined room")

	count := room.MemberCount()
	o.broadcast(room, sid, core.PresenceEvent{
		Type:      core.EventUserJoined,
		Username:  user.Username,
		UserCount: count,
	})
	return &core.RoomJoinedAck{Type: core.EventRoomJoined, RoomID: string(room.Name()), UserCount: count}, nil
}

// Disconnect is the terminal transition, valid from any state: leave
// the current room with a presence broadcast, drop the registry entry
// and give the user count back. Safe to call more than once.
func (o *Coordinator) Disconnect(sid core.SessionID) {
	user, ok := o.Registry.UserOf(sid)
	if ok {
		o.leaveCurrent(sid, user)
	}
	o.Registry.Unbind(sid)
	log.Info().Str("module", "orch").Str("sid", string(sid)).Msg("disconnected")
}

// leaveCurrent removes the connection from its current room, if any.
// The room entry disappears with its last member; otherwise the
// remaining members get "user left room" with the updated count.
func (o *Coordinator) leaveCurrent(sid core.SessionID, user *domain.User) {
	name, ok := o.Registry.RoomOf(sid)
	if !ok {
		return
	}
	room, ok := o.Rooms.Get(name)
	if !ok {
		o.Registry.ClearRoom(sid)
		return
	}
	room.RemoveMember(sid)
	o.Registry.ClearRoom(sid)

	count := room.MemberCount()
	if count == 0 {
		o.Rooms.Forget(name)
		return
	}
	o.broadcast(room, sid, core.PresenceEvent{
		Type:      core.EventUserLeft,
		Username:  user.Username,
		UserCount: count,
	})
}
