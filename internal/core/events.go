package core

import "time"

// Wire event names. The spellings are socket.io style and must not
// change: deployed clients match on them verbatim.
const (
	// client -> server
	EventAddUser    = "add user"
	EventJoinRoom   = "join room"
	EventNewMessage = "new message"
	EventTyping     = "typing"
	EventStopTyping = "stop typing"

	// server -> client
	EventLogin      = "login"
	EventRoomJoined = "room joined"
	EventUserJoined = "user joined room"
	EventUserLeft   = "user left room"
	EventError      = "error"
)

// LoginAck answers a successful name registration.
type LoginAck struct {
	Type      string `json:"type"`
	UserCount int    `json:"userCount"`
}

// RoomJoinedAck answers the joining connection itself.
type RoomJoinedAck struct {
	Type      string `json:"type"`
	RoomID    string `json:"roomId"`
	UserCount int    `json:"userCount"`
}

// PresenceEvent notifies the other members of a room about a join or
// leave, together with the updated member count.
type PresenceEvent struct {
	Type      string `json:"type"`
	Username  string `json:"username"`
	UserCount int    `json:"userCount"`
}

// MessageEvent carries one chat message. Timestamp marshals as RFC3339.
type MessageEvent struct {
	Type      string    `json:"type"`
	Username  string    `json:"username"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// TypingEvent is pure transient signaling, sender name only.
type TypingEvent struct {
	Type     string `json:"type"`
	Username string `json:"username"`
}

type ErrorEvent struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}
