package core

import "github.com/NileshMete/Charcha/internal/domain"

// Frame is a marshaled wire event ready for delivery.
type Frame []byte

// SessionID identifies one active network connection. It is opaque to
// the core; the HTTP adapter mints it as a client-token cookie.
type SessionID string

// SignalConnection abstracts a system messaging transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// MemberSession binds domain.Member and its transport endpoint.
// This is what a room stores and fans out to.
type MemberSession interface {
	Meta() *domain.Member
	Signal() SignalConnection
}

// PublishResult reports delivery stats/backpressure to the coordinator.
type PublishResult struct {
	SentTo  int
	Dropped []SessionID
}

// RoomService is the core-facing API of a room.
// It owns the membership set but never touches transport resources.
type RoomService interface {
	Name() domain.RoomName
	MemberCount() int
	MembersSnapshot() []string

	AddMember(sid SessionID, ms MemberSession)
	RemoveMember(sid SessionID)
	Broadcast(from SessionID, data Frame) PublishResult
}

type RoomInfo struct {
	Name        domain.RoomName `json:"name"`
	MemberCount int             `json:"userCount"`
}

// RoomDirectory tracks live rooms. Rooms are created lazily on first
// join and forgotten when their last member leaves.
type RoomDirectory interface {
	GetOrCreate(name domain.RoomName) RoomService
	Get(name domain.RoomName) (RoomService, bool)
	MemberCount(name domain.RoomName) int
	Forget(name domain.RoomName)
	List() []RoomInfo
}
