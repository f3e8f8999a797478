package app

import "github.com/NileshMete/Charcha/internal/core"

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	MarkSlow
	KickMember
	DropFrame
)

// Policy decides what to do with a member whose send buffer was full
// during a broadcast. Delivery is best-effort, so the default answer
// for a consistently slow reader is eviction.
type Policy interface {
	OnBackPressure(room core.RoomService, member core.SessionID) BackpressureAction
}

type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(room core.RoomService, member core.SessionID) BackpressureAction {
	return KickMember
}
