package domain

import "errors"

type RoomName string

const MaxRoomNameLen = 64

var ErrRoomNameEmpty = errors.New("room name empty")

// Room names are client-supplied and case-sensitive. Anything non-empty
// goes; over-long names are truncated rather than rejected.
func NewRoomName(raw string) (RoomName, error) {
	if len(raw) == 0 {
		return "", ErrRoomNameEmpty
	}
	if len(raw) > MaxRoomNameLen {
		raw = raw[:MaxRoomNameLen]
	}
	return RoomName(raw), nil
}
