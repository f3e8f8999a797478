package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUser_ValidName(t *testing.T) {
	req := require.New(t)

	u, err := NewUser("alice")

	req.NoError(err)
	req.Equal("alice", u.Username)
	req.NotEmpty(u.ID)
	req.LessOrEqual(len(u.ID), MaxUserIDLen)
}

func TestNewUser_EmptyName(t *testing.T) {
	req := require.New(t)

	_, err := NewUser("")

	req.ErrorIs(err, ErrUsernameEmpty)
}

func TestNewUser_NameTooLong(t *testing.T) {
	req := require.New(t)

	_, err := NewUser(strings.Repeat("x", MaxUsernameLen+1))

	req.ErrorIs(err, ErrUsernameTooLong)
}

func TestNewRoomName_TruncatesOverlongNames(t *testing.T) {
	req := require.New(t)

	name, err := NewRoomName(strings.Repeat("r", MaxRoomNameLen+10))

	req.NoError(err)
	req.Len(string(name), MaxRoomNameLen)
}

func TestNewRoomName_Empty(t *testing.T) {
	req := require.New(t)

	_, err := NewRoomName("")

	req.ErrorIs(err, ErrRoomNameEmpty)
}

func TestNewRoomName_CaseSensitive(t *testing.T) {
	req := require.New(t)

	a, err := NewRoomName("Lobby")
	req.NoError(err)
	b, err := NewRoomName("lobby")
	req.NoError(err)

	req.NotEqual(a, b)
}

func TestValidateMessageText(t *testing.T) {
	req := require.New(t)

	req.NoError(ValidateMessageText("hi"))
	req.NoError(ValidateMessageText(strings.Repeat("m", MaxMessageLen)))
	req.ErrorIs(ValidateMessageText(""), ErrMessageEmpty)
	req.ErrorIs(ValidateMessageText(strings.Repeat("m", MaxMessageLen+1)), ErrMessageTooLong)
}
