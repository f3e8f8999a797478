package signal

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/NileshMete/Charcha/internal/core"
)

func testConn() *WsSignalConn {
	return &WsSignalConn{send: make(chan core.Frame, 8)}
}

func drain(t *testing.T, c *WsSignalConn) []map[string]any {
	t.Helper()
	var out []map[string]any
	for {
		select {
		case f := <-c.send:
			var m map[string]any
			require.NoError(t, json.Unmarshal(f, &m))
			out = append(out, m)
		default:
			return out
		}
	}
}

func TestDecode_MalformedJSONRepliesError(t *testing.T) {
	req := require.New(t)
	ctl := &ChatWSController{}
	c := testConn()

	var p addUserPayload
	req.False(ctl.decode(c, []byte(`{"name":`), &p))

	evs := drain(t, c)
	req.Len(evs, 1)
	req.Equal("error", evs[0]["type"])
	req.Equal("bad_payload", evs[0]["error"])
}

func TestDecode_ValidationFailureRepliesError(t *testing.T) {
	req := require.New(t)
	ctl := &ChatWSController{}
	c := testConn()

	var p newMessagePayload
	long := strings.Repeat("x", 501)
	req.False(ctl.decode(c, []byte(`{"message":"`+long+`"}`), &p))

	evs := drain(t, c)
	req.Len(evs, 1)
	req.Equal("invalid_payload", evs[0]["error"])
}

func TestDecode_ValidPayload(t *testing.T) {
	req := require.New(t)
	ctl := &ChatWSController{}
	c := testConn()

	var p joinRoomPayload
	req.True(ctl.decode(c, []byte(`{"type":"join room","roomId":"lobby"}`), &p))
	req.Equal("lobby", p.RoomID)
	req.Empty(drain(t, c))
}

func TestTrySend_BackpressureWhenBufferFull(t *testing.T) {
	req := require.New(t)
	c := &WsSignalConn{send: make(chan core.Frame, 1)}

	req.NoError(c.TrySend(core.Frame("one")))
	req.ErrorIs(c.TrySend(core.Frame("two")), ErrBackpressure)
}

func TestRateLimiter_BlocksAboveLimit(t *testing.T) {
	req := require.New(t)
	rl := NewMessageRateLimiter(3, time.Minute)

	req.True(rl.Allow("sid"))
	req.True(rl.Allow("sid"))
	req.True(rl.Allow("sid"))
	req.False(rl.Allow("sid"))

	// other connections are unaffected
	req.True(rl.Allow("other"))
}

func TestRateLimiter_WindowExpires(t *testing.T) {
	req := require.New(t)
	rl := NewMessageRateLimiter(1, 10*time.Millisecond)

	req.True(rl.Allow("sid"))
	req.False(rl.Allow("sid"))
	time.Sleep(20 * time.Millisecond)
	req.True(rl.Allow("sid"))
}

func TestRateLimiter_ZeroLimitDisables(t *testing.T) {
	req := require.New(t)
	rl := NewMessageRateLimiter(0, time.Minute)

	for i := 0; i < 100; i++ {
		req.True(rl.Allow("sid"))
	}
}

func TestRateLimiter_Forget(t *testing.T) {
	req := require.New(t)
	rl := NewMessageRateLimiter(1, time.Minute)

	req.True(rl.Allow("sid"))
	req.False(rl.Allow("sid"))
	rl.Forget("sid")
	req.True(rl.Allow("sid"))
}
